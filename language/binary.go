package language

import "bytes"

const sniffLen = 512

// IsBinaryContent reports whether data has a NUL byte within its first 512 bytes.
// Imported files that look binary are skipped since the editor only holds text.
func IsBinaryContent(data []byte) bool {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}
