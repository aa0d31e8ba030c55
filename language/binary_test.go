package language

import (
	"bytes"
	"testing"
)

func Test_IsBinaryContent(t *testing.T) {
	late := append(bytes.Repeat([]byte("a"), 600), 0)
	tests := []struct {
		name     string
		data     []byte
		expected bool
	}{
		{"text", []byte("export default function App() {}\n"), false},
		{"png header", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}, true},
		{"empty", nil, false},
		{"nul past sniff window", late, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBinaryContent(tt.data); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
