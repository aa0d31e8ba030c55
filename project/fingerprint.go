package project

import (
	"github.com/zeebo/xxh3"
)

// Fingerprint hashes the project's name and nodes (paths, types, contents).
// Timestamps are excluded so that a load followed by no edits compares equal
// to the saved state.
func Fingerprint(p *Project) uint64 {
	h := xxh3.New()
	h.WriteString(p.ID)
	h.Write([]byte{0})
	h.WriteString(p.Name)
	for _, n := range p.Files.Nodes() {
		h.Write([]byte{0})
		h.WriteString(n.Path)
		h.Write([]byte{0, byte(n.Type), 0})
		h.WriteString(n.Content)
	}
	return h.Sum64()
}
