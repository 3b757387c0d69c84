package render

import "strings"

// Object kinds.
const (
	KindHost    = "host"
	KindService = "service"
)

// Block is one rendered object definition.
type Block struct {
	// Kind is KindHost or KindService.
	Kind string

	// Lines are the body lines without indentation.
	Lines []string
}

// String formats the block as a Nagios object definition.
func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("define " + b.Kind + " {\n")
	for _, line := range b.Lines {
		sb.WriteString("\t" + line + "\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

// Join formats blocks separated by a single blank line.
func Join(blocks []*Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n")
}
