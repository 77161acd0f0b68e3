package normalizers

import (
	"strings"

	"github.com/dsview/dsview/internal/meta"
)

const Indentation = `  `

// LongDesc normalizes a command's long description: surrounding blank space is
// removed and every line is left-trimmed.
func LongDesc(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// Examples normalizes a command's examples. The literal token "{{cli}}" is
// replaced with the binary name and each non-blank line is indented.
func Examples(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "{{cli}}", meta.CLIName)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			lines[i] = ""
			continue
		}
		lines[i] = Indentation + trimmed
	}
	return strings.Join(lines, "\n")
}
