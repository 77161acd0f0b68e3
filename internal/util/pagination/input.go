package pagination

import (
	"fmt"
	"strconv"
	"strings"
)

// InvalidPageNumberError is returned for go-to-page input outside 1..TotalPages.
type InvalidPageNumberError struct {
	Input      string
	TotalPages int
}

func (e *InvalidPageNumberError) Error() string {
	return fmt.Sprintf("Please enter a valid page number between 1 and %d", e.TotalPages)
}

// ValidatePageInput parses the text typed into a go-to-page box. It reads the
// leading integer and ignores the rest, so "12abc" is page 12.
func ValidatePageInput(text string, totalPages int) (int, error) {
	invalid := &InvalidPageNumberError{Input: text, TotalPages: max(totalPages, 1)}

	s := strings.TrimSpace(text)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, invalid
	}

	page, err := strconv.Atoi(s[:end])
	if err != nil || page < 1 || page > invalid.TotalPages {
		return 0, invalid
	}
	return page, nil
}
