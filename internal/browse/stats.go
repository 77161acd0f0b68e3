package browse

import (
	"strconv"
	"strings"

	"github.com/dsview/dsview/internal/dataset"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var statsPrinter = message.NewPrinter(language.English)

// Stats is the summary line shown above a page of rows.
type Stats struct {
	TotalRows   int
	CurrentPage int
	TotalPages  int
	// Showing lists the row numbers on the page: "7", "10 to 19" or "3, 8, 12".
	Showing string
}

// ComputeStats returns nil when there is nothing to summarise.
func ComputeStats(result *dataset.PageResult, pageStart int) *Stats {
	if result == nil || len(result.Rows) == 0 {
		return nil
	}
	numbers := make([]int, len(result.Rows))
	for i, row := range result.Rows {
		numbers[i] = row.Number(pageStart, i)
	}
	return &Stats{
		TotalRows:   result.TotalRows,
		CurrentPage: result.CurrentPage,
		TotalPages:  result.TotalPages,
		Showing:     ShowingRows(numbers),
	}
}

// ShowingRows formats row numbers as a single number, a range when they are
// consecutive, or a comma separated list.
func ShowingRows(numbers []int) string {
	switch len(numbers) {
	case 0:
		return ""
	case 1:
		return strconv.Itoa(numbers[0])
	}

	consecutive := true
	for i := 1; i < len(numbers); i++ {
		if numbers[i] != numbers[i-1]+1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return strconv.Itoa(numbers[0]) + " to " + strconv.Itoa(numbers[len(numbers)-1])
	}

	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

// Summary renders the stats as one line with grouped thousands, e.g.
// "Total rows: 1,200 | Page 3 of 120 | Showing rows 20 to 29".
func (s *Stats) Summary() string {
	if s == nil {
		return ""
	}
	return statsPrinter.Sprintf("Total rows: %d | Page %d of %d | Showing rows %s",
		s.TotalRows, s.CurrentPage, s.TotalPages, s.Showing)
}
