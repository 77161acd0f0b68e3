package normalizers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExamplesIndentsAndSubstitutesName(t *testing.T) {
	got := Examples(`
		# Browse a dataset
		{{cli}} view openai/openai_humaneval

		# Print the columns
		{{cli}} get columns openai/openai_humaneval
	`)
	require.Equal(t, "  # Browse a dataset\n  dsview view openai/openai_humaneval\n\n"+
		"  # Print the columns\n  dsview get columns openai/openai_humaneval", got)
}

func TestLongDescTrimsLines(t *testing.T) {
	require.Equal(t, "first\nsecond", LongDesc("\n   first\n\t second  \n"))
	require.Equal(t, "", Examples("   "))
}
