package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"full url", "https://huggingface.co/datasets/openai/openai_humaneval", "openai/openai_humaneval"},
		{"at prefixed url", "@https://huggingface.co/datasets/a/b", "a/b"},
		{"bare id", "openai/openai_humaneval", "openai/openai_humaneval"},
		{"local path", "/data/train.jsonl", "/data/train.jsonl"},
		{"at prefixed non hub url", "@https://example.com/x", "https://example.com/x"},
		{"marker without id", "https://huggingface.co/datasets/", "https://huggingface.co/datasets/"},
		{"nested marker", "huggingface.co/datasets/huggingface.co/datasets/a/b", "a/b"},
		{"marker then at url", "huggingface.co/datasets/@https://x/y", "https://x/y"},
		{"stops at newline", "huggingface.co/datasets/a/b\ntrailing", "a/b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizePath(tt.input))
		})
	}
}

func TestNormalizePathIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"a/b",
		"@a/b",
		"@https://",
		"@@https://huggingface.co/datasets/a/b",
		"@https://@https://huggingface.co/datasets/a/b",
		"https://huggingface.co/datasets/openai/openai_humaneval",
		"huggingface.co/datasets/@https://huggingface.co/datasets/x",
		"https://huggingface.co/datasets/\nhuggingface.co/datasets/",
		"./relative/dir",
	}
	for _, in := range inputs {
		once := NormalizePath(in)
		require.Equal(t, once, NormalizePath(once), "input %q", in)
	}
}
