package dataset

import "strings"

const (
	hubDatasetsMarker = "huggingface.co/datasets/"
	atURLPrefix       = "@https://"
)

// NormalizePath reduces a user supplied dataset identifier to owner/name form.
//
//	https://huggingface.co/datasets/openai/openai_humaneval  -> openai/openai_humaneval
//	@https://huggingface.co/datasets/openai/openai_humaneval -> openai/openai_humaneval
//	openai/openai_humaneval                                  -> openai/openai_humaneval
//
// Anything else, including local paths, is returned unchanged. The result is
// always a fixed point: NormalizePath(NormalizePath(x)) == NormalizePath(x).
func NormalizePath(input string) string {
	if idx := strings.Index(input, hubDatasetsMarker); idx >= 0 {
		rest := input[idx+len(hubDatasetsMarker):]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[:nl]
		}
		if rest != "" {
			return NormalizePath(rest)
		}
	}
	if strings.HasPrefix(input, atURLPrefix) {
		return NormalizePath(input[1:])
	}
	return input
}
