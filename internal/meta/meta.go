package meta

const (
	// CLIName is the binary name used in help text, config paths and env prefixes.
	CLIName = "dsview"

	// DefaultDatasetPath is loaded when no dataset is given on the command line or in config.
	DefaultDatasetPath = "@https://huggingface.co/datasets/openai/openai_humaneval"
)
