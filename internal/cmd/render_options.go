package cmd

import (
	"os"

	"github.com/dsview/dsview/internal/cmd/common"
	"github.com/dsview/dsview/internal/iostreams"
	"github.com/dsview/dsview/internal/render"
	"github.com/dsview/dsview/internal/theme"
)

// UseColor resolves the color setting against the output stream.
func UseColor(helper Helper) (bool, error) {
	cfg, err := helper.GetConfig()
	if err != nil {
		return false, err
	}
	mode, err := common.ColorModeStringToIota(cfg.GetString(common.ColorConfigPath))
	if err != nil {
		return false, &ConfigurationError{Err: err}
	}
	switch mode {
	case common.ColorModeAlways:
		return true, nil
	case common.ColorModeNever:
		return false, nil
	default:
		if _, disabled := os.LookupEnv("NO_COLOR"); disabled {
			return false, nil
		}
		return iostreams.IsTerminal(helper.GetStreams().Out), nil
	}
}

// MarkdownOptions returns the terminal rendering options for this command.
func MarkdownOptions(helper Helper) (render.Options, error) {
	color, err := UseColor(helper)
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{
		NoColor: !color,
		Width:   helper.GetStreams().TerminalWidth(),
		Style:   theme.FromContext(helper.GetContext()).MarkdownStyle,
	}, nil
}
