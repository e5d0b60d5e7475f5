package cmd

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/model"
	"github.com/nova728/diary/internal/parser"
)

// request returns the context for one command invocation.
func request(cmd *cobra.Command) context.Context {
	return ctx.Request(cmd.Context())
}

// parseEntryDate parses a --date value relative to the journal clock.
// Empty input yields the zero date, which the workflow treats as today.
func parseEntryDate(input string) (model.Date, error) {
	if strings.TrimSpace(input) == "" {
		return model.Date{}, nil
	}
	return parser.ParseDate(input, ctx.Stats.Now())
}

// parsePeriod parses period words from args or a --from/--until pair.
func parsePeriod(args []string, from, until string) (parser.Period, error) {
	period, err := parser.ParsePeriod(strings.Join(args, " "), ctx.Stats.Today())
	if err != nil {
		return parser.Period{}, err
	}
	if from != "" {
		if period.From, err = parser.ParseDate(from, ctx.Stats.Now()); err != nil {
			return parser.Period{}, err
		}
	}
	if until != "" {
		if period.Until, err = parser.ParseDate(until, ctx.Stats.Now()); err != nil {
			return parser.Period{}, err
		}
	}
	return period, nil
}

// parseMood normalizes a --mood value. "none" selects no mood.
func parseMood(input string) model.Mood {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "none" {
		return ""
	}
	return model.Mood(input)
}

// readContent returns entry content from --content, from --file ("-" is
// stdin), or from stdin when it is piped.
func readContent(content, file string) (string, error) {
	if content != "" {
		return content, nil
	}
	if file == "" {
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return "", nil
		}
		file = "-"
	}

	var r io.Reader = os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return "", errors.NewUserErrorWithField("file", file, "Cannot read content file", "Check the path and permissions")
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, "read content")
	}
	return string(data), nil
}
