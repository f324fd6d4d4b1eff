package config

import (
	"io"
	"log/slog"

	"github.com/contextual-ai/tenantctl/pkg/service/report"
	"github.com/urfave/cli/v3"
)

// Output holds report configuration
type Output struct {
	Format      string
	FailOnError bool
}

// Flags returns CLI flags for Output configuration
func (o *Output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Report format (text, json, yaml)",
			Category:    "Output",
			Value:       "text",
			Sources:     cli.EnvVars("CONTEXTUAL_OUTPUT_FORMAT"),
			Destination: &o.Format,
		},
		&cli.BoolFlag{
			Name:        "fail-on-error",
			Usage:       "Exit with status 1 when any email could not be processed",
			Category:    "Output",
			Sources:     cli.EnvVars("CONTEXTUAL_FAIL_ON_ERROR"),
			Destination: &o.FailOnError,
		},
	}
}

// Validate validates the output configuration
func (o *Output) Validate() error {
	_, err := report.ParseFormat(o.Format)
	return err
}

// Configure creates a reporter writing to w
func (o *Output) Configure(w io.Writer) (*report.Reporter, error) {
	format, err := report.ParseFormat(o.Format)
	if err != nil {
		return nil, err
	}
	return report.New(w, format), nil
}

// LogValue returns structured log value
func (o Output) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("format", o.Format),
		slog.Bool("fail_on_error", o.FailOnError),
	)
}
