package config

import (
	"context"
	"log/slog"

	"github.com/contextual-ai/tenantctl/pkg/domain/model"
	"github.com/contextual-ai/tenantctl/pkg/domain/types"
	"github.com/contextual-ai/tenantctl/pkg/service/emailfile"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Input holds the email file configuration
type Input struct {
	Path      string
	Column    string
	Delimiter string
}

// Flags returns CLI flags for Input configuration
func (i *Input) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "csv",
			Aliases:     []string{"c"},
			Usage:       "Path to the CSV/TSV file with email addresses",
			Category:    "Input",
			Destination: &i.Path,
		},
		&cli.StringFlag{
			Name:        "email-column",
			Aliases:     []string{"e"},
			Usage:       "Header of the email column (auto-detected if omitted)",
			Category:    "Input",
			Destination: &i.Column,
		},
		&cli.StringFlag{
			Name:        "delimiter",
			Usage:       "Field delimiter, a single character or \"tab\" (default: by file extension)",
			Category:    "Input",
			Destination: &i.Delimiter,
		},
	}
}

// IsSet reports whether an input file was given
func (i *Input) IsSet() bool {
	return i.Path != ""
}

// Validate validates the input configuration
func (i *Input) Validate() error {
	_, err := emailfile.ParseDelimiter(i.Delimiter)
	return err
}

// ReadEmails reads the email list and fails when it is empty
func (i *Input) ReadEmails(ctx context.Context) ([]types.Email, error) {
	delimiter, err := emailfile.ParseDelimiter(i.Delimiter)
	if err != nil {
		return nil, err
	}

	emails, err := emailfile.ReadEmails(ctx, i.Path, emailfile.Options{
		Column:    i.Column,
		Delimiter: delimiter,
	})
	if err != nil {
		return nil, err
	}
	if len(emails) == 0 {
		return nil, goerr.Wrap(model.ErrNoEmails, "nothing to do", goerr.V("path", i.Path))
	}
	return emails, nil
}

// LogValue returns structured log value
func (i Input) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", i.Path),
		slog.String("column", i.Column),
		slog.String("delimiter", i.Delimiter),
	)
}
