package emailfile

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/contextual-ai/tenantctl/pkg/domain/model"
	"github.com/contextual-ai/tenantctl/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CommonEmailColumns are the header spellings tried, in order, when no
// explicit column is given.
var CommonEmailColumns = []string{
	"email", "Email", "EMAIL",
	"email address", "Email Address", "Email address",
	"emailaddress", "EmailAddress",
	"e-mail", "E-mail", "E-Mail",
}

// Options controls how a file is read
type Options struct {
	// Column is the header of the email column. Empty means auto-detect.
	Column string
	// Delimiter separates fields. Zero means detect from the file extension.
	Delimiter rune
}

// ReadEmails reads the email column of a delimited file with a header row.
// Values are trimmed; empty values and values without "@" are skipped.
// Order and duplicates are kept.
func ReadEmails(ctx context.Context, path string, opts Options) ([]types.Email, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, goerr.Wrap(model.ErrFileNotFound, "failed to open input file", goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to open input file", goerr.V("path", path))
	}
	defer f.Close()

	if opts.Delimiter == 0 {
		opts.Delimiter = DelimiterFor(path)
	}

	emails, err := Read(ctx, f, opts)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read emails", goerr.V("path", path))
	}
	return emails, nil
}

// Read is ReadEmails over an arbitrary reader
func Read(ctx context.Context, r io.Reader, opts Options) ([]types.Email, error) {
	logger := ctxlog.From(ctx)

	// Spreadsheet exports often start with a UTF-8 BOM which would otherwise
	// become part of the first header name.
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, goerr.Wrap(model.ErrMalformedInput, "input has no header row")
		}
		return nil, goerr.Wrap(model.ErrMalformedInput, "failed to parse header row", goerr.V("error", err.Error()))
	}
	if len(header) == 0 || (len(header) == 1 && strings.TrimSpace(header[0]) == "") {
		return nil, goerr.Wrap(model.ErrMalformedInput, "header row has no field names")
	}

	col, err := ResolveColumn(ctx, header, opts.Column)
	if err != nil {
		return nil, err
	}
	logger.Info("Reading emails from column", "column", header[col])

	var emails []types.Email
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(model.ErrMalformedInput, "failed to parse row", goerr.V("error", err.Error()))
		}
		if col >= len(record) {
			continue
		}
		if email, ok := types.ParseEmail(record[col]); ok {
			emails = append(emails, email)
		}
	}

	return emails, nil
}

// ResolveColumn picks the index of the email column in header.
// The explicit column wins when present; then the first common spelling;
// then the first column, with a warning.
func ResolveColumn(ctx context.Context, header []string, explicit string) (int, error) {
	logger := ctxlog.From(ctx)

	if len(header) == 0 {
		return 0, goerr.Wrap(model.ErrMalformedInput, "header row has no field names")
	}

	if explicit != "" {
		if idx := slices.Index(header, explicit); idx >= 0 {
			return idx, nil
		}
		logger.Warn("Email column not found in header, detecting automatically",
			"column", explicit,
			"header", header,
		)
	}

	for _, name := range CommonEmailColumns {
		if idx := slices.Index(header, name); idx >= 0 {
			return idx, nil
		}
	}

	logger.Warn("Using first column for emails", "column", header[0])
	return 0, nil
}

// DelimiterFor returns tab for .tsv files and comma otherwise
func DelimiterFor(path string) rune {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return '\t'
	default:
		return ','
	}
}

// ParseDelimiter converts a flag value into a delimiter rune.
// Empty means detect from the file extension.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case `\t`, "tab", "\t":
		return '\t', nil
	}
	runes := []rune(s)
	if len(runes) != 1 || runes[0] == '"' || runes[0] == '\r' || runes[0] == '\n' {
		return 0, goerr.Wrap(model.ErrInvalidConfig, "delimiter must be a single character", goerr.V("delimiter", s))
	}
	return runes[0], nil
}
