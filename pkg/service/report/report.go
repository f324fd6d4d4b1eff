package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/contextual-ai/tenantctl/pkg/domain/model"
	"github.com/contextual-ai/tenantctl/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Format is the output format of a report
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", goerr.New("invalid output format", goerr.V("format", s))
	}
}

var banner = strings.Repeat("=", 50)

// Reporter renders run results to a writer
type Reporter struct {
	w      io.Writer
	format Format
}

// New creates a Reporter
func New(w io.Writer, format Format) *Reporter {
	if format == "" {
		format = FormatText
	}
	return &Reporter{w: w, format: format}
}

// DryRun describes what a run would do without doing it
type DryRun struct {
	Action   string                `json:"action" yaml:"action"`
	Tenant   types.TenantShortName `json:"tenant,omitempty" yaml:"tenant,omitempty"`
	Admin    bool                  `json:"admin,omitempty" yaml:"admin,omitempty"`
	AllUsers bool                  `json:"all_users,omitempty" yaml:"all_users,omitempty"`
	Emails   []types.Email         `json:"emails" yaml:"emails"`
}

// Invite renders the result of an invitation run
func (r *Reporter) Invite(result *model.InviteResult) error {
	if r.format != FormatText {
		return r.encode(result)
	}

	p := &printer{w: r.w}
	p.header()

	p.line("")
	p.line("Successfully invited: %d", result.Invited.Len())
	for _, email := range result.Invited.Items() {
		p.line("  + %s", email)
	}

	p.errors(result.Errors)
	p.footer(InviteTotals(result))
	return p.err
}

// Removal renders the result of a removal run
func (r *Reporter) Removal(result *model.RemovalResult) error {
	if r.format != FormatText {
		return r.encode(result)
	}

	p := &printer{w: r.w}
	p.header()

	p.line("")
	p.line("Successfully removed: %d", result.Removed.Len())
	for _, email := range result.Removed.Items() {
		p.line("  - %s", email)
	}

	if result.Skipped.Len() > 0 {
		p.line("")
		p.line("Skipped (admins): %d", result.Skipped.Len())
		for _, email := range result.Skipped.Items() {
			p.line("  ~ %s", email)
		}
	}

	if result.Mode == model.RemovalModeTargeted && result.NotFound.Len() > 0 {
		p.line("")
		p.line("Not found: %d", result.NotFound.Len())
		for _, email := range result.NotFound.Items() {
			p.line("  ? %s", email)
		}
	}

	p.errors(result.Errors)
	p.footer(RemovalTotals(result))
	return p.err
}

// DryRun renders the would-be targets of a run
func (r *Reporter) DryRun(dr *DryRun) error {
	if dr.Emails == nil {
		dr.Emails = []types.Email{}
	}
	if r.format != FormatText {
		return r.encode(dr)
	}

	p := &printer{w: r.w}
	if dr.AllUsers {
		p.line("[DRY RUN] Would %s all non-admin users from the tenant", dr.Action)
		return p.err
	}

	p.line("[DRY RUN] Would %s these users:", dr.Action)
	for _, email := range dr.Emails {
		p.line("  - %s", email)
	}
	if dr.Admin {
		p.line("Note: Users would be granted admin privileges")
	}
	return p.err
}

// InviteTotals returns the one-line totals of an invitation run
func InviteTotals(result *model.InviteResult) string {
	return fmt.Sprintf("Total: %d invited, %d errors", result.Invited.Len(), result.Errors.Len())
}

// RemovalTotals returns the one-line totals of a removal run
func RemovalTotals(result *model.RemovalResult) string {
	if result.Mode == model.RemovalModeAllUsers {
		return fmt.Sprintf("Total: %d removed, %d skipped, %d errors",
			result.Removed.Len(), result.Skipped.Len(), result.Errors.Len())
	}
	return fmt.Sprintf("Total: %d removed, %d skipped, %d not found, %d errors",
		result.Removed.Len(), result.Skipped.Len(), result.NotFound.Len(), result.Errors.Len())
}

func (r *Reporter) encode(v any) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return goerr.Wrap(err, "failed to encode JSON report")
		}
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return goerr.Wrap(err, "failed to encode YAML report")
		}
		if err := enc.Close(); err != nil {
			return goerr.Wrap(err, "failed to flush YAML report")
		}
	default:
		return goerr.New("unsupported report format", goerr.V("format", r.format))
	}
	return nil
}

// printer keeps the first write error so rendering code stays linear
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	if _, err := fmt.Fprintf(p.w, format+"\n", args...); err != nil {
		p.err = goerr.Wrap(err, "failed to write report")
	}
}

func (p *printer) header() {
	p.line("")
	p.line("%s", banner)
	p.line("RESULTS")
	p.line("%s", banner)
}

func (p *printer) errors(errs *model.ItemErrors) {
	if errs.Len() == 0 {
		return
	}
	p.line("")
	p.line("Errors: %d", errs.Len())
	for _, e := range errs.Items() {
		p.line("  x %s: %s", e.Email, e.Message)
	}
}

func (p *printer) footer(totals string) {
	p.line("")
	p.line("%s", banner)
	p.line("%s", totals)
}
