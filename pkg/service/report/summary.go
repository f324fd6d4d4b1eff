package report

import (
	"fmt"

	"github.com/contextual-ai/tenantctl/pkg/domain/model"
)

// InviteSummary is a one-message digest of an invitation run for notifications
func InviteSummary(result *model.InviteResult) string {
	return fmt.Sprintf("tenantctl invite to `%s` finished in %d batch(es). %s",
		result.Tenant, result.Batches, InviteTotals(result))
}

// RemovalSummary is a one-message digest of a removal run for notifications
func RemovalSummary(result *model.RemovalResult) string {
	return fmt.Sprintf("tenantctl remove (%s) finished. %s", result.Mode, RemovalTotals(result))
}
