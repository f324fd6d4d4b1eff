package apperr

import (
	"context"
	"errors"

	"github.com/contextual-ai/tenantctl/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
)

// Handle logs an error that ends the run. A user abort is an expected
// outcome and is logged at info level.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	logger := ctxlog.From(ctx)
	switch {
	case errors.Is(err, model.ErrAborted):
		logger.Info("Aborted", "reason", err.Error())
	case errors.Is(err, context.Canceled):
		logger.Warn("Interrupted", "error", err)
	default:
		logger.Error("application error", "error", err)
	}
}
