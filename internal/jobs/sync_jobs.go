package jobs

import (
	"context"
	"errors"
	"time"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/logger"
)

// SyncNotebooks runs the nightly full reconciliation and mails the
// back-office a digest when the run found missing receipts.
func (jr *JobRunner) SyncNotebooks() {
	jr.runWithRecovery("SyncNotebooks", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		summary, err := jr.services.Notebook.Sync(ctx, domain.SyncOptions{})
		if err != nil {
			if errors.Is(err, domain.ErrSyncInProgress) {
				logger.Warn("Skipping nightly sync, another run is active")
				return
			}
			logger.Error("Nightly notebook sync failed", "error", err)
			return
		}

		logger.Info("Nightly notebook sync finished",
			"runID", summary.RunID,
			"collectors", summary.CollectorsAffected,
			"notebooks", summary.NotebooksUpserted,
			"missing", summary.MissingFound)

		if summary.MissingFound == 0 {
			return
		}
		to := jr.config.Email.AlertTo
		if err := jr.services.Email.SendMissingReceiptDigest(ctx, to, summary); err != nil {
			logger.Error("Failed to send missing receipt digest", "error", err)
		}
	})
}
