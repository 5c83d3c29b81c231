package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	client   *sendgrid.Client
	from     *mail.Email
	disabled bool
}

// NewEmailService builds the SendGrid-backed mailer. An empty API key
// disables sending, which keeps local development quiet.
func NewEmailService(apiKey, fromAddress, fromName string) EmailService {
	return &emailService{
		client:   sendgrid.NewSendClient(apiKey),
		from:     mail.NewEmail(fromName, fromAddress),
		disabled: apiKey == "",
	}
}

func (s *emailService) SendMissingReceiptDigest(ctx context.Context, to string, summary *domain.SyncSummary) error {
	if s.disabled || to == "" {
		logger.Debug("email disabled, skipping missing receipt digest")
		return nil
	}

	subject := fmt.Sprintf("Notebook sync: %d missing receipts", summary.MissingFound)

	var body strings.Builder
	fmt.Fprintf(&body, "Reconciliation run %s finished in %s.\n\n", summary.RunID, summary.Duration.Round(time.Millisecond))
	fmt.Fprintf(&body, "Collectors processed: %d\n", summary.CollectorsAffected)
	fmt.Fprintf(&body, "Notebooks rebuilt:    %d\n", summary.NotebooksUpserted)
	fmt.Fprintf(&body, "Missing receipts:     %d\n", summary.MissingFound)
	fmt.Fprintf(&body, "Pending receipts:     %d\n", summary.PendingCount)
	body.WriteString("\nReview the missing receipts report for details.\n")

	message := mail.NewSingleEmail(s.from, subject, mail.NewEmail("", to), body.String(), "")

	logger.ExternalServiceCall("sendgrid", "SendMissingReceiptDigest", "to", to)
	resp, err := s.client.SendWithContext(ctx, message)
	if err == nil && resp.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	logger.ExternalServiceResult("sendgrid", "SendMissingReceiptDigest", err)
	return err
}
