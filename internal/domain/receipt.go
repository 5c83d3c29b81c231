package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReceiptStatus string

const (
	ReceiptStatusActive    ReceiptStatus = "active"
	ReceiptStatusCancelled ReceiptStatus = "cancelled"
	ReceiptStatusDamaged   ReceiptStatus = "damaged"
	ReceiptStatusError     ReceiptStatus = "error"
)

// Receipt is one slip torn out of a collector's 50-slip paper notebook.
// (receipt_number, collector_id) is unique; duplicate imports are skipped.
type Receipt struct {
	ID             int32           `json:"id"`
	ReceiptNumber  int32           `json:"receipt_number"`
	Amount         decimal.Decimal `json:"amount"`
	Date           time.Time       `json:"date"`
	Status         ReceiptStatus   `json:"status"`
	CollectorID    *int32          `json:"collector_id,omitempty"`
	CollectorName  string          `json:"collector_name,omitempty"`
	SubscriberID   int32           `json:"subscriber_id"`
	SubscriberName string          `json:"subscriber_name,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ReceiptImportRow is one already-parsed line of a collection sheet.
// Spreadsheet parsing happens upstream; this layer only links and de-dupes.
type ReceiptImportRow struct {
	ReceiptNumber  int32           `json:"receipt_number"`
	Amount         decimal.Decimal `json:"amount"`
	Date           time.Time       `json:"date"`
	CollectorCode  string          `json:"collector_code"`
	SubscriberName string          `json:"subscriber_name"`
}

type ImportSummary struct {
	Created        int      `json:"created"`
	Skipped        int      `json:"skipped"`
	NewSubscribers int      `json:"new_subscribers"`
	Errors         []string `json:"errors,omitempty"`
}
