package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodicFilter selects the cycle range for a periodic summary. Cycles are
// fixed: 1 = days 1-10, 2 = days 11-20, 3 = day 21 through month end.
type PeriodicFilter struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	FromCycle   int    `json:"from_cycle"`
	ToCycle     int    `json:"to_cycle"`
	CollectorID *int32 `json:"collector_id,omitempty"`
	FundID      *int32 `json:"fund_id,omitempty"`
}

// CycleRow is one collector's (or fund's) line inside a cycle table.
type CycleRow struct {
	Name            string          `json:"name"`
	OpeningBalance  decimal.Decimal `json:"opening_balance"`
	AssignmentCount int32           `json:"assignment_count"`
	TotalCollection decimal.Decimal `json:"total_collection"`
	TotalDeposit    decimal.Decimal `json:"total_deposit"`
	NetAmount       decimal.Decimal `json:"net_amount"`
	Notes           string          `json:"notes"`
}

// CycleReport is one cycle's table: per-entity rows plus a subtotal.
type CycleReport struct {
	Cycle    int       `json:"cycle"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Rows     []CycleRow `json:"rows"`
	SubTotal CycleRow   `json:"sub_total"`
}

// DetailedFilter selects a raw date range for the detailed periodic report.
type DetailedFilter struct {
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CollectorID *int32    `json:"collector_id,omitempty"`
}

// DetailedRow groups one collector's receipts for one day and one notebook
// block, with that day's deposits netted in. Deposit-only days appear as rows
// with zero collection.
type DetailedRow struct {
	CollectorName  string          `json:"collector_name"`
	Date           string          `json:"date"`
	FromReceipt    int32           `json:"from_receipt"`
	ToReceipt      int32           `json:"to_receipt"`
	ReceiptCount   int32           `json:"receipt_count"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DepositAmount  decimal.Decimal `json:"deposit_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	DepositReceipt string          `json:"deposit_receipt"`
	Notes          string          `json:"notes"`
}

// AnnualFilter selects the year and optional fund/collector scope.
type AnnualFilter struct {
	Year        int    `json:"year"`
	CollectorID *int32 `json:"collector_id,omitempty"`
	FundID      *int32 `json:"fund_id,omitempty"`
}

// MonthlyRow is one month's rollup in the annual report. MissingCount buckets
// missing slips by their estimated date, not by discovery time.
type MonthlyRow struct {
	Month           time.Month      `json:"month"`
	TotalCollection decimal.Decimal `json:"total_collection"`
	TotalDeposit    decimal.Decimal `json:"total_deposit"`
	NetAmount       decimal.Decimal `json:"net_amount"`
	ReceiptCount    int32           `json:"receipt_count"`
	MissingCount    int32           `json:"missing_count"`
}

type AnnualReport struct {
	Year   int          `json:"year"`
	Months []MonthlyRow `json:"months"`
	Totals MonthlyRow   `json:"totals"`
}

// DashboardSummary is the landing-page KPI payload.
type DashboardSummary struct {
	TotalCollectedThisMonth decimal.Decimal   `json:"total_collected_this_month"`
	ActiveCollectorsCount   int32             `json:"active_collectors_count"`
	ReceiptsTodayCount      int32             `json:"receipts_today_count"`
	TotalMissingReceipts    int32             `json:"total_missing_receipts"`
	MonthlyCollection       []MonthTotal      `json:"monthly_collection"`
	CollectionByFund        []FundTotal       `json:"collection_by_fund"`
	LastReceipts            []Receipt         `json:"last_receipts"`
	LastDeposits            []Deposit         `json:"last_deposits"`
}

type MonthTotal struct {
	Year  int             `json:"year"`
	Month time.Month      `json:"month"`
	Total decimal.Decimal `json:"total"`
}

type FundTotal struct {
	FundName string          `json:"fund_name"`
	Total    decimal.Decimal `json:"total"`
}

// SubscriberPayment is one subscriber's most recent payment.
type SubscriberPayment struct {
	SubscriberID    int32           `json:"subscriber_id"`
	SubscriberName  string          `json:"subscriber_name"`
	SubscriberPhone string          `json:"subscriber_phone,omitempty"`
	LatestDate      time.Time       `json:"latest_date"`
	LatestAmount    decimal.Decimal `json:"latest_amount"`
}

// SubscriberStatement is a subscriber's receipts over a window plus the total.
type SubscriberStatement struct {
	SubscriberName  string          `json:"subscriber_name"`
	SubscriberPhone string          `json:"subscriber_phone,omitempty"`
	Receipts        []Receipt       `json:"receipts"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}
