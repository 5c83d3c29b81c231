package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Collector is a field agent issuing receipts and handing cash over to a fund.
// OpeningBalance is the manually configured starting balance; everything after
// that is derived from receipt/deposit history.
type Collector struct {
	ID             int32           `json:"id"`
	CollectorCode  string          `json:"collector_code"`
	Name           string          `json:"name"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	FundID         *int32          `json:"fund_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Fund is a cash box collectors report into.
type Fund struct {
	ID          int32     `json:"id"`
	Name        string    `json:"name"`
	FundCode    string    `json:"fund_code"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
