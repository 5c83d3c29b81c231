package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deposit is cash a collector hands over, reducing their running balance.
type Deposit struct {
	ID              int32           `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	DepositDate     time.Time       `json:"deposit_date"`
	ReferenceNumber string          `json:"reference_number"`
	CollectorID     int32           `json:"collector_id"`
	CollectorName   string          `json:"collector_name,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Subscriber is the paying customer a receipt is issued against.
type Subscriber struct {
	ID      int32  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
}
