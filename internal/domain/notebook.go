package domain

import "time"

type NotebookStatus string

const (
	NotebookStatusInUse    NotebookStatus = "in-use"
	NotebookStatusComplete NotebookStatus = "complete"
)

type MissingReceiptStatus string

const (
	MissingStatusMissing    MissingReceiptStatus = "missing"
	MissingStatusCancelled  MissingReceiptStatus = "cancelled"
	MissingStatusDamaged    MissingReceiptStatus = "damaged"
	MissingStatusEntryError MissingReceiptStatus = "entry-error"
)

// MissingReceipt is a slip number inside a notebook's used range with no
// recorded receipt. Status and notes are the only fields a human may edit;
// everything else is recomputed wholesale on the next sync.
type MissingReceipt struct {
	ReceiptNumber int32                `json:"receipt_number"`
	EstimatedDate *time.Time           `json:"estimated_date,omitempty"`
	Status        MissingReceiptStatus `json:"status"`
	Notes         string               `json:"notes"`
}

// Notebook is the reconstructed state of one physical 50-slip block for one
// collector. Keyed by (StartNumber, CollectorID); a nil CollectorID is the
// unassigned pseudo-collector.
type Notebook struct {
	ID              int32            `json:"id"`
	CollectorID     *int32           `json:"collector_id,omitempty"`
	CollectorName   string           `json:"collector_name"`
	StartNumber     int32            `json:"start_number"`
	EndNumber       int32            `json:"end_number"`
	Status          NotebookStatus   `json:"status"`
	MinUsed         int32            `json:"min_used_in_notebook"`
	MaxUsed         int32            `json:"max_used_in_notebook"`
	MissingReceipts []MissingReceipt `json:"missing_receipts"`
	PendingReceipts []int32          `json:"pending_receipts"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// NotebookFilter narrows notebook listings.
type NotebookFilter struct {
	CollectorID *int32
}

// NotebookOverviewRow is the derived per-notebook usage summary report row.
type NotebookOverviewRow struct {
	NotebookID           int32     `json:"notebook_id"`
	NotebookRange        string    `json:"notebook_range"`
	CollectorName        string    `json:"collector_name"`
	TotalReceipts        int32     `json:"total_receipts"`
	UsedReceiptsCount    int32     `json:"used_receipts_count"`
	MissingReceiptsCount int32     `json:"missing_receipts_count"`
	PendingReceiptsCount int32     `json:"pending_receipts_count"`
	CompletionPercentage float64   `json:"completion_percentage"`
	Status               string    `json:"status"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// MissingReceiptDetail flattens one missing entry with its notebook context.
type MissingReceiptDetail struct {
	NotebookRange string               `json:"notebook_range"`
	CollectorName string               `json:"collector_name"`
	ReceiptNumber int32                `json:"receipt_number"`
	Status        MissingReceiptStatus `json:"status"`
	Notes         string               `json:"notes"`
	EstimatedDate *time.Time           `json:"estimated_date,omitempty"`
}

// ReceiptLookupStatus classifies a raw receipt number against notebook state.
type ReceiptLookupStatus string

const (
	LookupStatusUsed    ReceiptLookupStatus = "used"
	LookupStatusMissing ReceiptLookupStatus = "missing"
	LookupStatusPending ReceiptLookupStatus = "pending"
	LookupStatusUnknown ReceiptLookupStatus = "unknown"
)

// ReceiptLookup answers "where does slip N live and what happened to it".
type ReceiptLookup struct {
	Status   ReceiptLookupStatus `json:"status"`
	Receipt  *Receipt            `json:"receipt,omitempty"`
	Missing  *MissingReceipt     `json:"missing,omitempty"`
	Notebook *Notebook           `json:"notebook,omitempty"`
}
