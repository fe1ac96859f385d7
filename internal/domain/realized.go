package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyRealized holds the three canonical KPIs of one period.
// It is recomputed from source records on every request and never persisted.
type MonthlyRealized struct {
	RealizedRevenue        decimal.Decimal
	NetNewMoney            decimal.Decimal
	InternalTransferVolume decimal.Decimal
}

const (
	TopicLedgerEntryChanged = "ledger.entry.changed"
	TopicCustodyAdjusted    = "custody.adjusted"
)

// LedgerEntryChanged is published after a ledger entry is created, edited or deleted
type LedgerEntryChanged struct {
	Action     string       `json:"action"` // create, update, delete
	EntryID    string       `json:"entryId"`
	OwnerID    string       `json:"ownerId"`
	Previous   *LedgerEntry `json:"previous,omitempty"`
	Current    *LedgerEntry `json:"current,omitempty"`
	OccurredAt time.Time    `json:"occurredAt"`
}

// CustodyAdjusted is published after a delta is applied to a client's custody
type CustodyAdjusted struct {
	ClientID        string          `json:"clientId"`
	Bucket          CustodyBucket   `json:"bucket"`
	Delta           decimal.Decimal `json:"delta"`
	CustodyOnShore  decimal.Decimal `json:"custodyOnShore"`
	CustodyOffShore decimal.Decimal `json:"custodyOffShore"`
	CustodyAtual    decimal.Decimal `json:"custodyAtual"`
	OccurredAt      time.Time       `json:"occurredAt"`
}
