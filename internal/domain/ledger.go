package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Direction carries the sign of a ledger entry
type Direction string

const (
	DirectionInflow  Direction = "inflow"
	DirectionOutflow Direction = "outflow"
)

// Category classifies a ledger entry for KPI purposes
type Category string

const (
	CategoryNetNewMoney      Category = "net-new-money"
	CategoryInternalTransfer Category = "internal-transfer"
	CategoryOfficeSwitch     Category = "office-switch"
	CategoryRedemption       Category = "redemption"
	CategoryRevenue          Category = "revenue"
	CategoryOther            Category = "other"
)

// SourceKind identifies which business record originated a ledger entry
type SourceKind string

const (
	SourceKindClient   SourceKind = "client"
	SourceKindProspect SourceKind = "prospect"
	SourceKindManual   SourceKind = "manual"
)

// CustodyBucket splits a client's custody into onshore and offshore balances
type CustodyBucket string

const (
	CustodyOnShore  CustodyBucket = "onshore"
	CustodyOffShore CustodyBucket = "offshore"
)

// LedgerEntry is a cash-flow event recorded for a period.
// Amount is always the absolute magnitude; Direction carries the sign.
type LedgerEntry struct {
	ID                  string          `json:"id"`
	OwnerID             string          `json:"ownerId"`
	Date                string          `json:"date"` // YYYY-MM-DD
	Month               int             `json:"month"`
	Year                int             `json:"year"`
	Direction           Direction       `json:"direction"`
	Category            Category        `json:"category"`
	SourceKind          SourceKind      `json:"sourceKind"`
	SourceRecordID      string          `json:"sourceRecordId,omitempty"`
	SourceRef           string          `json:"sourceRef,omitempty"`
	Amount              decimal.Decimal `json:"amount"`
	ClientCustodyBucket CustodyBucket   `json:"clientCustodyBucket,omitempty"`
	Notes               string          `json:"notes,omitempty"`
}

// BuildSourceRef returns the stable dedup key "<kind>:<recordID>".
// An empty record ID yields an empty key.
func BuildSourceRef(kind SourceKind, recordID string) string {
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return ""
	}
	return string(kind) + ":" + recordID
}

// SignedAmount returns Amount for inflows and -Amount for outflows
func (e *LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Direction == DirectionOutflow {
		return e.Amount.Neg()
	}
	return e.Amount
}

// IsClientLinked reports whether the entry moves a client's custody balances
func (e *LedgerEntry) IsClientLinked() bool {
	return e.SourceKind == SourceKindClient && e.SourceRecordID != ""
}

// Normalize fills the derived fields: SourceRef from the source record, and
// Month/Year from Date when they are unset. Entries without a source record keep
// whatever SourceRef they carry.
func (e *LedgerEntry) Normalize() {
	if ref := BuildSourceRef(e.SourceKind, e.SourceRecordID); ref != "" {
		e.SourceRef = ref
	}
	if e.Month == 0 || e.Year == 0 {
		if d, ok := ParseDate(e.Date); ok {
			e.Month = int(d.Month())
			e.Year = d.Year()
		}
	}
}

// InPeriod reports whether the entry belongs to the period. Month/Year win over Date.
func (e *LedgerEntry) InPeriod(p Period) bool {
	if e.Month != 0 && e.Year != 0 {
		return e.Month == p.Month && e.Year == p.Year
	}
	return p.Contains(e.Date)
}

// Validate ensures the entry adheres to domain rules
func (e *LedgerEntry) Validate() error {
	if e.Amount.IsNegative() {
		return invalid("amount", "must be the absolute magnitude (>= 0)")
	}

	switch e.Direction {
	case DirectionInflow, DirectionOutflow:
	default:
		return invalid("direction", "must be inflow or outflow")
	}

	switch e.Category {
	case CategoryNetNewMoney, CategoryInternalTransfer, CategoryOfficeSwitch,
		CategoryRedemption, CategoryRevenue, CategoryOther:
	default:
		return invalid("category", "unknown category "+string(e.Category))
	}

	switch e.SourceKind {
	case SourceKindClient:
		// Client-linked entries move custody, so the bucket is mandatory
		if e.SourceRecordID == "" {
			return invalid("sourceRecordId", "client entries must reference a client")
		}
		if e.ClientCustodyBucket != CustodyOnShore && e.ClientCustodyBucket != CustodyOffShore {
			return invalid("clientCustodyBucket", "client entries must have an onshore or offshore bucket")
		}
	case SourceKindProspect, SourceKindManual:
	default:
		return invalid("sourceKind", "must be client, prospect or manual")
	}

	if e.Month != 0 && (e.Month < 1 || e.Month > 12) {
		return invalid("month", "must be between 1 and 12")
	}

	if e.Month != 0 && e.Year != 0 {
		if d, ok := ParseDate(e.Date); ok && (int(d.Month()) != e.Month || d.Year() != e.Year) {
			return invalid("date", "falls outside the entry's month/year")
		}
	}

	return nil
}
