package domain

import (
	"github.com/shopspring/decimal"
)

// Prospect is a sales-pipeline lead. Once converted it carries a conversion date
// and the amount the client brought in.
type Prospect struct {
	ID              string           `json:"id"`
	OwnerID         string           `json:"ownerId"`
	Name            string           `json:"name"`
	ConversionDate  string           `json:"conversionDate,omitempty"`
	ConvertedAmount *decimal.Decimal `json:"convertedAmount,omitempty"`
}

// IsConverted reports whether both the conversion date and amount were recorded
func (p *Prospect) IsConverted() bool {
	return p.ConversionDate != "" && p.ConvertedAmount != nil
}

// CommissionMode selects how an offer's house revenue is computed
type CommissionMode string

const (
	CommissionModeROA   CommissionMode = "roa"
	CommissionModeFixed CommissionMode = "fixed"
)

// Offer is a structured-product reservation. Percent fields may be stored as
// whole-number percent (25) or as a fraction (0.25).
type Offer struct {
	ID             string          `json:"id"`
	OwnerID        string          `json:"ownerId"`
	ClientID       string          `json:"clientId,omitempty"`
	AssetName      string          `json:"assetName"`
	CommissionMode CommissionMode  `json:"commissionMode"`
	TotalAllocated decimal.Decimal `json:"totalAllocated"`
	RoaPercent     decimal.Decimal `json:"roaPercent"`
	FixedRevenue   decimal.Decimal `json:"fixedRevenue"`
	RepassePercent decimal.Decimal `json:"repassePercent"`
	IRPercent      decimal.Decimal `json:"irPercent"`
	SettlementDate string          `json:"settlementDate,omitempty"` // empty while pending
}

// IsSettled reports whether a settlement date was recorded
func (o *Offer) IsSettled() bool {
	return o.SettlementDate != ""
}

// OfferCommission is the advisor's share of one offer
type OfferCommission struct {
	RevenueHouse decimal.Decimal
	AdvisorGross decimal.Decimal
	AdvisorTax   decimal.Decimal
	AdvisorNet   decimal.Decimal
}

// CrossDealStatus tracks a cross-sell deal through the pipeline
type CrossDealStatus string

const (
	CrossDealOpen   CrossDealStatus = "open"
	CrossDealClosed CrossDealStatus = "closed"
	CrossDealLost   CrossDealStatus = "lost"
)

// CrossDeal is a cross-sell opportunity (insurance, consortium, FX...)
type CrossDeal struct {
	ID         string          `json:"id"`
	OwnerID    string          `json:"ownerId"`
	ClientID   string          `json:"clientId,omitempty"`
	Product    string          `json:"product"`
	Status     CrossDealStatus `json:"status"`
	SaleDate   string          `json:"saleDate,omitempty"`
	Commission decimal.Decimal `json:"commission"`
}

// IsClosed reports whether the deal was won
func (d *CrossDeal) IsClosed() bool {
	return d.Status == CrossDealClosed
}
