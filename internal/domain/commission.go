package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RevenueByClass is one asset class row of a month's commission statement.
// Percent fields accept both 25 and 0.25 for 25%.
type RevenueByClass struct {
	AssetClass         string           `json:"assetClass"`
	RevenueAmount      decimal.Decimal  `json:"revenueAmount"`
	PassThroughPercent *decimal.Decimal `json:"passThroughPercent,omitempty"` // nil = catalog default
	MarkupPercent      *decimal.Decimal `json:"markupPercent,omitempty"`      // nil = catalog default
}

// CommissionMonth is the stored input of one month's commission calculation
type CommissionMonth struct {
	ID               string           `json:"id"`
	OwnerID          string           `json:"ownerId"`
	Month            int              `json:"month"`
	Year             int              `json:"year"`
	Rows             []RevenueByClass `json:"rows"`
	CrossCommission  *decimal.Decimal `json:"crossCommission,omitempty"` // nil = sum of closed cross deals
	BonusFixed       decimal.Decimal  `json:"bonusFixed"`
	Adjustment       decimal.Decimal  `json:"adjustment"` // may be negative
	IncomeTaxPercent decimal.Decimal  `json:"incomeTaxPercent"`
}

// CommissionMonthID is the deterministic record ID for an owner's month
func CommissionMonthID(ownerID string, p Period) string {
	return fmt.Sprintf("%s:%04d-%02d", ownerID, p.Year, p.Month)
}

// Validate ensures the month adheres to domain rules
func (m *CommissionMonth) Validate() error {
	if _, err := NewPeriod(m.Month, m.Year); err != nil {
		return err
	}
	for _, row := range m.Rows {
		if row.AssetClass == "" {
			return invalid("rows.assetClass", "cannot be empty")
		}
		if row.RevenueAmount.IsNegative() {
			return invalid("rows.revenueAmount", "cannot be negative")
		}
	}
	if m.BonusFixed.IsNegative() {
		return invalid("bonusFixed", "cannot be negative")
	}
	if m.CrossCommission != nil && m.CrossCommission.IsNegative() {
		return invalid("crossCommission", "cannot be negative")
	}
	return nil
}

// ClassCommission is the per-class breakdown of a commission calculation
type ClassCommission struct {
	AssetClass          string
	RevenueAmount       decimal.Decimal
	PassThroughFraction decimal.Decimal
	MarkupFraction      decimal.Decimal
	PassThrough         decimal.Decimal
	Markup              decimal.Decimal
	Gross               decimal.Decimal
}

// CommissionResult is the advisor's salary for a month
type CommissionResult struct {
	GrossSalary decimal.Decimal
	TaxWithheld decimal.Decimal
	NetSalary   decimal.Decimal
	PerClass    []ClassCommission
}

// AssetClass is a catalog entry with the default rates applied to revenue rows
type AssetClass struct {
	Code                      string          `json:"code"`
	Name                      string          `json:"name"`
	DefaultPassThroughPercent decimal.Decimal `json:"defaultPassThroughPercent"`
	DefaultMarkupPercent      decimal.Decimal `json:"defaultMarkupPercent"`
}

// Validate ensures the asset class adheres to domain rules
func (a *AssetClass) Validate() error {
	if a.Code == "" {
		return invalid("code", "asset class code cannot be empty")
	}
	if a.DefaultPassThroughPercent.IsNegative() || a.DefaultMarkupPercent.IsNegative() {
		return invalid("percent", "default percentages cannot be negative")
	}
	return nil
}
