package commission

import (
	"github.com/shopspring/decimal"

	"github.com/simaogato/advisordesk-backend/internal/domain"
	"github.com/simaogato/advisordesk-backend/internal/usecase/percent"
)

// Compute calculates the advisor's salary for a month
// Logic:
//  1. Normalize each row's pass-through and markup percent (25 and 0.25 both mean 25%)
//  2. classGross = revenue * passThrough + revenue * markup
//  3. GrossSalary = Sum(classGross) + crossCommission + bonusFixed + adjustment
//  4. TaxWithheld = GrossSalary * normalize(incomeTaxPercent)
//  5. NetSalary = GrossSalary - TaxWithheld
//
// Nothing is clamped: a negative adjustment may drive the salary negative and that
// value is returned as-is. Zero-revenue rows stay in PerClass for audit visibility.
func Compute(
	rows []domain.RevenueByClass,
	crossCommission decimal.Decimal,
	bonusFixed decimal.Decimal,
	adjustment decimal.Decimal,
	incomeTaxPercent decimal.Decimal,
) domain.CommissionResult {
	perClass := make([]domain.ClassCommission, 0, len(rows))
	classTotal := decimal.Zero

	for _, row := range rows {
		line := ComputeClass(row)
		perClass = append(perClass, line)
		classTotal = classTotal.Add(line.Gross)
	}

	gross := classTotal.Add(crossCommission).Add(bonusFixed).Add(adjustment)
	tax := gross.Mul(percent.Normalize(incomeTaxPercent))

	return domain.CommissionResult{
		GrossSalary: gross,
		TaxWithheld: tax,
		NetSalary:   gross.Sub(tax),
		PerClass:    perClass,
	}
}

// ComputeClass calculates one asset class line
func ComputeClass(row domain.RevenueByClass) domain.ClassCommission {
	passThroughFraction := percent.NormalizePtr(row.PassThroughPercent)
	markupFraction := percent.NormalizePtr(row.MarkupPercent)

	passThrough := row.RevenueAmount.Mul(passThroughFraction)
	markup := row.RevenueAmount.Mul(markupFraction)

	return domain.ClassCommission{
		AssetClass:          row.AssetClass,
		RevenueAmount:       row.RevenueAmount,
		PassThroughFraction: passThroughFraction,
		MarkupFraction:      markupFraction,
		PassThrough:         passThrough,
		Markup:              markup,
		Gross:               passThrough.Add(markup),
	}
}
