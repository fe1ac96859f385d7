package commission

import (
	"github.com/shopspring/decimal"

	"github.com/simaogato/advisordesk-backend/internal/domain"
	"github.com/simaogato/advisordesk-backend/internal/usecase/percent"
)

// ComputeOffer calculates the advisor's commission on a single offer
// Logic:
//   - RevenueHouse = TotalAllocated * roa (ROA mode) or FixedRevenue (fixed mode)
//   - AdvisorGross = RevenueHouse * repasse
//   - AdvisorTax   = AdvisorGross * ir
//   - AdvisorNet   = AdvisorGross - AdvisorTax
func ComputeOffer(offer domain.Offer) domain.OfferCommission {
	var revenueHouse decimal.Decimal
	if offer.CommissionMode == domain.CommissionModeFixed {
		revenueHouse = offer.FixedRevenue
	} else {
		// Records written before the mode flag existed are ROA offers
		revenueHouse = offer.TotalAllocated.Mul(percent.Normalize(offer.RoaPercent))
	}

	advisorGross := revenueHouse.Mul(percent.Normalize(offer.RepassePercent))
	advisorTax := advisorGross.Mul(percent.Normalize(offer.IRPercent))

	return domain.OfferCommission{
		RevenueHouse: revenueHouse,
		AdvisorGross: advisorGross,
		AdvisorTax:   advisorTax,
		AdvisorNet:   advisorGross.Sub(advisorTax),
	}
}
