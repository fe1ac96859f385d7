package commission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/simaogato/advisordesk-backend/internal/domain"
)

func TestComputeOffer(t *testing.T) {
	tests := []struct {
		name  string
		offer domain.Offer
		house string
		gross string
		tax   string
		net   string
	}{
		{
			name: "ROA mode with fractions",
			offer: domain.Offer{
				CommissionMode: domain.CommissionModeROA,
				TotalAllocated: decimal.NewFromInt(100000),
				RoaPercent:     decimal.RequireFromString("0.02"),
				RepassePercent: decimal.RequireFromString("0.25"),
				IRPercent:      decimal.RequireFromString("0.19"),
			},
			house: "2000", gross: "500", tax: "95", net: "405",
		},
		{
			name: "ROA mode with whole-number percents",
			offer: domain.Offer{
				CommissionMode: domain.CommissionModeROA,
				TotalAllocated: decimal.NewFromInt(100000),
				RoaPercent:     decimal.RequireFromString("0.02"),
				RepassePercent: decimal.NewFromInt(25),
				IRPercent:      decimal.NewFromInt(19),
			},
			house: "2000", gross: "500", tax: "95", net: "405",
		},
		{
			name: "Fixed mode ignores allocation and ROA",
			offer: domain.Offer{
				CommissionMode: domain.CommissionModeFixed,
				TotalAllocated: decimal.NewFromInt(100000),
				RoaPercent:     decimal.NewFromInt(3),
				FixedRevenue:   decimal.NewFromInt(1200),
				RepassePercent: decimal.NewFromInt(50),
				IRPercent:      decimal.NewFromInt(20),
			},
			house: "1200", gross: "600", tax: "120", net: "480",
		},
		{
			name: "Missing mode falls back to ROA",
			offer: domain.Offer{
				TotalAllocated: decimal.NewFromInt(50000),
				RoaPercent:     decimal.NewFromInt(2),
				RepassePercent: decimal.NewFromInt(40),
			},
			house: "1000", gross: "400", tax: "0", net: "400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeOffer(tt.offer)

			assert.True(t, got.RevenueHouse.Equal(decimal.RequireFromString(tt.house)), "house: %s", got.RevenueHouse)
			assert.True(t, got.AdvisorGross.Equal(decimal.RequireFromString(tt.gross)), "gross: %s", got.AdvisorGross)
			assert.True(t, got.AdvisorTax.Equal(decimal.RequireFromString(tt.tax)), "tax: %s", got.AdvisorTax)
			assert.True(t, got.AdvisorNet.Equal(decimal.RequireFromString(tt.net)), "net: %s", got.AdvisorNet)
		})
	}
}
