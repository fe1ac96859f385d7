package reconciliation

import (
	"github.com/shopspring/decimal"

	"github.com/simaogato/advisordesk-backend/internal/domain"
	"github.com/simaogato/advisordesk-backend/internal/usecase/commission"
	"github.com/simaogato/advisordesk-backend/internal/usecase/dedup"
)

// Report is the outcome of one reconciliation pass
type Report struct {
	Period   domain.Period
	Realized domain.MonthlyRealized
	Events   []*domain.LedgerEntry // consolidated ledger of the period
}

// DeriveProspectEvents turns prospects converted in the period into transient
// net-new-money inflows keyed "prospect:<id>"
func DeriveProspectEvents(prospects []*domain.Prospect, month, year int) []*domain.LedgerEntry {
	period := domain.Period{Month: month, Year: year}
	events := make([]*domain.LedgerEntry, 0)

	for _, p := range prospects {
		if p == nil || !p.IsConverted() || !period.Contains(p.ConversionDate) {
			continue
		}
		events = append(events, &domain.LedgerEntry{
			ID:             domain.BuildSourceRef(domain.SourceKindProspect, p.ID),
			OwnerID:        p.OwnerID,
			Date:           p.ConversionDate,
			Month:          month,
			Year:           year,
			Direction:      domain.DirectionInflow,
			Category:       domain.CategoryNetNewMoney,
			SourceKind:     domain.SourceKindProspect,
			SourceRecordID: p.ID,
			SourceRef:      domain.BuildSourceRef(domain.SourceKindProspect, p.ID),
			Amount:         p.ConvertedAmount.Abs(),
			Notes:          p.Name,
		})
	}

	return events
}

// Consolidate merges the period's persisted ledger entries with the derived events
// that the advisor has not already recorded by hand
func Consolidate(ledgerEntries, derived []*domain.LedgerEntry, month, year int) []*domain.LedgerEntry {
	period := domain.Period{Month: month, Year: year}

	// Dedup runs against every persisted entry, not only this period's: a manual
	// record filed under another month still represents the same conversion
	idx := dedup.NewIndex(ledgerEntries)

	consolidated := make([]*domain.LedgerEntry, 0, len(ledgerEntries)+len(derived))
	for _, entry := range ledgerEntries {
		if entry != nil && entry.InPeriod(period) {
			consolidated = append(consolidated, entry)
		}
	}
	for _, event := range derived {
		if event == nil || idx.Contains(event.SourceRef) || !event.InPeriod(period) {
			continue
		}
		consolidated = append(consolidated, event)
	}

	return consolidated
}

// ComputeMonthlyRealized calculates the three KPIs of (month, year)
// Logic:
//   - RealizedRevenue: advisor net of offers settled in the period, plus commission of
//     cross deals sold in the period, plus signed revenue-category ledger entries
//   - NetNewMoney: signed sum of net-new-money entries
//   - InternalTransferVolume: signed sum of internal-transfer entries
//
// Records with missing or malformed dates are excluded. It never fails.
func ComputeMonthlyRealized(
	ledgerEntries []*domain.LedgerEntry,
	settledOffers []*domain.Offer,
	closedCrossDeals []*domain.CrossDeal,
	derivedProspectEvents []*domain.LedgerEntry,
	month, year int,
) domain.MonthlyRealized {
	return Reconcile(ledgerEntries, settledOffers, closedCrossDeals, derivedProspectEvents, month, year).Realized
}

// Reconcile runs ComputeMonthlyRealized and also returns the consolidated ledger
func Reconcile(
	ledgerEntries []*domain.LedgerEntry,
	settledOffers []*domain.Offer,
	closedCrossDeals []*domain.CrossDeal,
	derivedProspectEvents []*domain.LedgerEntry,
	month, year int,
) Report {
	period := domain.Period{Month: month, Year: year}
	events := Consolidate(ledgerEntries, derivedProspectEvents, month, year)

	realized := domain.MonthlyRealized{
		RealizedRevenue:        decimal.Zero,
		NetNewMoney:            decimal.Zero,
		InternalTransferVolume: decimal.Zero,
	}

	for _, offer := range settledOffers {
		if offer == nil || !period.Contains(offer.SettlementDate) {
			continue
		}
		realized.RealizedRevenue = realized.RealizedRevenue.Add(commission.ComputeOffer(*offer).AdvisorNet)
	}

	for _, deal := range closedCrossDeals {
		if deal == nil || !period.Contains(deal.SaleDate) {
			continue
		}
		realized.RealizedRevenue = realized.RealizedRevenue.Add(deal.Commission)
	}

	for _, event := range events {
		switch event.Category {
		case domain.CategoryRevenue:
			realized.RealizedRevenue = realized.RealizedRevenue.Add(event.SignedAmount())
		case domain.CategoryNetNewMoney:
			realized.NetNewMoney = realized.NetNewMoney.Add(event.SignedAmount())
		case domain.CategoryInternalTransfer:
			realized.InternalTransferVolume = realized.InternalTransferVolume.Add(event.SignedAmount())
		default:
			// office-switch, redemption and other only feed general reporting
		}
	}

	return Report{
		Period:   period,
		Realized: realized,
		Events:   events,
	}
}
