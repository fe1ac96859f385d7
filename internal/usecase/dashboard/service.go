package dashboard

import (
	"context"
	"fmt"

	"github.com/simaogato/advisordesk-backend/internal/domain"
	"github.com/simaogato/advisordesk-backend/internal/usecase/reconciliation"
)

// MonthlyReport is the dashboard view of one period
type MonthlyReport struct {
	Period         domain.Period
	Realized       domain.MonthlyRealized
	Events         []*domain.LedgerEntry
	DerivedEvents  int      // derived events that made it into Events
	SuppressedRefs []string // derived events dropped because the ledger already records them
}

// DashboardService loads an advisor's source records and reconciles them
type DashboardService struct {
	EntryRepo     domain.LedgerEntryRepository
	ProspectRepo  domain.ProspectRepository
	OfferRepo     domain.OfferRepository
	CrossDealRepo domain.CrossDealRepository
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(
	entryRepo domain.LedgerEntryRepository,
	prospectRepo domain.ProspectRepository,
	offerRepo domain.OfferRepository,
	crossDealRepo domain.CrossDealRepository,
) *DashboardService {
	return &DashboardService{
		EntryRepo:     entryRepo,
		ProspectRepo:  prospectRepo,
		OfferRepo:     offerRepo,
		CrossDealRepo: crossDealRepo,
	}
}

// GetMonthlyRealized calculates the KPIs of (month, year) for an advisor
// Logic:
//   - Load ledger entries, prospects, offers and cross deals of the owner
//   - Keep settled offers and closed cross deals
//   - Derive prospect conversion events of the period
//   - Run the reconciliation aggregator
func (s *DashboardService) GetMonthlyRealized(ctx context.Context, ownerID string, month, year int) (*MonthlyReport, error) {
	period, err := domain.NewPeriod(month, year)
	if err != nil {
		return nil, err
	}

	entries, err := s.EntryRepo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	prospects, err := s.ProspectRepo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prospects: %w", err)
	}

	offers, err := s.OfferRepo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}

	deals, err := s.CrossDealRepo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cross deals: %w", err)
	}

	settled := make([]*domain.Offer, 0, len(offers))
	for _, offer := range offers {
		if offer.IsSettled() {
			settled = append(settled, offer)
		}
	}

	closed := make([]*domain.CrossDeal, 0, len(deals))
	for _, deal := range deals {
		if deal.IsClosed() {
			closed = append(closed, deal)
		}
	}

	derived := reconciliation.DeriveProspectEvents(prospects, period.Month, period.Year)
	report := reconciliation.Reconcile(entries, settled, closed, derived, period.Month, period.Year)

	kept := make(map[string]bool, len(report.Events))
	for _, event := range report.Events {
		kept[event.ID] = true
	}
	suppressed := make([]string, 0)
	for _, event := range derived {
		if !kept[event.ID] {
			suppressed = append(suppressed, event.SourceRef)
		}
	}

	return &MonthlyReport{
		Period:         period,
		Realized:       report.Realized,
		Events:         report.Events,
		DerivedEvents:  len(derived) - len(suppressed),
		SuppressedRefs: suppressed,
	}, nil
}
