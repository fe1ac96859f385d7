package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simaogato/advisordesk-backend/internal/domain"
	"github.com/simaogato/advisordesk-backend/internal/usecase/commission"
)

// MonthStatement is a computed commission month
type MonthStatement struct {
	Month           domain.CommissionMonth
	CrossCommission decimal.Decimal // the figure actually used
	Result          domain.CommissionResult
}

// PayrollService computes the advisor's monthly commission from stored inputs
type PayrollService struct {
	MonthRepo      domain.CommissionMonthRepository
	AssetClassRepo domain.AssetClassRepository
	CrossDealRepo  domain.CrossDealRepository
	OfferRepo      domain.OfferRepository
}

// NewPayrollService creates a new PayrollService instance
func NewPayrollService(
	monthRepo domain.CommissionMonthRepository,
	assetClassRepo domain.AssetClassRepository,
	crossDealRepo domain.CrossDealRepository,
	offerRepo domain.OfferRepository,
) *PayrollService {
	return &PayrollService{
		MonthRepo:      monthRepo,
		AssetClassRepo: assetClassRepo,
		CrossDealRepo:  crossDealRepo,
		OfferRepo:      offerRepo,
	}
}

// SaveMonth validates and stores the inputs of an owner's month
func (s *PayrollService) SaveMonth(ctx context.Context, month *domain.CommissionMonth) (*domain.CommissionMonth, error) {
	if err := month.Validate(); err != nil {
		return nil, err
	}
	month.ID = domain.CommissionMonthID(month.OwnerID, domain.Period{Month: month.Month, Year: month.Year})

	if err := s.MonthRepo.Save(ctx, month); err != nil {
		return nil, err
	}
	return month, nil
}

// ComputeMonth calculates gross, tax and net salary for (month, year)
// Logic:
//  1. Load the stored month (an absent month computes as empty)
//  2. Rows without percentages take the asset class catalog defaults
//  3. A nil cross commission is the sum of closed cross deals sold in the period
//  4. Run the commission engine
func (s *PayrollService) ComputeMonth(ctx context.Context, ownerID string, month, year int) (*MonthStatement, error) {
	period, err := domain.NewPeriod(month, year)
	if err != nil {
		return nil, err
	}

	stored, err := s.MonthRepo.GetByID(ctx, domain.CommissionMonthID(ownerID, period))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("failed to load commission month: %w", err)
		}
		stored = &domain.CommissionMonth{
			ID:      domain.CommissionMonthID(ownerID, period),
			OwnerID: ownerID,
			Month:   period.Month,
			Year:    period.Year,
		}
	}

	rows, err := s.withDefaults(ctx, stored.Rows)
	if err != nil {
		return nil, err
	}

	cross, err := s.crossCommission(ctx, stored, period)
	if err != nil {
		return nil, err
	}

	result := commission.Compute(rows, cross, stored.BonusFixed, stored.Adjustment, stored.IncomeTaxPercent)

	resolved := *stored
	resolved.Rows = rows
	return &MonthStatement{
		Month:           resolved,
		CrossCommission: cross,
		Result:          result,
	}, nil
}

// ComputeOffer calculates the advisor's commission on a stored offer
func (s *PayrollService) ComputeOffer(ctx context.Context, offerID string) (*domain.Offer, domain.OfferCommission, error) {
	offer, err := s.OfferRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, domain.OfferCommission{}, err
	}
	return offer, commission.ComputeOffer(*offer), nil
}

func (s *PayrollService) withDefaults(ctx context.Context, rows []domain.RevenueByClass) ([]domain.RevenueByClass, error) {
	resolved := make([]domain.RevenueByClass, len(rows))
	copy(resolved, rows)

	for i := range resolved {
		row := &resolved[i]
		if row.PassThroughPercent != nil && row.MarkupPercent != nil {
			continue
		}

		class, err := s.AssetClassRepo.GetByCode(ctx, row.AssetClass)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Unknown classes keep their missing rates, which count as zero
				continue
			}
			return nil, fmt.Errorf("failed to load asset class %s: %w", row.AssetClass, err)
		}

		if row.PassThroughPercent == nil {
			v := class.DefaultPassThroughPercent
			row.PassThroughPercent = &v
		}
		if row.MarkupPercent == nil {
			v := class.DefaultMarkupPercent
			row.MarkupPercent = &v
		}
	}

	return resolved, nil
}

func (s *PayrollService) crossCommission(ctx context.Context, month *domain.CommissionMonth, period domain.Period) (decimal.Decimal, error) {
	if month.CrossCommission != nil {
		return *month.CrossCommission, nil
	}

	deals, err := s.CrossDealRepo.List(ctx, month.OwnerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list cross deals: %w", err)
	}

	total := decimal.Zero
	for _, deal := range deals {
		if deal.IsClosed() && period.Contains(deal.SaleDate) {
			total = total.Add(deal.Commission)
		}
	}
	return total, nil
}
