package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simaogato/advisordesk-backend/internal/domain"
)

// DefaultAssetClasses is the catalog every installation starts with.
// Rates are whole-number percent, the form advisors type them in.
var DefaultAssetClasses = []domain.AssetClass{
	{Code: "RF", Name: "Renda Fixa", DefaultPassThroughPercent: decimal.NewFromInt(25), DefaultMarkupPercent: decimal.Zero},
	{Code: "RV", Name: "Renda Variavel", DefaultPassThroughPercent: decimal.NewFromInt(30), DefaultMarkupPercent: decimal.Zero},
	{Code: "FII", Name: "Fundos Imobiliarios", DefaultPassThroughPercent: decimal.NewFromInt(30), DefaultMarkupPercent: decimal.Zero},
	{Code: "FUNDOS", Name: "Fundos de Investimento", DefaultPassThroughPercent: decimal.NewFromInt(25), DefaultMarkupPercent: decimal.Zero},
	{Code: "PREV", Name: "Previdencia", DefaultPassThroughPercent: decimal.NewFromInt(25), DefaultMarkupPercent: decimal.Zero},
	{Code: "COE", Name: "COE", DefaultPassThroughPercent: decimal.NewFromInt(35), DefaultMarkupPercent: decimal.Zero},
	{Code: "CAMBIO", Name: "Cambio", DefaultPassThroughPercent: decimal.NewFromInt(20), DefaultMarkupPercent: decimal.Zero},
}

// CatalogSeeder handles seeding of the asset class catalog
type CatalogSeeder struct {
	repo domain.AssetClassRepository
}

// NewCatalogSeeder creates a new CatalogSeeder instance
func NewCatalogSeeder(repo domain.AssetClassRepository) *CatalogSeeder {
	return &CatalogSeeder{
		repo: repo,
	}
}

// Seed ensures every default asset class exists.
// Existing classes are left untouched so edited rates survive restarts.
// Returns the number of classes created.
func (s *CatalogSeeder) Seed(ctx context.Context) (int, error) {
	created := 0
	for _, class := range DefaultAssetClasses {
		_, err := s.repo.GetByCode(ctx, class.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return created, fmt.Errorf("failed to look up asset class %s: %w", class.Code, err)
		}

		class := class
		if err := class.Validate(); err != nil {
			return created, err
		}
		if err := s.repo.Create(ctx, &class); err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}
