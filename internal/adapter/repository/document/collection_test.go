package document

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/advisordesk-backend/internal/adapter/repository/memory"
	"github.com/simaogato/advisordesk-backend/internal/domain"
)

// ownerQueryFailingStore rejects owner-scoped lists, like a store missing its owner index
type ownerQueryFailingStore struct {
	*memory.Store
	ownerCalls int
}

func (s *ownerQueryFailingStore) List(ctx context.Context, kind domain.Kind, ownerID string) ([]domain.Document, error) {
	if ownerID != "" {
		s.ownerCalls++
		return nil, errors.New("index not ready")
	}
	return s.Store.List(ctx, kind, ownerID)
}

func TestLedgerEntryRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerEntryRepository(memory.NewStore(), zerolog.Nop())

	entry := &domain.LedgerEntry{
		ID:                  "e1",
		OwnerID:             "adv-1",
		Date:                "2026-02-10",
		Month:               2,
		Year:                2026,
		Direction:           domain.DirectionInflow,
		Category:            domain.CategoryNetNewMoney,
		SourceKind:          domain.SourceKindClient,
		SourceRecordID:      "c1",
		SourceRef:           "client:c1",
		Amount:              decimal.RequireFromString("1000.50"),
		ClientCustodyBucket: domain.CustodyOnShore,
	}
	require.NoError(t, repo.Save(ctx, entry))

	got, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "client:c1", got.SourceRef)
	assert.True(t, got.Amount.Equal(entry.Amount))
	assert.Equal(t, domain.CustodyOnShore, got.ClientCustodyBucket)

	require.NoError(t, repo.Delete(ctx, "e1"))

	_, err = repo.GetByID(ctx, "e1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.Delete(ctx, "e1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCollection_ListScopesByOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewProspectRepository(memory.NewStore(), zerolog.Nop())

	require.NoError(t, repo.Save(ctx, &domain.Prospect{ID: "p1", OwnerID: "adv-1"}))
	require.NoError(t, repo.Save(ctx, &domain.Prospect{ID: "p2", OwnerID: "adv-2"}))
	require.NoError(t, repo.Save(ctx, &domain.Prospect{ID: "p3", OwnerID: "adv-1"}))

	got, err := repo.List(ctx, "adv-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p3", got[1].ID)
}

func TestCollection_ListFallsBackWhenOwnerQueryFails(t *testing.T) {
	ctx := context.Background()
	store := &ownerQueryFailingStore{Store: memory.NewStore()}
	repo := NewOfferRepository(store, zerolog.Nop())

	require.NoError(t, repo.Save(ctx, &domain.Offer{ID: "o1", OwnerID: "adv-1"}))
	require.NoError(t, repo.Save(ctx, &domain.Offer{ID: "o2", OwnerID: "adv-2"}))

	got, err := repo.List(ctx, "adv-1")
	require.NoError(t, err)
	assert.Equal(t, 1, store.ownerCalls)
	require.Len(t, got, 1)
	assert.Equal(t, "o1", got[0].ID)
}

func TestCollection_ListSkipsUndecodableDocuments(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := NewCrossDealRepository(store, zerolog.Nop())

	require.NoError(t, repo.Save(ctx, &domain.CrossDeal{ID: "d1", OwnerID: "adv-1"}))
	_, err := store.Put(ctx, domain.KindCrossDeal, domain.Document{
		ID:      "d2",
		OwnerID: "adv-1",
		Body:    json.RawMessage(`{"commission": "not-a-number"`),
	})
	require.NoError(t, err)

	got, err := repo.List(ctx, "adv-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "d1", got[0].ID)
}

func TestAssetClassRepository_KeyedByCode(t *testing.T) {
	ctx := context.Background()
	repo := NewAssetClassRepository(memory.NewStore(), zerolog.Nop())

	require.NoError(t, repo.Create(ctx, &domain.AssetClass{
		Code:                      "RF",
		Name:                      "Renda Fixa",
		DefaultPassThroughPercent: decimal.NewFromInt(25),
	}))

	got, err := repo.GetByCode(ctx, "RF")
	require.NoError(t, err)
	assert.Equal(t, "Renda Fixa", got.Name)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = repo.GetByCode(ctx, "XX")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
