package document

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/simaogato/advisordesk-backend/internal/domain"
)

// LedgerEntryRepository implements domain.LedgerEntryRepository
type LedgerEntryRepository struct {
	c *Collection[domain.LedgerEntry]
}

// NewLedgerEntryRepository creates a new ledger entry repository
func NewLedgerEntryRepository(store domain.DocumentStore, log zerolog.Logger) *LedgerEntryRepository {
	return &LedgerEntryRepository{c: NewCollection(store, domain.KindLedgerEntry,
		func(e *domain.LedgerEntry) string { return e.ID },
		func(e *domain.LedgerEntry) string { return e.OwnerID },
		log,
	)}
}

func (r *LedgerEntryRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	return r.c.Get(ctx, id)
}

func (r *LedgerEntryRepository) List(ctx context.Context, ownerID string) ([]*domain.LedgerEntry, error) {
	return r.c.List(ctx, ownerID)
}

func (r *LedgerEntryRepository) Save(ctx context.Context, entry *domain.LedgerEntry) error {
	return r.c.Put(ctx, entry)
}

func (r *LedgerEntryRepository) Delete(ctx context.Context, id string) error {
	return r.c.Delete(ctx, id)
}

// ProspectRepository implements domain.ProspectRepository
type ProspectRepository struct {
	c *Collection[domain.Prospect]
}

// NewProspectRepository creates a new prospect repository
func NewProspectRepository(store domain.DocumentStore, log zerolog.Logger) *ProspectRepository {
	return &ProspectRepository{c: NewCollection(store, domain.KindProspect,
		func(p *domain.Prospect) string { return p.ID },
		func(p *domain.Prospect) string { return p.OwnerID },
		log,
	)}
}

func (r *ProspectRepository) List(ctx context.Context, ownerID string) ([]*domain.Prospect, error) {
	return r.c.List(ctx, ownerID)
}

// Save is used by imports and fixtures; the engine itself only reads prospects
func (r *ProspectRepository) Save(ctx context.Context, p *domain.Prospect) error {
	return r.c.Put(ctx, p)
}

// OfferRepository implements domain.OfferRepository
type OfferRepository struct {
	c *Collection[domain.Offer]
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(store domain.DocumentStore, log zerolog.Logger) *OfferRepository {
	return &OfferRepository{c: NewCollection(store, domain.KindOffer,
		func(o *domain.Offer) string { return o.ID },
		func(o *domain.Offer) string { return o.OwnerID },
		log,
	)}
}

func (r *OfferRepository) GetByID(ctx context.Context, id string) (*domain.Offer, error) {
	return r.c.Get(ctx, id)
}

func (r *OfferRepository) List(ctx context.Context, ownerID string) ([]*domain.Offer, error) {
	return r.c.List(ctx, ownerID)
}

func (r *OfferRepository) Save(ctx context.Context, o *domain.Offer) error {
	return r.c.Put(ctx, o)
}

// CrossDealRepository implements domain.CrossDealRepository
type CrossDealRepository struct {
	c *Collection[domain.CrossDeal]
}

// NewCrossDealRepository creates a new cross deal repository
func NewCrossDealRepository(store domain.DocumentStore, log zerolog.Logger) *CrossDealRepository {
	return &CrossDealRepository{c: NewCollection(store, domain.KindCrossDeal,
		func(d *domain.CrossDeal) string { return d.ID },
		func(d *domain.CrossDeal) string { return d.OwnerID },
		log,
	)}
}

func (r *CrossDealRepository) List(ctx context.Context, ownerID string) ([]*domain.CrossDeal, error) {
	return r.c.List(ctx, ownerID)
}

func (r *CrossDealRepository) Save(ctx context.Context, d *domain.CrossDeal) error {
	return r.c.Put(ctx, d)
}

// ClientRepository implements domain.ClientRepository
type ClientRepository struct {
	c *Collection[domain.Client]
}

// NewClientRepository creates a new client repository
func NewClientRepository(store domain.DocumentStore, log zerolog.Logger) *ClientRepository {
	return &ClientRepository{c: NewCollection(store, domain.KindClient,
		func(c *domain.Client) string { return c.ID },
		func(c *domain.Client) string { return c.OwnerID },
		log,
	)}
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	return r.c.Get(ctx, id)
}

func (r *ClientRepository) Save(ctx context.Context, client *domain.Client) error {
	return r.c.Put(ctx, client)
}

// CommissionMonthRepository implements domain.CommissionMonthRepository
type CommissionMonthRepository struct {
	c *Collection[domain.CommissionMonth]
}

// NewCommissionMonthRepository creates a new commission month repository
func NewCommissionMonthRepository(store domain.DocumentStore, log zerolog.Logger) *CommissionMonthRepository {
	return &CommissionMonthRepository{c: NewCollection(store, domain.KindCommissionMonth,
		func(m *domain.CommissionMonth) string { return m.ID },
		func(m *domain.CommissionMonth) string { return m.OwnerID },
		log,
	)}
}

func (r *CommissionMonthRepository) GetByID(ctx context.Context, id string) (*domain.CommissionMonth, error) {
	return r.c.Get(ctx, id)
}

func (r *CommissionMonthRepository) Save(ctx context.Context, month *domain.CommissionMonth) error {
	return r.c.Put(ctx, month)
}

// AssetClassRepository implements domain.AssetClassRepository.
// The catalog is global, so classes are stored without an owner.
type AssetClassRepository struct {
	c *Collection[domain.AssetClass]
}

// NewAssetClassRepository creates a new asset class repository
func NewAssetClassRepository(store domain.DocumentStore, log zerolog.Logger) *AssetClassRepository {
	return &AssetClassRepository{c: NewCollection(store, domain.KindAssetClass,
		func(a *domain.AssetClass) string { return a.Code },
		func(*domain.AssetClass) string { return "" },
		log,
	)}
}

func (r *AssetClassRepository) GetByCode(ctx context.Context, code string) (*domain.AssetClass, error) {
	return r.c.Get(ctx, code)
}

func (r *AssetClassRepository) List(ctx context.Context) ([]*domain.AssetClass, error) {
	return r.c.List(ctx, "")
}

func (r *AssetClassRepository) Create(ctx context.Context, class *domain.AssetClass) error {
	return r.c.Put(ctx, class)
}

var (
	_ domain.LedgerEntryRepository     = (*LedgerEntryRepository)(nil)
	_ domain.ProspectRepository        = (*ProspectRepository)(nil)
	_ domain.OfferRepository           = (*OfferRepository)(nil)
	_ domain.CrossDealRepository       = (*CrossDealRepository)(nil)
	_ domain.ClientRepository          = (*ClientRepository)(nil)
	_ domain.CommissionMonthRepository = (*CommissionMonthRepository)(nil)
	_ domain.AssetClassRepository      = (*AssetClassRepository)(nil)
)
