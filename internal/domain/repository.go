package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Kind names a document collection in the store
type Kind string

const (
	KindLedgerEntry     Kind = "ledger_entries"
	KindProspect        Kind = "prospects"
	KindOffer           Kind = "offers"
	KindCrossDeal       Kind = "cross_deals"
	KindClient          Kind = "clients"
	KindCommissionMonth Kind = "commission_months"
	KindAssetClass      Kind = "asset_classes"
)

// Document is a stored record. Body holds the JSON encoding of the typed entity.
type Document struct {
	ID        string
	OwnerID   string
	Body      json.RawMessage
	UpdatedAt time.Time
}

// DocumentStore is the persistence collaborator the engine's services run on
type DocumentStore interface {
	// List returns all documents of kind owned by ownerID.
	// An empty ownerID lists the whole kind.
	List(ctx context.Context, kind Kind, ownerID string) ([]Document, error)

	// Get returns the document or (nil, nil) when it does not exist
	Get(ctx context.Context, kind Kind, id string) (*Document, error)

	// Put inserts or replaces a document and returns the stored version
	Put(ctx context.Context, kind Kind, doc Document) (Document, error)

	// Delete removes a document and reports whether it existed
	Delete(ctx context.Context, kind Kind, id string) (bool, error)
}

// Transactor is implemented by stores that can run several writes atomically.
// Stores passed to fn's context participate in the transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// LedgerEntryRepository defines persistence for ledger entries
type LedgerEntryRepository interface {
	GetByID(ctx context.Context, id string) (*LedgerEntry, error)
	List(ctx context.Context, ownerID string) ([]*LedgerEntry, error)
	Save(ctx context.Context, entry *LedgerEntry) error
	Delete(ctx context.Context, id string) error
}

// ProspectRepository defines read access to the sales pipeline
type ProspectRepository interface {
	List(ctx context.Context, ownerID string) ([]*Prospect, error)
}

// OfferRepository defines read access to structured-product offers
type OfferRepository interface {
	GetByID(ctx context.Context, id string) (*Offer, error)
	List(ctx context.Context, ownerID string) ([]*Offer, error)
}

// CrossDealRepository defines read access to cross-sell deals
type CrossDealRepository interface {
	List(ctx context.Context, ownerID string) ([]*CrossDeal, error)
}

// ClientRepository defines persistence for client custody records
type ClientRepository interface {
	GetByID(ctx context.Context, id string) (*Client, error)
	Save(ctx context.Context, client *Client) error
}

// CommissionMonthRepository defines persistence for monthly commission inputs
type CommissionMonthRepository interface {
	GetByID(ctx context.Context, id string) (*CommissionMonth, error)
	Save(ctx context.Context, month *CommissionMonth) error
}

// AssetClassRepository defines persistence for the asset class catalog
type AssetClassRepository interface {
	GetByCode(ctx context.Context, code string) (*AssetClass, error)
	List(ctx context.Context) ([]*AssetClass, error)
	Create(ctx context.Context, class *AssetClass) error
}

// EventPublisher emits domain events to downstream consumers
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
