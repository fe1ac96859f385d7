package document

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/simaogato/advisordesk-backend/internal/domain"
)

// Collection stores one entity type as JSON documents of a single kind
type Collection[T any] struct {
	store   domain.DocumentStore
	kind    domain.Kind
	idOf    func(*T) string
	ownerOf func(*T) string
	log     zerolog.Logger
}

// NewCollection creates a collection over store. idOf and ownerOf extract the
// document key and owner from an entity.
func NewCollection[T any](
	store domain.DocumentStore,
	kind domain.Kind,
	idOf func(*T) string,
	ownerOf func(*T) string,
	log zerolog.Logger,
) *Collection[T] {
	return &Collection[T]{
		store:   store,
		kind:    kind,
		idOf:    idOf,
		ownerOf: ownerOf,
		log:     log.With().Str("kind", string(kind)).Logger(),
	}
}

// Get decodes the document with id, or returns domain.ErrNotFound
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	doc, err := c.store.Get(ctx, c.kind, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", c.kind, id, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%s %s: %w", c.kind, id, domain.ErrNotFound)
	}
	return c.decode(*doc)
}

// List returns the owner's entities.
// When the owner-scoped query fails it falls back to listing the whole kind and
// filtering here, so a missing owner index degrades to a slower read instead of an outage.
func (c *Collection[T]) List(ctx context.Context, ownerID string) ([]*T, error) {
	docs, err := c.store.List(ctx, c.kind, ownerID)
	if err != nil && ownerID != "" {
		c.log.Warn().Err(err).Str("owner_id", ownerID).Msg("owner-scoped list failed, filtering client-side")
		docs, err = c.listFiltered(ctx, ownerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.kind, err)
	}

	out := make([]*T, 0, len(docs))
	for _, doc := range docs {
		entity, err := c.decode(doc)
		if err != nil {
			c.log.Error().Err(err).Str("id", doc.ID).Msg("skipping undecodable document")
			continue
		}
		out = append(out, entity)
	}
	return out, nil
}

func (c *Collection[T]) listFiltered(ctx context.Context, ownerID string) ([]domain.Document, error) {
	all, err := c.store.List(ctx, c.kind, "")
	if err != nil {
		return nil, err
	}

	var owned []domain.Document
	for _, doc := range all {
		if doc.OwnerID == ownerID {
			owned = append(owned, doc)
		}
	}
	return owned, nil
}

// Put encodes and stores entity
func (c *Collection[T]) Put(ctx context.Context, entity *T) error {
	body, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.kind, err)
	}

	id := c.idOf(entity)
	_, err = c.store.Put(ctx, c.kind, domain.Document{
		ID:      id,
		OwnerID: c.ownerOf(entity),
		Body:    body,
	})
	if err != nil {
		return fmt.Errorf("failed to put %s %s: %w", c.kind, id, err)
	}
	return nil
}

// Delete removes the document with id, or returns domain.ErrNotFound
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	existed, err := c.store.Delete(ctx, c.kind, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", c.kind, id, err)
	}
	if !existed {
		return fmt.Errorf("%s %s: %w", c.kind, id, domain.ErrNotFound)
	}
	return nil
}

func (c *Collection[T]) decode(doc domain.Document) (*T, error) {
	var entity T
	if err := json.Unmarshal(doc.Body, &entity); err != nil {
		return nil, fmt.Errorf("failed to decode %s %s: %w", c.kind, doc.ID, err)
	}
	return &entity, nil
}
