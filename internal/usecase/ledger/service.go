package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/simaogato/advisordesk-backend/internal/domain"
)

// CustodyUpdater moves client custody for ledger entry transitions
type CustodyUpdater interface {
	CheckEntry(ctx context.Context, entry *domain.LedgerEntry) error
	ReverseAndApply(ctx context.Context, oldEntry, newEntry *domain.LedgerEntry) error
}

// LedgerService handles the ledger entry lifecycle
type LedgerService struct {
	EntryRepo domain.LedgerEntryRepository
	Custody   CustodyUpdater
	Publisher domain.EventPublisher
	log       zerolog.Logger
}

// NewLedgerService creates a new LedgerService instance
func NewLedgerService(
	entryRepo domain.LedgerEntryRepository,
	custody CustodyUpdater,
	publisher domain.EventPublisher,
	log zerolog.Logger,
) *LedgerService {
	return &LedgerService{
		EntryRepo: entryRepo,
		Custody:   custody,
		Publisher: publisher,
		log:       log.With().Str("component", "ledger").Logger(),
	}
}

// Create records a new entry
// Logic:
//  1. Reject a caller-supplied ID that is already stored
//  2. Fill SourceRef and Month/Year, validate, check the referenced client exists
//  3. Persist the entry
//  4. Apply its custody delta when it is client-linked
//
// Steps 3 and 4 are independent writes: if custody fails the entry stays stored
// and the error is returned.
func (s *LedgerService) Create(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if entry == nil {
		return nil, errors.New("invalid ledger entry: nil")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	} else {
		_, err := s.EntryRepo.GetByID(ctx, entry.ID)
		if err == nil {
			return nil, &domain.ValidationError{Field: "id", Message: "entry " + entry.ID + " already exists"}
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("failed to check entry %s: %w", entry.ID, err)
		}
	}

	if err := s.prepare(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.EntryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.Custody.ReverseAndApply(ctx, nil, entry); err != nil {
		return nil, fmt.Errorf("entry %s saved but custody update failed: %w", entry.ID, err)
	}

	s.publish(ctx, "create", nil, entry)
	return entry, nil
}

// Update replaces an entry, reversing the previous custody delta before applying the new one.
// The owner of an entry cannot change.
func (s *LedgerService) Update(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if entry == nil || entry.ID == "" {
		return nil, errors.New("invalid ledger entry: id is required")
	}

	previous, err := s.EntryRepo.GetByID(ctx, entry.ID)
	if err != nil {
		return nil, err
	}

	switch entry.OwnerID {
	case "":
		entry.OwnerID = previous.OwnerID
	case previous.OwnerID:
	default:
		return nil, &domain.ValidationError{Field: "ownerId", Message: "cannot move an entry to another owner"}
	}

	if err := s.prepare(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.EntryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.Custody.ReverseAndApply(ctx, previous, entry); err != nil {
		return nil, fmt.Errorf("entry %s saved but custody update failed: %w", entry.ID, err)
	}

	s.publish(ctx, "update", previous, entry)
	return entry, nil
}

// Delete reverses an entry's custody delta and removes it. A failed reversal leaves
// the entry stored so the delete can be retried; a failed removal re-applies the delta.
func (s *LedgerService) Delete(ctx context.Context, id string) error {
	previous, err := s.EntryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Custody.ReverseAndApply(ctx, previous, nil); err != nil {
		return fmt.Errorf("failed to reverse custody of entry %s: %w", id, err)
	}

	if err := s.EntryRepo.Delete(ctx, id); err != nil {
		if rerr := s.Custody.ReverseAndApply(ctx, nil, previous); rerr != nil {
			s.log.Error().Err(rerr).Str("entry_id", id).Msg("failed to restore custody after delete failure")
		}
		return err
	}

	s.publish(ctx, "delete", previous, nil)
	return nil
}

// Get retrieves a single entry
func (s *LedgerService) Get(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	return s.EntryRepo.GetByID(ctx, id)
}

// List retrieves an owner's entries
func (s *LedgerService) List(ctx context.Context, ownerID string) ([]*domain.LedgerEntry, error) {
	return s.EntryRepo.List(ctx, ownerID)
}

func (s *LedgerService) prepare(ctx context.Context, entry *domain.LedgerEntry) error {
	entry.Normalize()
	if err := entry.Validate(); err != nil {
		return err
	}
	return s.Custody.CheckEntry(ctx, entry)
}

func (s *LedgerService) publish(ctx context.Context, action string, previous, current *domain.LedgerEntry) {
	evt := domain.LedgerEntryChanged{
		Action:     action,
		Previous:   previous,
		Current:    current,
		OccurredAt: time.Now().UTC(),
	}
	if current != nil {
		evt.EntryID, evt.OwnerID = current.ID, current.OwnerID
	} else if previous != nil {
		evt.EntryID, evt.OwnerID = previous.ID, previous.OwnerID
	}

	s.log.Info().
		Str("action", action).
		Str("entry_id", evt.EntryID).
		Str("owner_id", evt.OwnerID).
		Msg("ledger entry changed")

	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.Publish(ctx, domain.TopicLedgerEntryChanged, evt.EntryID, evt); err != nil {
		s.log.Warn().Err(err).Str("entry_id", evt.EntryID).Msg("failed to publish ledger event")
	}
}
