package custody

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/simaogato/advisordesk-backend/internal/domain"
)

// Updater keeps client custody balances in step with client-linked ledger entries
type Updater struct {
	ClientRepo domain.ClientRepository
	Tx         domain.Transactor // optional; nil runs edits as two sequential writes
	Publisher  domain.EventPublisher
	log        zerolog.Logger
}

// NewUpdater creates a new Updater instance
func NewUpdater(
	clientRepo domain.ClientRepository,
	tx domain.Transactor,
	publisher domain.EventPublisher,
	log zerolog.Logger,
) *Updater {
	return &Updater{
		ClientRepo: clientRepo,
		Tx:         tx,
		Publisher:  publisher,
		log:        log.With().Str("component", "custody").Logger(),
	}
}

// Delta returns the custody movement of an entry: +amount for inflows, -amount for outflows
func Delta(entry *domain.LedgerEntry) decimal.Decimal {
	return entry.SignedAmount()
}

// ApplyDelta adds signedDelta to the client's bucket and to its total custody
func (u *Updater) ApplyDelta(ctx context.Context, clientID string, signedDelta decimal.Decimal, bucket domain.CustodyBucket) (*domain.Client, error) {
	client, evt, err := u.applyDelta(ctx, clientID, signedDelta, bucket)
	if err != nil {
		return nil, err
	}
	u.publish(ctx, []domain.CustodyAdjusted{evt})
	return client, nil
}

// GetCustody returns the client's current balances
func (u *Updater) GetCustody(ctx context.Context, clientID string) (*domain.Client, error) {
	return u.ClientRepo.GetByID(ctx, clientID)
}

// CheckEntry verifies that a client-linked entry references an existing client
func (u *Updater) CheckEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	if entry == nil || !entry.IsClientLinked() {
		return nil
	}
	if _, err := u.ClientRepo.GetByID(ctx, entry.SourceRecordID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ValidationError{Field: "sourceRecordId", Message: "unknown client " + entry.SourceRecordID}
		}
		return fmt.Errorf("failed to load client %s: %w", entry.SourceRecordID, err)
	}
	return nil
}

// ReverseAndApply moves custody for a ledger entry lifecycle transition
// Logic:
//   - Create (old nil): apply the new entry's delta
//   - Edit: apply the negation of the old delta, then the new delta
//   - Delete (new nil): apply the negation of the old delta only
//
// Only client-linked entries move custody. The reversal always runs first. When a
// Transactor is configured both writes share one transaction; otherwise a failure of
// the second write is returned and the reversal stays applied.
func (u *Updater) ReverseAndApply(ctx context.Context, oldEntry, newEntry *domain.LedgerEntry) error {
	reverse := oldEntry != nil && oldEntry.IsClientLinked()
	apply := newEntry != nil && newEntry.IsClientLinked()
	if !reverse && !apply {
		return nil
	}

	var events []domain.CustodyAdjusted
	run := func(ctx context.Context) error {
		events = events[:0]
		if reverse {
			_, evt, err := u.applyDelta(ctx, oldEntry.SourceRecordID, Delta(oldEntry).Neg(), oldEntry.ClientCustodyBucket)
			if err != nil {
				return fmt.Errorf("failed to reverse custody of entry %s: %w", oldEntry.ID, err)
			}
			events = append(events, evt)
		}
		if apply {
			_, evt, err := u.applyDelta(ctx, newEntry.SourceRecordID, Delta(newEntry), newEntry.ClientCustodyBucket)
			if err != nil {
				return fmt.Errorf("failed to apply custody of entry %s: %w", newEntry.ID, err)
			}
			events = append(events, evt)
		}
		return nil
	}

	var err error
	if u.Tx != nil && reverse && apply {
		err = u.Tx.WithinTx(ctx, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		return err
	}

	u.publish(ctx, events)
	return nil
}

func (u *Updater) applyDelta(ctx context.Context, clientID string, signedDelta decimal.Decimal, bucket domain.CustodyBucket) (*domain.Client, domain.CustodyAdjusted, error) {
	client, err := u.ClientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, domain.CustodyAdjusted{}, err
	}

	if err := client.Apply(signedDelta, bucket); err != nil {
		return nil, domain.CustodyAdjusted{}, err
	}

	if err := u.ClientRepo.Save(ctx, client); err != nil {
		return nil, domain.CustodyAdjusted{}, err
	}

	u.log.Debug().
		Str("client_id", client.ID).
		Str("bucket", string(bucket)).
		Str("delta", signedDelta.String()).
		Str("custody_atual", client.CustodyAtual.String()).
		Msg("custody adjusted")

	return client, domain.CustodyAdjusted{
		ClientID:        client.ID,
		Bucket:          bucket,
		Delta:           signedDelta,
		CustodyOnShore:  client.CustodyOnShore,
		CustodyOffShore: client.CustodyOffShore,
		CustodyAtual:    client.CustodyAtual,
		OccurredAt:      time.Now().UTC(),
	}, nil
}

// publish is best effort: custody figures are advisory and a lost event must not
// fail a write that already happened
func (u *Updater) publish(ctx context.Context, events []domain.CustodyAdjusted) {
	if u.Publisher == nil {
		return
	}
	for _, evt := range events {
		if err := u.Publisher.Publish(ctx, domain.TopicCustodyAdjusted, evt.ClientID, evt); err != nil {
			u.log.Warn().Err(err).Str("client_id", evt.ClientID).Msg("failed to publish custody event")
		}
	}
}
