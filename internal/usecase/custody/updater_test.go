package custody

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/advisordesk-backend/internal/domain"
)

// MockClientRepository is a mock implementation of ClientRepository for testing
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

// MockPublisher is a mock implementation of EventPublisher for testing
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	args := m.Called(ctx, topic, key, event)
	return args.Error(0)
}

// recordingTx runs fn directly and counts invocations
type recordingTx struct {
	calls int
}

func (r *recordingTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.calls++
	return fn(ctx)
}

func clientEntry(id string, dir domain.Direction, amt int64, bucket domain.CustodyBucket) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:                  id,
		Direction:           dir,
		Category:            domain.CategoryNetNewMoney,
		SourceKind:          domain.SourceKindClient,
		SourceRecordID:      "C1",
		ClientCustodyBucket: bucket,
		Amount:              decimal.NewFromInt(amt),
	}
}

func TestReverseAndApply_CreateThenEdit(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	publisher := new(MockPublisher)
	updater := NewUpdater(repo, nil, publisher, zerolog.Nop())

	client := &domain.Client{
		ID:             "C1",
		CustodyOnShore: decimal.NewFromInt(1000),
		CustodyAtual:   decimal.NewFromInt(1000),
	}
	repo.On("GetByID", ctx, "C1").Return(client, nil)
	repo.On("Save", ctx, client).Return(nil)
	publisher.On("Publish", ctx, domain.TopicCustodyAdjusted, "C1", mock.Anything).Return(nil)

	// Create(inflow 500 onshore)
	original := clientEntry("L1", domain.DirectionInflow, 500, domain.CustodyOnShore)
	require.NoError(t, updater.ReverseAndApply(ctx, nil, original))
	assert.True(t, client.CustodyOnShore.Equal(decimal.NewFromInt(1500)))

	// Edit to (inflow 300 onshore)
	edited := clientEntry("L1", domain.DirectionInflow, 300, domain.CustodyOnShore)
	require.NoError(t, updater.ReverseAndApply(ctx, original, edited))

	assert.True(t, client.CustodyOnShore.Equal(decimal.NewFromInt(1300)), "got %s", client.CustodyOnShore)
	assert.True(t, client.CustodyAtual.Equal(decimal.NewFromInt(1300)))
	repo.AssertNumberOfCalls(t, "Save", 3)
	publisher.AssertNumberOfCalls(t, "Publish", 3)
}

func TestReverseAndApply_EditMovesBetweenBuckets(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	updater := NewUpdater(repo, nil, nil, zerolog.Nop())

	client := &domain.Client{
		ID:              "C1",
		CustodyOnShore:  decimal.NewFromInt(1500),
		CustodyOffShore: decimal.NewFromInt(200),
		CustodyAtual:    decimal.NewFromInt(1700),
	}
	repo.On("GetByID", ctx, "C1").Return(client, nil)
	repo.On("Save", ctx, client).Return(nil)

	old := clientEntry("L1", domain.DirectionInflow, 500, domain.CustodyOnShore)
	moved := clientEntry("L1", domain.DirectionOutflow, 100, domain.CustodyOffShore)
	require.NoError(t, updater.ReverseAndApply(ctx, old, moved))

	assert.True(t, client.CustodyOnShore.Equal(decimal.NewFromInt(1000)))
	assert.True(t, client.CustodyOffShore.Equal(decimal.NewFromInt(100)))
	assert.True(t, client.CustodyAtual.Equal(decimal.NewFromInt(1100)))
}

func TestReverseAndApply_DeleteReversesOnly(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	updater := NewUpdater(repo, nil, nil, zerolog.Nop())

	client := &domain.Client{
		ID:              "C1",
		CustodyOffShore: decimal.NewFromInt(400),
		CustodyAtual:    decimal.NewFromInt(400),
	}
	repo.On("GetByID", ctx, "C1").Return(client, nil)
	repo.On("Save", ctx, client).Return(nil)

	withdrawal := clientEntry("L9", domain.DirectionOutflow, 150, domain.CustodyOffShore)
	require.NoError(t, updater.ReverseAndApply(ctx, withdrawal, nil))

	assert.True(t, client.CustodyOffShore.Equal(decimal.NewFromInt(550)))
	assert.True(t, client.CustodyAtual.Equal(decimal.NewFromInt(550)))
	repo.AssertNumberOfCalls(t, "Save", 1)
}

func TestReverseAndApply_NonClientEntriesAreIgnored(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	tx := &recordingTx{}
	updater := NewUpdater(repo, tx, nil, zerolog.Nop())

	manual := &domain.LedgerEntry{
		ID: "M1", Direction: domain.DirectionInflow, Category: domain.CategoryOther,
		SourceKind: domain.SourceKindManual, Amount: decimal.NewFromInt(10),
	}

	require.NoError(t, updater.ReverseAndApply(ctx, manual, manual))
	require.NoError(t, updater.ReverseAndApply(ctx, nil, nil))

	assert.Equal(t, 0, tx.calls)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestReverseAndApply_EditRunsInsideTransaction(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	tx := &recordingTx{}
	updater := NewUpdater(repo, tx, nil, zerolog.Nop())

	client := &domain.Client{ID: "C1", CustodyOnShore: decimal.NewFromInt(100), CustodyAtual: decimal.NewFromInt(100)}
	repo.On("GetByID", ctx, "C1").Return(client, nil)
	repo.On("Save", ctx, client).Return(nil)

	old := clientEntry("L1", domain.DirectionInflow, 50, domain.CustodyOnShore)
	require.NoError(t, updater.ReverseAndApply(ctx, nil, old))
	assert.Equal(t, 0, tx.calls, "single write needs no transaction")

	require.NoError(t, updater.ReverseAndApply(ctx, old, clientEntry("L1", domain.DirectionInflow, 70, domain.CustodyOnShore)))
	assert.Equal(t, 1, tx.calls)
	assert.True(t, client.CustodyOnShore.Equal(decimal.NewFromInt(170)))
}

func TestReverseAndApply_SecondWriteFailureIsPropagated(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	publisher := new(MockPublisher)
	updater := NewUpdater(repo, nil, publisher, zerolog.Nop())

	oldClient := &domain.Client{ID: "C1", CustodyOnShore: decimal.NewFromInt(1500), CustodyAtual: decimal.NewFromInt(1500)}
	repo.On("GetByID", ctx, "C1").Return(oldClient, nil)
	repo.On("Save", ctx, oldClient).Return(nil)
	repo.On("GetByID", ctx, "C2").Return(nil, errors.New("storage unavailable"))

	old := clientEntry("L1", domain.DirectionInflow, 500, domain.CustodyOnShore)
	moved := clientEntry("L1", domain.DirectionInflow, 500, domain.CustodyOnShore)
	moved.SourceRecordID = "C2"

	err := updater.ReverseAndApply(ctx, old, moved)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "storage unavailable")
	// No compensation: the reversal on C1 stays applied
	assert.True(t, oldClient.CustodyOnShore.Equal(decimal.NewFromInt(1000)))
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyDelta_ClientNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	updater := NewUpdater(repo, nil, nil, zerolog.Nop())

	repo.On("GetByID", ctx, "missing").Return(nil, domain.ErrNotFound)

	client, err := updater.ApplyDelta(ctx, "missing", decimal.NewFromInt(1), domain.CustodyOnShore)

	assert.Nil(t, client)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestApplyDelta_PublishFailureDoesNotFailTheWrite(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	publisher := new(MockPublisher)
	updater := NewUpdater(repo, nil, publisher, zerolog.Nop())

	client := &domain.Client{ID: "C1"}
	repo.On("GetByID", ctx, "C1").Return(client, nil)
	repo.On("Save", ctx, client).Return(nil)
	publisher.On("Publish", ctx, domain.TopicCustodyAdjusted, "C1", mock.Anything).Return(errors.New("broker down"))

	updated, err := updater.ApplyDelta(ctx, "C1", decimal.NewFromInt(-20), domain.CustodyOffShore)

	require.NoError(t, err)
	assert.True(t, updated.CustodyOffShore.Equal(decimal.NewFromInt(-20)))
	assert.True(t, updated.CustodyAtual.Equal(decimal.NewFromInt(-20)))
}

func TestCheckEntry(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	updater := NewUpdater(repo, nil, nil, zerolog.Nop())

	known := clientEntry("L1", domain.DirectionInflow, 10, domain.CustodyOnShore)
	unknown := clientEntry("L2", domain.DirectionInflow, 10, domain.CustodyOnShore)
	unknown.SourceRecordID = "C-typo"
	broken := clientEntry("L3", domain.DirectionInflow, 10, domain.CustodyOnShore)
	broken.SourceRecordID = "C-down"
	manual := &domain.LedgerEntry{ID: "L4", SourceKind: domain.SourceKindManual}

	repo.On("GetByID", ctx, "C1").Return(&domain.Client{ID: "C1"}, nil)
	repo.On("GetByID", ctx, "C-typo").Return(nil, domain.ErrNotFound)
	repo.On("GetByID", ctx, "C-down").Return(nil, errors.New("connection reset"))

	assert.NoError(t, updater.CheckEntry(ctx, known))
	assert.NoError(t, updater.CheckEntry(ctx, manual))
	assert.NoError(t, updater.CheckEntry(ctx, nil))

	err := updater.CheckEntry(ctx, unknown)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "unknown client C-typo")

	err = updater.CheckEntry(ctx, broken)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)

	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
