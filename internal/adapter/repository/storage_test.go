package repository

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/advisordesk-backend/internal/domain"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		opts Options
	}{
		{name: "memory", opts: Options{Driver: DriverMemory}},
		{name: "sqlite", opts: Options{Driver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "data", "advisordesk.db")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, err := Open(ctx, tt.opts, zerolog.Nop())
			require.NoError(t, err)
			defer storage.Close()

			_, err = storage.Store.Put(ctx, domain.KindOffer, domain.Document{ID: "o1", Body: json.RawMessage(`{}`)})
			require.NoError(t, err)

			got, err := storage.Store.Get(ctx, domain.KindOffer, "o1")
			require.NoError(t, err)
			assert.NotNil(t, got)
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "mongo"}, zerolog.Nop())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
