package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	pg := &Store{dialect: Postgres}
	lite := &Store{dialect: SQLite}

	q := "SELECT 1 FROM documents WHERE kind = ? AND id = ?"
	assert.Equal(t, "SELECT 1 FROM documents WHERE kind = $1 AND id = $2", pg.rebind(q))
	assert.Equal(t, q, lite.rebind(q))
}
