package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation(t *testing.T) {
	cases := map[string]string{
		"SELECT id FROM bookings":              "select",
		"  insert INTO payments (x) VALUES":    "insert",
		"UPDATE parking_spots SET status=$1":   "update",
		"DELETE FROM parking_spots":            "delete",
		"WITH t AS (SELECT 1) SELECT * FROM t": "with",
		"VACUUM":                               "other",
		"":                                     "other",
	}

	for query, want := range cases {
		assert.Equal(t, want, Operation(query), query)
	}
}

type fakeTx struct{ TxExecutor }

func TestGetExecutor_PrefersContextTx(t *testing.T) {
	db := &DB{}
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	tx := &fakeTx{}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}
