package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("bookings").
		Where(squirrel.Eq{"status": "active"}).
		Where(squirrel.Lt{"end_time": 10}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE status = $1 AND end_time < $2", query)
	assert.Equal(t, []interface{}{"active", 10}, args)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a123bc`, EscapeLike(`a123bc`))
	assert.Equal(t, `100\%`, EscapeLike(`100%`))
	assert.Equal(t, `user\_1@example.com`, EscapeLike(`user_1@example.com`))
	assert.Equal(t, `a\\b`, EscapeLike(`a\b`))
}

func TestContainsAny_EscapesWildcards(t *testing.T) {
	query, args, err := Select("id").
		From("bookings").
		Where(ContainsAny(`50%_a\b`, "email", "plate")).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, `SELECT id FROM bookings WHERE (email ILIKE $1 ESCAPE '\' OR plate ILIKE $2 ESCAPE '\')`, query)
	assert.Equal(t, []interface{}{`%50\%\_a\\b%`, `%50\%\_a\\b%`}, args)
}
