package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: "uq_bookings_active_spot"})

	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))
	assert.Equal(t, "uq_bookings_active_spot", Constraint(err))
}

func TestCode_NonDriverError(t *testing.T) {
	assert.Equal(t, "", Code(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))
}
