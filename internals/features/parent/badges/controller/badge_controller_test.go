// file: internals/features/parent/badges/controller/badge_controller_test.go
package controller

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "idx_collected_badge_user_slug"}
	assert.True(t, isUniqueViolation(dup))

	// wrapped errors still match
	assert.True(t, isUniqueViolation(fmt.Errorf("insert failed: %w", dup)))

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(fmt.Errorf("plain error")))
	assert.False(t, isUniqueViolation(nil))
}
