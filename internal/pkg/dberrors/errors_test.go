package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: StudentsPrimaryKey}

	assert.True(t, IsDuplicateConstraintError(dup, StudentsPrimaryKey))
	assert.True(t, IsDuplicateConstraintError(fmt.Errorf("exec: %w", dup), StudentsPrimaryKey))
	assert.False(t, IsDuplicateConstraintError(dup, "courses_pkey"))
	assert.False(t, IsDuplicateConstraintError(&pgconn.PgError{Code: "23503", ConstraintName: StudentsPrimaryKey}, StudentsPrimaryKey))
	assert.False(t, IsDuplicateConstraintError(errors.New("boom"), StudentsPrimaryKey))
	assert.False(t, IsDuplicateConstraintError(nil, StudentsPrimaryKey))
}
