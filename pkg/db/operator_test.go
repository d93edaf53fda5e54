package db_test

import (
	"testing"

	"github.com/gnames/tapadyen/internal/iodb"
	"github.com/gnames/tapadyen/pkg/db"
	"github.com/stretchr/testify/assert"
)

// TestPgxOperatorImplementsInterface verifies that NewPgxOperator
// returns a db.Operator that is not connected yet.
func TestPgxOperatorImplementsInterface(t *testing.T) {
	var op db.Operator = iodb.NewPgxOperator()
	assert.Nil(t, op.Pool())
	assert.NoError(t, op.Close())
}
