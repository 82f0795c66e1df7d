package domain

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestBeforeCreateAssignsID(t *testing.T) {
	todo := &Todo{Title: "Buy milk"}
	require.NoError(t, todo.BeforeCreate(nil))

	_, err := uuid.Parse(todo.ID)
	assert.NoError(t, err)
}

func TestBeforeCreateKeepsID(t *testing.T) {
	todo := &Todo{ID: "fixed", Title: "Buy milk"}
	require.NoError(t, todo.BeforeCreate(nil))
	assert.Equal(t, "fixed", todo.ID)
}

// Sequential creates must not tie on drivers whose default datetime
// precision is milliseconds.
func TestCreatedAtMicrosecondPrecision(t *testing.T) {
	s, err := schema.Parse(&Todo{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	field := s.LookUpField("CreatedAt")
	require.NotNil(t, field)
	assert.Equal(t, 6, field.Precision)
	assert.Equal(t, "created_at", field.DBName)
}
