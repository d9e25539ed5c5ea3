package postgres

import (
	"context"
	"testing"

	"github.com/abijith/user-directory/internal/directory"
	"github.com/stretchr/testify/assert"
)

// Malformed ids are rejected before reaching the pool, so a nil pool is safe
// here.
func TestGetByID_MalformedID(t *testing.T) {
	repo := NewRepository(nil)

	_, err := repo.GetByID(context.Background(), "not-a-uuid")

	assert.ErrorIs(t, err, directory.ErrUserNotFound)
}

func TestGetByIDAny_MalformedID(t *testing.T) {
	repo := NewRepository(nil)

	_, err := repo.GetByIDAny(context.Background(), "00000000-zzzz")

	assert.ErrorIs(t, err, directory.ErrUserNotFound)
}

func TestIsUUID(t *testing.T) {
	assert.True(t, isUUID("3f2b8c1e-9d4a-4f6b-8a2c-1d5e7f9a0b3c"))
	assert.False(t, isUUID("not-a-uuid"))
	assert.False(t, isUUID(""))
}
