package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSpacRepository(t *testing.T) {
	t.Parallel()

	repo := NewSpacRepository(nil, nil)
	assert.NotNil(t, repo)
	assert.NotNil(t, repo.logger)
}
