package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogAchievementKnownIDs(t *testing.T) {
	first, ok := CatalogAchievement(1)
	require.True(t, ok)
	assert.Equal(t, "First Win", first.Name)
	assert.Equal(t, "🏆", first.Emoji)

	pro, ok := CatalogAchievement(3)
	require.True(t, ok)
	assert.Equal(t, "Pro Player", pro.Name)
}

func TestCatalogAchievementUnknownID(t *testing.T) {
	_, ok := CatalogAchievement(99)
	assert.False(t, ok)
}

func TestCatalogIsStable(t *testing.T) {
	catalog := NewAchievementService(nil).Catalog()

	require.Len(t, catalog, 3)
	for i, a := range catalog {
		assert.Equal(t, i+1, a.ID)
		assert.NotEmpty(t, a.Name)
		assert.NotEmpty(t, a.Description)
	}
}
