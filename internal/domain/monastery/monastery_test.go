package monastery_test

import (
	"testing"

	"github.com/monastery360/service-travel/internal/domain/monastery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	all := monastery.All()
	require.Len(t, all, 6)
	assert.Equal(t, "Rumtek Monastery", all[0].Name)

	all[0].Name = "changed"
	assert.Equal(t, "Rumtek Monastery", monastery.All()[0].Name)
}

func TestFindByID(t *testing.T) {
	m, ok := monastery.FindByID(4)
	require.True(t, ok)
	assert.Equal(t, "Enchey Monastery", m.Name)
	assert.InDelta(t, 27.3381, m.Lat, 1e-9)

	_, ok = monastery.FindByID(99)
	assert.False(t, ok)
}
