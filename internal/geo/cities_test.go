package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNearest - точка рядом с Самаркандом резолвится в Самарканд.
func TestNearest(t *testing.T) {
	t.Parallel()

	city, distance, err := Nearest(39.70, 66.90)
	require.NoError(t, err)
	assert.Equal(t, "samarkand", city.ID)
	assert.Less(t, distance, 15.0)

	// Точка в центре Ташкента
	city, distance, err = Nearest(41.2995, 69.2401)
	require.NoError(t, err)
	assert.Equal(t, "tashkent", city.ID)
	assert.InDelta(t, 0, distance, 0.01)
}

// TestNearest_FarAway - даже далекая точка получает ближайший город.
func TestNearest_FarAway(t *testing.T) {
	t.Parallel()

	// Москва: ближайший из справочника все равно находится
	city, distance, err := Nearest(55.7558, 37.6173)
	require.NoError(t, err)
	assert.NotEmpty(t, city.ID)
	assert.Greater(t, distance, 1000.0)
}

// TestAll_ReturnsCopy - мутация выдачи не портит справочник.
func TestAll_ReturnsCopy(t *testing.T) {
	t.Parallel()

	list := All()
	require.NotEmpty(t, list)
	original := list[0].ID
	list[0].ID = "mutated"

	assert.Equal(t, original, All()[0].ID)
}
