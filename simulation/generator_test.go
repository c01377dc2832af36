package simulation

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfsense/catalog"
	"shelfsense/models"
)

func TestGenerateEmptyShelfID(t *testing.T) {
	gen := NewGenerator(catalog.Default(), rand.New(rand.NewSource(1)))

	_, err := gen.Generate("")
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeInvalidArgument, appErr.Code)

	_, err = gen.Generate("   ")
	assert.Error(t, err)
}

func TestGenerateConfidenceBounds(t *testing.T) {
	gen := NewGenerator(catalog.Default(), rand.New(rand.NewSource(2)))

	for i := 0; i < 1000; i++ {
		d, err := gen.Generate("shelf_1")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, d.Confidence, 0.85)
		assert.LessOrEqual(t, d.Confidence, 0.99)
	}
}

func TestGenerateBoxInsideCanvas(t *testing.T) {
	gen := NewGenerator(catalog.Default(), rand.New(rand.NewSource(3)))

	for i := 0; i < 500; i++ {
		d, err := gen.Generate("shelf_1")
		require.NoError(t, err)

		b := d.BBox
		assert.GreaterOrEqual(t, b.X, 50)
		assert.GreaterOrEqual(t, b.Y, 50)
		assert.LessOrEqual(t, b.X+b.Width, 1920)
		assert.LessOrEqual(t, b.Y+b.Height, 1080)
		assert.Equal(t, b.X+b.Width/2, b.XCenter)
		assert.Equal(t, b.Y+b.Height/2, b.YCenter)
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	a := NewGenerator(catalog.Default(), rand.New(rand.NewSource(42)))
	b := NewGenerator(catalog.Default(), rand.New(rand.NewSource(42)))

	for i := 0; i < 100; i++ {
		da, err := a.Generate("shelf_1")
		require.NoError(t, err)
		db, err := b.Generate("shelf_1")
		require.NoError(t, err)

		assert.Equal(t, da.ProductID, db.ProductID)
		assert.Equal(t, da.Confidence, db.Confidence)
		assert.Equal(t, da.BBox, db.BBox)
		assert.Equal(t, da.ShelfPosition, db.ShelfPosition)
		assert.Equal(t, da.IsMisplaced, db.IsMisplaced)
		assert.Equal(t, da.IsLowStock, db.IsLowStock)
	}
}

func TestGenerateFlagFrequencies(t *testing.T) {
	gen := NewGenerator(catalog.Default(), rand.New(rand.NewSource(4)))

	const n = 5000
	var misplaced, lowStock int
	for i := 0; i < n; i++ {
		d, err := gen.Generate("shelf_1")
		require.NoError(t, err)
		if d.IsMisplaced {
			misplaced++
		}
		if d.IsLowStock {
			lowStock++
		}
	}

	assert.InDelta(t, 0.05, float64(misplaced)/n, 0.02)
	assert.InDelta(t, 0.15, float64(lowStock)/n, 0.03)
}

func TestResetShelfForgetsBoxes(t *testing.T) {
	gen := NewGenerator(catalog.Default(), rand.New(rand.NewSource(5)))

	for i := 0; i < 10; i++ {
		_, err := gen.Generate("shelf_1")
		require.NoError(t, err)
	}
	assert.NotEmpty(t, gen.used["shelf_1"])

	gen.ResetShelf("shelf_1")
	assert.Empty(t, gen.used["shelf_1"])
}

func TestOverlapsAny(t *testing.T) {
	a := models.BoundingBox{X: 100, Y: 100, Width: 100, Height: 100}
	overlapping := models.BoundingBox{X: 150, Y: 150, Width: 100, Height: 100}
	disjoint := models.BoundingBox{X: 500, Y: 500, Width: 100, Height: 100}
	touching := models.BoundingBox{X: 200, Y: 100, Width: 100, Height: 100}

	assert.True(t, overlapsAny(overlapping, []models.BoundingBox{a}))
	assert.False(t, overlapsAny(disjoint, []models.BoundingBox{a}))
	// Shared edges do not count as overlap.
	assert.False(t, overlapsAny(touching, []models.BoundingBox{a}))
	assert.False(t, overlapsAny(a, nil))
}
