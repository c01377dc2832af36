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

func TestGenerateTimeSeriesPointCount(t *testing.T) {
	builder := NewSnapshotBuilder(catalog.Default(), rand.New(rand.NewSource(1)))

	points, err := builder.GenerateTimeSeries("shelf_1", 24)
	require.NoError(t, err)
	assert.Len(t, points, 48) // one point per 30 minutes

	for i := 1; i < len(points); i++ {
		assert.True(t, points[i-1].Timestamp.Before(points[i].Timestamp))
	}
}

func TestGenerateTimeSeriesPointRanges(t *testing.T) {
	builder := NewSnapshotBuilder(catalog.Default(), rand.New(rand.NewSource(2)))

	points, err := builder.GenerateTimeSeries("shelf_1", 12)
	require.NoError(t, err)

	for _, p := range points {
		assert.GreaterOrEqual(t, p.ProductCount, 5)
		assert.LessOrEqual(t, p.ProductCount, 20)
		assert.GreaterOrEqual(t, p.ConditionScore, 0.0)
		assert.LessOrEqual(t, p.ConditionScore, 100.0)
		assert.GreaterOrEqual(t, p.AvgConfidence, 0.85)
		assert.LessOrEqual(t, p.AvgConfidence, 0.99)
	}
}

func TestGenerateTimeSeriesInvalidArguments(t *testing.T) {
	builder := NewSnapshotBuilder(catalog.Default(), rand.New(rand.NewSource(3)))

	_, err := builder.GenerateTimeSeries("", 24)
	require.Error(t, err)

	_, err = builder.GenerateTimeSeries("shelf_1", 0)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeInvalidArgument, appErr.Code)
}
