package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treeledger/treeledger/internal/core/domain"
)

func TestNewPeriod_RejectsInvertedRange(t *testing.T) {
	start := time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := domain.NewPeriod(start, end)
	assert.Error(t, err)
}

func TestPeriod_Contains_InclusiveBounds(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC)
	period, err := domain.NewPeriod(start, end)
	require.NoError(t, err)

	assert.True(t, period.Contains(start))
	assert.True(t, period.Contains(end))
	assert.True(t, period.Contains(time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, period.Contains(start.AddDate(0, 0, -1)))
	assert.False(t, period.Contains(end.AddDate(0, 0, 1)))
}
