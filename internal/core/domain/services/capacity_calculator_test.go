package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/capacity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var calcNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func TestCapacityCalculator_Calculate(t *testing.T) {
	calculator := services.NewCapacityCalculator()
	loc := mustLocation(t, "A-01-01", "A", "SHELF")

	t.Run("classifies each dimension independently", func(t *testing.T) {
		rules := []*capacity.Rule{
			mustRule(t, capacity.DimensionQuantity, capacity.ScopeAll, "", 100, 80, 10),
			mustRule(t, capacity.DimensionWeight, capacity.ScopeAll, "", 500, 80, 10),
			mustRule(t, capacity.DimensionVolume, capacity.ScopeAll, "", 10, 80, 10),
		}
		measurements := map[capacity.Dimension]float64{
			capacity.DimensionQuantity: 50,  // 50%
			capacity.DimensionWeight:   450, // 90%
			capacity.DimensionVolume:   10,  // 100%
		}

		records, err := calculator.Calculate(loc, measurements, rules, nil, calcNow)

		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, capacity.CapacityStatusActive, byDimension(records, capacity.DimensionQuantity).Status())
		assert.Equal(t, capacity.CapacityStatusWarning, byDimension(records, capacity.DimensionWeight).Status())
		assert.Equal(t, capacity.CapacityStatusExceeded, byDimension(records, capacity.DimensionVolume).Status())
	})

	t.Run("warning starts exactly at the threshold", func(t *testing.T) {
		rules := []*capacity.Rule{
			mustRule(t, capacity.DimensionQuantity, capacity.ScopeAll, "", 100, 80, 10),
		}

		below, err := calculator.Calculate(loc,
			map[capacity.Dimension]float64{capacity.DimensionQuantity: 79.9}, rules, nil, calcNow)
		require.NoError(t, err)
		assert.Equal(t, capacity.CapacityStatusActive, below[0].Status())

		at, err := calculator.Calculate(loc,
			map[capacity.Dimension]float64{capacity.DimensionQuantity: 80}, rules, nil, calcNow)
		require.NoError(t, err)
		assert.Equal(t, capacity.CapacityStatusWarning, at[0].Status())
	})

	t.Run("first rule per dimension governs", func(t *testing.T) {
		rules := []*capacity.Rule{
			mustRule(t, capacity.DimensionQuantity, capacity.ScopeLocation, "A-01-01", 40, 80, 1),
			mustRule(t, capacity.DimensionQuantity, capacity.ScopeZone, "A", 100, 80, 5),
		}
		measurements := map[capacity.Dimension]float64{capacity.DimensionQuantity: 40}

		records, err := calculator.Calculate(loc, measurements, rules, nil, calcNow)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, float64(40), records[0].MaxCapacity(),
			"the location-specific rule shadows the zone rule")
		assert.Equal(t, capacity.CapacityStatusExceeded, records[0].Status())
	})

	t.Run("non-matching rules are skipped", func(t *testing.T) {
		rules := []*capacity.Rule{
			mustRule(t, capacity.DimensionQuantity, capacity.ScopeZone, "B", 100, 80, 1),
			mustRule(t, capacity.DimensionWeight, capacity.ScopeType, "FLOOR", 500, 80, 1),
		}

		records, err := calculator.Calculate(loc,
			map[capacity.Dimension]float64{capacity.DimensionQuantity: 50}, rules, nil, calcNow)

		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("recalculation is idempotent for identical inputs", func(t *testing.T) {
		rules := []*capacity.Rule{
			mustRule(t, capacity.DimensionQuantity, capacity.ScopeAll, "", 100, 80, 10),
		}
		measurements := map[capacity.Dimension]float64{capacity.DimensionQuantity: 90}

		first, err := calculator.Calculate(loc, measurements, rules, nil, calcNow)
		require.NoError(t, err)

		existing := map[capacity.Dimension]*capacity.LocationCapacity{
			capacity.DimensionQuantity: first[0],
		}
		second, err := calculator.Calculate(loc, measurements, rules, existing, calcNow.Add(time.Minute))
		require.NoError(t, err)

		require.Len(t, second, 1)
		assert.Equal(t, first[0].Utilization(), second[0].Utilization())
		assert.Equal(t, first[0].Status(), second[0].Status())
	})

	t.Run("exceeded-at stamp survives repeated exceeded recalculations", func(t *testing.T) {
		rules := []*capacity.Rule{
			mustRule(t, capacity.DimensionQuantity, capacity.ScopeAll, "", 100, 80, 10),
		}
		over := map[capacity.Dimension]float64{capacity.DimensionQuantity: 120}

		first, err := calculator.Calculate(loc, over, rules, nil, calcNow)
		require.NoError(t, err)
		require.NotNil(t, first[0].ExceededAt())
		stamped := *first[0].ExceededAt()

		existing := map[capacity.Dimension]*capacity.LocationCapacity{
			capacity.DimensionQuantity: first[0],
		}
		second, err := calculator.Calculate(loc, over, rules, existing, calcNow.Add(time.Hour))
		require.NoError(t, err)

		require.NotNil(t, second[0].ExceededAt())
		assert.Equal(t, stamped, *second[0].ExceededAt())
	})

	t.Run("returning to active clears the exceeded-at stamp", func(t *testing.T) {
		rules := []*capacity.Rule{
			mustRule(t, capacity.DimensionQuantity, capacity.ScopeAll, "", 100, 80, 10),
		}

		first, err := calculator.Calculate(loc,
			map[capacity.Dimension]float64{capacity.DimensionQuantity: 120}, rules, nil, calcNow)
		require.NoError(t, err)

		existing := map[capacity.Dimension]*capacity.LocationCapacity{
			capacity.DimensionQuantity: first[0],
		}
		second, err := calculator.Calculate(loc,
			map[capacity.Dimension]float64{capacity.DimensionQuantity: 10}, rules, existing, calcNow.Add(time.Hour))
		require.NoError(t, err)

		assert.Equal(t, capacity.CapacityStatusActive, second[0].Status())
		assert.Nil(t, second[0].ExceededAt())
	})

	t.Run("edited rule takes effect on the next recalculation", func(t *testing.T) {
		original := []*capacity.Rule{
			mustRule(t, capacity.DimensionQuantity, capacity.ScopeAll, "", 100, 80, 10),
		}
		measurements := map[capacity.Dimension]float64{capacity.DimensionQuantity: 90}

		first, err := calculator.Calculate(loc, measurements, original, nil, calcNow)
		require.NoError(t, err)
		assert.Equal(t, capacity.CapacityStatusWarning, first[0].Status())

		raised := []*capacity.Rule{
			mustRule(t, capacity.DimensionQuantity, capacity.ScopeAll, "", 200, 80, 10),
		}
		existing := map[capacity.Dimension]*capacity.LocationCapacity{
			capacity.DimensionQuantity: first[0],
		}
		second, err := calculator.Calculate(loc, measurements, raised, existing, calcNow.Add(time.Minute))
		require.NoError(t, err)

		assert.Equal(t, float64(200), second[0].MaxCapacity())
		assert.Equal(t, capacity.CapacityStatusActive, second[0].Status())
	})

	t.Run("missing measurement counts as zero utilization", func(t *testing.T) {
		rules := []*capacity.Rule{
			mustRule(t, capacity.DimensionWeight, capacity.ScopeAll, "", 500, 80, 10),
		}

		records, err := calculator.Calculate(loc, map[capacity.Dimension]float64{}, rules, nil, calcNow)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, float64(0), records[0].Utilization())
		assert.Equal(t, capacity.CapacityStatusActive, records[0].Status())
	})
}

func mustLocation(t *testing.T, code, zone, locType string) kernel.BinLocation {
	t.Helper()
	loc, err := kernel.NewBinLocation(code, zone, locType)
	require.NoError(t, err)
	return loc
}

func mustRule(
	t *testing.T,
	dimension capacity.Dimension,
	scope capacity.Scope,
	scopeValue string,
	maxCapacity, warningThreshold float64,
	priority int,
) *capacity.Rule {
	t.Helper()
	rule, err := capacity.NewRule(kernel.NewUUID(), dimension, scope, scopeValue, maxCapacity, warningThreshold, priority)
	require.NoError(t, err)
	return rule
}

func byDimension(records []*capacity.LocationCapacity, d capacity.Dimension) *capacity.LocationCapacity {
	for _, record := range records {
		if record.Dimension() == d {
			return record
		}
	}
	return nil
}
