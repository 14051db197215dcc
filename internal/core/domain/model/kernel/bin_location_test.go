package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBinLocation(t *testing.T) {
	t.Run("zone derived from code", func(t *testing.T) {
		loc, err := kernel.NewBinLocation("A-01-01", "", "SHELF")
		require.NoError(t, err)

		assert.Equal(t, "A-01-01", loc.Code())
		assert.Equal(t, "A", loc.Zone())
		assert.Equal(t, "SHELF", loc.Type())
	})

	t.Run("explicit zone wins", func(t *testing.T) {
		loc, err := kernel.NewBinLocation("A-01-01", "RECEIVING", "")
		require.NoError(t, err)
		assert.Equal(t, "RECEIVING", loc.Zone())
	})

	t.Run("empty code is rejected", func(t *testing.T) {
		_, err := kernel.NewBinLocation("  ", "", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var loc kernel.BinLocation
		require.ErrorIs(t, loc.Validate(), errs.ErrValueIsRequired)
	})
}
