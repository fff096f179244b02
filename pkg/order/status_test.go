package order

import (
	"errors"
	"testing"

	"github.com/example/marketplace/pkg/apperrors"
	"github.com/example/marketplace/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItemStatus(t *testing.T) {
	cases := map[string]models.ItemStatus{
		"SHIPPED":     models.ItemShipped,
		"shipped":     models.ItemShipped,
		" Delivered ": models.ItemDelivered,
		"returned":    models.ItemReturned,
		"pending":     models.ItemPending,
	}
	for in, want := range cases {
		got, err := ParseItemStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
}

func TestParseItemStatusRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "LOST", "PAID", "ship"} {
		_, err := ParseItemStatus(in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrInvalidStatus))
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	}
}

func TestParseOrderStatus(t *testing.T) {
	got, err := ParseOrderStatus("paid")
	require.NoError(t, err)
	assert.Equal(t, models.OrderPaid, got)

	_, err = ParseOrderStatus("CANCELLED")
	assert.True(t, errors.Is(err, ErrInvalidStatus))
}

func TestTransitionsArePermissive(t *testing.T) {
	for _, from := range models.ItemStatuses {
		for _, to := range models.ItemStatuses {
			assert.True(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.Equal(t, models.ItemStatuses, AllowedSources(models.ItemShipped))
}

func TestAllowedSourcesFollowsTable(t *testing.T) {
	saved := itemTransitions[models.ItemDelivered]
	itemTransitions[models.ItemDelivered] = []models.ItemStatus{models.ItemReturned}
	defer func() { itemTransitions[models.ItemDelivered] = saved }()

	assert.False(t, CanTransition(models.ItemDelivered, models.ItemShipped))
	assert.Equal(t,
		[]models.ItemStatus{models.ItemPending, models.ItemShipped, models.ItemReturned},
		AllowedSources(models.ItemShipped))
	assert.Equal(t, models.ItemStatuses, AllowedSources(models.ItemReturned))
}
