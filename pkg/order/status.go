package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/marketplace/pkg/apperrors"
	"github.com/example/marketplace/pkg/models"
)

var ErrInvalidStatus = errors.New("invalid status")

// itemTransitions lists, for each item status, the statuses it may move to.
// Every move is currently allowed; narrowing a row here narrows the write filter
// in UpdateItemStatus and nothing else.
var itemTransitions = map[models.ItemStatus][]models.ItemStatus{
	models.ItemPending:   models.ItemStatuses,
	models.ItemShipped:   models.ItemStatuses,
	models.ItemDelivered: models.ItemStatuses,
	models.ItemReturned:  models.ItemStatuses,
}

// ParseItemStatus accepts any casing and surrounding spaces.
func ParseItemStatus(s string) (models.ItemStatus, error) {
	v := models.ItemStatus(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := itemTransitions[v]; !ok {
		return "", apperrors.Validation(fmt.Sprintf("invalid status %q", s), ErrInvalidStatus)
	}
	return v, nil
}

func ParseOrderStatus(s string) (models.OrderStatus, error) {
	v := models.OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range models.OrderStatuses {
		if v == known {
			return v, nil
		}
	}
	return "", apperrors.Validation(fmt.Sprintf("invalid status %q", s), ErrInvalidStatus)
}

// CanTransition reports whether an item may move from one status to another.
func CanTransition(from, to models.ItemStatus) bool {
	for _, s := range itemTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// AllowedSources returns the statuses from which to is reachable, in lifecycle order.
func AllowedSources(to models.ItemStatus) []models.ItemStatus {
	var out []models.ItemStatus
	for _, from := range models.ItemStatuses {
		if CanTransition(from, to) {
			out = append(out, from)
		}
	}
	return out
}
