package reporting

import (
	"context"

	"github.com/example/marketplace/pkg/apperrors"
	"github.com/example/marketplace/pkg/auth"
	"go.uber.org/zap"
)

// FactSource loads item facts; sellerID 0 means all items.
type FactSource interface {
	ItemFacts(ctx context.Context, sellerID uint) ([]ItemFact, error)
}

type Service struct {
	facts  FactSource
	logger *zap.Logger
}

func NewService(facts FactSource, logger *zap.Logger) *Service {
	return &Service{facts: facts, logger: logger}
}

// Dashboard is recomputed on every call. Superusers see every item, other admins
// see the items of their own products.
func (s *Service) Dashboard(ctx context.Context, requester auth.Identity) (Dashboard, error) {
	if !requester.IsAdmin() {
		return Dashboard{}, apperrors.PermissionDenied("admin access required")
	}

	var sellerID uint
	if !requester.IsSuperuser {
		sellerID = requester.UserID
	}

	facts, err := s.facts.ItemFacts(ctx, sellerID)
	if err != nil {
		s.logger.Error("Failed to load dashboard facts", zap.Uint("requester", requester.UserID), zap.Error(err))
		return Dashboard{}, apperrors.Internal("failed to build dashboard", err)
	}

	return Aggregate(facts), nil
}
