package calls

import (
	"context"

	"go.uber.org/zap"

	"github.com/callscope/core/internal/models"
)

type Service struct {
	store  *Store
	logger *zap.Logger
}

func NewService(store *Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]models.CallSummary, error) {
	return s.store.List(ctx, f)
}

func (s *Service) Stats(ctx context.Context) (*models.CallStats, error) {
	return s.store.Stats(ctx)
}

// Export returns the filtered rows rendered as CSV.
func (s *Service) Export(ctx context.Context, f ListFilter) ([]byte, error) {
	rows, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return RenderCSV(rows)
}
