package directions

import (
	"context"
	"delivery-route-map/internal/domain"
	"sync"
)

// StaticDirectionsService answers every request with a fixed outcome and
// records the requests it received. It backs tests and the keyless mode.
type StaticDirectionsService struct {
	mu       sync.Mutex
	result   *domain.RouteResult
	err      error
	requests []domain.RouteRequest
}

// NewStaticDirectionsService returns a service that always succeeds with result.
func NewStaticDirectionsService(result *domain.RouteResult) *StaticDirectionsService {
	return &StaticDirectionsService{result: result}
}

// NewFailingDirectionsService returns a service that always fails with status.
func NewFailingDirectionsService(status domain.RouteStatus, message string) *StaticDirectionsService {
	return &StaticDirectionsService{err: &domain.RouteStatusError{Status: status, Message: message}}
}

func (s *StaticDirectionsService) Route(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

// Requests returns a copy of every request received so far.
func (s *StaticDirectionsService) Requests() []domain.RouteRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.RouteRequest, len(s.requests))
	copy(out, s.requests)
	return out
}
