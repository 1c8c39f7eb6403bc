package geocode

import (
	"context"
	"delivery-route-map/internal/domain"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Stage is a named geocoder tried by FallbackGeocoder.
type Stage interface {
	Name() string
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// FallbackGeocoder tries each stage in order and returns the first success.
// Stage failures are logged; when every stage fails the last error is returned.
type FallbackGeocoder struct {
	stages []Stage
	logger *zap.Logger
}

func NewFallbackGeocoder(logger *zap.Logger, stages ...Stage) *FallbackGeocoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackGeocoder{stages: stages, logger: logger}
}

func (f *FallbackGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	if len(f.stages) == 0 {
		return domain.Coordinates{}, errors.New("fallback geocoder: no stages configured")
	}

	var lastErr error
	for _, s := range f.stages {
		c, err := s.Geocode(ctx, address)
		if err == nil {
			return c, nil
		}

		f.logger.Warn("geocoder stage failed",
			zap.String("stage", s.Name()),
			zap.String("address", address),
			zap.Error(err),
		)
		lastErr = fmt.Errorf("%s: %w", s.Name(), err)

		if ctx.Err() != nil {
			break
		}
	}

	return domain.Coordinates{}, fmt.Errorf("fallback geocoder: %w", lastErr)
}
