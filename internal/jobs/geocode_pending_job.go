package jobs

import (
	"context"
	"delivery-route-map/internal/ports"
	"delivery-route-map/internal/services"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// GeocodePendingJob periodically resolves coordinates for deliveries that
// have none yet.
type GeocodePendingJob struct {
	repo     ports.DeliveryRepository
	geocoder ports.Geocoder
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewGeocodePendingJob(
	repo ports.DeliveryRepository,
	geocoder ports.Geocoder,
	schedule string,
	logger *zap.Logger,
) *GeocodePendingJob {
	return &GeocodePendingJob{
		repo:     repo,
		geocoder: geocoder,
		schedule: schedule,
		timeout:  2 * time.Minute,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.Named("geocode_pending_job"),
	}
}

// Run executes one pass.
func (j *GeocodePendingJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	n, err := services.GeocodePending(ctx, j.repo, j.geocoder, j.logger)
	if err != nil {
		j.logger.Error("geocode pending deliveries failed", zap.Error(err))
		return
	}
	if n > 0 {
		j.logger.Info("geocoded pending deliveries", zap.Int("count", n))
	}
}

// Start registers the job on its cron schedule and starts the scheduler.
func (j *GeocodePendingJob) Start() error {
	if _, err := j.cron.AddJob(j.schedule, j); err != nil {
		return fmt.Errorf("start geocode job: schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("geocode job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *GeocodePendingJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("geocode job stopped")
}
