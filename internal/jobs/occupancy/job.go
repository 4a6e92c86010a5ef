// Package occupancy периодически пересчитывает минимальную доступность
// по каждой паре отель/категория на горизонт вперед и публикует ее в gauge.
package occupancy

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Job задача обновления gauge доступности
type Job struct {
	hotels     HotelRepository
	categories CategoryRepository
	ledger     CapacityLedger
	gauge      Gauge
	horizon    int
	timeout    time.Duration
	now        func() time.Time
	logger     Logger
}

// NewJob создает задачу; horizonDays - сколько ночей вперед от сегодняшней проверять
func NewJob(
	hotels HotelRepository,
	categories CategoryRepository,
	capacityLedger CapacityLedger,
	gauge Gauge,
	horizonDays int,
	logger Logger,
) *Job {
	return &Job{
		hotels:     hotels,
		categories: categories,
		ledger:     capacityLedger,
		gauge:      gauge,
		horizon:    horizonDays,
		timeout:    5 * time.Minute,
		now:        time.Now,
		logger:     logger,
	}
}

// Schedule регистрирует задачу в планировщике
func (j *Job) Schedule(c *cron.Cron, spec string) error {
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		if err := j.Run(ctx); err != nil {
			j.logger.Error("OccupancyJob: run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("occupancy: schedule %q: %w", spec, err)
	}
	return nil
}

// Run один проход по всем отелям и категориям.
// Ошибка по отдельной паре логируется и не прерывает проход.
func (j *Job) Run(ctx context.Context) error {
	start := time.Now()

	hotels, err := j.hotels.List(ctx)
	if err != nil {
		return fmt.Errorf("occupancy: list hotels: %w", err)
	}
	categories, err := j.categories.List(ctx)
	if err != nil {
		return fmt.Errorf("occupancy: list categories: %w", err)
	}

	today := domain.TruncateDate(j.now())
	dates := domain.NewDateRange(today, today.AddDate(0, 0, j.horizon))

	updated, failed := 0, 0
	for _, hotel := range hotels {
		for _, category := range categories {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("occupancy: interrupted after %d pairs: %w", updated, err)
			}

			summary, err := j.ledger.GetAvailableCapacity(ctx, hotel.ID, category.ID, dates)
			if err != nil {
				failed++
				j.logger.Warn("OccupancyJob: hotel=%d, category=%d: %v", hotel.ID, category.ID, err)
				continue
			}
			j.gauge.SetAvailableSpots(hotel.ID, category.ID, summary.MinAvailable)
			updated++
		}
	}

	j.logger.Info("OccupancyJob: updated %d pairs, failed %d, horizon %d days, took %s",
		updated, failed, j.horizon, time.Since(start).Round(time.Millisecond))
	return nil
}
