package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/booking"
)

// lifecycleTimeout ограничение на один прогон задачи
const lifecycleTimeout = 2 * time.Minute

// LifecycleResult итог одного прогона
type LifecycleResult struct {
	Activated int
	Completed int
	Skipped   int // бронирования, измененные параллельно; обработаются в следующий раз
}

// LifecycleJob переводит бронирования по датам: confirmed -> active -> completed
type LifecycleJob struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

func NewLifecycleJob(bookingRepo BookingRepository, logger Logger) *LifecycleJob {
	return &LifecycleJob{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider устанавливает кастомный провайдер времени (для тестов)
func (j *LifecycleJob) WithTimeProvider(tp TimeProvider) *LifecycleJob {
	j.timeProvider = tp
	return j
}

// Run выполняет один прогон
// Сначала активирует начавшиеся бронирования, затем завершает закончившиеся,
// поэтому бронирование, целиком оставшееся в прошлом, завершается за один прогон
func (j *LifecycleJob) Run(ctx context.Context) (*LifecycleResult, error) {
	now := j.timeProvider.Now().UTC()
	result := &LifecycleResult{}

	activated, skipped, err := j.advance(ctx, domain.StatusConfirmed, domain.StatusActive, now, func(b *domain.Booking) bool {
		return !b.StartDate.After(now)
	})
	if err != nil {
		return nil, err
	}
	result.Activated = activated
	result.Skipped += skipped

	completed, skipped, err := j.advance(ctx, domain.StatusActive, domain.StatusCompleted, now, func(b *domain.Booking) bool {
		return !b.EndDate.After(now)
	})
	if err != nil {
		return nil, err
	}
	result.Completed = completed
	result.Skipped += skipped

	j.logger.Info("LifecycleJob: activated=%d, completed=%d, skipped=%d", result.Activated, result.Completed, result.Skipped)
	return result, nil
}

// RunScheduled точка входа для cron: свой таймаут и защита от паники
func (j *LifecycleJob) RunScheduled() {
	defer func() {
		if r := recover(); r != nil {
			j.logger.Error("LifecycleJob: panic: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), lifecycleTimeout)
	defer cancel()

	if _, err := j.Run(ctx); err != nil {
		j.logger.Error("LifecycleJob: run failed: %v", err)
	}
}

func (j *LifecycleJob) advance(
	ctx context.Context,
	from, to domain.BookingStatus,
	now time.Time,
	due func(b *domain.Booking) bool,
) (int, int, error) {
	bookings, err := j.bookingRepo.GetByFilter(ctx, domain.BookingFilter{
		Statuses: []domain.BookingStatus{from},
	})
	if err != nil {
		return 0, 0, fmt.Errorf("get %s bookings: %w", from, err)
	}

	var moved, skipped int
	for _, booking := range bookings {
		if !due(booking) {
			continue
		}

		booking.Status = to
		booking.UpdatedAt = now

		if err := j.bookingRepo.Update(ctx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrConcurrentModification) || errors.Is(err, bookingRepo.ErrBookingNotFound) {
				j.logger.Warn("LifecycleJob: booking id=%s changed concurrently, skipping", booking.ID)
				skipped++
				continue
			}
			return moved, skipped, fmt.Errorf("update booking %s: %w", booking.ID, err)
		}
		moved++
	}

	return moved, skipped, nil
}
