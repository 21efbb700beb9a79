package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarRentalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CarRentalService/internal/infra/storage/docstore"
	"github.com/m04kA/SMC-CarRentalService/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func date(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

// staleUpdates имитирует параллельное изменение бронирования
type staleUpdates struct {
	BookingRepository
	ids map[string]bool
}

func (s staleUpdates) Update(ctx context.Context, booking *domain.Booking) error {
	if s.ids[booking.ID] {
		return bookingRepo.ErrConcurrentModification
	}
	return s.BookingRepository.Update(ctx, booking)
}

func seed(t *testing.T, repo *bookingRepo.Repository, id string, start, end time.Time, status domain.BookingStatus) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &domain.Booking{
		ID:        id,
		UserID:    "user-1",
		CarID:     "car-1",
		StartDate: start,
		EndDate:   end,
		Status:    status,
	}))
}

func status(t *testing.T, repo *bookingRepo.Repository, id string) domain.BookingStatus {
	t.Helper()
	b, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return b.Status
}

func TestLifecycleJob_Run(t *testing.T) {
	repo := bookingRepo.NewRepository(docstore.NewMemory())
	now := date(10).Add(12 * time.Hour)

	seed(t, repo, "future", date(12), date(15), domain.StatusConfirmed)
	seed(t, repo, "started", date(10), date(13), domain.StatusConfirmed)
	seed(t, repo, "past", date(1), date(4), domain.StatusConfirmed)
	seed(t, repo, "running", date(8), date(11), domain.StatusActive)
	seed(t, repo, "ended", date(5), date(10), domain.StatusActive)
	seed(t, repo, "cancelled", date(1), date(2), domain.StatusCancelled)
	seed(t, repo, "pending", date(1), date(2), domain.StatusPending)

	job := NewLifecycleJob(repo, logger.NewNop()).WithTimeProvider(fixedTime{now: now})

	result, err := job.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Activated)
	assert.Equal(t, 2, result.Completed)
	assert.Zero(t, result.Skipped)

	assert.Equal(t, domain.StatusConfirmed, status(t, repo, "future"))
	assert.Equal(t, domain.StatusActive, status(t, repo, "started"))
	assert.Equal(t, domain.StatusCompleted, status(t, repo, "past"))
	assert.Equal(t, domain.StatusActive, status(t, repo, "running"))
	assert.Equal(t, domain.StatusCompleted, status(t, repo, "ended"))
	assert.Equal(t, domain.StatusCancelled, status(t, repo, "cancelled"))
	assert.Equal(t, domain.StatusPending, status(t, repo, "pending"))

	// повторный прогон ничего не меняет
	result, err = job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &LifecycleResult{}, result)
}

func TestLifecycleJob_SkipsConcurrentlyModified(t *testing.T) {
	repo := bookingRepo.NewRepository(docstore.NewMemory())
	seed(t, repo, "b1", date(1), date(20), domain.StatusConfirmed)
	seed(t, repo, "b2", date(1), date(20), domain.StatusConfirmed)

	job := NewLifecycleJob(staleUpdates{BookingRepository: repo, ids: map[string]bool{"b1": true}}, logger.NewNop()).
		WithTimeProvider(fixedTime{now: date(5)})

	result, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Activated)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, domain.StatusConfirmed, status(t, repo, "b1"))
	assert.Equal(t, domain.StatusActive, status(t, repo, "b2"))
}
