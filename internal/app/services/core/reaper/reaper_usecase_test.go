package reaper

import (
	"context"
	"errors"
	"fmt"
	"mentorin-service/internal/app/models"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOverrideRepo struct {
	slots      map[string]*models.DateOverrideSlot
	nextID     int
	failDelete map[string]error
}

func newFakeOverrideRepo() *fakeOverrideRepo {
	return &fakeOverrideRepo{
		slots:      make(map[string]*models.DateOverrideSlot),
		failDelete: make(map[string]error),
	}
}

func (r *fakeOverrideRepo) add(date time.Time, startTime, endTime string) string {
	r.nextID++
	id := fmt.Sprintf("override-%d", r.nextID)
	r.slots[id] = &models.DateOverrideSlot{
		ID:        id,
		MentorID:  "mentor-a",
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}
	return id
}

func (r *fakeOverrideRepo) Create(_ context.Context, slot *models.DateOverrideSlot) (string, error) {
	return "", errors.New("not used")
}

func (r *fakeOverrideRepo) Update(_ context.Context, _ *models.DateOverrideSlot) error {
	return errors.New("not used")
}

func (r *fakeOverrideRepo) Delete(_ context.Context, slotID string) error {
	if err, ok := r.failDelete[slotID]; ok {
		return err
	}
	delete(r.slots, slotID)
	return nil
}

func (r *fakeOverrideRepo) FindByID(_ context.Context, slotID string) (*models.DateOverrideSlot, error) {
	slot, ok := r.slots[slotID]
	if !ok {
		return nil, nil
	}
	return slot, nil
}

func (r *fakeOverrideRepo) FindAllByMentor(_ context.Context, _ string) ([]models.DateOverrideSlot, error) {
	return nil, errors.New("not used")
}

func (r *fakeOverrideRepo) FindByMentorAndDate(_ context.Context, _ string, _ time.Time) ([]models.DateOverrideSlot, error) {
	return nil, errors.New("not used")
}

func (r *fakeOverrideRepo) FindOverlapping(_ context.Context, _ string, _ time.Time, _, _, _ string) ([]models.DateOverrideSlot, error) {
	return nil, errors.New("not used")
}

func (r *fakeOverrideRepo) FindDatedOnOrBefore(_ context.Context, cutoff time.Time) ([]models.DateOverrideSlot, error) {
	var result []models.DateOverrideSlot
	for _, slot := range r.slots {
		if !slot.Date.After(cutoff) {
			result = append(result, *slot)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func TestSweepExpired(t *testing.T) {
	ctx := context.Background()
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("Deletes Only Overrides Whose End Has Passed", func(t *testing.T) {
		repo := newFakeOverrideRepo()
		expiredYesterday := repo.add(day(2025, 6, 9), "09:00", "10:00")
		expiredThisMorning := repo.add(day(2025, 6, 10), "09:00", "11:00")
		stillRunning := repo.add(day(2025, 6, 10), "11:00", "13:00")
		laterToday := repo.add(day(2025, 6, 10), "14:00", "15:00")
		tomorrow := repo.add(day(2025, 6, 11), "09:00", "10:00")

		usecase := NewExpiryReaperUsecase(zap.NewNop(), repo, time.UTC)
		deleted, err := usecase.SweepExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 2, deleted)

		assert.NotContains(t, repo.slots, expiredYesterday)
		assert.NotContains(t, repo.slots, expiredThisMorning)
		assert.Contains(t, repo.slots, stillRunning)
		assert.Contains(t, repo.slots, laterToday)
		assert.Contains(t, repo.slots, tomorrow)
	})

	t.Run("End Exactly At Now Is Expired", func(t *testing.T) {
		repo := newFakeOverrideRepo()
		boundary := repo.add(day(2025, 6, 10), "11:00", "12:00")

		usecase := NewExpiryReaperUsecase(zap.NewNop(), repo, time.UTC)
		deleted, err := usecase.SweepExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 1, deleted)
		assert.NotContains(t, repo.slots, boundary)
	})

	t.Run("Second Sweep At Same Instant Deletes Nothing", func(t *testing.T) {
		repo := newFakeOverrideRepo()
		repo.add(day(2025, 6, 9), "09:00", "10:00")
		repo.add(day(2025, 6, 10), "14:00", "15:00")

		usecase := NewExpiryReaperUsecase(zap.NewNop(), repo, time.UTC)
		deleted, err := usecase.SweepExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 1, deleted)

		deleted, err = usecase.SweepExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 0, deleted)
	})

	t.Run("Delete Failure Skips And Continues", func(t *testing.T) {
		repo := newFakeOverrideRepo()
		stuck := repo.add(day(2025, 6, 8), "09:00", "10:00")
		repo.add(day(2025, 6, 9), "09:00", "10:00")
		repo.failDelete[stuck] = errors.New("write conflict")

		usecase := NewExpiryReaperUsecase(zap.NewNop(), repo, time.UTC)
		deleted, err := usecase.SweepExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 1, deleted)
		assert.Contains(t, repo.slots, stuck)
	})
}
