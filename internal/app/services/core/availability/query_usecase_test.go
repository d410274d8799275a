package availability

import (
	"context"
	"mentorin-service/internal/app/config"
	"mentorin-service/internal/app/models"
	"mentorin-service/internal/pkg/constvars"
	"mentorin-service/internal/pkg/dto/requests"
	"mentorin-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type queryFixture struct {
	admission  *slotAdmissionUsecase
	query      *availabilityQueryUsecase
	weeklyRepo *fakeWeeklyRepo
	overrides  *fakeOverrideRepo
}

func newQueryFixture() *queryFixture {
	weeklyRepo := newFakeWeeklyRepo()
	overrideRepo := newFakeOverrideRepo()
	cfg := &config.InternalConfig{App: config.App{AdmissionLockTTLInSeconds: 5}}
	admission := NewSlotAdmissionUsecase(zap.NewNop(), weeklyRepo, overrideRepo, &fakeSessionRepo{}, newFakeLocker(), cfg).(*slotAdmissionUsecase)
	query := NewAvailabilityQueryUsecase(zap.NewNop(), weeklyRepo, overrideRepo).(*availabilityQueryUsecase)
	return &queryFixture{admission: admission, query: query, weeklyRepo: weeklyRepo, overrides: overrideRepo}
}

func TestListMentorRules(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture()

	_, err := f.admission.AddWeeklySlot(ctx, "mentor-a", &requests.CreateWeeklySlot{
		DayOfWeek: intPtr(2),
		StartTime: "09:00",
	})
	require.NoError(t, err)
	_, err = f.admission.AddDateOverrideSlot(ctx, "mentor-a", &requests.CreateDateOverrideSlot{
		Date:      "2025-06-04",
		StartTime: "14:00",
	})
	require.NoError(t, err)
	_, err = f.admission.AddWeeklySlot(ctx, "mentor-b", &requests.CreateWeeklySlot{
		DayOfWeek: intPtr(2),
		StartTime: "09:00",
	})
	require.NoError(t, err)

	rules, err := f.query.ListMentorRules(ctx, "mentor-a")
	require.NoError(t, err)
	assert.Len(t, rules.Weekly, 1)
	assert.Len(t, rules.Overrides, 1)
}

func TestFindBookableStartTimes(t *testing.T) {
	ctx := context.Background()
	// 2025-06-03 is a Tuesday.
	tuesday := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	seedWeekly := func(f *queryFixture, mentorID string, dayOfWeek int, starts ...string) []*models.WeeklySlot {
		slots := make([]*models.WeeklySlot, 0, len(starts))
		for _, start := range starts {
			slot, err := f.admission.AddWeeklySlot(ctx, mentorID, &requests.CreateWeeklySlot{
				DayOfWeek: intPtr(dayOfWeek),
				StartTime: start,
			})
			require.NoError(t, err)
			slots = append(slots, slot)
		}
		return slots
	}

	t.Run("Two Hour Window Over Stacked Hours", func(t *testing.T) {
		f := newQueryFixture()
		seedWeekly(f, "mentor-a", 2, "09:00", "10:00", "13:00")

		startTimes, err := f.query.FindBookableStartTimes(ctx, "mentor-a", tuesday, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00"}, startTimes)
	})

	t.Run("Single Hour Returns Every Slot Start", func(t *testing.T) {
		f := newQueryFixture()
		seedWeekly(f, "mentor-a", 2, "09:00", "10:00", "13:00")

		startTimes, err := f.query.FindBookableStartTimes(ctx, "mentor-a", tuesday, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00", "10:00", "13:00"}, startTimes)
	})

	t.Run("Every Start Of A Long Run Is Returned", func(t *testing.T) {
		f := newQueryFixture()
		seedWeekly(f, "mentor-a", 2, "09:00", "10:00", "11:00")

		startTimes, err := f.query.FindBookableStartTimes(ctx, "mentor-a", tuesday, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00", "10:00"}, startTimes)
	})

	t.Run("Inactive Weekly Slots Are Skipped", func(t *testing.T) {
		f := newQueryFixture()
		slots := seedWeekly(f, "mentor-a", 2, "09:00", "10:00")
		require.NoError(t, f.admission.ToggleWeeklySlot(ctx, slots[1].ID, "mentor-a"))

		startTimes, err := f.query.FindBookableStartTimes(ctx, "mentor-a", tuesday, 2)
		require.NoError(t, err)
		assert.Empty(t, startTimes)
	})

	t.Run("Overrides Are Scanned Without Active Filter", func(t *testing.T) {
		f := newQueryFixture()
		for _, start := range []string{"14:00", "15:00"} {
			_, err := f.admission.AddDateOverrideSlot(ctx, "mentor-a", &requests.CreateDateOverrideSlot{
				Date:      "2025-06-03",
				StartTime: start,
			})
			require.NoError(t, err)
		}

		startTimes, err := f.query.FindBookableStartTimes(ctx, "mentor-a", tuesday, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"14:00"}, startTimes)
	})

	t.Run("Weekly And Override Starts Are Merged Sorted", func(t *testing.T) {
		f := newQueryFixture()
		seedWeekly(f, "mentor-a", 2, "09:00")
		_, err := f.admission.AddDateOverrideSlot(ctx, "mentor-a", &requests.CreateDateOverrideSlot{
			Date:      "2025-06-03",
			StartTime: "08:00",
		})
		require.NoError(t, err)

		startTimes, err := f.query.FindBookableStartTimes(ctx, "mentor-a", tuesday, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"08:00", "09:00"}, startTimes)
	})

	t.Run("A Run Never Mixes Weekly And Override Slots", func(t *testing.T) {
		f := newQueryFixture()
		seedWeekly(f, "mentor-a", 2, "09:00")
		_, err := f.admission.AddDateOverrideSlot(ctx, "mentor-a", &requests.CreateDateOverrideSlot{
			Date:      "2025-06-03",
			StartTime: "10:00",
		})
		require.NoError(t, err)

		startTimes, err := f.query.FindBookableStartTimes(ctx, "mentor-a", tuesday, 2)
		require.NoError(t, err)
		assert.Empty(t, startTimes)
	})

	t.Run("Oversized Slot Does Not Count As A Unit", func(t *testing.T) {
		f := newQueryFixture()
		_, err := f.admission.AddWeeklySlot(ctx, "mentor-a", &requests.CreateWeeklySlot{
			DayOfWeek: intPtr(2),
			StartTime: "09:00",
			EndTime:   "11:00",
		})
		require.NoError(t, err)

		startTimes, err := f.query.FindBookableStartTimes(ctx, "mentor-a", tuesday, 2)
		require.NoError(t, err)
		assert.Empty(t, startTimes)
	})

	t.Run("Empty Day Returns Empty Not Error", func(t *testing.T) {
		f := newQueryFixture()
		startTimes, err := f.query.FindBookableStartTimes(ctx, "mentor-a", tuesday, 1)
		require.NoError(t, err)
		assert.Empty(t, startTimes)
	})

	t.Run("Duration Below One Is Rejected", func(t *testing.T) {
		f := newQueryFixture()
		_, err := f.query.FindBookableStartTimes(ctx, "mentor-a", tuesday, 0)
		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})
}
