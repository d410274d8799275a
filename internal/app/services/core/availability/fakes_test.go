package availability

import (
	"context"
	"fmt"
	"mentorin-service/internal/app/models"
	"mentorin-service/internal/pkg/exceptions"
	"mentorin-service/internal/pkg/utils"
	"sort"
	"time"
)

type fakeWeeklyRepo struct {
	slots  map[string]*models.WeeklySlot
	nextID int
}

func newFakeWeeklyRepo() *fakeWeeklyRepo {
	return &fakeWeeklyRepo{slots: make(map[string]*models.WeeklySlot)}
}

func (r *fakeWeeklyRepo) Create(_ context.Context, slot *models.WeeklySlot) (string, error) {
	r.nextID++
	id := fmt.Sprintf("weekly-%d", r.nextID)
	stored := *slot
	stored.ID = id
	r.slots[id] = &stored
	return id, nil
}

func (r *fakeWeeklyRepo) Update(_ context.Context, slot *models.WeeklySlot) error {
	if _, ok := r.slots[slot.ID]; !ok {
		return exceptions.ErrSlotNotFound(slot.ID)
	}
	stored := *slot
	r.slots[slot.ID] = &stored
	return nil
}

func (r *fakeWeeklyRepo) Delete(_ context.Context, slotID string) error {
	delete(r.slots, slotID)
	return nil
}

func (r *fakeWeeklyRepo) FindByID(_ context.Context, slotID string) (*models.WeeklySlot, error) {
	slot, ok := r.slots[slotID]
	if !ok {
		return nil, nil
	}
	copied := *slot
	return &copied, nil
}

func (r *fakeWeeklyRepo) FindAllByMentor(_ context.Context, mentorID string) ([]models.WeeklySlot, error) {
	var result []models.WeeklySlot
	for _, slot := range r.slots {
		if slot.MentorID == mentorID {
			result = append(result, *slot)
		}
	}
	sortWeekly(result)
	return result, nil
}

func (r *fakeWeeklyRepo) FindByMentorAndDay(_ context.Context, mentorID string, dayOfWeek int, activeOnly bool) ([]models.WeeklySlot, error) {
	var result []models.WeeklySlot
	for _, slot := range r.slots {
		if slot.MentorID != mentorID || slot.DayOfWeek != dayOfWeek {
			continue
		}
		if activeOnly && !slot.IsActive {
			continue
		}
		result = append(result, *slot)
	}
	sortWeekly(result)
	return result, nil
}

func (r *fakeWeeklyRepo) FindOverlapping(_ context.Context, mentorID string, dayOfWeek int, startTime, endTime, excludeSlotID string) ([]models.WeeklySlot, error) {
	var result []models.WeeklySlot
	for _, slot := range r.slots {
		if slot.MentorID != mentorID || slot.DayOfWeek != dayOfWeek || slot.ID == excludeSlotID {
			continue
		}
		overlap, err := utils.ClockRangesOverlap(slot.StartTime, slot.EndTime, startTime, endTime)
		if err != nil {
			return nil, err
		}
		if overlap {
			result = append(result, *slot)
		}
	}
	sortWeekly(result)
	return result, nil
}

func (r *fakeWeeklyRepo) SetActiveForWeekday(_ context.Context, mentorID string, dayOfWeek int, active bool) error {
	for _, slot := range r.slots {
		if slot.MentorID == mentorID && slot.DayOfWeek == dayOfWeek {
			slot.IsActive = active
		}
	}
	return nil
}

func sortWeekly(slots []models.WeeklySlot) {
	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime < slots[j].StartTime })
}

type fakeOverrideRepo struct {
	slots  map[string]*models.DateOverrideSlot
	nextID int
}

func newFakeOverrideRepo() *fakeOverrideRepo {
	return &fakeOverrideRepo{slots: make(map[string]*models.DateOverrideSlot)}
}

func (r *fakeOverrideRepo) Create(_ context.Context, slot *models.DateOverrideSlot) (string, error) {
	r.nextID++
	id := fmt.Sprintf("override-%d", r.nextID)
	stored := *slot
	stored.ID = id
	r.slots[id] = &stored
	return id, nil
}

func (r *fakeOverrideRepo) Update(_ context.Context, slot *models.DateOverrideSlot) error {
	if _, ok := r.slots[slot.ID]; !ok {
		return exceptions.ErrSlotNotFound(slot.ID)
	}
	stored := *slot
	r.slots[slot.ID] = &stored
	return nil
}

func (r *fakeOverrideRepo) Delete(_ context.Context, slotID string) error {
	delete(r.slots, slotID)
	return nil
}

func (r *fakeOverrideRepo) FindByID(_ context.Context, slotID string) (*models.DateOverrideSlot, error) {
	slot, ok := r.slots[slotID]
	if !ok {
		return nil, nil
	}
	copied := *slot
	return &copied, nil
}

func (r *fakeOverrideRepo) FindAllByMentor(_ context.Context, mentorID string) ([]models.DateOverrideSlot, error) {
	var result []models.DateOverrideSlot
	for _, slot := range r.slots {
		if slot.MentorID == mentorID {
			result = append(result, *slot)
		}
	}
	sortOverrides(result)
	return result, nil
}

func (r *fakeOverrideRepo) FindByMentorAndDate(_ context.Context, mentorID string, date time.Time) ([]models.DateOverrideSlot, error) {
	var result []models.DateOverrideSlot
	for _, slot := range r.slots {
		if slot.MentorID == mentorID && slot.Date.Equal(date) {
			result = append(result, *slot)
		}
	}
	sortOverrides(result)
	return result, nil
}

func (r *fakeOverrideRepo) FindOverlapping(_ context.Context, mentorID string, date time.Time, startTime, endTime, excludeSlotID string) ([]models.DateOverrideSlot, error) {
	var result []models.DateOverrideSlot
	for _, slot := range r.slots {
		if slot.MentorID != mentorID || !slot.Date.Equal(date) || slot.ID == excludeSlotID {
			continue
		}
		overlap, err := utils.ClockRangesOverlap(slot.StartTime, slot.EndTime, startTime, endTime)
		if err != nil {
			return nil, err
		}
		if overlap {
			result = append(result, *slot)
		}
	}
	sortOverrides(result)
	return result, nil
}

func (r *fakeOverrideRepo) FindDatedOnOrBefore(_ context.Context, cutoff time.Time) ([]models.DateOverrideSlot, error) {
	var result []models.DateOverrideSlot
	for _, slot := range r.slots {
		if !slot.Date.After(cutoff) {
			result = append(result, *slot)
		}
	}
	sortOverrides(result)
	return result, nil
}

func sortOverrides(slots []models.DateOverrideSlot) {
	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		return slots[i].StartTime < slots[j].StartTime
	})
}

// fakeSessionRepo counts bookings overlapping the queried range, mirroring the
// read-only conflict check.
type fakeSessionRepo struct {
	sessions []models.BookedSession
}

func (r *fakeSessionRepo) CountUpcomingWeekly(_ context.Context, mentorID string, dayOfWeek int, startTime, endTime string) (int64, error) {
	var count int64
	for _, session := range r.sessions {
		if session.MentorID != mentorID || session.DayOfWeek != dayOfWeek {
			continue
		}
		overlap, err := utils.ClockRangesOverlap(session.StartTime, session.EndTime, startTime, endTime)
		if err != nil {
			return 0, err
		}
		if overlap {
			count++
		}
	}
	return count, nil
}

func (r *fakeSessionRepo) CountOnDate(_ context.Context, mentorID string, date time.Time, startTime, endTime string) (int64, error) {
	var count int64
	for _, session := range r.sessions {
		if session.MentorID != mentorID || !session.Date.Equal(date) {
			continue
		}
		overlap, err := utils.ClockRangesOverlap(session.StartTime, session.EndTime, startTime, endTime)
		if err != nil {
			return 0, err
		}
		if overlap {
			count++
		}
	}
	return count, nil
}

// fakeLocker grants every lock unless a key is marked held.
type fakeLocker struct {
	held     map[string]bool
	acquired []string
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: make(map[string]bool)}
}

func (l *fakeLocker) TryLock(_ context.Context, key string, _ time.Duration) (bool, string, error) {
	if l.held[key] {
		return false, "", nil
	}
	l.acquired = append(l.acquired, key)
	return true, "token-" + key, nil
}

func (l *fakeLocker) Unlock(_ context.Context, _, _ string) error {
	return nil
}

func (l *fakeLocker) Refresh(_ context.Context, _, _ string, _ time.Duration) error {
	return nil
}
