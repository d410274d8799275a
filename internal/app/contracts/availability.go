package contracts

import (
	"context"
	"mentorin-service/internal/app/models"
	"mentorin-service/internal/pkg/dto/requests"
	"mentorin-service/internal/pkg/dto/responses"
	"time"
)

// WeeklySlotRepository owns the recurring per-weekday rules of a mentor.
type WeeklySlotRepository interface {
	Create(ctx context.Context, slot *models.WeeklySlot) (slotID string, err error)
	Update(ctx context.Context, slot *models.WeeklySlot) error
	Delete(ctx context.Context, slotID string) error
	FindByID(ctx context.Context, slotID string) (*models.WeeklySlot, error)
	FindAllByMentor(ctx context.Context, mentorID string) ([]models.WeeklySlot, error)
	FindByMentorAndDay(ctx context.Context, mentorID string, dayOfWeek int, activeOnly bool) ([]models.WeeklySlot, error)
	// FindOverlapping returns every slot of the mentor+day whose [start, end)
	// range intersects the given one, skipping excludeSlotID when non-empty.
	FindOverlapping(ctx context.Context, mentorID string, dayOfWeek int, startTime, endTime, excludeSlotID string) ([]models.WeeklySlot, error)
	// SetActiveForWeekday flips isActive on every slot of the mentor+day in a
	// single write.
	SetActiveForWeekday(ctx context.Context, mentorID string, dayOfWeek int, active bool) error
}

// DateOverrideSlotRepository owns the one-off date-bound rules of a mentor.
type DateOverrideSlotRepository interface {
	Create(ctx context.Context, slot *models.DateOverrideSlot) (slotID string, err error)
	Update(ctx context.Context, slot *models.DateOverrideSlot) error
	Delete(ctx context.Context, slotID string) error
	FindByID(ctx context.Context, slotID string) (*models.DateOverrideSlot, error)
	FindAllByMentor(ctx context.Context, mentorID string) ([]models.DateOverrideSlot, error)
	FindByMentorAndDate(ctx context.Context, mentorID string, date time.Time) ([]models.DateOverrideSlot, error)
	FindOverlapping(ctx context.Context, mentorID string, date time.Time, startTime, endTime, excludeSlotID string) ([]models.DateOverrideSlot, error)
	// FindDatedOnOrBefore returns the overdue prefix the expiry reaper sweeps,
	// bounded by the (date, endTime) index instead of a full collection scan.
	FindDatedOnOrBefore(ctx context.Context, cutoff time.Time) ([]models.DateOverrideSlot, error)
}

// BookedSessionRepository is the read-only conflict check against the session
// subsystem. Session lifecycle itself lives outside this service.
type BookedSessionRepository interface {
	CountUpcomingWeekly(ctx context.Context, mentorID string, dayOfWeek int, startTime, endTime string) (int64, error)
	CountOnDate(ctx context.Context, mentorID string, date time.Time, startTime, endTime string) (int64, error)
}

// SlotAdmissionUsecase validates a proposed weekly or date slot against both
// stores before any write, enforcing the no-overlap and ownership invariants.
type SlotAdmissionUsecase interface {
	AddWeeklySlot(ctx context.Context, mentorID string, request *requests.CreateWeeklySlot) (*models.WeeklySlot, error)
	UpdateWeeklySlot(ctx context.Context, slotID, mentorID string, request *requests.UpdateSlotTimes) error
	DeleteWeeklySlot(ctx context.Context, slotID, mentorID string) error
	ToggleWeeklySlot(ctx context.Context, slotID, mentorID string) error
	ToggleWeekday(ctx context.Context, mentorID string, dayOfWeek int, active bool) error
	AddDateOverrideSlot(ctx context.Context, mentorID string, request *requests.CreateDateOverrideSlot) (*models.DateOverrideSlot, error)
	UpdateDateOverrideSlot(ctx context.Context, slotID, mentorID string, request *requests.UpdateSlotTimes) error
	DeleteDateOverrideSlot(ctx context.Context, slotID, mentorID string) error
}

// AvailabilityQueryUsecase serves the mentor's editing surface and the
// learner's booking-time reads.
type AvailabilityQueryUsecase interface {
	ListMentorRules(ctx context.Context, mentorID string) (*responses.MentorRules, error)
	FindBookableStartTimes(ctx context.Context, mentorID string, date time.Time, durationHours int) ([]string, error)
}

// ExpiryReaperUsecase deletes date overrides whose end instant has passed.
type ExpiryReaperUsecase interface {
	SweepExpired(ctx context.Context, now time.Time) (deleted int, err error)
}
