package availability

import (
	"context"
	"fmt"
	"mentorin-service/internal/app/config"
	"mentorin-service/internal/app/contracts"
	"mentorin-service/internal/app/models"
	"mentorin-service/internal/pkg/constvars"
	"mentorin-service/internal/pkg/dto/requests"
	"mentorin-service/internal/pkg/exceptions"
	"mentorin-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type slotAdmissionUsecase struct {
	Log            *zap.Logger
	WeeklyRepo     contracts.WeeklySlotRepository
	OverrideRepo   contracts.DateOverrideSlotRepository
	SessionRepo    contracts.BookedSessionRepository
	Locker         contracts.LockerService
	InternalConfig *config.InternalConfig
}

func NewSlotAdmissionUsecase(
	logger *zap.Logger,
	weeklyRepo contracts.WeeklySlotRepository,
	overrideRepo contracts.DateOverrideSlotRepository,
	sessionRepo contracts.BookedSessionRepository,
	lockerService contracts.LockerService,
	internalConfig *config.InternalConfig,
) contracts.SlotAdmissionUsecase {
	return &slotAdmissionUsecase{
		Log:            logger,
		WeeklyRepo:     weeklyRepo,
		OverrideRepo:   overrideRepo,
		SessionRepo:    sessionRepo,
		Locker:         lockerService,
		InternalConfig: internalConfig,
	}
}

func (uc *slotAdmissionUsecase) AddWeeklySlot(ctx context.Context, mentorID string, request *requests.CreateWeeklySlot) (*models.WeeklySlot, error) {
	dayOfWeek := *request.DayOfWeek
	if dayOfWeek < constvars.MinWeekday || dayOfWeek > constvars.MaxWeekday {
		return nil, exceptions.ErrInvalidWeekday(dayOfWeek)
	}

	startTime, endTime, err := uc.resolveRange(request.StartTime, request.EndTime)
	if err != nil {
		return nil, err
	}

	unlock, err := uc.lockWeekday(ctx, mentorID, dayOfWeek)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := uc.checkWeeklyOverlap(ctx, mentorID, dayOfWeek, startTime, endTime, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	slot := &models.WeeklySlot{
		MentorID:  mentorID,
		DayOfWeek: dayOfWeek,
		StartTime: startTime,
		EndTime:   endTime,
		IsActive:  true,
		TimeModel: models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}
	slotID, err := uc.WeeklyRepo.Create(ctx, slot)
	if err != nil {
		return nil, err
	}
	slot.ID = slotID

	uc.Log.Info("weekly slot created",
		zap.String(constvars.LoggingMentorIDKey, mentorID),
		zap.String(constvars.LoggingSlotIDKey, slotID),
		zap.Int(constvars.LoggingDayOfWeekKey, dayOfWeek),
	)
	return slot, nil
}

func (uc *slotAdmissionUsecase) UpdateWeeklySlot(ctx context.Context, slotID, mentorID string, request *requests.UpdateSlotTimes) error {
	startTime, endTime, err := uc.resolveRange(request.StartTime, request.EndTime)
	if err != nil {
		return err
	}

	slot, err := uc.loadOwnedWeeklySlot(ctx, slotID, mentorID)
	if err != nil {
		return err
	}

	unlock, err := uc.lockWeekday(ctx, mentorID, slot.DayOfWeek)
	if err != nil {
		return err
	}
	defer unlock()

	// The slot being edited must not be compared against itself.
	if err := uc.checkWeeklyOverlap(ctx, mentorID, slot.DayOfWeek, startTime, endTime, slot.ID); err != nil {
		return err
	}

	// Shrinking the range must not strand sessions already booked inside the
	// part being removed.
	for _, residual := range residualRanges(slot.StartTime, slot.EndTime, startTime, endTime) {
		count, err := uc.SessionRepo.CountUpcomingWeekly(ctx, mentorID, slot.DayOfWeek, residual.StartTime, residual.EndTime)
		if err != nil {
			return err
		}
		if count > 0 {
			return exceptions.ErrBookedSessionsInRange(count)
		}
	}

	slot.StartTime = startTime
	slot.EndTime = endTime
	slot.UpdatedAt = time.Now()
	return uc.WeeklyRepo.Update(ctx, slot)
}

func (uc *slotAdmissionUsecase) DeleteWeeklySlot(ctx context.Context, slotID, mentorID string) error {
	slot, err := uc.loadOwnedWeeklySlot(ctx, slotID, mentorID)
	if err != nil {
		return err
	}

	count, err := uc.SessionRepo.CountUpcomingWeekly(ctx, mentorID, slot.DayOfWeek, slot.StartTime, slot.EndTime)
	if err != nil {
		return err
	}
	if count > 0 {
		return exceptions.ErrBookedSessionsInRange(count)
	}

	if err := uc.WeeklyRepo.Delete(ctx, slot.ID); err != nil {
		return err
	}
	uc.Log.Info("weekly slot deleted",
		zap.String(constvars.LoggingMentorIDKey, mentorID),
		zap.String(constvars.LoggingSlotIDKey, slot.ID),
	)
	return nil
}

func (uc *slotAdmissionUsecase) ToggleWeeklySlot(ctx context.Context, slotID, mentorID string) error {
	slot, err := uc.loadOwnedWeeklySlot(ctx, slotID, mentorID)
	if err != nil {
		return err
	}

	slot.IsActive = !slot.IsActive
	slot.UpdatedAt = time.Now()
	return uc.WeeklyRepo.Update(ctx, slot)
}

func (uc *slotAdmissionUsecase) ToggleWeekday(ctx context.Context, mentorID string, dayOfWeek int, active bool) error {
	if dayOfWeek < constvars.MinWeekday || dayOfWeek > constvars.MaxWeekday {
		return exceptions.ErrInvalidWeekday(dayOfWeek)
	}

	if err := uc.WeeklyRepo.SetActiveForWeekday(ctx, mentorID, dayOfWeek, active); err != nil {
		return err
	}
	uc.Log.Info("weekday availability toggled",
		zap.String(constvars.LoggingMentorIDKey, mentorID),
		zap.Int(constvars.LoggingDayOfWeekKey, dayOfWeek),
		zap.Bool("active", active),
	)
	return nil
}

func (uc *slotAdmissionUsecase) AddDateOverrideSlot(ctx context.Context, mentorID string, request *requests.CreateDateOverrideSlot) (*models.DateOverrideSlot, error) {
	date, err := uc.parseDate(request.Date)
	if err != nil {
		return nil, err
	}

	startTime, endTime, err := uc.resolveRange(request.StartTime, request.EndTime)
	if err != nil {
		return nil, err
	}

	dayOfWeek := utils.WeekdayOf(date)
	unlockDay, err := uc.lockWeekday(ctx, mentorID, dayOfWeek)
	if err != nil {
		return nil, err
	}
	defer unlockDay()
	unlockDate, err := uc.lockDate(ctx, mentorID, date)
	if err != nil {
		return nil, err
	}
	defer unlockDate()

	// Overrides only add availability where no recurring rule already applies:
	// a range already covered weekly is a conflict, not a replacement.
	if err := uc.checkWeeklyOverlap(ctx, mentorID, dayOfWeek, startTime, endTime, ""); err != nil {
		return nil, err
	}
	if err := uc.checkOverrideOverlap(ctx, mentorID, date, startTime, endTime, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	slot := &models.DateOverrideSlot{
		MentorID:  mentorID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		TimeModel: models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}
	slotID, err := uc.OverrideRepo.Create(ctx, slot)
	if err != nil {
		return nil, err
	}
	slot.ID = slotID

	uc.Log.Info("date override slot created",
		zap.String(constvars.LoggingMentorIDKey, mentorID),
		zap.String(constvars.LoggingSlotIDKey, slotID),
		zap.Time(constvars.LoggingDateKey, date),
	)
	return slot, nil
}

func (uc *slotAdmissionUsecase) UpdateDateOverrideSlot(ctx context.Context, slotID, mentorID string, request *requests.UpdateSlotTimes) error {
	startTime, endTime, err := uc.resolveRange(request.StartTime, request.EndTime)
	if err != nil {
		return err
	}

	slot, err := uc.loadOwnedOverrideSlot(ctx, slotID, mentorID)
	if err != nil {
		return err
	}

	dayOfWeek := utils.WeekdayOf(slot.Date)
	unlockDay, err := uc.lockWeekday(ctx, mentorID, dayOfWeek)
	if err != nil {
		return err
	}
	defer unlockDay()
	unlockDate, err := uc.lockDate(ctx, mentorID, slot.Date)
	if err != nil {
		return err
	}
	defer unlockDate()

	// The weekly check is not self-excluded: the slot under edit lives in the
	// other store.
	if err := uc.checkWeeklyOverlap(ctx, mentorID, dayOfWeek, startTime, endTime, ""); err != nil {
		return err
	}
	if err := uc.checkOverrideOverlap(ctx, mentorID, slot.Date, startTime, endTime, slot.ID); err != nil {
		return err
	}

	for _, residual := range residualRanges(slot.StartTime, slot.EndTime, startTime, endTime) {
		count, err := uc.SessionRepo.CountOnDate(ctx, mentorID, slot.Date, residual.StartTime, residual.EndTime)
		if err != nil {
			return err
		}
		if count > 0 {
			return exceptions.ErrBookedSessionsInRange(count)
		}
	}

	slot.StartTime = startTime
	slot.EndTime = endTime
	slot.UpdatedAt = time.Now()
	return uc.OverrideRepo.Update(ctx, slot)
}

func (uc *slotAdmissionUsecase) DeleteDateOverrideSlot(ctx context.Context, slotID, mentorID string) error {
	slot, err := uc.loadOwnedOverrideSlot(ctx, slotID, mentorID)
	if err != nil {
		return err
	}

	count, err := uc.SessionRepo.CountOnDate(ctx, mentorID, slot.Date, slot.StartTime, slot.EndTime)
	if err != nil {
		return err
	}
	if count > 0 {
		return exceptions.ErrBookedSessionsInRange(count)
	}

	if err := uc.OverrideRepo.Delete(ctx, slot.ID); err != nil {
		return err
	}
	uc.Log.Info("date override slot deleted",
		zap.String(constvars.LoggingMentorIDKey, mentorID),
		zap.String(constvars.LoggingSlotIDKey, slot.ID),
	)
	return nil
}

// resolveRange validates both clock times, defaults a missing end to one hour
// after the start, and enforces start < end. Format failures never reach the
// store layer.
func (uc *slotAdmissionUsecase) resolveRange(startTime, endTime string) (string, string, error) {
	startMinutes, err := utils.ToMinutes(startTime)
	if err != nil {
		return "", "", err
	}
	if endTime == "" {
		endTime, err = utils.AddHours(startTime, constvars.DefaultSlotDurationHours)
		if err != nil {
			return "", "", err
		}
	}
	endMinutes, err := utils.ToMinutes(endTime)
	if err != nil {
		return "", "", err
	}
	if startMinutes >= endMinutes {
		return "", "", exceptions.ErrStartNotBeforeEnd(startTime, endTime)
	}
	return startTime, endTime, nil
}

func (uc *slotAdmissionUsecase) parseDate(value string) (time.Time, error) {
	date, err := time.Parse(constvars.CalendarDateLayout, value)
	if err != nil {
		return time.Time{}, exceptions.ErrCannotParseDate(err)
	}
	return utils.NormalizeDate(date), nil
}

func (uc *slotAdmissionUsecase) loadOwnedWeeklySlot(ctx context.Context, slotID, mentorID string) (*models.WeeklySlot, error) {
	slot, err := uc.WeeklyRepo.FindByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, exceptions.ErrSlotNotFound(slotID)
	}
	if slot.MentorID != mentorID {
		return nil, exceptions.ErrSlotNotOwned(slotID, mentorID)
	}
	return slot, nil
}

func (uc *slotAdmissionUsecase) loadOwnedOverrideSlot(ctx context.Context, slotID, mentorID string) (*models.DateOverrideSlot, error) {
	slot, err := uc.OverrideRepo.FindByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, exceptions.ErrSlotNotFound(slotID)
	}
	if slot.MentorID != mentorID {
		return nil, exceptions.ErrSlotNotOwned(slotID, mentorID)
	}
	return slot, nil
}

func (uc *slotAdmissionUsecase) checkWeeklyOverlap(ctx context.Context, mentorID string, dayOfWeek int, startTime, endTime, excludeSlotID string) error {
	conflicts, err := uc.WeeklyRepo.FindOverlapping(ctx, mentorID, dayOfWeek, startTime, endTime, excludeSlotID)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		ids := make([]string, 0, len(conflicts))
		for _, conflict := range conflicts {
			ids = append(ids, conflict.ID)
		}
		return exceptions.ErrSlotConflict(ids)
	}
	return nil
}

func (uc *slotAdmissionUsecase) checkOverrideOverlap(ctx context.Context, mentorID string, date time.Time, startTime, endTime, excludeSlotID string) error {
	conflicts, err := uc.OverrideRepo.FindOverlapping(ctx, mentorID, date, startTime, endTime, excludeSlotID)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		ids := make([]string, 0, len(conflicts))
		for _, conflict := range conflicts {
			ids = append(ids, conflict.ID)
		}
		return exceptions.ErrSlotConflict(ids)
	}
	return nil
}

// lockWeekday serializes admission writes on a (mentor, weekday) key so the
// read-validate-write sequence cannot interleave with another call for the
// same scope.
func (uc *slotAdmissionUsecase) lockWeekday(ctx context.Context, mentorID string, dayOfWeek int) (func(), error) {
	key := fmt.Sprintf(constvars.RedisKeyAdmissionWeekdayLockFormat, mentorID, dayOfWeek)
	return uc.lock(ctx, key)
}

func (uc *slotAdmissionUsecase) lockDate(ctx context.Context, mentorID string, date time.Time) (func(), error) {
	key := fmt.Sprintf(constvars.RedisKeyAdmissionDateLockFormat, mentorID, date.Format(constvars.CalendarDateLayout))
	return uc.lock(ctx, key)
}

func (uc *slotAdmissionUsecase) lock(ctx context.Context, key string) (func(), error) {
	ttl := time.Duration(uc.InternalConfig.App.AdmissionLockTTLInSeconds) * time.Second
	acquired, token, err := uc.Locker.TryLock(ctx, key, ttl)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrAdmissionBusy(key)
	}
	return func() {
		if err := uc.Locker.Unlock(ctx, key, token); err != nil {
			uc.Log.Warn("failed to release admission lock",
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}, nil
}

// residualRanges returns the parts of the old range not covered by the new
// one, as at most two half-open clock ranges.
func residualRanges(oldStart, oldEnd, newStart, newEnd string) []utils.TimeRange {
	var residuals []utils.TimeRange
	if oldStart < newStart {
		upper := newStart
		if oldEnd < upper {
			upper = oldEnd
		}
		residuals = append(residuals, utils.TimeRange{StartTime: oldStart, EndTime: upper})
	}
	if newEnd < oldEnd {
		lower := newEnd
		if oldStart > lower {
			lower = oldStart
		}
		residuals = append(residuals, utils.TimeRange{StartTime: lower, EndTime: oldEnd})
	}
	return residuals
}
