package availability

import (
	"context"
	"mentorin-service/internal/app/contracts"
	"mentorin-service/internal/pkg/constvars"
	"mentorin-service/internal/pkg/dto/responses"
	"mentorin-service/internal/pkg/exceptions"
	"mentorin-service/internal/pkg/utils"
	"sort"
	"time"

	"go.uber.org/zap"
)

type availabilityQueryUsecase struct {
	Log          *zap.Logger
	WeeklyRepo   contracts.WeeklySlotRepository
	OverrideRepo contracts.DateOverrideSlotRepository
}

func NewAvailabilityQueryUsecase(
	logger *zap.Logger,
	weeklyRepo contracts.WeeklySlotRepository,
	overrideRepo contracts.DateOverrideSlotRepository,
) contracts.AvailabilityQueryUsecase {
	return &availabilityQueryUsecase{
		Log:          logger,
		WeeklyRepo:   weeklyRepo,
		OverrideRepo: overrideRepo,
	}
}

func (uc *availabilityQueryUsecase) ListMentorRules(ctx context.Context, mentorID string) (*responses.MentorRules, error) {
	weekly, err := uc.WeeklyRepo.FindAllByMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	overrides, err := uc.OverrideRepo.FindAllByMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	return &responses.MentorRules{Weekly: weekly, Overrides: overrides}, nil
}

// FindBookableStartTimes returns every start from which durationHours
// consecutive one-hour slots exist on the requested date. Weekly rules and
// date overrides are scanned independently: a run never mixes the two, since
// an override only exists where no weekly rule covers the range.
func (uc *availabilityQueryUsecase) FindBookableStartTimes(ctx context.Context, mentorID string, date time.Time, durationHours int) ([]string, error) {
	if durationHours < 1 {
		return nil, exceptions.ErrInvalidDuration(durationHours)
	}

	day := utils.NormalizeDate(date)

	weekly, err := uc.WeeklyRepo.FindByMentorAndDay(ctx, mentorID, utils.WeekdayOf(day), true)
	if err != nil {
		return nil, err
	}
	overrides, err := uc.OverrideRepo.FindByMentorAndDate(ctx, mentorID, day)
	if err != nil {
		return nil, err
	}

	weeklyRanges := make([]utils.TimeRange, 0, len(weekly))
	for _, slot := range weekly {
		weeklyRanges = append(weeklyRanges, utils.TimeRange{StartTime: slot.StartTime, EndTime: slot.EndTime})
	}
	overrideRanges := make([]utils.TimeRange, 0, len(overrides))
	for _, slot := range overrides {
		overrideRanges = append(overrideRanges, utils.TimeRange{StartTime: slot.StartTime, EndTime: slot.EndTime})
	}

	startTimes := append(contiguousStarts(weeklyRanges, durationHours), contiguousStarts(overrideRanges, durationHours)...)
	sort.Strings(startTimes)
	return startTimes, nil
}

// contiguousStarts slides a window of durationHours one-hour units over the
// sorted ranges. Every unit in the window must span exactly sixty minutes and
// each one must start exactly where the previous one ends.
func contiguousStarts(ranges []utils.TimeRange, durationHours int) []string {
	startTimes := []string{}
	if len(ranges) < durationHours {
		return startTimes
	}
	utils.SortTimeRanges(ranges)
	for i := 0; i+durationHours <= len(ranges); i++ {
		contiguous := true
		for j := i; j < i+durationHours; j++ {
			if !isHourUnit(ranges[j]) || (j > i && ranges[j].StartTime != ranges[j-1].EndTime) {
				contiguous = false
				break
			}
		}
		if contiguous {
			startTimes = append(startTimes, ranges[i].StartTime)
		}
	}
	return startTimes
}

func isHourUnit(timeRange utils.TimeRange) bool {
	startMinutes, err := utils.ToMinutes(timeRange.StartTime)
	if err != nil {
		return false
	}
	endMinutes, err := utils.ToMinutes(timeRange.EndTime)
	if err != nil {
		return false
	}
	return endMinutes-startMinutes == constvars.MinutesPerHour
}
