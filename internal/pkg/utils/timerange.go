package utils

import (
	"fmt"
	"mentorin-service/internal/pkg/constvars"
	"mentorin-service/internal/pkg/exceptions"
	"regexp"
	"sort"
	"strconv"
	"time"
)

var clockTimeRegex = regexp.MustCompile(constvars.RegexClockTime)

// ToMinutes parses a zero-padded "HH:MM" wall-clock string into minutes since
// midnight. The zero padding matters: it is what makes lexicographic ordering
// of stored time strings agree with chronological ordering.
func ToMinutes(clockTime string) (int, error) {
	if !clockTimeRegex.MatchString(clockTime) {
		return 0, exceptions.ErrInvalidClockTime(clockTime)
	}
	hours, _ := strconv.Atoi(clockTime[:2])
	minutes, _ := strconv.Atoi(clockTime[3:])
	if hours > 23 || minutes > 59 {
		return 0, exceptions.ErrInvalidClockTime(clockTime)
	}
	return hours*constvars.MinutesPerHour + minutes, nil
}

// Overlaps reports whether two half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect. Ranges that merely touch at a boundary do not
// overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// ClockRangesOverlap is the "HH:MM" variant of Overlaps.
func ClockRangesOverlap(aStart, aEnd, bStart, bEnd string) (bool, error) {
	aStartMinutes, err := ToMinutes(aStart)
	if err != nil {
		return false, err
	}
	aEndMinutes, err := ToMinutes(aEnd)
	if err != nil {
		return false, err
	}
	bStartMinutes, err := ToMinutes(bStart)
	if err != nil {
		return false, err
	}
	bEndMinutes, err := ToMinutes(bEnd)
	if err != nil {
		return false, err
	}
	return Overlaps(aStartMinutes, aEndMinutes, bStartMinutes, bEndMinutes), nil
}

// AddHours returns the wall-clock time a number of hours after clockTime,
// wrapping to "00:00" when the result reaches or passes 24:00. Every bookable
// unit is exactly one hour, so this is how a slot's default end time derives
// from its start.
func AddHours(clockTime string, hours int) (string, error) {
	startMinutes, err := ToMinutes(clockTime)
	if err != nil {
		return "", err
	}
	totalMinutes := startMinutes + hours*constvars.MinutesPerHour
	if totalMinutes >= constvars.HoursPerDay*constvars.MinutesPerHour {
		return "00:00", nil
	}
	return FormatMinutes(totalMinutes), nil
}

// FormatMinutes renders minutes since midnight back into "HH:MM".
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/constvars.MinutesPerHour, minutes%constvars.MinutesPerHour)
}

// WeekdayOf maps a calendar date onto the 0=Sunday..6=Saturday convention
// used by weekly slots.
func WeekdayOf(date time.Time) int {
	return int(date.Weekday())
}

// NormalizeDate strips the time-of-day component so date-override matching is
// by calendar date only.
func NormalizeDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}

// CombineDateAndClock returns the instant at clockTime on the given calendar
// date, interpreted in loc.
func CombineDateAndClock(date time.Time, clockTime string, loc *time.Location) (time.Time, error) {
	minutes, err := ToMinutes(clockTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		minutes/constvars.MinutesPerHour, minutes%constvars.MinutesPerHour, 0, 0,
		loc,
	), nil
}

// TimeRange is the minimal sortable view of a slot used by the contiguity scan.
type TimeRange struct {
	StartTime string
	EndTime   string
}

// SortTimeRanges orders ranges ascending by start time. Zero-padded "HH:MM"
// strings sort lexicographically in chronological order.
func SortTimeRanges(ranges []TimeRange) {
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].StartTime < ranges[j].StartTime
	})
}
