package responses

import "mentorin-service/internal/app/models"

// MentorRules is the raw recurring + override rule set a mentor edits against.
type MentorRules struct {
	Weekly    []models.WeeklySlot       `json:"weekly"`
	Overrides []models.DateOverrideSlot `json:"overrides"`
}

// BookableStartTimes lists every "HH:MM" start from which a contiguous run of
// one-hour slots covers the requested duration on the given date.
type BookableStartTimes struct {
	Date          string   `json:"date"`
	DurationHours int      `json:"durationHours"`
	StartTimes    []string `json:"startTimes"`
}
