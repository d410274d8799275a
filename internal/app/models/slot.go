package models

import "time"

type TimeModel struct {
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// WeeklySlot is a recurring one-hour availability rule bound to a day of week
// (0=Sunday .. 6=Saturday). Times are zone-less zero-padded "HH:MM" strings in
// the mentor's canonical time zone.
type WeeklySlot struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	MentorID  string `json:"mentorId" bson:"mentorId"`
	DayOfWeek int    `json:"dayOfWeek" bson:"dayOfWeek"`
	StartTime string `json:"startTime" bson:"startTime"`
	EndTime   string `json:"endTime" bson:"endTime"`
	IsActive  bool   `json:"isActive" bson:"isActive"`
	TimeModel `bson:",inline"`
}

// DateOverrideSlot is a one-off availability rule bound to a specific calendar
// date, additive to the weekly rules. Existence implies availability: there is
// no active flag, and the expiry reaper removes it once its end instant has
// passed. Date is stored normalized to midnight UTC.
type DateOverrideSlot struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	MentorID  string    `json:"mentorId" bson:"mentorId"`
	Date      time.Time `json:"date" bson:"date"`
	StartTime string    `json:"startTime" bson:"startTime"`
	EndTime   string    `json:"endTime" bson:"endTime"`
	TimeModel `bson:",inline"`
}
