package requests

type CreateWeeklySlot struct {
	DayOfWeek *int   `json:"dayOfWeek" validate:"required,gte=0,lte=6"`
	StartTime string `json:"startTime" validate:"required,clock_time"`
	// EndTime defaults to one hour after StartTime when omitted.
	EndTime string `json:"endTime" validate:"omitempty,clock_time"`
}

type CreateDateOverrideSlot struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required,clock_time"`
	EndTime   string `json:"endTime" validate:"omitempty,clock_time"`
}

// UpdateSlotTimes is the full replace of a slot's mutable time range, shared
// by weekly and date-override updates.
type UpdateSlotTimes struct {
	StartTime string `json:"startTime" validate:"required,clock_time"`
	EndTime   string `json:"endTime" validate:"required,clock_time"`
}

type ToggleWeekday struct {
	Active *bool `json:"active" validate:"required"`
}
