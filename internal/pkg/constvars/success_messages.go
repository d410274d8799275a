package constvars

const (
	// Weekly slot messages
	WeeklySlotCreatedSuccess = "weekly slot created successfully"
	WeeklySlotUpdatedSuccess = "weekly slot updated successfully"
	WeeklySlotDeletedSuccess = "weekly slot deleted successfully"
	WeeklySlotToggledSuccess = "weekly slot toggled successfully"
	WeekdayToggledSuccess    = "weekday availability toggled successfully"

	// Date override messages
	DateOverrideCreatedSuccess = "date override slot created successfully"
	DateOverrideUpdatedSuccess = "date override slot updated successfully"
	DateOverrideDeletedSuccess = "date override slot deleted successfully"

	// Query messages
	MentorRulesGetSuccess    = "get mentor availability rules successfully"
	BookableTimesGetSuccess  = "get bookable start times successfully"
)
