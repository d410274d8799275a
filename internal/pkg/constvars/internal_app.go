package constvars

type contextKey string

const (
	CONTEXT_REQUEST_ID_KEY          = contextKey("request_id")
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY = contextKey("is_client_request_id")
	CONTEXT_MENTOR_ID_KEY           = contextKey("mentor_id")
)

const (
	MongoCollectionWeeklySlots       = "weekly_slots"
	MongoCollectionDateOverrideSlots = "date_override_slots"
	MongoCollectionSessions          = "sessions"
)

const (
	// ClockTimeLayout is the wall-clock layout used by every slot time field.
	ClockTimeLayout = "15:04"
	// CalendarDateLayout is the layout for date-override calendar dates.
	CalendarDateLayout = "2006-01-02"

	// DefaultSlotDurationHours is the length of one bookable unit.
	DefaultSlotDurationHours = 1

	MinutesPerHour = 60
	HoursPerDay    = 24
	MinWeekday     = 0
	MaxWeekday     = 6
)

const (
	URLParamSlotID    = "slotID"
	URLParamDayOfWeek = "dayOfWeek"

	QueryParamMentorID      = "mentor_id"
	QueryParamDate          = "date"
	QueryParamDurationHours = "duration_hours"
)

const (
	// Admission lock key formats: mentor id plus the weekday or calendar date scope.
	RedisKeyAdmissionWeekdayLockFormat = "admission:%s:dow:%d"
	RedisKeyAdmissionDateLockFormat    = "admission:%s:date:%s"
	RedisKeyReaperLeaderLock           = "reaper:leader"
	RedisKeySessionFormat              = "session:%s"
)
