package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":   "is required",
	"min":        "must be at least %s characters long",
	"max":        "maximum at %s characters long",
	"gte":        "must be greater than or equal to %s",
	"lte":        "must be less than or equal to %s",
	"numeric":    "must be a number",
	"datetime":   "must match the layout %s",
	"clock_time": "must be a wall-clock time in HH:MM format",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"gte":      true,
	"lte":      true,
	"datetime": true,
}

const (
	// Client-facing messages
	ErrClientCannotProcessRequest          = "Sorry, we cannot process your request"
	ErrClientSomethingWrongWithApplication = "Something is wrong with the application"
	ErrClientServerLongRespond             = "Server takes too long to respond"
	ErrClientNotAuthorized                 = "You are not authorized for this request"
	ErrClientNotLoggedIn                   = "You are not logged in"
	ErrClientInvalidTimeFormat             = "Time must be a wall-clock value in HH:MM format"
	ErrClientInvalidWeekday                = "Day of week must be between 0 (Sunday) and 6 (Saturday)"
	ErrClientInvalidTimeOrder              = "Start time must be before end time"
	ErrClientSlotConflict                  = "The requested time range overlaps an existing availability rule"
	ErrClientSlotNotFound                  = "The availability slot does not exist"
	ErrClientSlotNotOwned                  = "The availability slot belongs to another mentor"
	ErrClientAdmissionBusy                 = "Another change for this schedule is in progress, please retry"
	ErrClientSlotHasBookedSessions         = "The time range still has booked sessions inside it"
	ErrClientVacuousWeekdayToggle          = "Cannot enable a weekday that has no availability slots"
	ErrClientInvalidDuration               = "Duration must be at least one hour"

	// Dev messages
	ErrDevValidationFailed          = "Request validation failed"
	ErrDevInvalidInput              = "Invalid input"
	ErrDevCannotParseJSON           = "Failed to parse JSON request body"
	ErrDevCannotParseDate           = "Failed to parse calendar date"
	ErrDevInvalidClockTime          = "Clock time does not match HH:MM"
	ErrDevInvalidWeekday            = "Weekday outside 0..6"
	ErrDevStartNotBeforeEnd         = "startTime must sort strictly before endTime"
	ErrDevInvalidDuration           = "durationHours must be >= 1"
	ErrDevSlotOverlap               = "Proposed range overlaps existing slot(s)"
	ErrDevSlotNotFound              = "Slot document not found"
	ErrDevSlotOwnershipMismatch     = "Slot mentorId does not match requesting mentor"
	ErrDevAdmissionLockNotAcquired  = "Admission lock not acquired"
	ErrDevBookedSessionsInRange     = "Booked sessions exist inside the removed range"
	ErrDevServerDeadlineExceeded    = "Context deadline exceeded"
	ErrDevMissingRequestID          = "Request ID not found in context"
	ErrDevMissingMentorID           = "Mentor ID not found in context"
	ErrDevVacuousWeekdayToggle      = "Cannot activate a weekday with zero slots"
	ErrDevServerProcess             = "Unexpected server error"
	ErrDevAuthTokenMissing          = "Authorization token missing"
	ErrDevAuthTokenInvalid          = "Authorization token invalid"
	ErrDevAuthSigningMethod         = "Unexpected JWT signing method"
	ErrDevAuthInvalidSession        = "Session not found or expired"
	ErrDevAuthGenerateToken         = "Failed to generate JWT"

	// Mongo DB
	ErrDevDBFailedToFindDocument    = "MongoDB failed to find document"
	ErrDevDBFailedToInsertDocument  = "MongoDB failed to insert document"
	ErrDevDBFailedToUpdateDocument  = "MongoDB failed to update document"
	ErrDevDBFailedToDeleteDocument  = "MongoDB failed to delete document"
	ErrDevDBFailedToIterateDocuments = "MongoDB failed to iterate documents"
	ErrDevDBStringNotObjectID       = "String is not a valid ObjectID"

	// Redis
	ErrDevRedisGetData   = "Redis failed to get data"
	ErrDevRedisSetData   = "Redis failed to set data"
	ErrDevRedisDeleteData = "Redis failed to delete data"
	ErrDevRedisSetNX     = "Redis failed to execute SETNX"
	ErrDevRedisExpire    = "Redis failed to set key expiration"
	ErrDevRedisUnlock    = "Redis lock release failed"

	ResponseUnknown = "unknown"
)
