package constvars

const (
	// RegexClockTime matches the zero-padded wall-clock format used by every slot.
	RegexClockTime = `^\d{2}:\d{2}$`
)
