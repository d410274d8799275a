package config

type InternalConfig struct {
	App    App
	JWT    JWT
	Reaper Reaper
}

type App struct {
	Env                       string
	Port                      string
	Version                   string
	Timezone                  string
	EndpointPrefix            string
	MaxRequests               int
	ShutdownTimeoutInSeconds  int
	AdmissionLockTTLInSeconds int
}

type JWT struct {
	Secret        string
	ExpTimeInHour int
}

type Reaper struct {
	// CronSpec is validated at startup; the worker falls back to @hourly when
	// it cannot be parsed.
	CronSpec              string
	LeaderLockTTLInSeconds int
}
