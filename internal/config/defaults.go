package config

import "time"

// DefaultAPIBaseURL points at the production ThinkFirst backend.
const DefaultAPIBaseURL = "https://api.thinkfirst.app/api"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),

		API: APIConfig{
			BaseURL: DefaultAPIBaseURL,
			Timeout: 30 * time.Second,
		},

		Sync: SyncConfig{
			RetentionDays:   30,
			SubmitPerSecond: 5,
		},
	}
}
