package config

import (
	"time"
)

type SecurityConfig interface {
	GetMaxSessionIdle() time.Duration
	GetSessionSweepInterval() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetMaxSessionIdle returns the sliding idle timeout for sessions. Any
// authorised request resets the clock.
func (Security) GetMaxSessionIdle() time.Duration {
	return durationEnv("SESSION_TIMEOUT_MINUTES", 30*time.Minute)
}

// GetSessionSweepInterval returns how often expired sessions are swept from
// memory. Zero disables the sweeper; expiry is then enforced lazily only.
func (Security) GetSessionSweepInterval() time.Duration {
	return durationEnv("SESSION_SWEEP_MINUTES", 5*time.Minute)
}

func durationEnv(envVar string, defaultValue time.Duration) time.Duration {
	value := GetEnv(envVar, "")
	if value == "" {
		return defaultValue
	}
	minutes, err := time.ParseDuration(value + "m")
	if err != nil {
		return defaultValue
	}
	return minutes
}
