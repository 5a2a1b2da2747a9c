package validatediningslots

import "time"

// Config holds the orchestrator's runtime settings.
type Config struct {
	// EnqueueTimeout bounds the fire-and-forget queue submission.
	EnqueueTimeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		EnqueueTimeout: 5 * time.Second,
	}
}
