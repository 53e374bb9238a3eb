package pool

import "time"

type Config struct {
	InitialSize   int
	MaxSize       int
	DialTimeout   time.Duration
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// DefaultConfig is a small pool suitable for a single-process client.
func DefaultConfig() Config {
	return Config{
		InitialSize:   1,
		MaxSize:       8,
		DialTimeout:   5 * time.Second,
		ReadTimeout:   3 * time.Second,
		WriteTimeout:  3 * time.Second,
		IdleTimeout:   5 * time.Minute,
		RetryAttempts: 3,
		RetryDelay:    50 * time.Millisecond,
	}
}
