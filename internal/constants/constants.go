package constants

import "time"

const (
	DefaultStartingScore = 501
	DefaultLegsToWin     = 3
	DefaultCheckoutMode  = "double_out"
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 8
	DBMaxIdleConns    = 4
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	HubInboxSize          = 256
	SubscriberBuffer      = 32
	WebsocketWriteTimeout = 3 * time.Second
)

const (
	ScoreboardPollInterval = 5 * time.Second
	ScoreboardRedialDelay  = 2 * time.Second
)

const (
	ShutdownTimeout = 5 * time.Second
)
