package models

const (
	// UserIDHeader carries the acting user id on HTTP requests and gRPC metadata.
	UserIDHeader = "X-Sharer-User-Id"

	// DefaultRateLimitRequests requests allowed per user in one window
	DefaultRateLimitRequests = 120

	// DefaultRateLimitWindow window of the per-user budget
	DefaultRateLimitWindow = 60 // 1 минута в секундах

	// DefaultBackupRetentionDays how long backup files are kept
	DefaultBackupRetentionDays = 7
)
