package port

import "time"

// MetricsRecorder collects service metrics.
type MetricsRecorder interface {
	WalletConnect(outcome string)
	TokenCreation(outcome string, duration time.Duration)
	Notification(kind string)
	ActiveSessions(count int)
	HTTPRequest(method, route string, status int, duration time.Duration)
}
