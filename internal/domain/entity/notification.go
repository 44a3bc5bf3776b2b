package entity

import "time"

// NotificationKind selects the styling of a notification.
type NotificationKind string

const (
	NotificationInfo    NotificationKind = "info"
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a transient status message. At most one is active per view.
type Notification struct {
	Message  string           `json:"message"`
	Kind     NotificationKind `json:"kind"`
	IssuedAt time.Time        `json:"issuedAt"`
}

// Normalize maps unknown kinds to info.
func (k NotificationKind) Normalize() NotificationKind {
	switch k {
	case NotificationSuccess, NotificationError:
		return k
	default:
		return NotificationInfo
	}
}

// Title is the heading rendered above the message.
func (k NotificationKind) Title() string {
	switch k.Normalize() {
	case NotificationSuccess:
		return "Success!"
	case NotificationError:
		return "Error!"
	default:
		return "Info"
	}
}
