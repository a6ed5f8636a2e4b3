package model

import "time"

// NotificationKind is the severity of a transient message.
type NotificationKind string

const (
	NotifInfo    NotificationKind = "INFO"
	NotifSuccess NotificationKind = "SUCCESS"
	NotifWarning NotificationKind = "WARNING"
	NotifError   NotificationKind = "ERROR"
)

// Valid reports whether k is a known kind.
func (k NotificationKind) Valid() bool {
	switch k {
	case NotifInfo, NotifSuccess, NotifWarning, NotifError:
		return true
	}
	return false
}

// Notification is an ephemeral per-user message produced as a side
// effect of a synchronization operation. Notifications live only for
// the process lifetime and are lost on restart.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Message   string           `json:"message"`
	Kind      NotificationKind `json:"kind"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
