package models

import "time"

// ActivityMessage is published to the activity exchange for audit trails.
type ActivityMessage struct {
	UserID      int64             `json:"user_id,omitempty"`
	SessionID   int64             `json:"session_id,omitempty"`
	Email       string            `json:"email,omitempty"`
	ServiceName string            `json:"service_name"`
	Action      string            `json:"action"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// Activity action constants
const (
	ActionLogin         = "login"
	ActionRegister      = "register"
	ActionParticipate   = "participate"
	ActionUnparticipate = "unparticipate"
	ActionUserDeleted   = "user_deleted"
)

// Service name constants
const (
	ServiceAuth    = "classbook.handler.auth"
	ServiceSession = "classbook.service.session"
	ServiceUser    = "classbook.service.user"
)
