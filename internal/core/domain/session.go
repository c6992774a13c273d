package domain

import "time"

// SessionState is the label of the identity state machine.
type SessionState string

const (
	StateAnonymous     SessionState = "anonymous"
	StateAuthenticated SessionState = "authenticated"
)

// ChangeReason says which operation produced a state change.
type ChangeReason string

const (
	ReasonLogin   ChangeReason = "login"
	ReasonProfile ChangeReason = "profile"
	ReasonLogout  ChangeReason = "logout"
	ReasonExpired ChangeReason = "expired"
	ReasonCorrupt ChangeReason = "corrupt"
)

// SessionChange is delivered to container subscribers after every transition.
type SessionChange struct {
	SessionID string
	From      SessionState
	To        SessionState
	Reason    ChangeReason
	// Identity is the identity after the change; nil when To is anonymous.
	Identity *Identity
	At       time.Time
}
