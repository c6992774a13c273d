package domain

import "strings"

// WorkerRef links a non-administrator account to its worker record.
type WorkerRef int64

// Identity models the principal currently using the console.
//
// The JSON shape mirrors the user object returned by the HR backend, so it is
// also the format persisted under the "user" credential key.
type Identity struct {
	ID       RecordID   `json:"id"`
	Username string     `json:"username,omitempty"`
	Email    string     `json:"email,omitempty"`
	Role     Role       `json:"role"`
	WorkerID *WorkerRef `json:"trabajadorId,omitempty"`
}

// Valid reports whether the identity carries the one field that is required
// once authenticated.
func (i Identity) Valid() bool {
	return strings.TrimSpace(string(i.ID)) != ""
}

// IsAdmin is shorthand for Role.Kind() == RoleAdministrator.
func (i Identity) IsAdmin() bool {
	return i.Role.Kind() == RoleAdministrator
}

// Can reports whether the identity holds the capability.
func (i Identity) Can(c Capability) bool {
	return i.Role.Can(c)
}

// WithProfile returns a copy with the display fields replaced. ID, role and
// worker link are never touched by a profile update.
func (i Identity) WithProfile(username, email string) Identity {
	out := i.Clone()
	out.Username = username
	out.Email = email
	return out
}

// Clone returns a deep copy.
func (i Identity) Clone() Identity {
	out := i
	if i.WorkerID != nil {
		ref := *i.WorkerID
		out.WorkerID = &ref
	}
	return out
}
