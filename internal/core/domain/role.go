package domain

import "strings"

// Role is the role string exactly as the HR backend issued it. The raw value
// is kept so that a persisted identity round-trips unchanged; every decision
// goes through Kind or Can instead of comparing literals.
type Role string

// RoleKind is the closed set of roles the console branches on.
type RoleKind int

const (
	RoleWorker RoleKind = iota
	RoleAdministrator
)

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "TRABAJADOR"
)

func (k RoleKind) String() string {
	if k == RoleAdministrator {
		return "administrator"
	}
	return "worker"
}

// Kind normalizes the server value. "ADMIN", "admin", "Admin" and
// "administrator" all map to RoleAdministrator; anything else is a worker.
func (r Role) Kind() RoleKind {
	switch strings.ToLower(strings.TrimSpace(string(r))) {
	case "admin", "administrator", "administrador":
		return RoleAdministrator
	default:
		return RoleWorker
	}
}

// Capability names an action gated by role.
type Capability string

const (
	CapViewDashboard    Capability = "dashboard:view"
	CapViewDirectory    Capability = "directory:view"
	CapSubmitRequests   Capability = "requests:submit"
	CapReviewRequests   Capability = "requests:review"
	CapManageWorkers    Capability = "workers:manage"
	CapManageCourses    Capability = "courses:manage"
	CapManageApplicants Capability = "applicants:manage"
	CapManageUsers      Capability = "users:manage"
)

var workerCapabilities = map[Capability]struct{}{
	CapViewDashboard:  {},
	CapViewDirectory:  {},
	CapSubmitRequests: {},
}

// Can reports whether the role holds the capability. Administrators hold all
// of them.
func (r Role) Can(c Capability) bool {
	if r.Kind() == RoleAdministrator {
		return true
	}
	_, ok := workerCapabilities[c]
	return ok
}
