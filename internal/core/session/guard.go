package session

import "github.com/Witch19/rrhh-console/internal/core/domain"

// IdentityReader is the read side of a Container.
type IdentityReader interface {
	CurrentIdentity() (domain.Identity, bool)
}

// Decision is the outcome of evaluating the route guard.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Evaluate lets a protected view through when an identity is present and
// redirects to publicEntry otherwise. Roles are not considered here.
func Evaluate(r IdentityReader, publicEntry string) Decision {
	if r != nil {
		if _, ok := r.CurrentIdentity(); ok {
			return Decision{Allow: true}
		}
	}
	return Decision{RedirectTo: publicEntry}
}
