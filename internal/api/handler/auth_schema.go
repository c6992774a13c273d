package handler

import "github.com/Witch19/rrhh-console/internal/core/domain"

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type registerRequest struct {
	Username        string `json:"username"        form:"username"        validate:"required"`
	Email           string `json:"email"           form:"email"           validate:"required,email"`
	Password        string `json:"password"        form:"password"        validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"omitempty,eqfield=Password"`
	Role            string `json:"role"            form:"role"            validate:"omitempty,oneof=TRABAJADOR ADMIN"`
	Phone           string `json:"telefono"        form:"telefono"`
	Address         string `json:"direccion"       form:"direccion"`
	JobTypeID       int64  `json:"tipoTrabajoId"   form:"tipoTrabajoId"   validate:"omitempty,gt=0"`
}

type profileRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
}

// sessionResponse describes the identity of the calling browser session.
type sessionResponse struct {
	Authenticated bool              `json:"authenticated"`
	User          *domain.Identity  `json:"user,omitempty"`
	Menu          []domain.MenuItem `json:"menu,omitempty"`
}

type userResponse struct {
	User domain.Identity `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func newSessionResponse(identity domain.Identity, ok bool) sessionResponse {
	if !ok {
		return sessionResponse{}
	}
	return sessionResponse{
		Authenticated: true,
		User:          &identity,
		Menu:          domain.MenuFor(identity),
	}
}
