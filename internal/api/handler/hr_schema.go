package handler

import "github.com/Witch19/rrhh-console/internal/core/domain"

type workerRequest struct {
	FirstName string `json:"nombre"        validate:"required"`
	LastName  string `json:"apellido"`
	Email     string `json:"email"         validate:"omitempty,email"`
	Phone     string `json:"telefono"`
	Address   string `json:"direccion"`
	Area      string `json:"area"`
	JobTypeID *int64 `json:"tipoTrabajoId" validate:"omitempty,gt=0"`
}

func (r workerRequest) toDomain() domain.Worker {
	return domain.Worker{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
		Area:      r.Area,
		JobTypeID: r.JobTypeID,
	}
}

type courseRequest struct {
	Name        string   `json:"nombre"      validate:"required"`
	Description string   `json:"descripcion" validate:"required"`
	Duration    string   `json:"duracion"    validate:"required"`
	Areas       []string `json:"areas"`
}

func (r courseRequest) toDomain() domain.Course {
	areas := r.Areas
	if areas == nil {
		areas = []string{}
	}
	return domain.Course{Name: r.Name, Description: r.Description, Duration: r.Duration, Areas: areas}
}

type enrollRequest struct {
	CourseID string            `json:"cursoId"          validate:"required"`
	WorkerID *domain.WorkerRef `json:"trabajadorId"`
	Date     string            `json:"fechaRealizacion" validate:"omitempty,datetime=2006-01-02"`
}

type leaveRequest struct {
	Kind        string            `json:"tipo"         validate:"required"`
	Description string            `json:"descripcion"`
	StartDate   string            `json:"fechaInicio"  validate:"required,datetime=2006-01-02"`
	EndDate     string            `json:"fechaFin"     validate:"required,datetime=2006-01-02"`
	WorkerID    *domain.WorkerRef `json:"trabajadorId"`
}

func (r leaveRequest) toDomain() domain.LeaveRequest {
	return domain.LeaveRequest{
		Kind:        r.Kind,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		WorkerID:    r.WorkerID,
	}
}

type reviewRequest struct {
	Status string `json:"estado" validate:"required,request_status"`
}

type applicantRequest struct {
	Name    string `form:"nombre"      validate:"required"`
	Email   string `form:"email"       validate:"required,email"`
	JobType string `form:"tipoTrabajo" validate:"required"`
	Message string `form:"mensaje"`
}

type userUpdateRequest struct {
	Username  string `json:"username"      validate:"required"`
	Email     string `json:"email"         validate:"required,email"`
	Role      string `json:"role"          validate:"required,oneof=TRABAJADOR ADMIN"`
	Phone     string `json:"telefono"`
	JobTypeID *int64 `json:"tipoTrabajoId" validate:"omitempty,gt=0"`
}

func (r userUpdateRequest) toDomain() domain.UserAccount {
	return domain.UserAccount{
		Username:  r.Username,
		Email:     r.Email,
		Role:      domain.Role(r.Role),
		Phone:     r.Phone,
		JobTypeID: r.JobTypeID,
	}
}
