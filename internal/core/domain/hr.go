package domain

// Records mirrored from the HR backend. Field names follow the backend's wire
// format; the console never enforces referential integrity between them.

// JobType is a work area ("tipo de trabajo").
type JobType struct {
	ID   RecordID `json:"id"`
	Name string   `json:"nombre"`
}

// JobTypeOption is one entry of the job type enumeration offered on the
// public application form.
type JobTypeOption struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Worker is an employee record.
type Worker struct {
	ID        RecordID `json:"id"`
	FirstName string   `json:"nombre"`
	LastName  string   `json:"apellido,omitempty"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"telefono,omitempty"`
	Address   string   `json:"direccion,omitempty"`
	Area      string   `json:"area,omitempty"`
	CVURL     string   `json:"cvUrl,omitempty"`
	JobTypeID *int64   `json:"tipoTrabajoId,omitempty"`
	JobType   *JobType `json:"tipoTrabajo,omitempty"`
}

// Course is a training course workers can enroll in.
type Course struct {
	ID          RecordID `json:"id,omitempty"`
	Name        string   `json:"nombre"`
	Description string   `json:"descripcion"`
	Duration    string   `json:"duracion"`
	Areas       []string `json:"areas"`
}

// Enrollment links a worker to a course.
type Enrollment struct {
	ID          RecordID `json:"id"`
	Course      *Course  `json:"curso,omitempty"`
	Worker      *Worker  `json:"trabajador,omitempty"`
	CompletedOn string   `json:"fechaRealizacion,omitempty"`
}

// RequestStatus is the review state of a leave request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDIENTE"
	RequestApproved RequestStatus = "APROBADO"
	RequestRejected RequestStatus = "RECHAZADO"
)

// LeaveRequest is a leave or permission request ("solicitud").
type LeaveRequest struct {
	ID          RecordID      `json:"id"`
	Kind        string        `json:"tipo"`
	Description string        `json:"descripcion"`
	StartDate   string        `json:"fechaInicio"`
	EndDate     string        `json:"fechaFin"`
	Status      RequestStatus `json:"estado,omitempty"`
	WorkerID    *WorkerRef    `json:"trabajadorId,omitempty"`
	Worker      *Worker       `json:"trabajador,omitempty"`
}

// Applicant is a job candidate who applied through the public site.
type Applicant struct {
	ID      RecordID `json:"id"`
	Name    string   `json:"nombre"`
	Email   string   `json:"email"`
	Message string   `json:"mensaje,omitempty"`
	CVURL   string   `json:"cvUrl,omitempty"`
	JobType *JobType `json:"tipoTrabajo,omitempty"`
}

// UserAccount is a login account as listed by administrators.
type UserAccount struct {
	ID        RecordID `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Role      Role     `json:"role"`
	Phone     string   `json:"telefono,omitempty"`
	JobTypeID *int64   `json:"tipoTrabajoId,omitempty"`
	JobType   *JobType `json:"tipoTrabajo,omitempty"`
}
