package ports

import (
	"context"
	"io"

	"github.com/Witch19/rrhh-console/internal/core/domain"
)

// AuthPayload is the answer of the authentication endpoint.
type AuthPayload struct {
	User  *domain.Identity
	Token string
}

// RegisterInput carries a sign-up or an account created by an administrator.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Role      domain.Role
	Phone     string
	Address   string
	JobTypeID int64
}

// AuthGateway is the authentication surface of the HR backend.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*AuthPayload, error)
	Register(ctx context.Context, in RegisterInput) error
	Profile(ctx context.Context) (*domain.Identity, error)
	UpdateProfile(ctx context.Context, username, email string) (*domain.Identity, error)
}

// ApplicationInput is a candidate application with its optional CV upload.
type ApplicationInput struct {
	Name       string
	Email      string
	JobType    string
	Message    string
	CVFilename string
	CV         io.Reader
}

// DirectoryGateway covers the HR records proxied by the console.
type DirectoryGateway interface {
	ListWorkers(ctx context.Context) ([]domain.Worker, error)
	GetWorker(ctx context.Context, id string) (*domain.Worker, error)
	CreateWorker(ctx context.Context, w domain.Worker) (*domain.Worker, error)
	UpdateWorker(ctx context.Context, id string, w domain.Worker) (*domain.Worker, error)
	DeleteWorker(ctx context.Context, id string) error

	ListCourses(ctx context.Context) ([]domain.Course, error)
	CreateCourse(ctx context.Context, c domain.Course) (*domain.Course, error)
	UpdateCourse(ctx context.Context, id string, c domain.Course) (*domain.Course, error)
	DeleteCourse(ctx context.Context, id string) error

	ListEnrollments(ctx context.Context) ([]domain.Enrollment, error)
	Enroll(ctx context.Context, courseID string, worker domain.WorkerRef, date string) (*domain.Enrollment, error)
	DeleteEnrollment(ctx context.Context, id string) error

	ListRequests(ctx context.Context) ([]domain.LeaveRequest, error)
	CreateRequest(ctx context.Context, r domain.LeaveRequest) (*domain.LeaveRequest, error)
	SetRequestStatus(ctx context.Context, id string, status domain.RequestStatus) error
	DeleteRequest(ctx context.Context, id string) error

	ListApplicants(ctx context.Context) ([]domain.Applicant, error)
	CreateApplicant(ctx context.Context, in ApplicationInput) (*domain.Applicant, error)
	DeleteApplicant(ctx context.Context, id string) error

	ListJobTypes(ctx context.Context) ([]domain.JobType, error)
	ListJobTypeOptions(ctx context.Context) ([]domain.JobTypeOption, error)

	ListUsers(ctx context.Context) ([]domain.UserAccount, error)
	UpdateUser(ctx context.Context, id string, u domain.UserAccount) error
	DeleteUser(ctx context.Context, id string) error
}

// Backend is the session-bound view of the HR backend.
type Backend interface {
	AuthGateway
	DirectoryGateway
}

// BackendFactory binds the HR backend client to one session's credentials.
type BackendFactory interface {
	ForSession(store CredentialStore) Backend
}
