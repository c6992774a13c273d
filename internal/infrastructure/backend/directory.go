package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Witch19/rrhh-console/internal/core/domain"
	"github.com/Witch19/rrhh-console/internal/core/ports"
)

// --- Workers (/trabajador) ---

func (s *Session) ListWorkers(ctx context.Context) ([]domain.Worker, error) {
	var out []domain.Worker
	if err := s.doJSON(ctx, http.MethodGet, s.endpoint("trabajador"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) GetWorker(ctx context.Context, id string) (*domain.Worker, error) {
	var out domain.Worker
	if err := s.doJSON(ctx, http.MethodGet, s.endpoint("trabajador", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateWorker(ctx context.Context, w domain.Worker) (*domain.Worker, error) {
	var out domain.Worker
	if err := s.doJSON(ctx, http.MethodPost, s.endpoint("trabajador"), w, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateWorker(ctx context.Context, id string, w domain.Worker) (*domain.Worker, error) {
	var out domain.Worker
	if err := s.doJSON(ctx, http.MethodPatch, s.endpoint("trabajador", id), w, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteWorker(ctx context.Context, id string) error {
	return s.doJSON(ctx, http.MethodDelete, s.endpoint("trabajador", id), nil, nil)
}

// --- Courses (/curso) ---

func (s *Session) ListCourses(ctx context.Context) ([]domain.Course, error) {
	var out []domain.Course
	if err := s.doJSON(ctx, http.MethodGet, s.endpoint("curso"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) CreateCourse(ctx context.Context, c domain.Course) (*domain.Course, error) {
	var out domain.Course
	if err := s.doJSON(ctx, http.MethodPost, s.endpoint("curso"), c, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateCourse(ctx context.Context, id string, c domain.Course) (*domain.Course, error) {
	var out domain.Course
	if err := s.doJSON(ctx, http.MethodPut, s.endpoint("curso", id), c, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteCourse(ctx context.Context, id string) error {
	return s.doJSON(ctx, http.MethodDelete, s.endpoint("curso", id), nil, nil)
}

// --- Enrollments (/cursos-trabajadores) ---

type enrollRequest struct {
	CourseID any              `json:"cursoId"`
	WorkerID domain.WorkerRef `json:"trabajadorId"`
	Date     string           `json:"fechaRealizacion,omitempty"`
}

func (s *Session) ListEnrollments(ctx context.Context) ([]domain.Enrollment, error) {
	var out []domain.Enrollment
	if err := s.doJSON(ctx, http.MethodGet, s.endpoint("cursos-trabajadores"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) Enroll(ctx context.Context, courseID string, worker domain.WorkerRef, date string) (*domain.Enrollment, error) {
	var out domain.Enrollment
	body := enrollRequest{CourseID: idValue(courseID), WorkerID: worker, Date: date}
	if err := s.doJSON(ctx, http.MethodPost, s.endpoint("cursos-trabajadores", "inscribir"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteEnrollment(ctx context.Context, id string) error {
	return s.doJSON(ctx, http.MethodDelete, s.endpoint("cursos-trabajadores", id), nil, nil)
}

// --- Leave requests (/solicitudes) ---

func (s *Session) ListRequests(ctx context.Context) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	if err := s.doJSON(ctx, http.MethodGet, s.endpoint("solicitudes"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) CreateRequest(ctx context.Context, r domain.LeaveRequest) (*domain.LeaveRequest, error) {
	var out domain.LeaveRequest
	if err := s.doJSON(ctx, http.MethodPost, s.endpoint("solicitudes"), r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) SetRequestStatus(ctx context.Context, id string, status domain.RequestStatus) error {
	body := map[string]domain.RequestStatus{"estado": status}
	return s.doJSON(ctx, http.MethodPut, s.endpoint("solicitudes", id), body, nil)
}

func (s *Session) DeleteRequest(ctx context.Context, id string) error {
	return s.doJSON(ctx, http.MethodDelete, s.endpoint("solicitudes", id), nil, nil)
}

// --- Applicants (/aspirante) ---

func (s *Session) ListApplicants(ctx context.Context) ([]domain.Applicant, error) {
	var out []domain.Applicant
	if err := s.doJSON(ctx, http.MethodGet, s.endpoint("aspirante"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateApplicant forwards an application as multipart/form-data, the only
// encoding the backend accepts for it because of the CV upload.
func (s *Session) CreateApplicant(ctx context.Context, in ports.ApplicationInput) (*domain.Applicant, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"nombre", in.Name},
		{"email", in.Email},
		{"tipoTrabajo", in.JobType},
		{"mensaje", in.Message},
	}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("encode application: %w", err)
		}
	}
	if in.CV != nil {
		name := in.CVFilename
		if name == "" {
			name = "cv.pdf"
		}
		part, err := mw.CreateFormFile("cv", name)
		if err != nil {
			return nil, fmt.Errorf("encode application: %w", err)
		}
		if _, err := io.Copy(part, in.CV); err != nil {
			return nil, fmt.Errorf("encode application: copy cv: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("encode application: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint("aspirante"), &buf)
	if err != nil {
		return nil, fmt.Errorf("build application: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out domain.Applicant
	if err := s.send(req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteApplicant(ctx context.Context, id string) error {
	return s.doJSON(ctx, http.MethodDelete, s.endpoint("aspirante", id), nil, nil)
}

// --- Job types (/tipo-trabajo) ---

func (s *Session) ListJobTypes(ctx context.Context) ([]domain.JobType, error) {
	var out []domain.JobType
	if err := s.doJSON(ctx, http.MethodGet, s.endpoint("tipo-trabajo"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) ListJobTypeOptions(ctx context.Context) ([]domain.JobTypeOption, error) {
	var out []domain.JobTypeOption
	if err := s.doJSON(ctx, http.MethodGet, s.endpoint("tipo-trabajo", "enum"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Accounts (/auth) ---

func (s *Session) ListUsers(ctx context.Context) ([]domain.UserAccount, error) {
	var out []domain.UserAccount
	if err := s.doJSON(ctx, http.MethodGet, s.endpoint("auth"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) UpdateUser(ctx context.Context, id string, u domain.UserAccount) error {
	return s.doJSON(ctx, http.MethodPut, s.endpoint("auth", id), u, nil)
}

func (s *Session) DeleteUser(ctx context.Context, id string) error {
	return s.doJSON(ctx, http.MethodDelete, s.endpoint("auth", id), nil, nil)
}
