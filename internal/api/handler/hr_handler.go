package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Witch19/rrhh-console/internal/core/domain"
	"github.com/Witch19/rrhh-console/internal/core/ports"
	"github.com/Witch19/rrhh-console/internal/core/session"
)

// HRService is the HR directory as seen by one session.
type HRService interface {
	Backend(c *session.Container) ports.DirectoryGateway
	SubmitRequest(ctx context.Context, c *session.Container, r domain.LeaveRequest) (*domain.LeaveRequest, error)
	ReviewRequest(ctx context.Context, c *session.Container, id string, status domain.RequestStatus) error
}

// HRHandler proxies the HR directory. Capability checks are attached to the
// routes; the handler only enforces record ownership for workers.
type HRHandler struct {
	service HRService
}

func NewHRHandler(service HRService) *HRHandler {
	return &HRHandler{service: service}
}

func (h *HRHandler) backend(c echo.Context) (ports.DirectoryGateway, error) {
	container, err := ctxSession(c)
	if err != nil {
		return nil, err
	}
	return h.service.Backend(container), nil
}

// --- Workers ---

// ListWorkers handles GET /api/workers.
//
// @Summary      List workers
// @Tags         workers
// @Produce      json
// @Success      200  {array}   domain.Worker
// @Failure      401  {object}  errorResponse
// @Router       /api/workers [get]
func (h *HRHandler) ListWorkers(c echo.Context) error {
	b, err := h.backend(c)
	if err != nil {
		return err
	}
	workers, err := b.ListWorkers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workers)
}

// GetWorker handles GET /api/workers/:id.
//
// @Summary      Get a worker
// @Tags         workers
// @Produce      json
// @Param        id   path      string  true  "Worker id"
// @Success      200  {object}  domain.Worker
// @Failure      404  {object}  errorResponse
// @Router       /api/workers/{id} [get]
func (h *HRHandler) GetWorker(c echo.Context) error {
	b, err := h.backend(c)
	if err != nil {
		return err
	}
	worker, err := b.GetWorker(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, worker)
}

// CreateWorker handles POST /api/workers.
//
// @Summary      Create a worker
// @Tags         workers
// @Accept       json
// @Produce      json
// @Param        body  body      workerRequest  true  "Worker"
// @Success      201   {object}  domain.Worker
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/workers [post]
func (h *HRHandler) CreateWorker(c echo.Context) error {
	var req workerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	b, err := h.backend(c)
	if err != nil {
		return err
	}
	worker, err := b.CreateWorker(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, worker)
}

// UpdateWorker handles PATCH /api/workers/:id.
//
// @Summary      Update a worker
// @Tags         workers
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Worker id"
// @Param        body  body      workerRequest  true  "Worker"
// @Success      200   {object}  domain.Worker
// @Router       /api/workers/{id} [patch]
func (h *HRHandler) UpdateWorker(c echo.Context) error {
	var req workerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	b, err := h.backend(c)
	if err != nil {
		return err
	}
	worker, err := b.UpdateWorker(c.Request().Context(), c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, worker)
}

// DeleteWorker handles DELETE /api/workers/:id.
//
// @Summary      Delete a worker
// @Tags         workers
// @Param        id   path  string  true  "Worker id"
// @Success      204
// @Router       /api/workers/{id} [delete]
func (h *HRHandler) DeleteWorker(c echo.Context) error {
	b, err := h.backend(c)
	if err != nil {
		return err
	}
	if err := b.DeleteWorker(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Courses ---

// ListCourses handles GET /api/courses.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Success      200  {array}  domain.Course
// @Router       /api/courses [get]
func (h *HRHandler) ListCourses(c echo.Context) error {
	b, err := h.backend(c)
	if err != nil {
		return err
	}
	courses, err := b.ListCourses(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}

// CreateCourse handles POST /api/courses.
//
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        body  body      courseRequest  true  "Course"
// @Success      201   {object}  domain.Course
// @Router       /api/courses [post]
func (h *HRHandler) CreateCourse(c echo.Context) error {
	var req courseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	b, err := h.backend(c)
	if err != nil {
		return err
	}
	course, err := b.CreateCourse(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, course)
}

// UpdateCourse handles PUT /api/courses/:id.
//
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Course id"
// @Param        body  body      courseRequest  true  "Course"
// @Success      200   {object}  domain.Course
// @Router       /api/courses/{id} [put]
func (h *HRHandler) UpdateCourse(c echo.Context) error {
	var req courseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	b, err := h.backend(c)
	if err != nil {
		return err
	}
	course, err := b.UpdateCourse(c.Request().Context(), c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

// DeleteCourse handles DELETE /api/courses/:id.
//
// @Summary      Delete a course
// @Tags         courses
// @Param        id   path  string  true  "Course id"
// @Success      204
// @Router       /api/courses/{id} [delete]
func (h *HRHandler) DeleteCourse(c echo.Context) error {
	b, err := h.backend(c)
	if err != nil {
		return err
	}
	if err := b.DeleteCourse(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Enrollments ---

// ListEnrollments handles GET /api/enrollments.
//
// @Summary      List course enrollments
// @Tags         courses
// @Produce      json
// @Success      200  {array}  domain.Enrollment
// @Router       /api/enrollments [get]
func (h *HRHandler) ListEnrollments(c echo.Context) error {
	b, err := h.backend(c)
	if err != nil {
		return err
	}
	enrollments, err := b.ListEnrollments(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enrollments)
}

// Enroll handles POST /api/enrollments. Administrators enroll any worker;
// everybody else can only enroll their own worker record.
//
// @Summary      Enroll a worker in a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        body  body      enrollRequest  true  "Enrollment"
// @Success      201   {object}  domain.Enrollment
// @Failure      403   {object}  errorResponse
// @Router       /api/enrollments [post]
func (h *HRHandler) Enroll(c echo.Context) error {
	var req enrollRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	container, identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	worker := req.WorkerID
	if !identity.IsAdmin() {
		worker = identity.WorkerID
	}
	if worker == nil {
		if identity.IsAdmin() {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "trabajadorId is required")
		}
		return domain.ErrForbidden
	}

	enrollment, err := h.service.Backend(container).Enroll(c.Request().Context(), req.CourseID, *worker, req.Date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, enrollment)
}

// DeleteEnrollment handles DELETE /api/enrollments/:id.
//
// @Summary      Remove an enrollment
// @Tags         courses
// @Param        id   path  string  true  "Enrollment id"
// @Success      204
// @Router       /api/enrollments/{id} [delete]
func (h *HRHandler) DeleteEnrollment(c echo.Context) error {
	b, err := h.backend(c)
	if err != nil {
		return err
	}
	if err := b.DeleteEnrollment(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Leave requests ---

// ListRequests handles GET /api/requests.
//
// @Summary      List leave requests
// @Tags         requests
// @Produce      json
// @Success      200  {array}  domain.LeaveRequest
// @Router       /api/requests [get]
func (h *HRHandler) ListRequests(c echo.Context) error {
	b, err := h.backend(c)
	if err != nil {
		return err
	}
	requests, err := b.ListRequests(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// SubmitRequest handles POST /api/requests.
//
// @Summary      File a leave request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        body  body      leaveRequest  true  "Leave request"
// @Success      201   {object}  domain.LeaveRequest
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/requests [post]
func (h *HRHandler) SubmitRequest(c echo.Context) error {
	var req leaveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.EndDate < req.StartDate {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "fechaFin must not be before fechaInicio")
	}
	container, err := ctxSession(c)
	if err != nil {
		return err
	}
	created, err := h.service.SubmitRequest(c.Request().Context(), container, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// ReviewRequest handles PUT /api/requests/:id.
//
// @Summary      Approve or reject a leave request
// @Tags         requests
// @Accept       json
// @Param        id    path  string         true  "Request id"
// @Param        body  body  reviewRequest  true  "New status"
// @Success      204
// @Failure      422   {object}  errorResponse
// @Router       /api/requests/{id} [put]
func (h *HRHandler) ReviewRequest(c echo.Context) error {
	var req reviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	container, err := ctxSession(c)
	if err != nil {
		return err
	}
	status := domain.RequestStatus(strings.ToUpper(req.Status))
	if err := h.service.ReviewRequest(c.Request().Context(), container, c.Param("id"), status); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteRequest handles DELETE /api/requests/:id.
//
// @Summary      Delete a leave request
// @Tags         requests
// @Param        id   path  string  true  "Request id"
// @Success      204
// @Router       /api/requests/{id} [delete]
func (h *HRHandler) DeleteRequest(c echo.Context) error {
	b, err := h.backend(c)
	if err != nil {
		return err
	}
	if err := b.DeleteRequest(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Applicants ---

// ListApplicants handles GET /api/applicants.
//
// @Summary      List applicants
// @Tags         applicants
// @Produce      json
// @Success      200  {array}  domain.Applicant
// @Router       /api/applicants [get]
func (h *HRHandler) ListApplicants(c echo.Context) error {
	b, err := h.backend(c)
	if err != nil {
		return err
	}
	applicants, err := b.ListApplicants(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, applicants)
}

// Apply handles POST /api/applicants, the public application form. The CV is
// read from the "cv" file field, or "file" as older forms send it.
//
// @Summary      Apply for a job
// @Tags         applicants
// @Accept       multipart/form-data
// @Produce      json
// @Param        nombre       formData  string  true   "Full name"
// @Param        email        formData  string  true   "Email"
// @Param        tipoTrabajo  formData  string  true   "Work area"
// @Param        mensaje      formData  string  false  "Message"
// @Param        cv           formData  file    false  "Curriculum"
// @Success      201  {object}  domain.Applicant
// @Failure      422  {object}  errorResponse
// @Router       /api/applicants [post]
func (h *HRHandler) Apply(c echo.Context) error {
	var req applicantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := ports.ApplicationInput{
		Name:    req.Name,
		Email:   req.Email,
		JobType: req.JobType,
		Message: req.Message,
	}
	file, header, err := formFile(c, "cv", "file")
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
		in.CV = file
		in.CVFilename = header.Filename
	}

	b, err := h.backend(c)
	if err != nil {
		return err
	}
	applicant, err := b.CreateApplicant(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, applicant)
}

// DeleteApplicant handles DELETE /api/applicants/:id.
//
// @Summary      Delete an applicant
// @Tags         applicants
// @Param        id   path  string  true  "Applicant id"
// @Success      204
// @Router       /api/applicants/{id} [delete]
func (h *HRHandler) DeleteApplicant(c echo.Context) error {
	b, err := h.backend(c)
	if err != nil {
		return err
	}
	if err := b.DeleteApplicant(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Job types ---

// ListJobTypes handles GET /api/job-types.
//
// @Summary      List job types
// @Tags         job-types
// @Produce      json
// @Success      200  {array}  domain.JobType
// @Router       /api/job-types [get]
func (h *HRHandler) ListJobTypes(c echo.Context) error {
	b, err := h.backend(c)
	if err != nil {
		return err
	}
	types, err := b.ListJobTypes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, types)
}

// ListJobTypeOptions handles GET /api/job-types/options.
//
// @Summary      Job type enumeration
// @Tags         job-types
// @Produce      json
// @Success      200  {array}  domain.JobTypeOption
// @Router       /api/job-types/options [get]
func (h *HRHandler) ListJobTypeOptions(c echo.Context) error {
	b, err := h.backend(c)
	if err != nil {
		return err
	}
	options, err := b.ListJobTypeOptions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, options)
}

// --- Users ---

// ListUsers handles GET /api/users.
//
// @Summary      List user accounts
// @Tags         users
// @Produce      json
// @Success      200  {array}  domain.UserAccount
// @Router       /api/users [get]
func (h *HRHandler) ListUsers(c echo.Context) error {
	b, err := h.backend(c)
	if err != nil {
		return err
	}
	users, err := b.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateUser handles PUT /api/users/:id.
//
// @Summary      Update a user account
// @Tags         users
// @Accept       json
// @Param        id    path  string             true  "User id"
// @Param        body  body  userUpdateRequest  true  "Account"
// @Success      204
// @Router       /api/users/{id} [put]
func (h *HRHandler) UpdateUser(c echo.Context) error {
	var req userUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	b, err := h.backend(c)
	if err != nil {
		return err
	}
	if err := b.UpdateUser(c.Request().Context(), c.Param("id"), req.toDomain()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteUser handles DELETE /api/users/:id.
//
// @Summary      Delete a user account
// @Tags         users
// @Param        id   path  string  true  "User id"
// @Success      204
// @Router       /api/users/{id} [delete]
func (h *HRHandler) DeleteUser(c echo.Context) error {
	b, err := h.backend(c)
	if err != nil {
		return err
	}
	if err := b.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// formFile returns the first present file field among names. A request
// without any of them yields a nil file.
func formFile(c echo.Context, names ...string) (multipart.File, *multipart.FileHeader, error) {
	for _, name := range names {
		header, err := c.FormFile(name)
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			continue
		}
		if err != nil {
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
		}
		file, err := header.Open()
		if err != nil {
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
		}
		return file, header, nil
	}
	return nil, nil, nil
}
