package service

import (
	"context"

	"github.com/Witch19/rrhh-console/internal/core/domain"
	"github.com/Witch19/rrhh-console/internal/core/ports"
	"github.com/Witch19/rrhh-console/internal/core/session"
)

// HRService exposes the HR directory on behalf of a session.
type HRService struct {
	backends ports.BackendFactory
}

func NewHRService(backends ports.BackendFactory) *HRService {
	return &HRService{backends: backends}
}

// Backend returns the directory bound to the session's token.
func (s *HRService) Backend(c *session.Container) ports.DirectoryGateway {
	return s.backends.ForSession(c.Store())
}

// SubmitRequest files a leave request. Requests of non-administrators are
// always filed for the worker linked to their account, and start pending.
func (s *HRService) SubmitRequest(ctx context.Context, c *session.Container, r domain.LeaveRequest) (*domain.LeaveRequest, error) {
	id, ok := c.CurrentIdentity()
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	if !id.Can(domain.CapSubmitRequests) {
		return nil, domain.ErrForbidden
	}
	if !id.IsAdmin() {
		if id.WorkerID == nil {
			return nil, domain.ErrForbidden
		}
		ref := *id.WorkerID
		r.WorkerID = &ref
		r.Status = ""
	}
	if r.Status == "" {
		r.Status = domain.RequestPending
	}
	return s.Backend(c).CreateRequest(ctx, r)
}

// ReviewRequest sets the status of a request.
func (s *HRService) ReviewRequest(ctx context.Context, c *session.Container, id string, status domain.RequestStatus) error {
	switch status {
	case domain.RequestPending, domain.RequestApproved, domain.RequestRejected:
	default:
		return domain.ErrInvalidRequestStatus
	}
	return s.Backend(c).SetRequestStatus(ctx, id, status)
}
