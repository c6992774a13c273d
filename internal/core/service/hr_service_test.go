package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Witch19/rrhh-console/internal/core/domain"
	"github.com/Witch19/rrhh-console/internal/core/ports"
	"github.com/Witch19/rrhh-console/internal/core/session"
)

func loggedIn(t *testing.T, mgr *session.Manager, id domain.Identity) *session.Container {
	t.Helper()
	c := openContainer(t, mgr, "sid-"+id.ID.String())
	if err := c.Login(context.Background(), id, "tok"); err != nil {
		t.Fatalf("login: %v", err)
	}
	return c
}

func TestHRService_SubmitRequest_WorkerIsForcedToOwnRecord(t *testing.T) {
	var sent domain.LeaveRequest
	b := &stubBackend{createRequestFn: func(_ context.Context, r domain.LeaveRequest) (*domain.LeaveRequest, error) {
		sent = r
		return &r, nil
	}}
	_, mgr, _ := newTestEnv(t, b)
	svc := NewHRService(stubFactory{b})

	ref := domain.WorkerRef(9)
	other := domain.WorkerRef(3)
	c := loggedIn(t, mgr, domain.Identity{ID: "5", Role: domain.RoleStaff, WorkerID: &ref})

	_, err := svc.SubmitRequest(context.Background(), c, domain.LeaveRequest{
		Kind:     "VACACIONES",
		WorkerID: &other,
		Status:   domain.RequestApproved,
	})
	if err != nil {
		t.Fatalf("SubmitRequest: %v", err)
	}
	if sent.WorkerID == nil || *sent.WorkerID != 9 {
		t.Fatalf("expected trabajadorId 9, got %v", sent.WorkerID)
	}
	if sent.Status != domain.RequestPending {
		t.Fatalf("expected pending status, got %s", sent.Status)
	}
}

func TestHRService_SubmitRequest_WorkerWithoutRecord(t *testing.T) {
	b := &stubBackend{}
	_, mgr, _ := newTestEnv(t, b)
	svc := NewHRService(stubFactory{b})
	c := loggedIn(t, mgr, domain.Identity{ID: "5", Role: domain.RoleStaff})

	if _, err := svc.SubmitRequest(context.Background(), c, domain.LeaveRequest{}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestHRService_SubmitRequest_AdminKeepsWorker(t *testing.T) {
	var sent domain.LeaveRequest
	b := &stubBackend{createRequestFn: func(_ context.Context, r domain.LeaveRequest) (*domain.LeaveRequest, error) {
		sent = r
		return &r, nil
	}}
	_, mgr, _ := newTestEnv(t, b)
	svc := NewHRService(stubFactory{b})
	c := loggedIn(t, mgr, domain.Identity{ID: "1", Role: domain.RoleAdmin})

	ref := domain.WorkerRef(3)
	if _, err := svc.SubmitRequest(context.Background(), c, domain.LeaveRequest{WorkerID: &ref}); err != nil {
		t.Fatalf("SubmitRequest: %v", err)
	}
	if sent.WorkerID == nil || *sent.WorkerID != 3 {
		t.Fatalf("admin-chosen worker must be kept, got %v", sent.WorkerID)
	}
}

func TestHRService_SubmitRequest_Anonymous(t *testing.T) {
	_, mgr, _ := newTestEnv(t, &stubBackend{})
	svc := NewHRService(stubFactory{&stubBackend{}})

	_, err := svc.SubmitRequest(context.Background(), openContainer(t, mgr, "anon"), domain.LeaveRequest{})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestHRService_ReviewRequest(t *testing.T) {
	var gotID string
	var gotStatus domain.RequestStatus
	b := &stubBackend{setStatusFn: func(_ context.Context, id string, status domain.RequestStatus) error {
		gotID, gotStatus = id, status
		return nil
	}}
	_, mgr, _ := newTestEnv(t, b)
	svc := NewHRService(stubFactory{b})
	c := loggedIn(t, mgr, domain.Identity{ID: "1", Role: domain.RoleAdmin})

	if err := svc.ReviewRequest(context.Background(), c, "12", domain.RequestRejected); err != nil {
		t.Fatalf("ReviewRequest: %v", err)
	}
	if gotID != "12" || gotStatus != domain.RequestRejected {
		t.Fatalf("unexpected call: %s %s", gotID, gotStatus)
	}
	if err := svc.ReviewRequest(context.Background(), c, "12", "ARCHIVADO"); !errors.Is(err, domain.ErrInvalidRequestStatus) {
		t.Fatalf("expected ErrInvalidRequestStatus, got %v", err)
	}
}

var _ ports.BackendFactory = stubFactory{}
