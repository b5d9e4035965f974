package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"dorm-services/internal/domain/complaint"
	reqdto "dorm-services/internal/handler/dto/request"
	"dorm-services/internal/pkg/clock"
	"dorm-services/internal/pkg/errs"
	"dorm-services/internal/pkg/metrics"
	"dorm-services/internal/usecase/queries"
	"dorm-services/internal/usecase/shared"

	"github.com/google/uuid"
)

type ComplaintCommands interface {
	Submit(ctx context.Context, req reqdto.SubmitComplaintRequest) (*queries.ComplaintView, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req reqdto.UpdateComplaintStatusRequest) (*queries.ComplaintView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type complaintCommandsImpl struct {
	uow     shared.UnitOfWork
	metrics *metrics.Metrics
	clock   clock.Clock
}

func NewComplaintCommands(uow shared.UnitOfWork, m *metrics.Metrics, clock clock.Clock) ComplaintCommands {
	return &complaintCommandsImpl{
		uow:     uow,
		metrics: m,
		clock:   clock,
	}
}

func (c *complaintCommandsImpl) Submit(ctx context.Context, req reqdto.SubmitComplaintRequest) (*queries.ComplaintView, error) {
	entity, err := complaint.NewComplaint(complaint.NewComplaintParams{
		StudentID:   req.StudentID,
		StudentName: req.StudentName,
		Room:        req.Room,
		Category:    req.Category,
		Urgency:     req.Urgency,
		Title:       req.Title,
		Description: req.Description,
	}, c.clock.Now())
	if err != nil {
		switch {
		case errors.Is(err, complaint.ErrEmptyField):
			return nil, errs.Mark(err, errs.ErrMissingField)
		case errors.Is(err, complaint.ErrInvalidUrgency):
			return nil, errs.Mark(err, errs.ErrInvalidField)
		default:
			return nil, err
		}
	}

	saved, err := c.uow.Complaints().Insert(ctx, entity)
	if err != nil {
		return nil, shared.TranslateStoreError(err, nil)
	}

	slog.Info("complaint submitted",
		"complaint_id", saved.ID().String(),
		"urgency", saved.Urgency().String())
	c.metrics.ComplaintSubmitted(saved.Urgency().String())

	view := queries.ToComplaintView(saved)
	return &view, nil
}

func (c *complaintCommandsImpl) UpdateStatus(ctx context.Context, id uuid.UUID, req reqdto.UpdateComplaintStatusRequest) (*queries.ComplaintView, error) {
	raw := strings.TrimSpace(req.Status)
	if raw == "" {
		return nil, errs.Wrap(errs.ErrMissingField, "status")
	}
	status, err := complaint.ParseStatus(raw)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidComplaintStatus)
	}

	updated, err := c.uow.Complaints().UpdateStatus(ctx, id, status, c.clock.Now())
	if err != nil {
		return nil, shared.TranslateStoreError(err, errs.ErrComplaintNotFound)
	}

	view := queries.ToComplaintView(updated)
	return &view, nil
}

func (c *complaintCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.uow.Complaints().Delete(ctx, id); err != nil {
		return shared.TranslateStoreError(err, errs.ErrComplaintNotFound)
	}
	slog.Info("complaint deleted", "complaint_id", id.String())
	return nil
}
