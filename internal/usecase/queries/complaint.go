package queries

import (
	"context"
	"strings"

	"dorm-services/internal/domain/complaint"
	"dorm-services/internal/pkg/errs"
	"dorm-services/internal/usecase/shared"
)

type ComplaintQueries interface {
	ListByStudent(ctx context.Context, studentID string) ([]ComplaintView, error)
	List(ctx context.Context, filters ComplaintFilters) ([]ComplaintView, error)
}

type complaintQueriesImpl struct {
	store shared.ComplaintStore
}

func NewComplaintQueries(uow shared.UnitOfWork) ComplaintQueries {
	return &complaintQueriesImpl{store: uow.Complaints()}
}

func (q *complaintQueriesImpl) ListByStudent(ctx context.Context, studentID string) ([]ComplaintView, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, errs.Wrap(errs.ErrMissingField, "studentId")
	}

	cs, err := q.store.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, shared.TranslateStoreError(err, nil)
	}
	return ToComplaintViews(cs), nil
}

func (q *complaintQueriesImpl) List(ctx context.Context, filters ComplaintFilters) ([]ComplaintView, error) {
	var filter shared.ComplaintFilter

	if raw := strings.TrimSpace(filters.Urgency); raw != "" {
		u, err := complaint.ParseUrgency(raw)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidField)
		}
		filter.Urgency = &u
	}
	if raw := strings.TrimSpace(filters.Status); raw != "" {
		s, err := complaint.ParseStatus(raw)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidComplaintStatus)
		}
		filter.Status = &s
	}

	cs, err := q.store.List(ctx, filter)
	if err != nil {
		return nil, shared.TranslateStoreError(err, nil)
	}
	return ToComplaintViews(cs), nil
}
