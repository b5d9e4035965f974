//go:build unit || e2e

package builder

import (
	"time"

	"dorm-services/internal/domain/complaint"
	reqdto "dorm-services/internal/handler/dto/request"
	"dorm-services/internal/usecase/queries"

	"github.com/google/uuid"
)

type ComplaintBuilder struct {
	ID          uuid.UUID
	StudentID   string
	StudentName string
	Room        string
	Category    string
	Urgency     complaint.Urgency
	Title       string
	Description string
	Status      complaint.Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewComplaintBuilder() *ComplaintBuilder {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	return &ComplaintBuilder{
		StudentID:   "20231234",
		StudentName: "김민수",
		Room:        "B동 302호",
		Category:    "전기",
		Urgency:     complaint.UrgencyNormal,
		Title:       "형광등 깜빡임",
		Description: "방 천장 형광등이 계속 깜빡입니다.",
		Status:      complaint.StatusReceived,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (b *ComplaintBuilder) With(mutate func(*ComplaintBuilder)) *ComplaintBuilder {
	mutate(b)
	return b
}

func (b *ComplaintBuilder) WithCreatedAt(at time.Time) *ComplaintBuilder {
	b.CreatedAt, b.UpdatedAt = at, at
	return b
}

// Build methods
func (b *ComplaintBuilder) BuildDomain() *complaint.Complaint {
	return complaint.ReconstructComplaint(
		b.ID, b.StudentID, b.StudentName, b.Room, b.Category, b.Urgency,
		b.Title, b.Description, b.Status, b.CreatedAt, b.UpdatedAt,
	)
}

func (b *ComplaintBuilder) BuildView() queries.ComplaintView {
	id := b.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return queries.ComplaintView{
		ID:          id,
		StudentID:   b.StudentID,
		StudentName: b.StudentName,
		Room:        b.Room,
		Category:    b.Category,
		Urgency:     b.Urgency.String(),
		Title:       b.Title,
		Description: b.Description,
		Status:      b.Status.String(),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (b *ComplaintBuilder) BuildSubmitRequestDTO() reqdto.SubmitComplaintRequest {
	return reqdto.SubmitComplaintRequest{
		StudentID:   b.StudentID,
		StudentName: b.StudentName,
		Room:        b.Room,
		Category:    b.Category,
		Urgency:     b.Urgency.String(),
		Title:       b.Title,
		Description: b.Description,
	}
}
