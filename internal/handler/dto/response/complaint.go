package response

import (
	"time"

	"dorm-services/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ComplaintResponse struct {
	ID          uuid.UUID `json:"id"`
	StudentID   string    `json:"studentId"`
	StudentName string    `json:"studentName"`
	Room        string    `json:"room"`
	Category    string    `json:"category"`
	Urgency     string    `json:"urgency"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromComplaintView(v *queries.ComplaintView) *ComplaintResponse {
	resp := &ComplaintResponse{}
	_ = copier.Copy(resp, v)
	return resp
}

func FromComplaintViews(views []queries.ComplaintView) []ComplaintResponse {
	resp := make([]ComplaintResponse, 0, len(views))
	for i := range views {
		resp = append(resp, *FromComplaintView(&views[i]))
	}
	return resp
}
