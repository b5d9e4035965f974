package response

import (
	"time"

	"dorm-services/internal/usecase/commands"
	"dorm-services/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SpaceResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type SpacesResponse struct {
	Spaces    []SpaceResponse `json:"spaces"`
	TimeSlots []string        `json:"timeSlots"`
}

type SlotResponse struct {
	TimeSlot  string `json:"timeSlot"`
	Capacity  int    `json:"capacity"`
	Confirmed int    `json:"confirmedCount"`
	Available int    `json:"available"`
}

type AvailabilityResponse struct {
	Space SpaceResponse  `json:"space"`
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

type ReservationResponse struct {
	ID          uuid.UUID `json:"id"`
	SpaceID     string    `json:"spaceId"`
	SpaceName   string    `json:"spaceName"`
	Date        string    `json:"date"`
	TimeSlot    string    `json:"timeSlot"`
	StudentID   string    `json:"studentId"`
	StudentName string    `json:"studentName"`
	Phone       *string   `json:"phone,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CancelReservationResponse always carries the promoted key, null when nobody moved up.
type CancelReservationResponse struct {
	Canceled ReservationResponse  `json:"canceled"`
	Promoted *ReservationResponse `json:"promoted"`
}

var deepCopy = copier.Option{DeepCopy: true}

func FromCatalogView(v queries.CatalogView) *SpacesResponse {
	resp := &SpacesResponse{}
	_ = copier.CopyWithOption(resp, &v, deepCopy)
	return resp
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	resp := &AvailabilityResponse{}
	_ = copier.CopyWithOption(resp, v, deepCopy)
	return resp
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	resp := &ReservationResponse{}
	_ = copier.CopyWithOption(resp, v, deepCopy)
	return resp
}

func FromReservationViews(views []queries.ReservationView) []ReservationResponse {
	resp := make([]ReservationResponse, 0, len(views))
	for i := range views {
		resp = append(resp, *FromReservationView(&views[i]))
	}
	return resp
}

func FromCancelResult(r *commands.CancelReservationResult) *CancelReservationResponse {
	resp := &CancelReservationResponse{Canceled: *FromReservationView(&r.Canceled)}
	if r.Promoted != nil {
		resp.Promoted = FromReservationView(r.Promoted)
	}
	return resp
}
