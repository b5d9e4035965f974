package queries

import (
	"time"

	"dorm-services/internal/domain/complaint"
	"dorm-services/internal/domain/reservation"
	"dorm-services/internal/domain/space"

	"github.com/google/uuid"
)

// SpaceView represents a reservable space
type SpaceView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// CatalogView lists spaces together with the deployment-wide time slots
type CatalogView struct {
	Spaces    []SpaceView `json:"spaces"`
	TimeSlots []string    `json:"timeSlots"`
}

type SlotAvailabilityView struct {
	TimeSlot  string `json:"timeSlot"`
	Capacity  int    `json:"capacity"`
	Confirmed int    `json:"confirmed"`
	Available int    `json:"available"`
}

type AvailabilityView struct {
	Space SpaceView              `json:"space"`
	Date  string                 `json:"date"`
	Slots []SlotAvailabilityView `json:"slots"`
}

// ReservationView represents read-optimized reservation data
type ReservationView struct {
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

type ComplaintView struct {
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

// ComplaintFilters holds raw query values; empty means no filter
type ComplaintFilters struct {
	Urgency string
	Status  string
}

func ToSpaceView(s space.Space) SpaceView {
	return SpaceView{ID: s.ID(), Name: s.Name(), Capacity: s.Capacity()}
}

// ToReservationView resolves the space name from the catalog; unknown spaces keep an empty name.
func ToReservationView(r *reservation.Reservation, catalog *space.Catalog) ReservationView {
	var spaceName string
	if s, ok := catalog.Space(r.SpaceID()); ok {
		spaceName = s.Name()
	}
	requester := r.Requester()
	return ReservationView{
		ID:          r.ID(),
		SpaceID:     r.SpaceID(),
		SpaceName:   spaceName,
		Date:        r.Date(),
		TimeSlot:    r.TimeSlot(),
		StudentID:   requester.ID(),
		StudentName: requester.Name(),
		Phone:       requester.Phone(),
		Email:       requester.Email(),
		Status:      r.Status().String(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
}

func ToReservationViews(rs []*reservation.Reservation, catalog *space.Catalog) []ReservationView {
	views := make([]ReservationView, 0, len(rs))
	for _, r := range rs {
		views = append(views, ToReservationView(r, catalog))
	}
	return views
}

func ToComplaintView(c *complaint.Complaint) ComplaintView {
	return ComplaintView{
		ID:          c.ID(),
		StudentID:   c.StudentID(),
		StudentName: c.StudentName(),
		Room:        c.Room(),
		Category:    c.Category(),
		Urgency:     c.Urgency().String(),
		Title:       c.Title(),
		Description: c.Description(),
		Status:      c.Status().String(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

func ToComplaintViews(cs []*complaint.Complaint) []ComplaintView {
	views := make([]ComplaintView, 0, len(cs))
	for _, c := range cs {
		views = append(views, ToComplaintView(c))
	}
	return views
}
