package request

// Fields are not marked required: an unknown space must be reported before missing fields.
type CreateReservationRequest struct {
	SpaceID     string  `json:"spaceId"`
	Date        string  `json:"date"`
	TimeSlot    string  `json:"timeSlot"`
	StudentID   string  `json:"studentId"`
	StudentName string  `json:"studentName"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
}

type AvailabilityQuery struct {
	SpaceID string `form:"spaceId"`
	Date    string `form:"date"`
}

type MyReservationsQuery struct {
	StudentID string `form:"studentId"`
}
