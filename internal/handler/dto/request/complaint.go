package request

type SubmitComplaintRequest struct {
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
	Room        string `json:"room"`
	Category    string `json:"category"`
	Urgency     string `json:"urgency"`
	Title       string `json:"title" binding:"max=200"`
	Description string `json:"description" binding:"max=4000"`
}

type UpdateComplaintStatusRequest struct {
	Status string `json:"status"`
}

type ComplaintListQuery struct {
	Urgency string `form:"urgency"`
	Status  string `form:"status"`
}
