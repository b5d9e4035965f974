package complaint

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyField     = errors.New("complaint field must not be empty")
	ErrInvalidUrgency = errors.New("invalid complaint urgency")
	ErrInvalidStatus  = errors.New("invalid complaint status")
)

// Complaint is a maintenance request filed by a student.
type Complaint struct {
	id          uuid.UUID
	studentID   string
	studentName string
	room        string
	category    string
	urgency     Urgency
	title       string
	description string
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

type NewComplaintParams struct {
	StudentID   string
	StudentName string
	Room        string
	Category    string
	Urgency     string
	Title       string
	Description string
}

func NewComplaint(p NewComplaintParams, now time.Time) (*Complaint, error) {
	fields := []struct {
		name  string
		value *string
	}{
		{"studentId", &p.StudentID},
		{"studentName", &p.StudentName},
		{"room", &p.Room},
		{"category", &p.Category},
		{"urgency", &p.Urgency},
		{"title", &p.Title},
		{"description", &p.Description},
	}
	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return nil, fmt.Errorf("%w: %s", ErrEmptyField, f.name)
		}
	}

	urgency, err := ParseUrgency(p.Urgency)
	if err != nil {
		return nil, err
	}

	return &Complaint{
		studentID:   p.StudentID,
		studentName: p.StudentName,
		room:        p.Room,
		category:    p.Category,
		urgency:     urgency,
		title:       p.Title,
		description: p.Description,
		status:      StatusReceived,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructComplaint(
	id uuid.UUID,
	studentID, studentName, room, category string,
	urgency Urgency,
	title, description string,
	status Status,
	createdAt, updatedAt time.Time,
) *Complaint {
	return &Complaint{
		id:          id,
		studentID:   studentID,
		studentName: studentName,
		room:        room,
		category:    category,
		urgency:     urgency,
		title:       title,
		description: description,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (c *Complaint) WithID(id uuid.UUID) *Complaint {
	cp := *c
	cp.id = id
	return &cp
}

func (c *Complaint) ChangeStatus(status Status, now time.Time) {
	c.status = status
	c.updatedAt = now
}

func (c *Complaint) ID() uuid.UUID        { return c.id }
func (c *Complaint) StudentID() string    { return c.studentID }
func (c *Complaint) StudentName() string  { return c.studentName }
func (c *Complaint) Room() string         { return c.room }
func (c *Complaint) Category() string     { return c.category }
func (c *Complaint) Urgency() Urgency     { return c.urgency }
func (c *Complaint) Title() string        { return c.title }
func (c *Complaint) Description() string  { return c.description }
func (c *Complaint) Status() Status       { return c.status }
func (c *Complaint) CreatedAt() time.Time { return c.createdAt }
func (c *Complaint) UpdatedAt() time.Time { return c.updatedAt }
