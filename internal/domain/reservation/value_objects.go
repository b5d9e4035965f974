package reservation

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidDate        = errors.New("date must be formatted as YYYY-MM-DD")
	ErrEmptyRequesterID   = errors.New("requester id must not be empty")
	ErrEmptyRequesterName = errors.New("requester name must not be empty")
	ErrInvalidTransition  = errors.New("invalid reservation status transition")
	ErrInvalidStatus      = errors.New("invalid reservation status")
)

// Bucket is the unit of capacity accounting.
type Bucket struct {
	SpaceID  string
	Date     string
	TimeSlot string
}

func NewBucket(spaceID, date, timeSlot string) Bucket {
	return Bucket{SpaceID: spaceID, Date: date, TimeSlot: timeSlot}
}

// Key is stable across processes; the postgres store hashes it for advisory locks.
func (b Bucket) Key() string {
	return b.SpaceID + "|" + b.Date + "|" + b.TimeSlot
}

// ValidateDate accepts only calendar dates in YYYY-MM-DD form.
func ValidateDate(date string) error {
	if len(date) != len(time.DateOnly) {
		return ErrInvalidDate
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

type Requester struct {
	id    string
	name  string
	phone *string
	email *string
}

func NewRequester(id, name string, phone, email *string) (Requester, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" {
		return Requester{}, ErrEmptyRequesterID
	}
	if name == "" {
		return Requester{}, ErrEmptyRequesterName
	}
	return Requester{id: id, name: name, phone: trimOptional(phone), email: trimOptional(email)}, nil
}

func ReconstructRequester(id, name string, phone, email *string) Requester {
	return Requester{id: id, name: name, phone: phone, email: email}
}

func (r Requester) ID() string     { return r.id }
func (r Requester) Name() string   { return r.name }
func (r Requester) Phone() *string { return r.phone }
func (r Requester) Email() *string { return r.email }

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
