package space

import (
	"errors"
	"strings"
)

var (
	ErrEmptySpaceID    = errors.New("space id must not be empty")
	ErrEmptySpaceName  = errors.New("space name must not be empty")
	ErrInvalidCapacity = errors.New("space capacity must be positive")
)

// Space is a reservable room. Capacity bounds the confirmed reservations per time slot.
type Space struct {
	id       string
	name     string
	capacity int
}

func NewSpace(id, name string, capacity int) (Space, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" {
		return Space{}, ErrEmptySpaceID
	}
	if name == "" {
		return Space{}, ErrEmptySpaceName
	}
	if capacity <= 0 {
		return Space{}, ErrInvalidCapacity
	}
	return Space{id: id, name: name, capacity: capacity}, nil
}

func (s Space) ID() string    { return s.id }
func (s Space) Name() string  { return s.name }
func (s Space) Capacity() int { return s.capacity }
