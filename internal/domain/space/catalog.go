package space

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoSpaces          = errors.New("catalog must define at least one space")
	ErrNoTimeSlots       = errors.New("catalog must define at least one time slot")
	ErrDuplicateSpace    = errors.New("duplicate space id")
	ErrDuplicateTimeSlot = errors.New("duplicate time slot")
	ErrEmptyTimeSlot     = errors.New("time slot label must not be empty")
)

// Catalog is immutable after construction and safe for concurrent reads.
type Catalog struct {
	spaces    []Space
	byID      map[string]Space
	timeSlots []string
	slotSet   map[string]struct{}
}

func NewCatalog(spaces []Space, timeSlots []string) (*Catalog, error) {
	if len(spaces) == 0 {
		return nil, ErrNoSpaces
	}
	if len(timeSlots) == 0 {
		return nil, ErrNoTimeSlots
	}

	c := &Catalog{
		spaces:    make([]Space, 0, len(spaces)),
		byID:      make(map[string]Space, len(spaces)),
		timeSlots: make([]string, 0, len(timeSlots)),
		slotSet:   make(map[string]struct{}, len(timeSlots)),
	}
	for _, s := range spaces {
		if _, dup := c.byID[s.ID()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSpace, s.ID())
		}
		c.byID[s.ID()] = s
		c.spaces = append(c.spaces, s)
	}
	for _, label := range timeSlots {
		label = strings.TrimSpace(label)
		if label == "" {
			return nil, ErrEmptyTimeSlot
		}
		if _, dup := c.slotSet[label]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTimeSlot, label)
		}
		c.slotSet[label] = struct{}{}
		c.timeSlots = append(c.timeSlots, label)
	}
	return c, nil
}

// DefaultCatalog is the dormitory's built-in set of rooms and hourly slots.
func DefaultCatalog() *Catalog {
	spaces := []Space{
		{id: "ROOM_A", name: "스터디룸 A", capacity: 2},
		{id: "ROOM_B", name: "스터디룸 B", capacity: 2},
		{id: "HALL_1", name: "다목적홀 1", capacity: 10},
	}
	slots := make([]string, 0, 12)
	for h := 9; h < 21; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00-%02d:00", h, h+1))
	}
	c, err := NewCatalog(spaces, slots)
	if err != nil {
		panic("default catalog: " + err.Error())
	}
	return c
}

func (c *Catalog) Spaces() []Space {
	out := make([]Space, len(c.spaces))
	copy(out, c.spaces)
	return out
}

func (c *Catalog) TimeSlots() []string {
	out := make([]string, len(c.timeSlots))
	copy(out, c.timeSlots)
	return out
}

func (c *Catalog) Space(id string) (Space, bool) {
	s, ok := c.byID[id]
	return s, ok
}

func (c *Catalog) HasTimeSlot(label string) bool {
	_, ok := c.slotSet[label]
	return ok
}

// SlotIndex orders reservations by the catalog's slot order; unknown labels sort last.
func (c *Catalog) SlotIndex(label string) int {
	for i, l := range c.timeSlots {
		if l == label {
			return i
		}
	}
	return len(c.timeSlots)
}
