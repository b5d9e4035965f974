package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"dorm-services/internal/domain/complaint"
	"dorm-services/internal/infra"
	"dorm-services/internal/usecase/shared"

	"github.com/google/uuid"
)

type complaintEntry struct {
	c   *complaint.Complaint
	seq int64
}

type ComplaintStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]complaintEntry
	seq     int64
}

func NewComplaintStore() *ComplaintStore {
	return &ComplaintStore{
		records: make(map[uuid.UUID]complaintEntry),
	}
}

func (s *ComplaintStore) Insert(_ context.Context, c *complaint.Complaint) (*complaint.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID() == uuid.Nil {
		c = c.WithID(uuid.New())
	}
	if _, exists := s.records[c.ID()]; exists {
		return nil, infra.WrapRepoErr("complaint id already exists", nil, infra.KindDuplicateKey)
	}

	s.seq++
	s.records[c.ID()] = complaintEntry{c: cloneComplaint(c), seq: s.seq}
	return cloneComplaint(c), nil
}

func (s *ComplaintStore) FindByID(_ context.Context, id uuid.UUID) (*complaint.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.records[id]
	if !ok {
		return nil, infra.WrapRepoErr("complaint not found", nil, infra.KindNotFound)
	}
	return cloneComplaint(e.c), nil
}

func (s *ComplaintStore) List(_ context.Context, filter shared.ComplaintFilter) ([]*complaint.Complaint, error) {
	return s.newestFirst(func(c *complaint.Complaint) bool {
		if filter.Urgency != nil && c.Urgency() != *filter.Urgency {
			return false
		}
		if filter.Status != nil && c.Status() != *filter.Status {
			return false
		}
		return true
	}), nil
}

func (s *ComplaintStore) ListByStudent(_ context.Context, studentID string) ([]*complaint.Complaint, error) {
	return s.newestFirst(func(c *complaint.Complaint) bool {
		return c.StudentID() == studentID
	}), nil
}

func (s *ComplaintStore) UpdateStatus(_ context.Context, id uuid.UUID, status complaint.Status, at time.Time) (*complaint.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.records[id]
	if !ok {
		return nil, infra.WrapRepoErr("complaint not found", nil, infra.KindNotFound)
	}
	updated := cloneComplaint(e.c)
	updated.ChangeStatus(status, at)
	e.c = updated
	s.records[id] = e
	return cloneComplaint(updated), nil
}

func (s *ComplaintStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return infra.WrapRepoErr("complaint not found", nil, infra.KindNotFound)
	}
	delete(s.records, id)
	return nil
}

func (s *ComplaintStore) newestFirst(match func(*complaint.Complaint) bool) []*complaint.Complaint {
	s.mu.RLock()
	entries := make([]complaintEntry, 0, len(s.records))
	for _, e := range s.records {
		if match(e.c) {
			entries = append(entries, complaintEntry{c: cloneComplaint(e.c), seq: e.seq})
		}
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.c.CreatedAt().Equal(b.c.CreatedAt()) {
			return a.c.CreatedAt().After(b.c.CreatedAt())
		}
		return a.seq > b.seq
	})

	out := make([]*complaint.Complaint, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.c)
	}
	return out
}

func cloneComplaint(c *complaint.Complaint) *complaint.Complaint {
	cp := *c
	return &cp
}
