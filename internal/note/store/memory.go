package store

import (
	"context"
	"sort"
	"sync"

	"shoptrack/internal/note/models"
	id "shoptrack/pkg/domain"
)

// InMemory keeps ledger entries per applicant.
type InMemory struct {
	mu    sync.RWMutex
	notes map[id.ApplicantID][]models.Note
}

func NewInMemory() *InMemory {
	return &InMemory{notes: make(map[id.ApplicantID][]models.Note)}
}

func (s *InMemory) Append(_ context.Context, note *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[note.ApplicantID] = append(s.notes[note.ApplicantID], *note)
	return nil
}

// ListByApplicant returns the trail newest-first.
func (s *InMemory) ListByApplicant(_ context.Context, applicantID id.ApplicantID) ([]models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]models.Note{}, s.notes[applicantID]...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemory) DeleteByApplicant(_ context.Context, applicantID id.ApplicantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.notes, applicantID)
	return nil
}
