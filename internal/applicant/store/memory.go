package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"shoptrack/internal/applicant"
	"shoptrack/internal/applicant/models"
	id "shoptrack/pkg/domain"
	"shoptrack/pkg/platform/sentinel"
)

// InMemory keeps applicants in a map guarded by one lock. Tenant
// scoping happens through the same ForShop capability as the SQL store
// so service tests exercise identical access paths.
type InMemory struct {
	mu         sync.RWMutex
	applicants map[id.ApplicantID]*models.Applicant
}

func NewInMemory() *InMemory {
	return &InMemory{applicants: make(map[id.ApplicantID]*models.Applicant)}
}

func (s *InMemory) Create(_ context.Context, a *models.Applicant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applicants[a.ID] = clone(a)
	return nil
}

func (s *InMemory) ForShop(shopID id.ShopID) applicant.Scoped {
	return &memoryScoped{parent: s, shopID: shopID}
}

type memoryScoped struct {
	parent *InMemory
	shopID id.ShopID
}

func (s *memoryScoped) List(_ context.Context, filter models.ListFilter) ([]models.Summary, error) {
	s.parent.mu.RLock()
	defer s.parent.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	out := []models.Summary{}
	for _, a := range s.parent.applicants {
		if a.ShopID != s.shopID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Position != "" && a.PositionApplied != filter.Position {
			continue
		}
		if search != "" && !matchesSearch(a, search) {
			continue
		}
		out = append(out, *a.Summary())
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// matchesSearch is the OR contract: substring hit on any of name,
// email, phone.
func matchesSearch(a *models.Applicant, lowered string) bool {
	return strings.Contains(strings.ToLower(a.FullName), lowered) ||
		strings.Contains(strings.ToLower(a.Email), lowered) ||
		strings.Contains(strings.ToLower(a.Phone), lowered)
}

func (s *memoryScoped) Get(_ context.Context, applicantID id.ApplicantID) (*models.Applicant, error) {
	s.parent.mu.RLock()
	defer s.parent.mu.RUnlock()

	a, ok := s.parent.applicants[applicantID]
	if !ok || a.ShopID != s.shopID {
		// Cross-tenant rows are indistinguishable from absent rows.
		return nil, sentinel.ErrNotFound
	}
	return clone(a), nil
}

func (s *memoryScoped) Update(_ context.Context, a *models.Applicant, _ models.Update) error {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()

	existing, ok := s.parent.applicants[a.ID]
	if !ok || existing.ShopID != s.shopID {
		return sentinel.ErrNotFound
	}
	s.parent.applicants[a.ID] = clone(a)
	return nil
}

func (s *memoryScoped) Delete(_ context.Context, applicantID id.ApplicantID) error {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()

	existing, ok := s.parent.applicants[applicantID]
	if !ok || existing.ShopID != s.shopID {
		return sentinel.ErrNotFound
	}
	delete(s.parent.applicants, applicantID)
	return nil
}

func clone(a *models.Applicant) *models.Applicant {
	cp := *a
	cp.FormData = make(map[string]any, len(a.FormData))
	for k, v := range a.FormData {
		cp.FormData[k] = v
	}
	cp.InternalData = make(map[string]any, len(a.InternalData))
	for k, v := range a.InternalData {
		cp.InternalData[k] = v
	}
	return &cp
}
