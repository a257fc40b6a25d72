// Package testutil provides in-memory stand-ins for the PostgreSQL
// repositories and a minimal application container for HTTP tests.
package testutil

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/deppfellow/leadboard/internal/model"
	"github.com/deppfellow/leadboard/internal/model/developer"
	"github.com/deppfellow/leadboard/internal/model/lead"
	"github.com/jackc/pgx/v5"
)

type edge struct {
	leadID      int64
	developerID int64
}

// MemoryStore implements the lead, developer and assignment stores with the
// same ownership rules as the SQL repositories: a record owned by another
// user is reported as pgx.ErrNoRows, and deletes cascade to assignments.
type MemoryStore struct {
	mu         sync.Mutex
	leads      map[int64]lead.Lead
	developers map[int64]developer.Developer
	edges      map[edge]struct{}
	nextID     int64

	// Err, when set, is returned by every operation.
	Err error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		leads:      make(map[int64]lead.Lead),
		developers: make(map[int64]developer.Developer),
		edges:      make(map[edge]struct{}),
	}
}

func (s *MemoryStore) base() model.Base {
	s.nextID++
	now := time.Now().UTC()
	return model.Base{ID: s.nextID, CreatedAt: now, UpdatedAt: now}
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (s *MemoryStore) ownedLead(userID string, id int64) (lead.Lead, bool) {
	l, ok := s.leads[id]
	return l, ok && l.UserID == userID
}

func (s *MemoryStore) ownedDeveloper(userID string, id int64) (developer.Developer, bool) {
	d, ok := s.developers[id]
	return d, ok && d.UserID == userID
}

// AssignmentCount reports how many assignment edges exist in total.
func (s *MemoryStore) AssignmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.edges)
}

// ------------------------------------------------------------ leads

func (s *MemoryStore) ListLeads(ctx context.Context, userID string) ([]lead.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]lead.Lead, 0)
	for _, id := range sortedKeys(s.leads) {
		if l := s.leads[id]; l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateLead(ctx context.Context, userID string, payload *lead.CreateLeadPayload) (*lead.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	l := lead.Lead{
		Base:        s.base(),
		UserID:      userID,
		Title:       payload.Title,
		Description: payload.Description,
		ClientName:  payload.ClientName,
		ClientEmail: payload.ClientEmail,
		ClientPhone: payload.ClientPhone,
	}
	s.leads[l.ID] = l
	return &l, nil
}

func (s *MemoryStore) GetLeadByID(ctx context.Context, userID string, id int64) (*lead.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	l, ok := s.ownedLead(userID, id)
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &l, nil
}

func (s *MemoryStore) UpdateLead(ctx context.Context, userID string, payload *lead.UpdateLeadPayload) (*lead.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	l, ok := s.ownedLead(userID, payload.ID)
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if payload.IsEmpty() {
		return &l, nil
	}

	if payload.Title.Set {
		l.Title = payload.Title.Value
	}
	if payload.ClientName.Set {
		l.ClientName = payload.ClientName.Value
	}
	if payload.Description.Set {
		l.Description = payload.Description.Ptr()
	}
	if payload.ClientEmail.Set {
		l.ClientEmail = payload.ClientEmail.Ptr()
	}
	if payload.ClientPhone.Set {
		l.ClientPhone = payload.ClientPhone.Ptr()
	}
	l.UpdatedAt = time.Now().UTC()

	s.leads[l.ID] = l
	return &l, nil
}

func (s *MemoryStore) DeleteLead(ctx context.Context, userID string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.ownedLead(userID, id); !ok {
		return pgx.ErrNoRows
	}

	delete(s.leads, id)
	for e := range s.edges {
		if e.leadID == id {
			delete(s.edges, e)
		}
	}
	return nil
}

// ------------------------------------------------------------ developers

func (s *MemoryStore) ListDevelopers(ctx context.Context, userID string) ([]developer.Developer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]developer.Developer, 0)
	for _, id := range sortedKeys(s.developers) {
		if d := s.developers[id]; d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateDeveloper(ctx context.Context, userID string, payload *developer.CreateDeveloperPayload) (*developer.Developer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	d := developer.Developer{
		Base:   s.base(),
		UserID: userID,
		Name:   payload.Name,
		Email:  payload.Email,
		Phone:  payload.Phone,
	}
	s.developers[d.ID] = d
	return &d, nil
}

func (s *MemoryStore) GetDeveloperByID(ctx context.Context, userID string, id int64) (*developer.Developer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	d, ok := s.ownedDeveloper(userID, id)
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &d, nil
}

func (s *MemoryStore) DeleteDeveloper(ctx context.Context, userID string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.ownedDeveloper(userID, id); !ok {
		return pgx.ErrNoRows
	}

	delete(s.developers, id)
	for e := range s.edges {
		if e.developerID == id {
			delete(s.edges, e)
		}
	}
	return nil
}

// ------------------------------------------------------------ assignments

func (s *MemoryStore) ListDevelopersForLead(ctx context.Context, userID string, leadID int64) ([]lead.DeveloperAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]lead.DeveloperAssignment, 0)
	for _, id := range sortedKeys(s.developers) {
		d := s.developers[id]
		if d.UserID != userID {
			continue
		}
		_, assigned := s.edges[edge{leadID: leadID, developerID: id}]
		out = append(out, lead.DeveloperAssignment{Developer: d, Assigned: assigned})
	}
	return out, nil
}

func (s *MemoryStore) Assign(ctx context.Context, userID string, leadID, developerID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}

	_, leadOK := s.ownedLead(userID, leadID)
	_, devOK := s.ownedDeveloper(userID, developerID)
	if !leadOK || !devOK {
		return false, nil
	}

	e := edge{leadID: leadID, developerID: developerID}
	if _, exists := s.edges[e]; exists {
		return false, nil
	}
	s.edges[e] = struct{}{}
	return true, nil
}

func (s *MemoryStore) Unassign(ctx context.Context, userID string, leadID, developerID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}

	if _, ok := s.ownedLead(userID, leadID); !ok {
		return false, nil
	}

	e := edge{leadID: leadID, developerID: developerID}
	if _, exists := s.edges[e]; !exists {
		return false, nil
	}
	delete(s.edges, e)
	return true, nil
}
