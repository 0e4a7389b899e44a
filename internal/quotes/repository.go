package quotes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AdminFields carries a partial update to a quote's admin-mutable fields.
// The Set flags distinguish "leave unchanged" from "clear": an unset field is
// not touched, a set field with a nil value is written as null.
type AdminFields struct {
	Notes        *string
	NotesSet     bool
	OverrideRate *float64
	OverrideSet  bool
}

// Repository defines the persistence gateway for quote requests. Every write
// is a single atomic row operation; rows are never deleted.
type Repository interface {
	Create(ctx context.Context, q *QuoteRequest) (*QuoteRequest, error)
	GetByID(ctx context.Context, id string) (*QuoteRequest, error)
	List(ctx context.Context) ([]*QuoteRequest, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	UpdateAdminFields(ctx context.Context, id string, fields AdminFields) error
}

// MemoryRepository stores quote requests in memory. Development and test
// wiring only.
type MemoryRepository struct {
	mu     sync.RWMutex
	quotes map[string]*QuoteRequest
	seq    map[string]int64
	nextID int64
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		quotes: make(map[string]*QuoteRequest),
		seq:    make(map[string]int64),
	}
}

// Create assigns an id and creation time and stores the quote.
func (r *MemoryRepository) Create(ctx context.Context, q *QuoteRequest) (*QuoteRequest, error) {
	stored := *q
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	r.nextID++
	r.quotes[stored.ID] = &stored
	r.seq[stored.ID] = r.nextID
	r.mu.Unlock()

	out := stored
	return &out, nil
}

// GetByID returns a copy of the stored quote.
func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*QuoteRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.quotes[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *q
	return &out, nil
}

// List returns all quotes, newest first.
func (r *MemoryRepository) List(ctx context.Context) ([]*QuoteRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*QuoteRequest, 0, len(r.quotes))
	for _, q := range r.quotes {
		copied := *q
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.seq[out[i].ID] > r.seq[out[j].ID]
	})
	return out, nil
}

// UpdateStatus writes the status field. Setting the current status again is a
// no-op write.
func (r *MemoryRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.quotes[id]
	if !ok {
		return ErrNotFound
	}
	q.Status = status
	return nil
}

// UpdateAdminFields applies a partial update to notes and override rate.
func (r *MemoryRepository) UpdateAdminFields(ctx context.Context, id string, fields AdminFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.quotes[id]
	if !ok {
		return ErrNotFound
	}
	if fields.NotesSet {
		q.AdminNotes = fields.Notes
	}
	if fields.OverrideSet {
		q.AdminOverrideRate = fields.OverrideRate
	}
	return nil
}
