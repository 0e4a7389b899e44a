package inquiries

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence gateway for contact inquiries.
type Repository interface {
	Create(ctx context.Context, in *ContactInquiry) (*ContactInquiry, error)
	GetByID(ctx context.Context, id string) (*ContactInquiry, error)
	List(ctx context.Context) ([]*ContactInquiry, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	UpdateNotes(ctx context.Context, id string, notes *string) error
}

// MemoryRepository stores inquiries in memory. Development and test wiring
// only.
type MemoryRepository struct {
	mu        sync.RWMutex
	inquiries map[string]*ContactInquiry
	seq       map[string]int64
	nextID    int64
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		inquiries: make(map[string]*ContactInquiry),
		seq:       make(map[string]int64),
	}
}

// Create assigns an id and creation time and stores the inquiry.
func (r *MemoryRepository) Create(ctx context.Context, in *ContactInquiry) (*ContactInquiry, error) {
	stored := *in
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	r.nextID++
	r.inquiries[stored.ID] = &stored
	r.seq[stored.ID] = r.nextID
	r.mu.Unlock()

	out := stored
	return &out, nil
}

// GetByID returns a copy of the stored inquiry.
func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*ContactInquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	in, ok := r.inquiries[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *in
	return &out, nil
}

// List returns all inquiries, newest first.
func (r *MemoryRepository) List(ctx context.Context) ([]*ContactInquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*ContactInquiry, 0, len(r.inquiries))
	for _, in := range r.inquiries {
		copied := *in
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

// UpdateStatus writes the status field.
func (r *MemoryRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	in, ok := r.inquiries[id]
	if !ok {
		return ErrNotFound
	}
	in.Status = status
	return nil
}

// UpdateNotes writes the admin notes field. A nil value clears the notes.
func (r *MemoryRepository) UpdateNotes(ctx context.Context, id string, notes *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	in, ok := r.inquiries[id]
	if !ok {
		return ErrNotFound
	}
	in.AdminNotes = notes
	return nil
}
