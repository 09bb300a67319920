package imports

import (
	"sync"
	"time"
)

// Preview is a parsed batch awaiting the user's explicit confirmation.
// Exactly one of the slices is populated, matching Kind.
type Preview struct {
	Kind     Kind
	FileName string
	ParsedAt time.Time

	Students []RowPreview
	Teachers []RowPreview
	Products []RowPreview
}

// RowPreview pairs displayable cells with the payload index so templates
// can render the table without re-parsing.
type RowPreview struct {
	Cells []string
}

// Count returns the number of rows in the preview.
func (p *Preview) Count() int {
	switch p.Kind {
	case KindStudents:
		return len(p.Students)
	case KindTeachers:
		return len(p.Teachers)
	default:
		return len(p.Products)
	}
}

// PreviewStore holds pending previews per session. In-memory on purpose: a
// preview is transient UI state, lost on restart just as a browser-held
// preview would be.
type PreviewStore struct {
	mu sync.Mutex
	m  map[string]*entry
}

type entry struct {
	preview *Preview
	rows    []Row
}

// NewPreviewStore creates an empty store.
func NewPreviewStore() *PreviewStore {
	return &PreviewStore{m: make(map[string]*entry)}
}

func key(sessionID string, kind Kind) string { return sessionID + ":" + string(kind) }

// Put replaces the pending preview for this session and kind.
func (s *PreviewStore) Put(sessionID string, preview *Preview, rows []Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key(sessionID, preview.Kind)] = &entry{preview: preview, rows: rows}
}

// Get returns the pending preview and its parsed rows, or nil when none.
func (s *PreviewStore) Get(sessionID string, kind Kind) (*Preview, []Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.m[key(sessionID, kind)]; ok {
		return e.preview, e.rows
	}
	return nil, nil
}

// Delete discards a pending preview after a successful submit or an
// explicit cancel. A failed submit must NOT call this, so the user keeps
// the preview and can retry.
func (s *PreviewStore) Delete(sessionID string, kind Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key(sessionID, kind))
}
