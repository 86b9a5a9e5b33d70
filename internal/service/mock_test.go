package service

import (
	"context"
	"errors"
	"sort"

	"github.com/haierkeys/bonsai-keeper/internal/domain"
	"github.com/haierkeys/bonsai-keeper/internal/upgrade"
	"github.com/haierkeys/bonsai-keeper/pkg/timex"
)

var errAppend = errors.New("disk full")

// mockBonsaiRepo is an in-memory ledger
type mockBonsaiRepo struct {
	versions    []domain.BonsaiVersion
	appended    []int64
	deleted     []int64
	next        int64
	initialized int
	failOn      map[int64]bool
}

func newMockBonsaiRepo(records ...*domain.Bonsai) *mockBonsaiRepo {
	m := &mockBonsaiRepo{failOn: map[int64]bool{}}
	for _, r := range records {
		m.store(r)
	}
	return m
}

func (m *mockBonsaiRepo) store(b *domain.Bonsai) {
	c := *b
	c.NotePath = ""
	m.versions = append(m.versions, domain.BonsaiVersion{Seq: int64(len(m.versions) + 1), Bonsai: c})
	if b.ID >= m.next {
		m.next = b.ID + 1
	}
}

func (m *mockBonsaiRepo) Initialize(ctx context.Context) error {
	m.initialized++
	return nil
}

func (m *mockBonsaiRepo) LoadCurrent(ctx context.Context) ([]*domain.Bonsai, error) {
	latest := map[int64]domain.Bonsai{}
	for _, v := range m.versions {
		latest[v.Bonsai.ID] = v.Bonsai
	}
	out := make([]*domain.Bonsai, 0, len(latest))
	for _, b := range latest {
		c := b
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockBonsaiRepo) Append(ctx context.Context, b *domain.Bonsai) error {
	if m.failOn[b.ID] {
		return errAppend
	}
	m.appended = append(m.appended, b.ID)
	m.store(b)
	return nil
}

func (m *mockBonsaiRepo) DeleteAllVersions(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	kept := m.versions[:0]
	for _, v := range m.versions {
		if v.Bonsai.ID != id {
			kept = append(kept, v)
		}
	}
	m.versions = kept
	return nil
}

func (m *mockBonsaiRepo) NextID(ctx context.Context) (int64, error) {
	id := m.next
	m.next++
	return id, nil
}

func (m *mockBonsaiRepo) ListVersions(ctx context.Context, id int64) ([]*domain.BonsaiVersion, error) {
	var out []*domain.BonsaiVersion
	for _, v := range m.versions {
		if v.Bonsai.ID == id {
			c := v
			out = append(out, &c)
		}
	}
	return out, nil
}

// mockNoteRepo keeps documents in a map keyed by path
type mockNoteRepo struct {
	docs      map[string]*domain.NoteDocument
	deleted   []string
	deleteErr error
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{docs: map[string]*domain.NoteDocument{}}
}

func (m *mockNoteRepo) Load(ctx context.Context, path string) (*domain.NoteDocument, bool, error) {
	doc, ok := m.docs[path]
	return doc, ok, nil
}

func (m *mockNoteRepo) Save(ctx context.Context, path string, doc *domain.NoteDocument) error {
	m.docs[path] = doc
	return nil
}

func (m *mockNoteRepo) Delete(ctx context.Context, path string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, path)
	delete(m.docs, path)
	return nil
}

// seedRecords returns the initial collection as domain records
func seedRecords() []*domain.Bonsai {
	var out []*domain.Bonsai
	for _, s := range upgrade.SeedRows {
		out = append(out, &domain.Bonsai{
			ID:            s.ID,
			Name:          s.Name,
			NextFertilize: timex.MustParseDate(s.NextFertilize),
			LastPruning:   timex.MustParseDate(s.LastPruning),
			LastRepot:     timex.MustParseDate(s.LastRepot),
			LastWiring:    timex.MustParseDate(s.LastWiring),
		})
	}
	return out
}
