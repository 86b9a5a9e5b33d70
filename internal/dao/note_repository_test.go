package dao

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/haierkeys/bonsai-keeper/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteRepository_RoundTrip(t *testing.T) {
	repo := NewNoteRepository(nil)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes", "Ficus.yaml")

	doc, found, err := repo.Load(ctx, path)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, doc)

	want := &domain.NoteDocument{}
	want.Add("Repot", "check roots")
	want.Add("Repot", "new soil")
	want.Open("Pruning")
	want.Add("Wiring", "remove wire: before summer")

	require.NoError(t, repo.Save(ctx, path, want))

	got, found, err := repo.Load(ctx, path)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, want.Equal(got), "got %+v", got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Pruning: []")
}

func TestNoteRepository_Delete(t *testing.T) {
	repo := NewNoteRepository(nil)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "Elm.yaml")

	require.NoError(t, repo.Save(ctx, path, &domain.NoteDocument{}))
	require.NoError(t, repo.Delete(ctx, path))
	_, found, err := repo.Load(ctx, path)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, repo.Delete(ctx, path))
}

func TestDecodeNote(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []domain.NoteCategory
		wantErr bool
	}{
		{
			name: "legacy json keeps key order",
			in:   `{"Wiring": ["loosen"], "Repot": ["akadama", "pumice"], "Pruning": []}`,
			want: []domain.NoteCategory{
				{Name: "Wiring", Notes: []string{"loosen"}},
				{Name: "Repot", Notes: []string{"akadama", "pumice"}},
				{Name: "Pruning"},
			},
		},
		{
			name: "null category",
			in:   "Repot:\n",
			want: []domain.NoteCategory{{Name: "Repot"}},
		},
		{name: "empty file", in: ""},
		{name: "not a mapping", in: "- a\n- b\n", wantErr: true},
		{name: "nested lists", in: "Repot:\n  - [a, b]\n", wantErr: true},
		{name: "scalar category", in: "Repot: soil\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeNote([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, (&domain.NoteDocument{Categories: tt.want}).Equal(got), "got %+v", got)
		})
	}
}
