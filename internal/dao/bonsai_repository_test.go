package dao

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/haierkeys/bonsai-keeper/internal/domain"
	"github.com/haierkeys/bonsai-keeper/internal/model"
	"github.com/haierkeys/bonsai-keeper/pkg/timex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDao(t *testing.T) (*Dao, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "database", "bonsai.sqlite3")
	db, err := NewDBEngine(DatabaseConfig{Path: path, MaxOpenConns: 1})
	require.NoError(t, err)
	d := New(db, zap.NewNop())
	t.Cleanup(func() { _ = d.Close() })
	return d, path
}

func names(list []*domain.Bonsai) []string {
	out := make([]string, 0, len(list))
	for _, b := range list {
		out = append(out, b.Name)
	}
	return out
}

func TestBonsaiRepository_InitializeIsIdempotent(t *testing.T) {
	d, _ := newTestDao(t)
	repo := NewBonsaiRepository(d)
	ctx := context.Background()

	require.NoError(t, repo.Initialize(ctx))
	first, err := repo.LoadCurrent(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Initialize(ctx))
	second, err := repo.LoadCurrent(ctx)
	require.NoError(t, err)

	want := []string{"Ficus", "Fukientea", "Chinese Elm", "Chinese Pivet", "Ficus Benj. Starl.", "Old Ficus"}
	assert.Equal(t, want, names(first))
	assert.Equal(t, want, names(second))

	var rows int64
	require.NoError(t, d.Db.Model(&model.BonsaiVersion{}).Count(&rows).Error)
	assert.Equal(t, int64(6), rows, "seed rows must not be duplicated")

	for i, b := range second {
		assert.True(t, b.SameState(first[i]))
		assert.Equal(t, int64(i), b.ID)
	}

	elm := second[2]
	assert.Equal(t, "17.03.2023", elm.NextFertilize.String())
	assert.False(t, elm.LastPruning.IsSet())
	assert.Equal(t, "24.09.2022", elm.LastRepot.String())
}

func TestBonsaiRepository_LatestVersionWins(t *testing.T) {
	d, _ := newTestDao(t)
	repo := NewBonsaiRepository(d)
	ctx := context.Background()
	require.NoError(t, repo.Initialize(ctx))

	v1 := &domain.Bonsai{ID: 7, Name: "Juniper"}
	v2 := &domain.Bonsai{ID: 7, Name: "Juniper", LastPruning: timex.MustParseDate("01.05.2023")}
	v3 := &domain.Bonsai{ID: 7, Name: "Juniper", LastPruning: timex.MustParseDate("01.05.2023"), LastWiring: timex.MustParseDate("03.05.2023")}
	for _, v := range []*domain.Bonsai{v1, v2, v3} {
		require.NoError(t, repo.Append(ctx, v))
	}

	current, err := repo.LoadCurrent(ctx)
	require.NoError(t, err)

	var found []*domain.Bonsai
	for _, b := range current {
		if b.ID == 7 {
			found = append(found, b)
		}
	}
	require.Len(t, found, 1)
	assert.True(t, found[0].SameState(v3))

	versions, err := repo.ListVersions(ctx, 7)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Less(t, versions[0].Seq, versions[1].Seq)
	assert.Less(t, versions[1].Seq, versions[2].Seq)
	assert.True(t, versions[0].Bonsai.SameState(v1))
}

func TestBonsaiRepository_IDsAreNeverReused(t *testing.T) {
	d, _ := newTestDao(t)
	repo := NewBonsaiRepository(d)
	ctx := context.Background()
	require.NoError(t, repo.Initialize(ctx))

	id, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), id)

	require.NoError(t, repo.Append(ctx, &domain.Bonsai{ID: id, Name: "Pine"}))
	require.NoError(t, repo.DeleteAllVersions(ctx, id))

	next, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), next)

	// 追加较大的 ID 后序列跟随
	require.NoError(t, repo.Append(ctx, &domain.Bonsai{ID: 20, Name: "Maple"}))
	next, err = repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(21), next)
}

func TestBonsaiRepository_DeleteAllVersions(t *testing.T) {
	d, _ := newTestDao(t)
	repo := NewBonsaiRepository(d)
	ctx := context.Background()
	require.NoError(t, repo.Initialize(ctx))

	require.NoError(t, repo.Append(ctx, &domain.Bonsai{ID: 3, Name: "Chinese Pivet", LastRepot: timex.MustParseDate("02.04.2023")}))
	require.NoError(t, repo.DeleteAllVersions(ctx, 3))

	versions, err := repo.ListVersions(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, versions)

	current, err := repo.LoadCurrent(ctx)
	require.NoError(t, err)
	assert.Len(t, current, 5)

	// 不存在的 ID
	assert.NoError(t, repo.DeleteAllVersions(ctx, 999))
}

func TestBonsaiRepository_StorageUnavailable(t *testing.T) {
	dir := t.TempDir()
	// 目录不能作为数据库文件打开
	_, err := NewDBEngine(DatabaseConfig{Path: dir})
	assert.Error(t, err)

	_, err = NewDBEngine(DatabaseConfig{})
	assert.Error(t, err)
}

func TestMaterialize(t *testing.T) {
	rows := []*model.BonsaiVersion{
		{Seq: 5, ID: 2, Name: "b-new"},
		{Seq: 1, ID: 1, Name: "a-old"},
		{Seq: 3, ID: 2, Name: "b-old"},
		{Seq: 4, ID: 1, Name: "a-new"},
		{Seq: 2, ID: 0, Name: "c"},
	}
	out := Materialize(rows)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"c", "a-new", "b-new"}, []string{out[0].Name, out[1].Name, out[2].Name})
}

func TestLegacyImport(t *testing.T) {
	d, _ := newTestDao(t)
	ctx := context.Background()

	require.NoError(t, d.Db.Exec(`CREATE TABLE bonsai (
		treeid INTEGER, name TEXT, next_fertilize TEXT,
		last_pruning TEXT, last_repot TEXT, last_wiring TEXT)`).Error)
	rows := [][]any{
		{0, "Ficus", "22.03.2023", "29.12.2022", "Not Yet", "27.11.2022"},
		{4, "Pine", "10.03.2023", "Not Yet", "Not Yet", "Not Yet"},
		{0, "Ficus", "22.05.2023", "29.12.2022", "Not Yet", "27.11.2022"},
		{4, "Pine", "garbage", "Not Yet", "Not Yet", "Not Yet"},
	}
	for _, r := range rows {
		require.NoError(t, d.Db.Exec("INSERT INTO bonsai VALUES(?,?,?,?,?,?)", r...).Error)
	}

	repo := NewBonsaiRepository(d)
	require.NoError(t, repo.Initialize(ctx))
	require.NoError(t, repo.Initialize(ctx))

	current, err := repo.LoadCurrent(ctx)
	require.NoError(t, err)
	require.Len(t, current, 2, "the seed is skipped when a legacy table exists")
	assert.Equal(t, "22.05.2023", current[0].NextFertilize.String())
	assert.False(t, current[1].NextFertilize.IsSet(), "unreadable legacy dates become unset")

	var count int64
	require.NoError(t, d.Db.Model(&model.BonsaiVersion{}).Count(&count).Error)
	assert.Equal(t, int64(4), count)

	id, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
}
