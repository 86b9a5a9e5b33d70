package service

import (
	"context"
	"errors"
	"testing"

	"github.com/haierkeys/bonsai-keeper/internal/domain"
	"github.com/haierkeys/bonsai-keeper/pkg/code"
	"github.com/haierkeys/bonsai-keeper/pkg/timex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeTrees() []*domain.Bonsai {
	return []*domain.Bonsai{
		{ID: 1, Name: "Ficus", NextFertilize: d("22.03.2023")},
		{ID: 2, Name: "Elm", LastRepot: d("24.09.2022")},
		{ID: 3, Name: "Pine"},
	}
}

func TestReconcile_OnlyChangedRecordsAreAppended(t *testing.T) {
	ctx := context.Background()
	repo := newMockBonsaiRepo()

	ws := NewWorkingSet(threeTrees())
	baseline, err := ws.Snapshot()
	require.NoError(t, err)

	require.NoError(t, ws.Set(2, domain.FieldLastPruning, "01.05.2023"))

	changed, err := Reconcile(ctx, ws, baseline, repo)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, changed)
	assert.Equal(t, []int64{2}, repo.appended)
}

func TestReconcile_NewAndRemovedRecords(t *testing.T) {
	ctx := context.Background()
	repo := newMockBonsaiRepo()

	ws := NewWorkingSet(threeTrees())
	baseline, err := ws.Snapshot()
	require.NoError(t, err)

	require.NoError(t, ws.Add(&domain.Bonsai{ID: 9, Name: "Maple"}))
	ws.Remove(1)

	changed, err := Reconcile(ctx, ws, baseline, repo)
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, changed, "baseline-only ids are not handled here")
	assert.Empty(t, repo.deleted)
}

func TestReconcile_StopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	repo := newMockBonsaiRepo()
	repo.failOn[2] = true

	ws := NewWorkingSet(threeTrees())
	baseline, err := ws.Snapshot()
	require.NoError(t, err)
	for _, id := range []int64{1, 2, 3} {
		require.NoError(t, ws.Set(id, domain.FieldLastWiring, "02.05.2023"))
	}

	changed, err := Reconcile(ctx, ws, baseline, repo)
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ErrorDBWrite))
	assert.True(t, errors.Is(err, errAppend))
	assert.Equal(t, []int64{1}, changed)
	assert.Equal(t, []int64{1}, repo.appended, "id 3 must not be written after the failure")
}

func TestSession_SaveTwiceAppendsOnce(t *testing.T) {
	ctx := context.Background()
	repo := newMockBonsaiRepo(threeTrees()...)
	s := NewSession(repo, NewNoteService(newMockNoteRepo(), NotesConfig{Dir: "notes"}, nil), NewSchedule(DefaultScheduleConfig()), nil,
		WithClock(func() timex.Date { return d("15.08.2023") }))
	require.NoError(t, s.Open(ctx))

	_, err := s.AdvanceID(3, domain.ActionFertilize)
	require.NoError(t, err)

	changed, err := s.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, changed)

	changed, err = s.Save(ctx)
	require.NoError(t, err)
	assert.Empty(t, changed)
	assert.Equal(t, []int64{3}, repo.appended)
}

func TestSession_FailedSaveKeepsBaseline(t *testing.T) {
	ctx := context.Background()
	repo := newMockBonsaiRepo(threeTrees()...)
	s := NewSession(repo, NewNoteService(newMockNoteRepo(), NotesConfig{Dir: "notes"}, nil), NewSchedule(DefaultScheduleConfig()), nil,
		WithClock(func() timex.Date { return d("01.05.2023") }))
	require.NoError(t, s.Open(ctx))

	require.NoError(t, s.Set(1, domain.FieldLastPruning, "01.05.2023"))
	require.NoError(t, s.Set(2, domain.FieldLastPruning, "01.05.2023"))

	repo.failOn[2] = true
	_, err := s.Save(ctx)
	require.Error(t, err)
	assert.True(t, s.Dirty())

	// 重试时重新对比：id 1 已写入但基线未更新，因此会再次追加
	repo.failOn[2] = false
	changed, err := s.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, changed)
	assert.False(t, s.Dirty())
}
