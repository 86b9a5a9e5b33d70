package service

import (
	"errors"
	"testing"

	"github.com/haierkeys/bonsai-keeper/internal/domain"
	"github.com/haierkeys/bonsai-keeper/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkingSet_OrderAndLookup(t *testing.T) {
	ws := NewWorkingSet([]*domain.Bonsai{
		{ID: 5, Name: "Old Ficus"},
		{ID: 0, Name: "Ficus"},
		nil,
		{ID: 2, Name: "Chinese Elm"},
	})

	require.Equal(t, 3, ws.Len())
	assert.Equal(t, int64(0), ws.At(0).ID)
	assert.Equal(t, int64(5), ws.At(2).ID)
	assert.Nil(t, ws.At(3))
	assert.Equal(t, 1, ws.Index(2))
	assert.Equal(t, -1, ws.Index(3))

	b, ok := ws.Lookup("chinese elm")
	require.True(t, ok)
	assert.Equal(t, int64(2), b.ID)

	b, ok = ws.Lookup("5")
	require.True(t, ok)
	assert.Equal(t, "Old Ficus", b.Name)

	_, ok = ws.Lookup("Juniper")
	assert.False(t, ok)

	require.NoError(t, ws.Add(&domain.Bonsai{ID: 3, Name: "Pivet"}))
	assert.Equal(t, 2, ws.Index(3))
	assert.Error(t, ws.Add(&domain.Bonsai{ID: 3, Name: "again"}))

	assert.True(t, ws.Remove(0))
	assert.False(t, ws.Remove(0))
	assert.Equal(t, int64(2), ws.At(0).ID)
}

func TestWorkingSet_Set(t *testing.T) {
	ws := NewWorkingSet([]*domain.Bonsai{{ID: 1, Name: "Ficus", LastPruning: d("29.12.2022")}})

	require.NoError(t, ws.Set(1, domain.FieldLastRepot, "3.4.2023"))
	b, _ := ws.Get(1)
	assert.Equal(t, "03.04.2023", b.LastRepot.String())

	// 非法日期在修改前被拒绝
	err := ws.Set(1, domain.FieldLastPruning, "2023-04-03")
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ErrorInvalidDate))
	assert.Equal(t, "29.12.2022", b.LastPruning.String())

	require.NoError(t, ws.Set(1, domain.FieldLastPruning, "Not Yet"))
	assert.False(t, b.LastPruning.IsSet())

	err = ws.Set(9, domain.FieldLastPruning, "01.01.2023")
	assert.True(t, errors.Is(err, code.ErrorBonsaiNotFound))

	err = ws.Set(1, domain.Field(42), "01.01.2023")
	assert.True(t, errors.Is(err, code.ErrorInvalidField))
}

func TestWorkingSet_SnapshotIsIndependent(t *testing.T) {
	ws := NewWorkingSet([]*domain.Bonsai{{ID: 1, Name: "Ficus", NextFertilize: d("22.03.2023"), NotePath: "notes/Ficus.yaml"}})
	snap, err := ws.Snapshot()
	require.NoError(t, err)

	orig, _ := ws.Get(1)
	copied, _ := snap.Get(1)
	assert.NotSame(t, orig, copied)
	assert.True(t, orig.SameState(copied))
	assert.Equal(t, "notes/Ficus.yaml", copied.NotePath)

	require.NoError(t, ws.Set(1, domain.FieldNextFertilize, "01.06.2023"))
	assert.Equal(t, "22.03.2023", copied.NextFertilize.String())

	require.NoError(t, ws.Add(&domain.Bonsai{ID: 2, Name: "Elm"}))
	assert.Equal(t, 1, snap.Len())
}
