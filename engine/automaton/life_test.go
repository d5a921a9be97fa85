package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifeAutomatonBlinkerAndSetRule(t *testing.T) {
	a, err := New("B3/S23", Config{})
	require.NoError(t, err)

	require.NoError(t, a.SetCell(0, -1, 1))
	require.NoError(t, a.SetCell(0, 0, 1))
	require.NoError(t, a.SetCell(0, 1, 1))
	assert.EqualValues(t, 3, a.Population())

	a.Step(nil)
	assert.Equal(t, 1, a.GetCell(-1, 0))
	assert.Equal(t, 1, a.GetCell(0, 0))
	assert.Equal(t, 1, a.GetCell(1, 0))

	require.NoError(t, a.SetRule("B36/S23"))
	assert.Equal(t, "B36/S23", a.CanonicalRule())
}

func TestLifeAutomatonSetCellRejectsBadState(t *testing.T) {
	a, err := New("B3/S23", Config{})
	require.NoError(t, err)
	assert.Error(t, a.SetCell(0, 0, 2))
}

func TestLifeAutomatonSetRuleRejectsNonLifeRule(t *testing.T) {
	a, err := New("B3/S23", Config{})
	require.NoError(t, err)
	assert.Error(t, a.SetRule("R5,C0,M1,S33..57,B34..45,NM"))
}

func TestLifeAutomatonNextCell(t *testing.T) {
	a, err := New("B3/S23", Config{})
	require.NoError(t, err)
	require.NoError(t, a.SetCell(5, 0, 1))

	dx, state, found := a.NextCell(0, 0)
	assert.True(t, found)
	assert.Equal(t, 5, dx)
	assert.Equal(t, 1, state)

	_, _, found = a.NextCell(6, 0)
	assert.False(t, found)
}

func TestLifeAutomatonFindEdgesEmpty(t *testing.T) {
	a, err := New("B3/S23", Config{})
	require.NoError(t, err)
	_, _, _, _, empty := a.FindEdges()
	assert.True(t, empty)
}
