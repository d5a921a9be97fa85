package automaton

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDispatchesLifeRule(t *testing.T) {
	a, err := New("B3/S23", Config{})
	require.NoError(t, err)
	assert.True(t, a.HyperCapable())
	assert.Equal(t, 2, a.MaxStates())
	assert.Equal(t, "B3/S23", a.CanonicalRule())
}

func TestNewDispatchesLtLRule(t *testing.T) {
	a, err := New("R5,C0,M1,S33..57,B34..45,NM", Config{})
	require.NoError(t, err)
	assert.False(t, a.HyperCapable())
	assert.Equal(t, 2, a.MaxStates())
}

func TestNewRejectsBadRule(t *testing.T) {
	_, err := New("not a rule", Config{})
	assert.Error(t, err)
}

func TestLoadConfigFileRequiresRule(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/scenario.yaml"
	require.NoError(t, os.WriteFile(path, []byte("pattern: glider\n"), 0o644))

	_, err := LoadConfigFile(path)
	assert.Error(t, err)
}

func TestLoadConfigFileParsesScenario(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/scenario.yaml"
	require.NoError(t, os.WriteFile(path, []byte("rule: B3/S23\nrefresh_ms: 100\n"), 0o644))

	s, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "B3/S23", s.Rule)
	assert.Equal(t, 100, s.RefreshMillis)
}
