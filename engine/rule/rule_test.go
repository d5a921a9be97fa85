package rule

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileLifeCanonical(t *testing.T) {
	tests := []struct {
		name string
		rule string
		want string
	}{
		{"standard life", "B3/S23", "B3/S23"},
		{"survival-birth shorthand", "23/3", "B3/S23"},
		{"reversed prefixes", "S23/B3", "B3/S23"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Compile(tt.rule)
			require.NoError(t, err)
			require.NotNil(t, c.Life)
			assert.Equal(t, tt.want, c.Life.CanonicalName)
		})
	}
}

func TestCentreBitInvariant(t *testing.T) {
	c, err := Compile("B3/S23")
	require.NoError(t, err)
	l := c.Life
	for i := 0; i < 512; i++ {
		if i&CentreBit == 0 {
			continue
		}
		count := popcountMasked(i, NeighborMask)
		wantSurvive := count == 2 || count == 3
		assert.Equal(t, wantSurvive, l.Rule3x3[i] != 0, "index %d (count %d)", i, count)
	}
}

func TestRule3x3IsBoolean(t *testing.T) {
	c, err := Compile("B2ce3-k/S1e2-a")
	require.NoError(t, err)
	for i, v := range c.Life.Rule3x3 {
		assert.True(t, v == 0 || v == 1, "index %d has value %d", i, v)
	}
}

func TestRule0ValuesRestricted(t *testing.T) {
	c, err := Compile("B3/S23")
	require.NoError(t, err)
	allowed := map[uint8]bool{}
	for _, v := range []uint8{0, 1, 4, 5, 16, 17, 20, 21, 64, 65, 68, 69, 80, 81, 84, 85} {
		allowed[v] = true
	}
	for i, v := range c.Life.Rule0 {
		assert.True(t, allowed[v], "rule0[%d] = %d not in allowed set", i, v)
	}
}

func TestWolframRange(t *testing.T) {
	_, err := Compile("W30")
	require.NoError(t, err)

	_, err = Compile("W31") // odd
	assert.Error(t, err)

	_, err = Compile("W256") // out of range
	assert.Error(t, err)
}

func TestMapLengthValidation(t *testing.T) {
	_, err := Compile("MAPAAAA") // wrong length
	assert.Error(t, err)
}

func TestNeighbourhoodDigitLimits(t *testing.T) {
	_, err := Compile("B7/S23H") // hex allows digits 0..6
	assert.Error(t, err)

	_, err = Compile("B5/S23V") // von Neumann allows digits 0..4
	assert.Error(t, err)

	_, err = Compile("B6/S23H")
	assert.NoError(t, err)

	_, err = Compile("B4/S23V")
	assert.NoError(t, err)
}

// TestMapWireFormat pins the MAP bit stream to the published encoding:
// 6 bits per base64 character, most significant bit first, stream bit k
// holding the next state for neighbourhood index k. The widely published
// MAP form of B3/S23 begins "ARYXfh".
func TestMapWireFormat(t *testing.T) {
	c, err := Compile("B3/S23")
	require.NoError(t, err)

	payload := mapPayloadFromTable(&c.Life.Rule3x3, MooreMask)
	assert.Len(t, payload, 86)
	assert.True(t, strings.HasPrefix(payload, "ARYXfh"), "payload %q", payload[:8])

	decoded, err := Compile("MAP" + payload)
	require.NoError(t, err)
	assert.Equal(t, c.Life.Rule3x3, decoded.Life.Rule3x3)
}

func TestMapEncodesSameTableAsLifeRule(t *testing.T) {
	life, err := Compile("B3/S23")
	require.NoError(t, err)

	mapRule, err := Compile("MAP" + mapPayloadFromTable(&life.Life.Rule3x3, MooreMask))
	require.NoError(t, err)
	assert.Equal(t, life.Life.Rule3x3, mapRule.Life.Rule3x3)

	// Canonicalisation of a MAP rule is idempotent.
	again, err := Compile(mapRule.Life.CanonicalName)
	require.NoError(t, err)
	assert.Equal(t, mapRule.Life.CanonicalName, again.Life.CanonicalName)
}

func TestSetRuleIsNoopOnCanonical(t *testing.T) {
	c1, err := Compile("B3/S23")
	require.NoError(t, err)
	c2, err := Compile(c1.Life.CanonicalName)
	require.NoError(t, err)
	assert.Equal(t, c1.Life.Rule3x3, c2.Life.Rule3x3)
	assert.Equal(t, c1.Life.Rule0, c2.Life.Rule0)
}

func TestCanonicalisationIdempotent(t *testing.T) {
	rules := []string{"B3/S23", "B2ce3-k/S1e2-a", "W30"}
	for _, r := range rules {
		t.Run(r, func(t *testing.T) {
			c1, err := Compile(r)
			require.NoError(t, err)
			c2, err := Compile(c1.Life.CanonicalName)
			require.NoError(t, err)
			assert.Equal(t, c1.Life.CanonicalName, c2.Life.CanonicalName)
		})
	}
}

func TestB0EmulationSingleTable(t *testing.T) {
	// B0 with S_max: single-table inversion path.
	c, err := Compile("B0123478/S01234678")
	require.NoError(t, err)
	assert.False(t, c.Life.AlternateRules)
}

func TestB0EmulationAlternateRules(t *testing.T) {
	c, err := Compile("B0/S01234567")
	require.NoError(t, err)
	assert.True(t, c.Life.AlternateRules)
}

func TestMalformedRulesRejected(t *testing.T) {
	tests := []string{
		"B3//S23",   // two slashes
		"B9/S23",    // digit exceeds Moore neighbourhood size
		"B3/S2z",    // invalid letter for count 2... (z only valid at count4)
		"B3/S23XY",  // junk neighbourhood suffix
	}
	for _, r := range tests {
		t.Run(r, func(t *testing.T) {
			_, err := Compile(r)
			assert.Error(t, err)
		})
	}
}

func TestTopologySuffixParsedAlongsideRule(t *testing.T) {
	c, err := Compile("B3/S23:P5,5")
	require.NoError(t, err)
	assert.True(t, c.Topology.Bounded())
	assert.Equal(t, 5, c.Topology.Width)
}

func TestLtLRuleParsing(t *testing.T) {
	c, err := Compile("R5,C0,M1,S33..57,B34..45,NM:T50,50")
	require.NoError(t, err)
	require.NotNil(t, c.LtL)
	assert.Equal(t, 5, c.LtL.Range)
	assert.Equal(t, 33, c.LtL.MinS)
	assert.Equal(t, 57, c.LtL.MaxS)
	assert.Equal(t, 34, c.LtL.MinB)
	assert.Equal(t, 45, c.LtL.MaxB)
	assert.Equal(t, ShapeMoore, c.LtL.Shape)
	assert.Equal(t, 50, c.Topology.Width)
}

func TestLtLLegacyPositionalSyntax(t *testing.T) {
	c, err := Compile("R10,3,3,2,3")
	require.NoError(t, err)
	require.NotNil(t, c.LtL)
	assert.Equal(t, 10, c.LtL.Range)
	assert.Equal(t, 3, c.LtL.MinB)
	assert.Equal(t, 3, c.LtL.MaxB)
	assert.Equal(t, 2, c.LtL.MinS)
	assert.Equal(t, 3, c.LtL.MaxS)
}

func TestLtLRangeOutOfBounds(t *testing.T) {
	_, err := Compile("R501,C0,M1,S2..3,B3..3,NM")
	assert.Error(t, err)
}

func TestLtLRejectsNonTorusPlaneTopology(t *testing.T) {
	for _, suffix := range []string{":K10,10", ":C10,10", ":S10"} {
		t.Run(suffix, func(t *testing.T) {
			_, err := Compile("R5,C0,M1,S33..57,B34..45,NM" + suffix)
			assert.Error(t, err)
		})
	}
}
