package cellularautomaton

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/telepair/ca-core/pkg/ui"
)

func TestNewCellularAutomaton(t *testing.T) {
	tests := []struct {
		name string
		rule int
		rows int
		cols int
	}{
		{"Rule 30", 30, 10, 20},
		{"Rule 90", 90, 5, 10},
		{"Rule 110", 110, 15, 30},
		{"Rule 150 large grid", 150, 100, 200},
		{"Rule 184 minimum size", 184, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ca := New(tt.rule, tt.rows, tt.cols)
			assert.NotNil(t, ca)
			assert.Equal(t, tt.rule, ca.rule.Code)
			assert.Equal(t, 0, ca.generation)
			assert.NotNil(t, ca.eng)
			assert.NotNil(t, ca.screen)
			assert.NotNil(t, ca.buf)
		})
	}
}

func TestNewCellularAutomatonAcceptsUncuratedCode(t *testing.T) {
	ca := New(22, 10, 20)
	assert.NotNil(t, ca)
	assert.Equal(t, 22, ca.rule.Code)
	assert.Equal(t, DefaultAliveChar, ca.rule.ActiveChar)
	assert.NotNil(t, ca.eng)

	status := ca.Status(ui.English)
	assert.Equal(t, "W22", status[0].Value)
}

func TestStep(t *testing.T) {
	ca := New(30, 10, 20)

	for i := 1; i <= 5; i++ {
		gen, ok := ca.Step()
		assert.True(t, ok, "Step should always report not-finished")
		assert.Equal(t, i, gen, "Generation should increment")
	}
}

func TestHandleTogglesRule(t *testing.T) {
	ca := New(30, 10, 20)

	handled, err := ca.Handle("t")
	assert.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, Rules[1].Code, ca.rule.Code)

	handled, err = ca.Handle("x")
	assert.NoError(t, err)
	assert.False(t, handled)
}

func TestReset(t *testing.T) {
	ca := New(30, 10, 20)

	for i := 0; i < 5; i++ {
		ca.Step()
	}

	err := ca.Reset(15, 25)
	assert.NoError(t, err)
	assert.Equal(t, 0, ca.generation)
	assert.Equal(t, 25, len(ca.buf))
}

func TestHeaderAndStatus(t *testing.T) {
	ca := New(30, 10, 20)

	assert.Equal(t, HeaderEN, ca.Header(ui.English))
	status := ca.Status(ui.English)
	assert.Len(t, status, 2)
	assert.Equal(t, "Rule", status[0].Label)
	assert.Equal(t, "W30", status[0].Value)

	assert.Equal(t, HeaderCN, ca.Header(ui.Chinese))
	status = ca.Status(ui.Chinese)
	assert.Len(t, status, 2)
	assert.Equal(t, "规则", status[0].Label)
}

func TestHandleKeys(t *testing.T) {
	ca := New(30, 10, 20)

	keys := ca.HandleKeys(ui.English)
	assert.Len(t, keys, 1)
	assert.Equal(t, []string{"T"}, keys[0].Keys)

	keys = ca.HandleKeys(ui.Chinese)
	assert.Len(t, keys, 1)
}

func TestIsFinishedAndStop(t *testing.T) {
	ca := New(30, 10, 20)
	assert.False(t, ca.IsFinished())

	for i := 0; i < 10; i++ {
		ca.Step()
		assert.False(t, ca.IsFinished())
	}

	assert.NotPanics(t, func() {
		ca.Stop()
	})
}

func TestSeedCellGrowsDownward(t *testing.T) {
	ca := New(30, 10, 21)
	assert.Equal(t, 1, ca.eng.GetCell(10, 0))

	ca.Step()
	assert.True(t, ca.eng.Population() >= 1)
}

func BenchmarkStep(b *testing.B) {
	rules := []int{30, 90, 110, 184}

	for _, rule := range rules {
		b.Run("Rule"+strconv.Itoa(rule), func(b *testing.B) {
			ca := New(rule, 20, 200)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				ca.Step()
			}
		})
	}
}
