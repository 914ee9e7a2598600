package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClamps(t *testing.T) {
	b := New(2.0, -1.0, 0.5)
	assert.Equal(t, 1.0, b.Priority)
	assert.Equal(t, 0.0, b.Durability)
}

func TestDecayMonotoneAcrossCycles(t *testing.T) {
	b := New(0.8, 0.9, 0.5)
	decayed := b.Decay(5)
	assert.Less(t, decayed.Priority, b.Priority, "priority must strictly decrease after cycles without reuse")
}

func TestDecayZeroCyclesIsNoop(t *testing.T) {
	b := New(0.8, 0.9, 0.5)
	assert.Equal(t, b, b.Decay(0))
}

func TestBoostIncreasesPriority(t *testing.T) {
	b := New(0.3, 0.8, 0.5)
	boosted := b.Boost(0.5)
	assert.Greater(t, boosted.Priority, b.Priority)
}

func TestMergeUnaryRule(t *testing.T) {
	b := New(0.6, 0.8, 0.9)
	m := Merge([]Budget{b}, 0.9, 1.0)
	assert.InDelta(t, 0.6*0.9, m.Priority, 1e-9)
	assert.Equal(t, b.Durability, m.Durability)
}

func TestMergeBinaryRuleTakesMinDurabilityAndQuality(t *testing.T) {
	b1 := New(0.6, 0.9, 0.9)
	b2 := New(0.5, 0.4, 0.2)
	m := Merge([]Budget{b1, b2}, 0.8, 1.0)
	assert.InDelta(t, 0.6*0.5*0.8, m.Priority, 1e-9)
	assert.Equal(t, 0.4, m.Durability)
	assert.Equal(t, 0.2, m.Quality)
}
