package tonal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountProgressionsAggregates(t *testing.T) {
	labels := []string{"C", "F", "C", "F", "G"}
	transitions := CountProgressions(labels)

	assert := assert.New(t)
	assert.Len(transitions, 3)
	assert.Equal(ChordTransition{From: "C", To: "F", Count: 2}, transitions[0])

	total := 0
	for _, tr := range transitions {
		total += tr.Count
	}
	assert.Equal(4, total) // all 4 consecutive pairs are N-free
}

func TestCountProgressionsSkipsNoChordPairs(t *testing.T) {
	labels := []string{"C", "N", "F", "G", "N", "N", "Am", "F"}
	transitions := CountProgressions(labels)

	assert := assert.New(t)
	for _, tr := range transitions {
		assert.NotEqual(NoChordLabel, tr.From)
		assert.NotEqual(NoChordLabel, tr.To)
	}

	// only F->G and Am->F survive
	total := 0
	for _, tr := range transitions {
		total += tr.Count
	}
	assert.Equal(2, total)
}

func TestCountProgressionsTiesKeepFirstSeenOrder(t *testing.T) {
	labels := []string{"C", "F", "G", "C", "F", "G"}
	transitions := CountProgressions(labels)

	assert := assert.New(t)
	assert.Len(transitions, 3)
	// C->F and F->G both occur twice; C->F was seen first
	assert.Equal("C", transitions[0].From)
	assert.Equal("F", transitions[1].From)
	assert.Equal("G", transitions[2].From)
	assert.Equal(1, transitions[2].Count)
}

func TestCountProgressionsSelfTransitionsAllowed(t *testing.T) {
	labels := []string{"C", "C", "C"}
	transitions := CountProgressions(labels)

	assert.Len(t, transitions, 1)
	assert.Equal(t, ChordTransition{From: "C", To: "C", Count: 2}, transitions[0])
}

func TestCountProgressionsEmptyAndSingle(t *testing.T) {
	assert.Empty(t, CountProgressions(nil))
	assert.Empty(t, CountProgressions([]string{"C"}))
	assert.Empty(t, CountProgressions([]string{"N", "N"}))
}
