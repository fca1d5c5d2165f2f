package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextFocusTarget(t *testing.T) {
	testCases := []struct {
		name     string
		target   int
		newLen   int
		mutation Mutation
		index    int
		expected int
	}{
		{name: "load", target: 3, newLen: 5, mutation: MutationLoad, expected: 0},
		{name: "insert", target: 0, newLen: 2, mutation: MutationInsert, index: 1, expected: 1},
		{name: "insert in the middle", target: 4, newLen: 6, mutation: MutationInsert, index: 2, expected: 2},
		{name: "remove before target", target: 2, newLen: 3, mutation: MutationRemove, index: 0, expected: 2},
		{name: "remove shrinks below target", target: 3, newLen: 3, mutation: MutationRemove, index: 3, expected: 2},
		{name: "update", target: 1, newLen: 3, mutation: MutationUpdate, index: 2, expected: 1},
		{name: "move", target: 1, newLen: 3, mutation: MutationMove, index: 2, expected: 1},
		{name: "empty", target: 1, newLen: 0, mutation: MutationRemove, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextFocusTarget(tc.target, tc.newLen, tc.mutation, tc.index)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestFocusCoordinator(t *testing.T) {
	f := NewFocusCoordinator(1)
	assert.Equal(t, 0, f.Target())

	assert.Equal(t, 1, f.Observe(MutationInsert, 2, 1))
	assert.True(t, f.Set(0))
	assert.False(t, f.Set(2))
	assert.Equal(t, 0, f.Target())

	assert.Equal(t, 2, f.Observe(MutationInsert, 3, 2))
	assert.Equal(t, 1, f.Observe(MutationRemove, 2, 2))
}
