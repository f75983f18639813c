package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewState(t *testing.T) {
	entry := []string{"a", "b"}
	s := NewState("sess", entry)

	assert.Equal(t, "sess", s.SessionID)
	assert.Equal(t, entry, s.AvailableNodes)
	assert.NotNil(t, s.FilledSlots)
	assert.False(t, s.Exhausted())

	// The state owns its copy of the entry list.
	entry[0] = "mutated"
	assert.Equal(t, "a", s.AvailableNodes[0])
}

func TestStateClone(t *testing.T) {
	s := NewState("sess", []string{"a"})
	s.FilledSlots["#size#"] = "medium"
	s.History = []string{"a"}

	c := s.Clone()
	c.AvailableNodes[0] = "x"
	c.FilledSlots["#size#"] = "large"
	c.History[0] = "x"

	assert.Equal(t, "a", s.AvailableNodes[0])
	assert.Equal(t, "medium", s.FilledSlots["#size#"])
	assert.Equal(t, "a", s.History[0])

	var nilState *State
	assert.Nil(t, nilState.Clone())
}

func TestStateReset(t *testing.T) {
	s := NewState("sess", []string{"a"})
	s.FilledSlots["#size#"] = "medium"
	s.HitNode = "a"
	s.RequireSlot = "#color#"
	s.History = []string{"a"}
	s.Turns = 4

	s.Reset([]string{"a", "b"})

	assert.Equal(t, []string{"a", "b"}, s.AvailableNodes)
	assert.Empty(t, s.FilledSlots)
	assert.Empty(t, s.HitNode)
	assert.Empty(t, s.RequireSlot)
	assert.Equal(t, []string{"a"}, s.History, "history survives a restart")
	assert.Equal(t, 4, s.Turns, "turn count survives a restart")
}

func TestNodeTerminal(t *testing.T) {
	assert.True(t, (&Node{ID: "a"}).Terminal())
	assert.False(t, (&Node{ID: "a", Children: []string{"b"}}).Terminal())
}
