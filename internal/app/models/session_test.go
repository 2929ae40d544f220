package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_Participants(t *testing.T) {
	s := &Session{UserIDs: []int64{3, 1, 2}}

	assert.True(t, s.HasParticipant(1))
	assert.False(t, s.HasParticipant(4))
	assert.Equal(t, []int64{3, 2}, s.WithoutParticipant(1))
	assert.Equal(t, []int64{3, 1, 2}, s.WithoutParticipant(9))

	empty := &Session{}
	assert.False(t, empty.HasParticipant(1))
	assert.Empty(t, empty.WithoutParticipant(1))
}
