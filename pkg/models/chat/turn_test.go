package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTurnKey(t *testing.T) {
	key := TurnKey{UserID: "3141592", Role: RoleUser}
	assert.Equal(t, "3141592:user", key.String())

	parsed := ParseTurnKey("3141592:assistant")
	assert.Equal(t, "3141592", parsed.UserID)
	assert.Equal(t, RoleAssistant, parsed.Role)

	assert.True(t, parsed.MatchUser("3141592"))
	assert.False(t, parsed.MatchUser("314"))
	assert.False(t, TurnKey{}.MatchUser(""))
}

func TestParseTurnKeyNoRole(t *testing.T) {
	parsed := ParseTurnKey("3141592")
	assert.Equal(t, "3141592", parsed.UserID)
	assert.Empty(t, parsed.Role)
}
