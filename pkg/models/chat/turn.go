package chat

import "strings"

// TurnKey identifies the owner and role of one stored chat turn.
// The stored form is "userID:role"; fetch and reset match on the
// user segment only, regardless of role.
type TurnKey struct {
	UserID string
	Role   string
}

func (k TurnKey) String() string {
	return k.UserID + ":" + k.Role
}

func (k TurnKey) MatchUser(userID string) bool {
	return len(k.UserID) > 0 && k.UserID == userID
}

// ParseTurnKey split a stored "userID:role" identifier. A missing role
// segment yields an empty Role.
func ParseTurnKey(s string) TurnKey {
	uid, role, _ := strings.Cut(s, ":")
	return TurnKey{UserID: uid, Role: role}
}
