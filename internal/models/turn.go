// Package models contains data types and constants shared across kaiwa.
package models

// Role identifies who produced a transcript turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the transcript. Turns are immutable once appended.
type Turn struct {
	Role    Role
	Content string
}

// IsUser reports whether the turn was produced by the user.
func (t Turn) IsUser() bool {
	return t.Role == RoleUser
}
