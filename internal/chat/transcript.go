// Package chat owns the transcript and the message-exchange controller.
package chat

import "github.com/ragu/kaiwa/internal/models"

// Transcript is an ordered, append-only sequence of turns. It is seeded
// with a single assistant greeting and only ever grows.
type Transcript struct {
	turns []models.Turn
}

// NewTranscript creates a transcript seeded with the greeting as its one
// assistant turn.
func NewTranscript(greeting string) *Transcript {
	return &Transcript{
		turns: []models.Turn{{Role: models.RoleAssistant, Content: greeting}},
	}
}

// Append adds one turn to the end of the transcript.
func (t *Transcript) Append(turn models.Turn) {
	t.turns = append(t.turns, turn)
}

// All returns the full ordered sequence. The returned slice is a copy;
// appending to it does not affect the transcript.
func (t *Transcript) All() []models.Turn {
	out := make([]models.Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len returns the number of turns.
func (t *Transcript) Len() int {
	return len(t.turns)
}

// Last returns the most recent turn.
func (t *Transcript) Last() models.Turn {
	return t.turns[len(t.turns)-1]
}
