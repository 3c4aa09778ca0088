package chat

import (
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ragu/kaiwa/internal/models"
)

// apologyPrefix starts every error turn. The user-visible error IS a chat
// turn; there is no separate error affordance.
const apologyPrefix = "Sorry, I ran into a problem: "

// Generator produces one reply for one prompt. api.Client satisfies it;
// tests substitute fakes.
type Generator interface {
	GenerateContent(prompt string) (string, error)
}

// Controller runs one exchange at a time against a Generator and appends
// the outcome to its transcript. State machine per exchange:
// Idle -> Sending -> Idle. Submissions while Sending are rejected, not
// queued.
type Controller struct {
	mu         sync.Mutex
	busy       bool
	transcript *Transcript
	gen        Generator
}

// NewController creates a controller that owns the given transcript.
func NewController(transcript *Transcript, gen Generator) *Controller {
	return &Controller{
		transcript: transcript,
		gen:        gen,
	}
}

// Busy reports whether an exchange is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Turns returns the transcript contents as of now.
func (c *Controller) Turns() []models.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transcript.All()
}

// Submit runs one full exchange: it appends the user turn, performs the
// outbound call, and appends exactly one follow-up turn (the reply, or an
// apology turn carrying the failure message). The call blocks for the
// duration of the network round trip.
//
// Blank input and submission while busy are silent no-ops; the caller can
// check the return value to know whether an exchange ran.
func (c *Controller) Submit(userText string) bool {
	if strings.TrimSpace(userText) == "" {
		return false
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return false
	}
	c.transcript.Append(models.Turn{Role: models.RoleUser, Content: userText})
	c.busy = true
	c.mu.Unlock()

	reply, err := c.gen.GenerateContent(userText)

	turn := models.Turn{Role: models.RoleAssistant, Content: reply}
	if err != nil {
		log.Debug().Err(err).Msg("exchange failed")
		turn.Content = apologyPrefix + err.Error()
	}

	c.mu.Lock()
	c.transcript.Append(turn)
	c.busy = false
	c.mu.Unlock()

	return true
}
