package chat

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	apierrors "github.com/ragu/kaiwa/internal/errors"
	"github.com/ragu/kaiwa/internal/models"
)

// fakeGenerator counts calls and returns a canned reply or error. When
// release is non-nil, GenerateContent blocks until it is closed.
type fakeGenerator struct {
	mu      sync.Mutex
	calls   int
	reply   string
	err     error
	release chan struct{}
}

func (f *fakeGenerator) GenerateContent(prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.release != nil {
		<-f.release
	}
	return f.reply, f.err
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestController(gen Generator) *Controller {
	return NewController(NewTranscript(models.Greeting), gen)
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestController_InitialState(t *testing.T) {
	c := newTestController(&fakeGenerator{reply: "ok"})

	turns := c.Turns()
	if len(turns) != 1 {
		t.Fatalf("initial transcript has %d turns, want 1", len(turns))
	}
	if turns[0].Role != models.RoleAssistant {
		t.Errorf("seed turn role = %q, want assistant", turns[0].Role)
	}
	if c.Busy() {
		t.Error("controller busy before any submission")
	}
}

func TestController_BlankSubmit(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	c := newTestController(gen)

	for _, input := range []string{"", "   ", "\n", " \t \n "} {
		if c.Submit(input) {
			t.Errorf("Submit(%q) = true, want no-op", input)
		}
	}

	if len(c.Turns()) != 1 {
		t.Errorf("blank submissions changed the transcript: %d turns", len(c.Turns()))
	}
	if gen.callCount() != 0 {
		t.Errorf("blank submissions issued %d outbound calls", gen.callCount())
	}
	if c.Busy() {
		t.Error("busy flag set by blank submission")
	}
}

func TestController_SuccessfulExchange(t *testing.T) {
	gen := &fakeGenerator{reply: "Hello"}
	c := newTestController(gen)

	if !c.Submit("konnichiwa") {
		t.Fatal("Submit() = false, want exchange to run")
	}

	turns := c.Turns()
	if len(turns) != 3 {
		t.Fatalf("transcript has %d turns, want 3", len(turns))
	}
	if turns[1].Role != models.RoleUser || turns[1].Content != "konnichiwa" {
		t.Errorf("user turn = %+v", turns[1])
	}
	if turns[2].Role != models.RoleAssistant || turns[2].Content != "Hello" {
		t.Errorf("assistant turn = %+v", turns[2])
	}
	if c.Busy() {
		t.Error("busy flag still set after exchange")
	}
	if gen.callCount() != 1 {
		t.Errorf("outbound calls = %d, want 1", gen.callCount())
	}
}

func TestController_UserTurnAppendedBeforeCallResolves(t *testing.T) {
	gen := &fakeGenerator{reply: "late", release: make(chan struct{})}
	c := newTestController(gen)

	done := make(chan struct{})
	go func() {
		c.Submit("hello")
		close(done)
	}()

	waitFor(t, c.Busy)

	turns := c.Turns()
	if len(turns) != 2 {
		t.Fatalf("transcript has %d turns while sending, want 2", len(turns))
	}
	if turns[1].Role != models.RoleUser {
		t.Errorf("pending turn role = %q, want user", turns[1].Role)
	}

	close(gen.release)
	<-done

	if c.Busy() {
		t.Error("busy flag still set after completion")
	}
}

func TestController_SubmitWhileBusyIsNoOp(t *testing.T) {
	gen := &fakeGenerator{reply: "done", release: make(chan struct{})}
	c := newTestController(gen)

	done := make(chan struct{})
	go func() {
		c.Submit("first")
		close(done)
	}()

	waitFor(t, c.Busy)

	if c.Submit("second") {
		t.Error("Submit() while busy = true, want rejection")
	}
	if gen.callCount() != 1 {
		t.Errorf("outbound calls = %d, want 1 (no second call)", gen.callCount())
	}
	if len(c.Turns()) != 2 {
		t.Errorf("rejected submission changed the transcript: %d turns", len(c.Turns()))
	}

	close(gen.release)
	<-done

	// Only the first exchange produced turns.
	if len(c.Turns()) != 3 {
		t.Errorf("transcript has %d turns, want 3", len(c.Turns()))
	}
}

func TestController_APIErrorBecomesTurn(t *testing.T) {
	gen := &fakeGenerator{err: apierrors.NewAPIError(0, "/generate", "quota exceeded")}
	c := newTestController(gen)

	c.Submit("hello")

	turns := c.Turns()
	if len(turns) != 3 {
		t.Fatalf("transcript has %d turns, want 3", len(turns))
	}
	last := turns[2]
	if last.Role != models.RoleAssistant {
		t.Errorf("error turn role = %q, want assistant", last.Role)
	}
	if !strings.HasPrefix(last.Content, apologyPrefix) {
		t.Errorf("error turn %q missing apology prefix", last.Content)
	}
	if !strings.Contains(last.Content, "quota exceeded") {
		t.Errorf("error turn %q missing the API message", last.Content)
	}
	if c.Busy() {
		t.Error("busy flag not released after failure")
	}
}

func TestController_InvalidResponseBecomesTurn(t *testing.T) {
	gen := &fakeGenerator{err: apierrors.NewParseError("invalid response from the model", "candidates")}
	c := newTestController(gen)

	c.Submit("hello")

	last := c.Turns()[2]
	if !strings.Contains(last.Content, "invalid response from the model") {
		t.Errorf("error turn %q missing the fixed invalid-response message", last.Content)
	}
	if c.Busy() {
		t.Error("busy flag not released after parse failure")
	}
}

func TestController_SequentialExchangesAlternate(t *testing.T) {
	gen := &fakeGenerator{reply: "reply"}
	c := newTestController(gen)

	const n = 5
	for i := 0; i < n; i++ {
		if !c.Submit(fmt.Sprintf("message %d", i)) {
			t.Fatalf("Submit() #%d rejected while idle", i)
		}
	}

	turns := c.Turns()
	if len(turns) != 1+2*n {
		t.Fatalf("transcript has %d turns, want %d", len(turns), 1+2*n)
	}
	for i, turn := range turns[1:] {
		wantRole := models.RoleUser
		if i%2 == 1 {
			wantRole = models.RoleAssistant
		}
		if turn.Role != wantRole {
			t.Errorf("turn %d role = %q, want %q", i+1, turn.Role, wantRole)
		}
	}
	if gen.callCount() != n {
		t.Errorf("outbound calls = %d, want %d", gen.callCount(), n)
	}
}

func TestController_IdenticalSubmissionsNotDeduplicated(t *testing.T) {
	gen := &fakeGenerator{reply: "reply"}
	c := newTestController(gen)

	c.Submit("same text")
	c.Submit("same text")

	if gen.callCount() != 2 {
		t.Errorf("outbound calls = %d, want 2 (no dedup)", gen.callCount())
	}
	if len(c.Turns()) != 5 {
		t.Errorf("transcript has %d turns, want 5", len(c.Turns()))
	}
}
