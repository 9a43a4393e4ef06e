package status

import (
	"sync"

	"github.com/kpauljoseph/pdfrescaler/pkg/logger"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

type Message struct {
	Text     string
	Severity Severity
}

func Info(text string) Message    { return Message{Text: text, Severity: SeverityInfo} }
func Success(text string) Message { return Message{Text: text, Severity: SeveritySuccess} }
func Error(text string) Message   { return Message{Text: text, Severity: SeverityError} }

// Reporter is the status surface. Implementations must be safe to call
// from the worker goroutine.
type Reporter interface {
	Report(msg Message)
}

type ReporterFunc func(Message)

func (f ReporterFunc) Report(msg Message) { f(msg) }

// Channel hands messages to whichever loop owns the interface.
// Report never touches interface state directly.
type Channel struct {
	ch chan Message
}

func NewChannel(buffer int) *Channel {
	return &Channel{ch: make(chan Message, buffer)}
}

func (c *Channel) Report(msg Message) {
	c.ch <- msg
}

// Messages is drained by the interface loop.
func (c *Channel) Messages() <-chan Message {
	return c.ch
}

func (c *Channel) Close() {
	close(c.ch)
}

// LogReporter mirrors status messages into the application log.
type LogReporter struct {
	log *logger.Logger
}

func NewLogReporter(log *logger.Logger) *LogReporter {
	return &LogReporter{log: log}
}

func (r *LogReporter) Report(msg Message) {
	if msg.Severity == SeverityError {
		r.log.Error("%s", msg.Text)
		return
	}
	r.log.Info("[%s] %s", msg.Severity, msg.Text)
}

type multi []Reporter

func (m multi) Report(msg Message) {
	for _, r := range m {
		r.Report(msg)
	}
}

// Tee fans a message out to every reporter in order.
func Tee(reporters ...Reporter) Reporter {
	return multi(reporters)
}

// Recorder keeps every message. Used by tests and the CLI summary.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Report(msg Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

func (r *Recorder) Count(severity Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.messages {
		if m.Severity == severity {
			n++
		}
	}
	return n
}
