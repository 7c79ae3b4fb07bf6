package diag

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/joeycumines/logiface"
)

// event is the smallest possible logiface backend: a single reusable
// line-oriented text buffer, grounded on logiface-stumpy (the pack's
// "model" backend) but trimmed to the handful of field types the runtime
// actually logs (strings, ints, errors) rather than the full JSON encoder.
type event struct {
	logiface.UnimplementedEvent

	lvl logiface.Level
	buf strings.Builder
}

func (e *event) Level() logiface.Level { return e.lvl }

func (e *event) AddField(key string, val any) {
	fmt.Fprintf(&e.buf, " %s=%v", key, val)
}

func (e *event) AddMessage(msg string) bool {
	e.buf.WriteByte(' ')
	e.buf.WriteString(msg)
	return true
}

func (e *event) AddError(err error) bool {
	if err == nil {
		return true
	}
	fmt.Fprintf(&e.buf, " error=%v", err)
	return true
}

func (e *event) AddInt(key string, val int) bool {
	fmt.Fprintf(&e.buf, " %s=%d", key, val)
	return true
}

func (e *event) AddInt64(key string, val int64) bool {
	fmt.Fprintf(&e.buf, " %s=%d", key, val)
	return true
}

func (e *event) AddString(key string, val string) bool {
	fmt.Fprintf(&e.buf, " %s=%q", key, val)
	return true
}

func (e *event) AddBool(key string, val bool) bool {
	fmt.Fprintf(&e.buf, " %s=%t", key, val)
	return true
}

var eventPool = sync.Pool{New: func() any { return new(event) }}

// Logger is the concrete logger type the rest of the runtime depends on.
// The event type parameter is unexported; callers only ever hold and pass
// around *Logger values produced by NewLogger/NewStderrLogger.
type Logger = logiface.Logger[*event]

// NewLogger builds a logiface.Logger that writes one line per event to w,
// prefixed by its level. A nil w disables writing (events are built and
// discarded), matching logiface's "safe to call on a nil receiver"
// contract for the runtime's hot paths.
func NewLogger(w io.Writer) *Logger {
	return logiface.New[*event](
		logiface.WithEventFactory[*event](logiface.NewEventFactoryFunc(func(lvl logiface.Level) *event {
			e := eventPool.Get().(*event)
			e.lvl = lvl
			e.buf.Reset()
			return e
		})),
		logiface.WithEventReleaser[*event](logiface.NewEventReleaserFunc(func(e *event) {
			eventPool.Put(e)
		})),
		logiface.WithWriter[*event](logiface.NewWriterFunc(func(e *event) error {
			if w == nil {
				return nil
			}
			_, err := fmt.Fprintf(w, "[%s]%s\n", e.lvl, e.buf.String())
			return err
		})),
	)
}

// Discard is the no-op logger used when Config.Logger is left unset.
var Discard = NewLogger(nil)

// NewStderrLogger is a convenience constructor for the common case of
// logging GC-cycle diagnostics to standard error.
func NewStderrLogger() *Logger {
	return NewLogger(os.Stderr)
}
