package reveal_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/examchat"
	"github.com/fwojciec/examchat/markdown"
	"github.com/fwojciec/examchat/reveal"
	"github.com/stretchr/testify/assert"
	"pkt.systems/pslog"
)

// instant fires every delay at once and counts how many were requested.
func instant(calls *atomic.Int32) func(time.Duration) <-chan time.Time {
	return func(time.Duration) <-chan time.Time {
		calls.Add(1)
		ch := make(chan time.Time, 1)
		ch <- time.Time{}
		return ch
	}
}

// stalled never fires and reports each requested delay on waits.
func stalled(calls *atomic.Int32, waits chan<- struct{}) func(time.Duration) <-chan time.Time {
	return func(time.Duration) <-chan time.Time {
		calls.Add(1)
		waits <- struct{}{}
		return nil
	}
}

// logCapture collects the structured log lines a reveal writes.
type logCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

// done returns the skipped field of the reveal.done entry and whether such
// an entry was logged at all.
func (c *logCapture) done() (skipped, logged bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range strings.Split(c.buf.String(), "\n") {
		payload := map[string]any{}
		if err := json.Unmarshal([]byte(line), &payload); err != nil {
			continue
		}
		msg, _ := payload["msg"].(string)
		if msg == "" {
			msg, _ = payload["message"].(string)
		}
		if msg == "reveal.done" {
			return fmt.Sprint(payload["skipped"]) == "true", true
		}
	}
	return false, false
}

// captureLogs returns a context whose logger writes to the capture.
func captureLogs() (context.Context, *logCapture) {
	capture := &logCapture{}
	logger := pslog.NewWithOptions(capture, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.DebugLevel,
	})
	return pslog.ContextWithLogger(context.Background(), logger), capture
}

func TestSequencer_Reveal(t *testing.T) {
	t.Parallel()

	t.Run("reveals every token with one delay per word", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		buf := reveal.NewBuffer()
		seq := reveal.NewSequencer(buf, reveal.WithAfterFunc(instant(&calls)))

		ctx, logs := captureLogs()
		seq.Reveal(ctx, markdown.Format("one two three"), time.Millisecond).Wait()

		assert.Equal(t, "one two three", buf.Text())
		assert.Equal(t, int32(3), calls.Load())
		skipped, logged := logs.done()
		assert.True(t, logged)
		assert.False(t, skipped)
	})

	t.Run("zero speed never waits", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		buf := reveal.NewBuffer()
		seq := reveal.NewSequencer(buf, reveal.WithAfterFunc(instant(&calls)))

		seq.Reveal(context.Background(), markdown.Format("a b"), 0).Wait()

		assert.Equal(t, "a b", buf.Text())
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("empty document completes immediately", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		buf := reveal.NewBuffer()
		seq := reveal.NewSequencer(buf, reveal.WithAfterFunc(instant(&calls)))

		h := seq.Reveal(context.Background(), examchat.Document{}, time.Second)
		select {
		case <-h.Done():
		case <-time.After(5 * time.Second):
			t.Fatal("reveal did not complete")
		}
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("skip completes with no further delays", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		waits := make(chan struct{}, 16)
		buf := reveal.NewBuffer()
		seq := reveal.NewSequencer(buf, reveal.WithAfterFunc(stalled(&calls, waits)))

		ctx, logs := captureLogs()
		h := seq.Reveal(ctx, markdown.Format("- first item\n- second item"), time.Second)
		<-waits
		h.Skip()
		h.Wait()
		h.Skip()

		skipped, logged := logs.done()
		assert.True(t, logged)
		assert.True(t, skipped)
		assert.Equal(t, "first itemsecond item", buf.Text())
		assert.True(t, buf.ItemVisible(0, 1))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("cancelled context abandons the reveal", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		waits := make(chan struct{}, 16)
		buf := reveal.NewBuffer()
		seq := reveal.NewSequencer(buf, reveal.WithAfterFunc(stalled(&calls, waits)))

		logCtx, logs := captureLogs()
		ctx, cancel := context.WithCancel(logCtx)
		h := seq.Reveal(ctx, markdown.Format("one two"), time.Second)
		<-waits
		cancel()
		h.Wait()

		assert.Equal(t, "one", buf.Text())
		_, logged := logs.done()
		assert.False(t, logged)
	})

	t.Run("new reveal finishes the active one first", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		waits := make(chan struct{}, 16)
		buf := reveal.NewBuffer()
		seq := reveal.NewSequencer(buf, reveal.WithAfterFunc(stalled(&calls, waits)))

		ctx, logs := captureLogs()
		first := seq.Reveal(ctx, markdown.Format("alpha beta"), time.Second)
		<-waits
		second := seq.Reveal(context.Background(), markdown.Format("gamma delta"), time.Second)

		select {
		case <-first.Done():
		default:
			t.Fatal("first reveal still running")
		}
		skipped, logged := logs.done()
		assert.True(t, logged)
		assert.True(t, skipped)

		<-waits
		second.Skip()
		second.Wait()
		assert.Equal(t, "alpha betagamma delta", buf.Text())
	})

	t.Run("grapheme mode", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		buf := reveal.NewBuffer()
		seq := reveal.NewSequencer(buf,
			reveal.WithMode(reveal.ModeGrapheme),
			reveal.WithAfterFunc(instant(&calls)),
		)

		seq.Reveal(context.Background(), markdown.Format("hi yo"), time.Millisecond).Wait()

		assert.Equal(t, "hi yo", buf.Text())
		assert.Equal(t, int32(4), calls.Load())
	})
}
