package reveal_test

import (
	"testing"

	"github.com/fwojciec/examchat"
	"github.com/fwojciec/examchat/markdown"
	"github.com/fwojciec/examchat/mock"
	"github.com/fwojciec/examchat/reveal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run advances st to completion and returns the number of suspensions.
func run(t *testing.T, st *reveal.State, s reveal.Surface) int {
	t.Helper()
	n := 0
	for {
		step, err := st.Advance(s)
		require.NoError(t, err)
		if step == reveal.StepDone {
			return n
		}
		n++
	}
}

func TestState_Advance(t *testing.T) {
	t.Parallel()

	t.Run("suspends once per visible token", func(t *testing.T) {
		t.Parallel()
		buf := reveal.NewBuffer()
		st := reveal.NewState(markdown.Format("Hello brave world"), reveal.ModeWord)
		assert.Equal(t, 3, run(t, st, buf))
		assert.Equal(t, "Hello brave world", buf.Text())
		assert.True(t, st.Done())
		assert.False(t, st.Active())
		assert.False(t, st.Skipped())
	})

	t.Run("first step reveals the first word", func(t *testing.T) {
		t.Parallel()
		buf := reveal.NewBuffer()
		st := reveal.NewState(markdown.Format("Hello world"), reveal.ModeWord)
		step, err := st.Advance(buf)
		require.NoError(t, err)
		assert.Equal(t, reveal.StepSuspend, step)
		assert.Equal(t, "Hello", buf.Text())
		assert.True(t, buf.TakeScroll())
		assert.False(t, buf.TakeScroll())
	})

	t.Run("grapheme mode suspends per cluster", func(t *testing.T) {
		t.Parallel()
		buf := reveal.NewBuffer()
		st := reveal.NewState(markdown.Format("ab c"), reveal.ModeGrapheme)
		assert.Equal(t, 3, run(t, st, buf))
		assert.Equal(t, "ab c", buf.Text())
	})

	t.Run("empty document completes without suspending", func(t *testing.T) {
		t.Parallel()
		buf := reveal.NewBuffer()
		st := reveal.NewState(examchat.Document{}, reveal.ModeWord)
		assert.Equal(t, 0, run(t, st, buf))
		assert.True(t, st.Done())
		assert.Equal(t, "", buf.Text())
	})

	t.Run("rule is reached without suspending", func(t *testing.T) {
		t.Parallel()
		buf := reveal.NewBuffer()
		st := reveal.NewState(markdown.Format("---"), reveal.ModeWord)
		assert.Equal(t, 0, run(t, st, buf))
		assert.Equal(t, 0, buf.Revealed(0))
	})

	t.Run("list items become visible as they are reached", func(t *testing.T) {
		t.Parallel()
		buf := reveal.NewBuffer()
		st := reveal.NewState(markdown.Format("- a\n- b"), reveal.ModeWord)
		_, err := st.Advance(buf)
		require.NoError(t, err)
		assert.True(t, buf.ItemVisible(0, 0))
		assert.False(t, buf.ItemVisible(0, 1))
		_, err = st.Advance(buf)
		require.NoError(t, err)
		assert.True(t, buf.ItemVisible(0, 1))
	})

	t.Run("tokens follow document order", func(t *testing.T) {
		t.Parallel()
		doc := markdown.Format("# Title\n\nsome **bold** text\n\n```\ncode\n```")
		buf := reveal.NewBuffer()
		run(t, reveal.NewState(doc, reveal.ModeWord), buf)
		assert.Equal(t, "Titlesome bold textcode", buf.Text())
		for _, leaf := range doc.Leaves() {
			assert.Equal(t, len(leaf.Text), buf.Revealed(leaf.Index))
		}
	})

	t.Run("surface error abandons the reveal", func(t *testing.T) {
		t.Parallel()
		calls := 0
		s := &mock.Surface{
			AppendFn: func(examchat.Leaf, string) error {
				calls++
				return examchat.ErrSurfaceClosed
			},
			ShowItemFn:       func(int, int) error { return nil },
			ScrollToBottomFn: func() error { return nil },
		}
		st := reveal.NewState(markdown.Format("one two"), reveal.ModeWord)
		step, err := st.Advance(s)
		assert.Equal(t, reveal.StepDone, step)
		assert.ErrorIs(t, err, examchat.ErrSurfaceClosed)
		assert.False(t, st.Active())
		assert.False(t, st.Done())

		step, err = st.Advance(s)
		assert.Equal(t, reveal.StepDone, step)
		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("closed buffer abandons the reveal", func(t *testing.T) {
		t.Parallel()
		buf := reveal.NewBuffer()
		st := reveal.NewState(markdown.Format("one two"), reveal.ModeWord)
		_, err := st.Advance(buf)
		require.NoError(t, err)
		buf.Close()
		_, err = st.Advance(buf)
		assert.ErrorIs(t, err, examchat.ErrSurfaceClosed)
		assert.Equal(t, "one", buf.Text())
	})
}

func TestState_Skip(t *testing.T) {
	t.Parallel()

	t.Run("finishes on the next advance", func(t *testing.T) {
		t.Parallel()
		doc := markdown.Format("Intro words\n\n- first\n- second\n\nOutro")
		buf := reveal.NewBuffer()
		st := reveal.NewState(doc, reveal.ModeWord)
		_, err := st.Advance(buf)
		require.NoError(t, err)

		st.Skip()
		step, err := st.Advance(buf)
		require.NoError(t, err)
		assert.Equal(t, reveal.StepDone, step)
		assert.True(t, st.Done())
		assert.True(t, st.Skipped())
		assert.Equal(t, "Intro wordsfirstsecondOutro", buf.Text())
		assert.True(t, buf.ItemVisible(1, 0))
		assert.True(t, buf.ItemVisible(1, 1))

		// No further suspensions once finished.
		step, err = st.Advance(buf)
		require.NoError(t, err)
		assert.Equal(t, reveal.StepDone, step)
	})

	t.Run("skip before start reveals everything", func(t *testing.T) {
		t.Parallel()
		doc := markdown.Format("a b c")
		buf := reveal.NewBuffer()
		st := reveal.NewState(doc, reveal.ModeWord)
		st.Skip()
		assert.Equal(t, 0, run(t, st, buf))
		assert.Equal(t, "a b c", buf.Text())
	})
}

func TestState_Finish(t *testing.T) {
	t.Parallel()

	doc := markdown.Format("one ★ two\n\n---\n\n- x\n-  \n")
	buf := reveal.NewBuffer()
	st := reveal.NewState(doc, reveal.ModeWord)
	require.NoError(t, st.Finish(buf))
	assert.True(t, st.Done())
	assert.False(t, st.Skipped())
	for _, leaf := range doc.Leaves() {
		assert.Equal(t, len(leaf.Text), buf.Revealed(leaf.Index), "leaf %d", leaf.Index)
	}
	assert.True(t, buf.TakeScroll())
}
