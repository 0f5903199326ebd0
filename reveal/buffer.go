package reveal

import (
	"strings"
	"sync"

	"github.com/fwojciec/examchat"
)

// Buffer is an in-memory Surface. It records how many bytes of each leaf
// have been revealed and which list items are visible, and serves that
// record as a markdown.Mask. It is safe for concurrent use.
type Buffer struct {
	mu       sync.Mutex
	revealed map[int]int
	items    map[[2]int]bool
	text     strings.Builder
	scroll   bool
	closed   bool
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		revealed: make(map[int]int),
		items:    make(map[[2]int]bool),
	}
}

func (b *Buffer) Append(leaf examchat.Leaf, token string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return examchat.ErrSurfaceClosed
	}
	b.revealed[leaf.Index] += len(token)
	b.text.WriteString(token)
	return nil
}

func (b *Buffer) ShowItem(block, item int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return examchat.ErrSurfaceClosed
	}
	b.items[[2]int{block, item}] = true
	return nil
}

func (b *Buffer) ScrollToBottom() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return examchat.ErrSurfaceClosed
	}
	b.scroll = true
	return nil
}

// Close detaches the buffer. Later appends fail with
// examchat.ErrSurfaceClosed, which abandons any reveal still writing to it.
func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

// Revealed implements markdown.Mask.
func (b *Buffer) Revealed(leaf int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.revealed[leaf]
	if !ok {
		return -1
	}
	return n
}

// ItemVisible implements markdown.Mask.
func (b *Buffer) ItemVisible(block, item int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.items[[2]int{block, item}]
}

// Text returns every appended token concatenated in order.
func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text.String()
}

// TakeScroll reports whether ScrollToBottom was called since the last
// TakeScroll.
func (b *Buffer) TakeScroll() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.scroll
	b.scroll = false
	return s
}
