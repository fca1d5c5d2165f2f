package editor

import (
	"go.uber.org/zap"

	"github.com/stateful/buatdocx/pkg/document"
)

type Option func(*Editor)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// Editor owns an ordered, never-empty sequence of blocks and is
// the only way to mutate it. Invalid mutations are silent no-ops
// reported by a false return value.
//
// Editor is not safe for concurrent use.
type Editor struct {
	blocks []document.Block
	focus  *FocusCoordinator
	logger *zap.Logger
}

// New returns an editor holding a single default block.
func New(opts ...Option) *Editor {
	return NewWithBlocks(nil, opts...)
}

// NewWithBlocks returns an editor holding a copy of blocks.
// Blocks without an ID get one. An empty input yields a single default block.
func NewWithBlocks(blocks []document.Block, opts ...Option) *Editor {
	e := &Editor{}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = zap.NewNop()
	}

	e.blocks = make([]document.Block, 0, max(len(blocks), 1))
	for _, b := range blocks {
		if b.ID == "" {
			b.ID = document.NewBlock().ID
		}
		e.blocks = append(e.blocks, b)
	}
	if len(e.blocks) == 0 {
		e.blocks = append(e.blocks, document.NewBlock())
	}

	e.focus = NewFocusCoordinator(len(e.blocks))

	return e
}

func (e *Editor) Len() int {
	return len(e.blocks)
}

func (e *Editor) valid(index int) bool {
	return index >= 0 && index < len(e.blocks)
}

func (e *Editor) Block(index int) (document.Block, bool) {
	if !e.valid(index) {
		return document.Block{}, false
	}
	return e.blocks[index], true
}

// Blocks returns a copy of the sequence.
func (e *Editor) Blocks() []document.Block {
	result := make([]document.Block, len(e.blocks))
	copy(result, e.blocks)
	return result
}

// Update applies patch to the block at index. Focus is unaffected.
func (e *Editor) Update(index int, patch document.Patch) bool {
	if !e.valid(index) {
		e.logger.Debug("ignoring update of invalid index", zap.Int("index", index), zap.Int("len", e.Len()))
		return false
	}
	e.blocks[index] = patch.Apply(e.blocks[index])
	e.focus.Observe(MutationUpdate, e.Len(), index)
	return true
}

// InsertAfter inserts a default block right after index and
// returns its position, which also becomes the focus target.
func (e *Editor) InsertAfter(index int) (int, bool) {
	if !e.valid(index) {
		e.logger.Debug("ignoring insert after invalid index", zap.Int("index", index), zap.Int("len", e.Len()))
		return -1, false
	}

	newIndex := index + 1
	e.blocks = append(e.blocks, document.Block{})
	copy(e.blocks[newIndex+1:], e.blocks[newIndex:])
	e.blocks[newIndex] = document.NewBlock()

	e.focus.Observe(MutationInsert, e.Len(), newIndex)
	e.logger.Debug("inserted block", zap.Int("index", newIndex), zap.Int("len", e.Len()))

	return newIndex, true
}

// Remove deletes the block at index unless it is the only one.
func (e *Editor) Remove(index int) bool {
	if !e.valid(index) {
		e.logger.Debug("ignoring removal of invalid index", zap.Int("index", index), zap.Int("len", e.Len()))
		return false
	}
	if e.Len() == 1 {
		e.logger.Debug("ignoring removal of the last block")
		return false
	}

	e.blocks = append(e.blocks[:index], e.blocks[index+1:]...)

	e.focus.Observe(MutationRemove, e.Len(), index)
	e.logger.Debug("removed block", zap.Int("index", index), zap.Int("len", e.Len()))

	return true
}

// Move places the block at from at position to, shifting the blocks
// in between. The focus target stays on its position.
func (e *Editor) Move(from, to int) bool {
	if !e.valid(from) || !e.valid(to) {
		e.logger.Debug("ignoring move of invalid index", zap.Int("from", from), zap.Int("to", to), zap.Int("len", e.Len()))
		return false
	}
	if from == to {
		return true
	}

	block := e.blocks[from]
	if from < to {
		copy(e.blocks[from:to], e.blocks[from+1:to+1])
	} else {
		copy(e.blocks[to+1:from+1], e.blocks[to:from])
	}
	e.blocks[to] = block

	e.focus.Observe(MutationMove, e.Len(), to)

	return true
}

func (e *Editor) FocusTarget() int {
	return e.focus.Target()
}

// Focus sets the focus target explicitly.
func (e *Editor) Focus(index int) bool {
	return e.focus.Set(index)
}
