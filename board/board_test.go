package board_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoshinonyaruko/block-in-im/board"
	"github.com/hoshinonyaruko/block-in-im/shape"
)

var dot = shape.MustFromRows("dot", "#111111", "#")

func newBoard(t *testing.T, w, h int) *board.Board {
	t.Helper()
	b, err := board.New(w, h)
	require.NoError(t, err)
	return b
}

// fill 占满除 except 以外的所有格子
func fill(b *board.Board, except ...shape.Offset) {
	skip := map[shape.Offset]bool{}
	for _, e := range except {
		skip[e] = true
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if !skip[shape.Offset{X: x, Y: y}] {
				b.Place(dot, x, y)
			}
		}
	}
}

func TestNewInvalidSize(t *testing.T) {
	for _, dims := range [][2]int{{0, 8}, {8, 0}, {-1, -1}} {
		_, err := board.New(dims[0], dims[1])
		assert.True(t, errors.Is(err, board.ErrInvalidSize))
	}
}

func TestIsEmptyOutOfBounds(t *testing.T) {
	b := newBoard(t, 8, 8)

	empty, err := b.IsEmpty(3, 4)
	require.NoError(t, err)
	assert.True(t, empty)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}} {
		_, err := b.IsEmpty(p[0], p[1])
		assert.True(t, errors.Is(err, board.ErrOutOfBounds), "(%d,%d)", p[0], p[1])
		assert.False(t, b.IsInside(p[0], p[1]))
	}
}

func TestPlaceOnlyTouchesTargetCells(t *testing.T) {
	b := newBoard(t, 8, 8)
	l := shape.MustFromRows("L", "#ff9f1c", "#.", "#.", "##")
	require.True(t, board.CanPlace(b, l, 2, 3))

	before := b.Snapshot()
	placed := b.Place(l, 2, 3)
	after := b.Snapshot()

	want := map[shape.Offset]bool{{X: 2, Y: 3}: true, {X: 2, Y: 4}: true, {X: 2, Y: 5}: true, {X: 3, Y: 5}: true}
	assert.ElementsMatch(t, []shape.Offset{{X: 2, Y: 3}, {X: 2, Y: 4}, {X: 2, Y: 5}, {X: 3, Y: 5}}, placed)
	for y := range after {
		for x := range after[y] {
			if want[shape.Offset{X: x, Y: y}] {
				assert.True(t, after[y][x].Occupied)
				assert.Equal(t, "#ff9f1c", after[y][x].Color)
			} else {
				assert.Equal(t, before[y][x], after[y][x], "(%d,%d) changed", x, y)
			}
		}
	}
	assert.Equal(t, 4, b.Occupied())
}

func TestClearRowColumnAll(t *testing.T) {
	b := newBoard(t, 4, 3)
	fill(b)

	b.ClearRow(1)
	b.ClearColumn(2)
	for x := 0; x < 4; x++ {
		empty, _ := b.IsEmpty(x, 1)
		assert.True(t, empty)
	}
	for y := 0; y < 3; y++ {
		empty, _ := b.IsEmpty(2, y)
		assert.True(t, empty)
	}
	assert.Equal(t, 12-4-3+1, b.Occupied())

	b.ClearAll()
	assert.Zero(t, b.Occupied())
}

func TestSnapshotIsCopy(t *testing.T) {
	b := newBoard(t, 2, 2)
	snap := b.Snapshot()
	snap[0][0].Occupied = true
	empty, _ := b.IsEmpty(0, 0)
	assert.True(t, empty)
}
