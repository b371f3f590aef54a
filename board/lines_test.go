package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hoshinonyaruko/block-in-im/board"
	"github.com/hoshinonyaruko/block-in-im/shape"
)

func TestScanAndClearFullBoard(t *testing.T) {
	b := newBoard(t, 8, 8)
	fill(b)

	lines := board.ScanAndClear(b)
	assert.Equal(t, 16, lines.Count())
	assert.Zero(t, b.Occupied())
}

func TestScanAndClearNonSquare(t *testing.T) {
	b := newBoard(t, 5, 3)
	fill(b)

	assert.Equal(t, 5+3, board.ScanAndClear(b).Count())
	assert.Zero(t, b.Occupied())
}

func TestScanAndClearNothingFull(t *testing.T) {
	b := newBoard(t, 8, 8)
	// 对角线留空, 每行每列各缺一格
	holes := make([]shape.Offset, 8)
	for i := range holes {
		holes[i] = shape.Offset{X: i, Y: i}
	}
	fill(b, holes...)

	lines := board.ScanAndClear(b)
	assert.Zero(t, lines.Count())
	assert.Equal(t, 56, b.Occupied())
}

func TestScanAndClearTwoCornerHoles(t *testing.T) {
	b := newBoard(t, 8, 8)
	fill(b, shape.Offset{X: 0, Y: 0}, shape.Offset{X: 7, Y: 7})

	lines := board.ScanAndClear(b)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, lines.Rows)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, lines.Columns)
	assert.Equal(t, 12, lines.Count())
	assert.Equal(t, 2, b.Occupied())
	empty, err := b.IsEmpty(7, 0)
	assert.NoError(t, err)
	assert.False(t, empty)
	empty, err = b.IsEmpty(0, 7)
	assert.NoError(t, err)
	assert.False(t, empty)
}

func TestScanAndClearRowAndColumnSameSnapshot(t *testing.T) {
	b := newBoard(t, 8, 8)
	// 第 2 行和第 5 列都满, 交叉格 (5,2) 两条线各算一次
	for x := 0; x < 8; x++ {
		b.Place(dot, x, 2)
	}
	for y := 0; y < 8; y++ {
		if y != 2 {
			b.Place(dot, 5, y)
		}
	}
	b.Place(dot, 0, 0)

	lines := board.ScanAndClear(b)
	assert.Equal(t, []int{2}, lines.Rows)
	assert.Equal(t, []int{5}, lines.Columns)
	assert.Equal(t, 2, lines.Count())
	assert.Equal(t, 1, b.Occupied())
}

func TestScanAndClearMultipleRows(t *testing.T) {
	b := newBoard(t, 4, 4)
	for _, y := range []int{0, 3} {
		for x := 0; x < 4; x++ {
			b.Place(dot, x, y)
		}
	}
	b.Place(dot, 1, 1)

	lines := board.ScanAndClear(b)
	assert.Equal(t, []int{0, 3}, lines.Rows)
	assert.Empty(t, lines.Columns)
	assert.Equal(t, 1, b.Occupied())
}
