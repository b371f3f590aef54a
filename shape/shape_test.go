package shape_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoshinonyaruko/block-in-im/shape"
)

func TestNewRejectsInvalidData(t *testing.T) {
	tests := []struct {
		name  string
		cells []shape.Offset
	}{
		{"empty", nil},
		{"duplicate", []shape.Offset{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := shape.New(tt.name, "#000000", tt.cells)
			assert.Nil(t, s)
			assert.True(t, errors.Is(err, shape.ErrInvalidShapeData))
		})
	}
}

func TestNewCopiesCells(t *testing.T) {
	cells := []shape.Offset{{X: 0, Y: 0}, {X: 1, Y: 0}}
	s, err := shape.New("pair", "#fff", cells)
	require.NoError(t, err)

	cells[0] = shape.Offset{X: 9, Y: 9}
	assert.True(t, s.Contains(shape.Offset{X: 0, Y: 0}))
	assert.False(t, s.Contains(shape.Offset{X: 9, Y: 9}))
}

func TestFromRows(t *testing.T) {
	s, err := shape.FromRows("T", "#9b5de5", "###", ".#.")
	require.NoError(t, err)

	assert.Equal(t, 4, s.CellCount())
	assert.Equal(t, 3, s.Width())
	assert.Equal(t, 2, s.Height())
	assert.True(t, s.Contains(shape.Offset{X: 1, Y: 1}))
	assert.False(t, s.Contains(shape.Offset{X: 0, Y: 1}))
	assert.Equal(t, []string{"###", ".#."}, s.Rows())
}

func TestBounds(t *testing.T) {
	s, err := shape.New("odd", "", []shape.Offset{{X: -1, Y: 2}, {X: 3, Y: -2}, {X: 0, Y: 0}})
	require.NoError(t, err)

	lo, hi := s.Bounds()
	assert.Equal(t, shape.Offset{X: -1, Y: -2}, lo)
	assert.Equal(t, shape.Offset{X: 3, Y: 2}, hi)
	assert.Equal(t, 5, s.Width())
	assert.Equal(t, 5, s.Height())
}

func TestZeroShapeBounds(t *testing.T) {
	var s shape.Shape
	lo, hi := s.Bounds()
	assert.Equal(t, shape.Offset{}, lo)
	assert.Equal(t, shape.Offset{}, hi)
	assert.Equal(t, 0, s.Width())
	assert.Equal(t, 0, s.Height())
}

func TestRotated(t *testing.T) {
	l := shape.MustFromRows("L", "#ff9f1c", "#.", "#.", "##")

	t.Run("single turn maps (x,y) to (y,-x)", func(t *testing.T) {
		r := l.Rotated(1)
		for _, c := range l.Offsets() {
			assert.True(t, r.Contains(shape.Offset{X: c.Y, Y: -c.X}), "missing image of %v", c)
		}
		assert.Equal(t, l.Height(), r.Width())
		assert.Equal(t, l.Width(), r.Height())
		assert.Equal(t, "L@90", r.ID())
	})

	t.Run("original is untouched", func(t *testing.T) {
		before := append([]shape.Offset(nil), l.Offsets()...)
		_ = l.Rotated(3)
		assert.Equal(t, before, l.Offsets())
	})

	t.Run("four turns is identity", func(t *testing.T) {
		for _, s := range shape.Defaults() {
			assert.True(t, s.Rotated(4).Equal(s.Rotated(0)), s.ID())
			assert.True(t, s.Rotated(0).Equal(s), s.ID())
		}
	})

	t.Run("negative turns", func(t *testing.T) {
		assert.True(t, l.Rotated(-1).Equal(l.Rotated(3)))
	})

	t.Run("ids compose", func(t *testing.T) {
		assert.Equal(t, "L@180", l.Rotated(1).Rotated(1).ID())
		assert.Equal(t, "L", l.Rotated(2).Rotated(2).ID())
	})
}

func TestRotations(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want int
	}{
		{"square", []string{"##", "##"}, 1},
		{"line", []string{"###"}, 2},
		{"S", []string{".##", "##."}, 2},
		{"T", []string{"###", ".#."}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := shape.MustFromRows(tt.name, "", tt.rows...)
			rots := s.Rotations()
			assert.Len(t, rots, tt.want)
			for _, r := range rots {
				lo, _ := r.Bounds()
				assert.Equal(t, shape.Offset{}, lo)
			}
		})
	}
}

func TestDefaultsAreValid(t *testing.T) {
	ids := map[string]bool{}
	for _, s := range shape.Defaults() {
		assert.False(t, ids[s.ID()], "duplicate id %s", s.ID())
		ids[s.ID()] = true
		assert.Positive(t, s.CellCount())
		assert.Equal(t, 1, s.Weight())
	}
}
