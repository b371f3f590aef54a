package api

import (
	"strings"

	"github.com/hoshinonyaruko/block-in-im/game"
	"github.com/hoshinonyaruko/block-in-im/shape"
	"github.com/hoshinonyaruko/block-in-im/structs"
)

func toPositions(offsets []shape.Offset) []structs.Position {
	out := make([]structs.Position, len(offsets))
	for i, o := range offsets {
		out[i] = structs.Position{X: o.X, Y: o.Y}
	}
	return out
}

func toState(groupID string, v game.View) structs.GameState {
	st := structs.GameState{
		GroupID:   groupID,
		Width:     v.Width,
		Height:    v.Height,
		Rows:      make([]string, len(v.Cells)),
		Colors:    make([][]string, len(v.Cells)),
		Pieces:    make([]structs.Piece, 0, len(v.Pieces)),
		Score:     v.Score,
		HighScore: v.HighScore,
		Combo:     v.Combo,
		GameOver:  v.State == game.GameOver,
	}
	for y, row := range v.Cells {
		var b strings.Builder
		colors := make([]string, len(row))
		for x, c := range row {
			if c.Occupied {
				b.WriteByte('#')
				colors[x] = c.Color
			} else {
				b.WriteByte('.')
			}
		}
		st.Rows[y] = b.String()
		st.Colors[y] = colors
	}
	for _, p := range v.Pieces {
		st.Pieces = append(st.Pieces, structs.Piece{
			ID:     p.ID,
			Slot:   p.Slot,
			Shape:  p.Shape.ID(),
			Color:  p.Shape.Color(),
			Cells:  toPositions(p.Shape.Offsets()),
			Width:  p.Shape.Width(),
			Height: p.Shape.Height(),
		})
	}
	return st
}
