package game

import (
	"github.com/hoshinonyaruko/block-in-im/board"
	"github.com/hoshinonyaruko/block-in-im/spawn"
)

// Move 一个合法的放置
type Move struct {
	Piece spawn.Piece
	X     int
	Y     int
}

// FindMove 穷举每个方块的每个锚点, 返回找到的第一个合法放置
func FindMove(pieces []spawn.Piece, b *board.Board) (Move, bool) {
	for _, p := range pieces {
		minX, minY, maxX, maxY, ok := board.AnchorRange(b, p.Shape)
		if !ok {
			continue
		}
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				if board.CanPlace(b, p.Shape, x, y) {
					return Move{Piece: p, X: x, Y: y}, true
				}
			}
		}
	}
	return Move{}, false
}

// HasAnyMove 没有方块时视为还能继续(槽位即将补满)
func HasAnyMove(pieces []spawn.Piece, b *board.Board) bool {
	if len(pieces) == 0 {
		return true
	}
	_, ok := FindMove(pieces, b)
	return ok
}
