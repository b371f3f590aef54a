package board

import "github.com/hoshinonyaruko/block-in-im/shape"

// Check 判断形状放在锚点 (ax, ay) 是否合法.
// 任意锚点都可调用, 第一个越界或被占用的格子立即返回, 不分配内存.
func Check(b *Board, s *shape.Shape, ax, ay int) error {
	for _, o := range s.Offsets() {
		x, y := ax+o.X, ay+o.Y
		if !b.IsInside(x, y) {
			return ErrOutOfBounds
		}
		if b.cells[b.index(x, y)].Occupied {
			return ErrCellOccupied
		}
	}
	return nil
}

func CanPlace(b *Board, s *shape.Shape, ax, ay int) bool {
	return Check(b, s, ax, ay) == nil
}

// AnchorRange 所有格子都能落在棋盘内的锚点范围(闭区间).
// 形状比棋盘大时 ok 为 false.
func AnchorRange(b *Board, s *shape.Shape) (minX, minY, maxX, maxY int, ok bool) {
	if s.CellCount() == 0 {
		return 0, 0, 0, 0, false
	}
	lo, hi := s.Bounds()
	minX, minY = -lo.X, -lo.Y
	maxX, maxY = b.width-1-hi.X, b.height-1-hi.Y
	return minX, minY, maxX, maxY, minX <= maxX && minY <= maxY
}
