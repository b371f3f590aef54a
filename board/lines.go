package board

// Lines 一次消除的行和列
type Lines struct {
	Rows    []int `json:"rows"`
	Columns []int `json:"columns"`
}

// Count 行数加列数, 交叉格子按线各算一次
func (l Lines) Count() int { return len(l.Rows) + len(l.Columns) }

// ScanAndClear 先基于同一个快照找出所有满行和满列, 再依次清除行和列
func ScanAndClear(b *Board) Lines {
	var l Lines
	for y := 0; y < b.height; y++ {
		if b.rowFull(y) {
			l.Rows = append(l.Rows, y)
		}
	}
	for x := 0; x < b.width; x++ {
		if b.columnFull(x) {
			l.Columns = append(l.Columns, x)
		}
	}
	for _, y := range l.Rows {
		b.ClearRow(y)
	}
	for _, x := range l.Columns {
		b.ClearColumn(x)
	}
	return l
}
