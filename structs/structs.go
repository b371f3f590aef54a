package structs

// Position 棋盘上的一个坐标
type Position struct {
	X int `json:"x"` // 列
	Y int `json:"y"` // 行
}

// Piece 槽位中待放置的方块
type Piece struct {
	ID     uint64     `json:"id"`     // 方块实例 id, 放置时传回
	Slot   int        `json:"slot"`   // 槽位序号
	Shape  string     `json:"shape"`  // 模板 id
	Color  string     `json:"color"`  // 显示颜色
	Cells  []Position `json:"cells"`  // 相对枢轴的格子
	Width  int        `json:"width"`  // 包围盒宽
	Height int        `json:"height"` // 包围盒高
}

// GameState 一个群当前的游戏状态
type GameState struct {
	GroupID   string     `json:"group_id"`  // 游戏组标识
	Width     int        `json:"width"`     // 棋盘宽度
	Height    int        `json:"height"`    // 棋盘高度
	Rows      []string   `json:"rows"`      // 每行一个字符串, '#' 为占用 '.' 为空
	Colors    [][]string `json:"colors"`    // 每格颜色, 空格子为空字符串
	Pieces    []Piece    `json:"pieces"`    // 当前可放置的方块
	Score     int        `json:"score"`     // 当前分数
	HighScore int        `json:"highscore"` // 最高分
	Combo     int        `json:"combo"`     // 连击数
	GameOver  bool       `json:"game_over"` // 是否结束
}

// PlaceResult 放置成功后的返回
type PlaceResult struct {
	Cells       []Position `json:"cells"`        // 新占用的格子
	RowsCleared []int      `json:"rows_cleared"` // 消除的行
	ColsCleared []int      `json:"cols_cleared"` // 消除的列
	Lines       int        `json:"lines"`        // 消除总数(行+列)
	Gained      int        `json:"gained"`       // 本回合得分
	State       GameState  `json:"state"`        // 回合结束后的状态
}

// Hint 一个可行的放置
type Hint struct {
	PieceID uint64 `json:"piece_id"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}
