// Package game 回合流程: 校验、落子、消行、计分、补充方块、判定结束
package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hoshinonyaruko/block-in-im/board"
	"github.com/hoshinonyaruko/block-in-im/event"
	"github.com/hoshinonyaruko/block-in-im/score"
	"github.com/hoshinonyaruko/block-in-im/shape"
	"github.com/hoshinonyaruko/block-in-im/spawn"
)

var (
	ErrGameOver     = errors.New("game is over")
	ErrUnknownPiece = spawn.ErrUnknownPiece
)

type State int

const (
	Playing State = iota
	GameOver
)

func (s State) String() string {
	if s == GameOver {
		return "game_over"
	}
	return "playing"
}

// Result 一次成功放置的结果
type Result struct {
	Piece    spawn.Piece    `json:"piece"`
	Cells    []shape.Offset `json:"cells"`
	Lines    board.Lines    `json:"lines"`
	Placed   int            `json:"placed"`
	Cleared  int            `json:"cleared"`
	GameOver bool           `json:"game_over"`
}

// IsRejection 放置不合法(越界或被占用), 属于正常结果, 调用方应把方块放回槽位
func IsRejection(err error) bool {
	return errors.Is(err, board.ErrOutOfBounds) || errors.Is(err, board.ErrCellOccupied)
}

// Controller 唯一知道所有组件的对象, 每个回合在锁内原子执行
type Controller struct {
	mu     sync.Mutex
	board  *board.Board
	score  *score.Engine
	queue  *spawn.Queue
	bus    *event.Bus
	logger zerolog.Logger
	state  State
}

func NewController(b *board.Board, s *score.Engine, q *spawn.Queue, bus *event.Bus, logger zerolog.Logger) *Controller {
	return &Controller{board: b, score: s, queue: q, bus: bus, logger: logger}
}

// Place 处理一次放置请求
func (c *Controller) Place(id uint64, x, y int) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == GameOver {
		return Result{}, ErrGameOver
	}
	piece, ok := c.queue.Get(id)
	if !ok {
		c.logger.Error().Uint64("piece", id).Msg("placement for piece not in spawn set")
		return Result{}, fmt.Errorf("piece %d: %w", id, ErrUnknownPiece)
	}
	if err := board.Check(c.board, piece.Shape, x, y); err != nil {
		return Result{}, fmt.Errorf("place %s at (%d,%d): %w", piece.Shape.ID(), x, y, err)
	}

	res := Result{Piece: piece}
	res.Cells = c.board.Place(piece.Shape, x, y)
	res.Lines = board.ScanAndClear(c.board)

	res.Placed = c.score.AddPlacementScore(piece.Shape)
	res.Cleared = c.score.ProcessLineClears(res.Lines.Count())

	if err := c.queue.Remove(id); err != nil {
		// Get 已确认存在, 这里只可能是补充失败
		return res, fmt.Errorf("refill spawn slots: %w", err)
	}

	if !HasAnyMove(c.queue.Pieces(), c.board) {
		c.setState(GameOver)
	}
	res.GameOver = c.state == GameOver

	c.logger.Debug().
		Uint64("piece", id).
		Str("shape", piece.Shape.ID()).
		Int("x", x).Int("y", y).
		Int("lines", res.Lines.Count()).
		Int("score", c.score.Score()).
		Msg("piece placed")
	return res, nil
}

// Restart 重置棋盘、分数和槽位, 回到 Playing
func (c *Controller) Restart() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.board.ClearAll()
	c.score.Reset()
	if err := c.queue.Reset(); err != nil {
		return fmt.Errorf("fill spawn slots: %w", err)
	}
	c.state = Playing
	c.bus.Publish(event.Event{Kind: event.GameStateChanged, GameOver: false})

	// 方块比棋盘还大时开局即结束
	if !HasAnyMove(c.queue.Pieces(), c.board) {
		c.setState(GameOver)
	}
	return nil
}

func (c *Controller) setState(s State) {
	if c.state == s {
		return
	}
	c.state = s
	c.logger.Info().Str("state", s.String()).Int("score", c.score.Score()).Msg("game state changed")
	c.bus.Publish(event.Event{Kind: event.GameStateChanged, GameOver: s == GameOver})
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View 一致的只读快照
type View struct {
	Width     int
	Height    int
	Cells     [][]board.Cell
	Pieces    []spawn.Piece
	Score     int
	HighScore int
	Combo     int
	State     State
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		Width:     c.board.Width(),
		Height:    c.board.Height(),
		Cells:     c.board.Snapshot(),
		Pieces:    c.queue.Pieces(),
		Score:     c.score.Score(),
		HighScore: c.score.HighScore(),
		Combo:     c.score.Combo(),
		State:     c.state,
	}
}

// IsEmpty 查询格子, 越界返回 board.ErrOutOfBounds
func (c *Controller) IsEmpty(x, y int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.board.IsEmpty(x, y)
}

// CanPlace 给输入层判断拖拽能否落下
func (c *Controller) CanPlace(id uint64, x, y int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.queue.Get(id)
	if !ok {
		return false, fmt.Errorf("piece %d: %w", id, ErrUnknownPiece)
	}
	return board.CanPlace(c.board, p.Shape, x, y), nil
}

// Hint 返回一个合法放置
func (c *Controller) Hint() (Move, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == GameOver {
		return Move{}, false
	}
	return FindMove(c.queue.Pieces(), c.board)
}
