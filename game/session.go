package game

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hoshinonyaruko/block-in-im/board"
	"github.com/hoshinonyaruko/block-in-im/event"
	"github.com/hoshinonyaruko/block-in-im/score"
	"github.com/hoshinonyaruko/block-in-im/shape"
	"github.com/hoshinonyaruko/block-in-im/spawn"
)

// Options 组装一局游戏所需的全部依赖, 零值字段使用默认值
type Options struct {
	Width  int
	Height int
	Slots  int
	Score  *score.Config // nil 时使用 score.DefaultConfig
	Store  score.Store
	Source spawn.Source
	Picker spawn.Picker
	Logger zerolog.Logger
}

// Session 持有一局游戏的所有组件, 没有全局状态.
// 回合进行中组件归 Controller 独占, 直接访问 Board/Score/Queue 只应发生在回合之间
type Session struct {
	Board      *board.Board
	Score      *score.Engine
	Queue      *spawn.Queue
	Bus        *event.Bus
	Controller *Controller
}

// NewSession 创建组件并开始第一局
func NewSession(opts Options) (*Session, error) {
	if opts.Width == 0 {
		opts.Width = 8
	}
	if opts.Height == 0 {
		opts.Height = 8
	}
	if opts.Slots == 0 {
		opts.Slots = 3
	}
	scoreCfg := score.DefaultConfig()
	if opts.Score != nil {
		scoreCfg = *opts.Score
	}
	if opts.Source == nil {
		opts.Source = spawn.Templates(shape.Defaults())
	}
	if opts.Picker == nil {
		opts.Picker = spawn.NewRandPicker(uint64(time.Now().UnixNano()))
	}

	b, err := board.New(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	bus := event.NewBus()
	se, err := score.New(scoreCfg, opts.Store, bus, opts.Logger)
	if err != nil {
		return nil, err
	}
	q, err := spawn.New(opts.Slots, opts.Source, opts.Picker)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Board:      b,
		Score:      se,
		Queue:      q,
		Bus:        bus,
		Controller: NewController(b, se, q, bus, opts.Logger),
	}
	if err := s.Controller.Restart(); err != nil {
		return nil, fmt.Errorf("starting game: %w", err)
	}
	return s, nil
}
