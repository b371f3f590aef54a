// Package score 分数、最高分和连击
package score

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hoshinonyaruko/block-in-im/event"
	"github.com/hoshinonyaruko/block-in-im/shape"
)

type Config struct {
	PointsPerCell int `json:"pointspercell"`
	PointsPerLine int `json:"pointsperline"`
}

func DefaultConfig() Config {
	return Config{PointsPerCell: 1, PointsPerLine: 10}
}

// Engine 只在放置和消行事件里修改分数状态
type Engine struct {
	cfg    Config
	store  Store
	bus    *event.Bus
	logger zerolog.Logger

	score int
	high  int
	combo int
}

// New 从 store 读取一次最高分; store 为 nil 时使用内存存储
func New(cfg Config, store Store, bus *event.Bus, logger zerolog.Logger) (*Engine, error) {
	if cfg.PointsPerCell < 0 || cfg.PointsPerLine < 0 {
		return nil, fmt.Errorf("negative points config %+v", cfg)
	}
	if store == nil {
		store = NewMemoryStore()
	}
	if bus == nil {
		bus = event.NewBus()
	}
	e := &Engine{cfg: cfg, store: store, bus: bus, logger: logger}

	high, err := store.GetInt(HighScoreKey)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("loading high score: %w", err)
	case high > 0:
		e.high = high
	}
	return e, nil
}

func (e *Engine) Score() int     { return e.score }
func (e *Engine) HighScore() int { return e.high }
func (e *Engine) Combo() int     { return e.combo }

// AddPlacementScore 每个格子 PointsPerCell 分, 返回增量
func (e *Engine) AddPlacementScore(s *shape.Shape) int {
	delta := s.CellCount() * e.cfg.PointsPerCell
	e.score += delta
	e.bus.Publish(event.Event{Kind: event.ScoreChanged, Value: e.score})
	e.updateHigh()
	return delta
}

// ProcessLineClears 有消行时连击加一, 得分 = 行数 × PointsPerLine × 新连击数;
// 没有消行时连击归零, 只有原来不为零才通知一次
func (e *Engine) ProcessLineClears(lines int) int {
	if lines <= 0 {
		if e.combo != 0 {
			e.logger.Debug().Int("combo", e.combo).Msg("combo broken")
			e.combo = 0
			e.bus.Publish(event.Event{Kind: event.ComboChanged, Value: 0})
		}
		return 0
	}

	e.combo++
	delta := lines * e.cfg.PointsPerLine * e.combo
	e.score += delta
	e.bus.Publish(event.Event{Kind: event.ScoreChanged, Value: e.score})
	e.bus.Publish(event.Event{Kind: event.ComboChanged, Value: e.combo})
	e.updateHigh()
	return delta
}

// Reset 分数和连击归零, 最高分保留
func (e *Engine) Reset() {
	e.score = 0
	e.bus.Publish(event.Event{Kind: event.ScoreChanged, Value: 0})
	if e.combo != 0 {
		e.combo = 0
		e.bus.Publish(event.Event{Kind: event.ComboChanged, Value: 0})
	}
}

// updateHigh 超过最高分时立即写入存储; 写入失败只记日志
func (e *Engine) updateHigh() {
	if e.score <= e.high {
		return
	}
	e.high = e.score
	if err := e.store.SetInt(HighScoreKey, e.high); err != nil {
		e.logger.Warn().Err(err).Int("high_score", e.high).Msg("persist high score")
	}
	e.bus.Publish(event.Event{Kind: event.HighScoreChanged, Value: e.high})
}
