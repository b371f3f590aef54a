package api

import (
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/hoshinonyaruko/block-in-im/config"
	"github.com/hoshinonyaruko/block-in-im/game"
	"github.com/hoshinonyaruko/block-in-im/render"
	"github.com/hoshinonyaruko/block-in-im/score"
	"github.com/hoshinonyaruko/block-in-im/spawn"
	"github.com/hoshinonyaruko/block-in-im/sqlite"
)

var (
	errNoGame     = errors.New("no game for this group, call /new-game first")
	validGroupID  = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	errBadGroupID = errors.New("groupid must be 1-64 characters of [A-Za-z0-9_-]")
)

// Server 每个群一局游戏, 会话只保存在内存里
type Server struct {
	cfg      *config.AppConfig
	db       *sql.DB
	source   spawn.Source
	renderer *render.Renderer
	logger   zerolog.Logger

	// NewPicker 为新会话创建随机源, 测试里可替换
	NewPicker func(groupID string) spawn.Picker

	mu       sync.Mutex
	sessions map[string]*game.Session
}

// New db 为 nil 时最高分只保存在内存
func New(cfg *config.AppConfig, db *sql.DB, source spawn.Source, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		db:       db,
		source:   source,
		renderer: render.New(cfg.Blocksize),
		logger:   logger,
		sessions: make(map[string]*game.Session),
	}
	s.NewPicker = s.seededPicker
	return s
}

// Router 注册所有接口
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	// 开始/重新开始
	router.GET("/new-game", s.NewGameHandler())
	// 放置方块
	router.GET("/place", s.PlaceHandler())
	router.GET("/state", s.StateHandler())
	router.GET("/hint", s.HintHandler())
	// 渲染函数 返回静态地址
	router.GET("/render-map", s.RenderMapHandler())
	router.GET("/events", s.EventsHandler())
	router.GET("/leaderboard", s.LeaderboardHandler())
	router.Static("/static", s.cfg.StaticDir)
	return router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("group", c.Query("groupid")).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("http request")
	}
}

// seededPicker 配置了种子时每个群得到可复现的序列
func (s *Server) seededPicker(groupID string) spawn.Picker {
	if s.cfg.Seed == 0 {
		return spawn.NewRandPicker(uint64(time.Now().UnixNano()))
	}
	h := fnv.New64a()
	h.Write([]byte(groupID))
	return spawn.NewRandPicker(s.cfg.Seed ^ h.Sum64())
}

func (s *Server) store(groupID string) score.Store {
	if s.db == nil {
		return score.NewMemoryStore()
	}
	return sqlite.NewKV(s.db, groupID)
}

// session 获取群的会话, create 为 true 时不存在就创建
func (s *Server) session(groupID string, create bool) (*game.Session, bool, error) {
	if !validGroupID.MatchString(groupID) {
		return nil, false, errBadGroupID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[groupID]; ok {
		return sess, false, nil
	}
	if !create {
		return nil, false, errNoGame
	}

	sess, err := game.NewSession(game.Options{
		Width:  s.cfg.Width,
		Height: s.cfg.Height,
		Slots:  s.cfg.Slots,
		Score: &score.Config{
			PointsPerCell: s.cfg.PointsPerCell,
			PointsPerLine: s.cfg.PointsPerLine,
		},
		Store:  s.store(groupID),
		Source: s.source,
		Picker: s.NewPicker(groupID),
		Logger: s.logger.With().Str("group", groupID).Logger(),
	})
	if err != nil {
		return nil, false, fmt.Errorf("creating game: %w", err)
	}
	s.sessions[groupID] = sess
	s.logger.Info().Str("group", groupID).Msg("game created")
	return sess, true, nil
}

func (s *Server) imagePath(groupID string) string {
	return filepath.Join(s.cfg.StaticDir, groupID+".png")
}

func (s *Server) imageURL(groupID string) string {
	return fmt.Sprintf("%s/static/%s.png", strings.TrimRight(s.cfg.SelfPath, "/"), groupID)
}
