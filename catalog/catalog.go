// Package catalog 从目录加载方块模板, 文件变化时热更新
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hoshinonyaruko/block-in-im/shape"
)

// Definition 方块文件里的一项, rows 和 cells 二选一
type Definition struct {
	ID        string         `json:"id"`
	Color     string         `json:"color"`
	Rows      []string       `json:"rows,omitempty"`
	Cells     []shape.Offset `json:"cells,omitempty"`
	Weight    int            `json:"weight,omitempty"`
	Rotations bool           `json:"rotations,omitempty"`
}

// Build 校验并生成模板; rotations 为 true 时每个不同的旋转单独成为一个模板
func (d Definition) Build() ([]*shape.Shape, error) {
	if d.ID == "" {
		return nil, fmt.Errorf("block without id: %w", shape.ErrInvalidShapeData)
	}
	if len(d.Rows) > 0 && len(d.Cells) > 0 {
		return nil, fmt.Errorf("shape %q: both rows and cells set: %w", d.ID, shape.ErrInvalidShapeData)
	}
	var (
		s   *shape.Shape
		err error
	)
	if len(d.Rows) > 0 {
		s, err = shape.FromRows(d.ID, d.Color, d.Rows...)
	} else {
		s, err = shape.New(d.ID, d.Color, d.Cells)
	}
	if err != nil {
		return nil, err
	}
	if d.Weight > 0 {
		s = s.WithWeight(d.Weight)
	}
	if d.Rotations {
		return s.Rotations(), nil
	}
	return []*shape.Shape{s}, nil
}

// Parse 解析一个方块文件; 有问题的方块被丢弃并在 errs 里说明
func Parse(r io.Reader) ([]*shape.Shape, []error) {
	var defs []Definition
	if err := json.NewDecoder(r).Decode(&defs); err != nil {
		return nil, []error{fmt.Errorf("decode: %w", err)}
	}
	var (
		out  []*shape.Shape
		errs []error
	)
	for i, d := range defs {
		shapes, err := d.Build()
		if err != nil {
			errs = append(errs, fmt.Errorf("block #%d: %w", i, err))
			continue
		}
		out = append(out, shapes...)
	}
	return out, errs
}

// Catalog 线程安全的模板集合, 实现 spawn.Source
type Catalog struct {
	dir    string
	logger zerolog.Logger

	mu     sync.RWMutex
	shapes []*shape.Shape
}

// New 创建目录对应的集合, 初始内容为内置方块
func New(dir string, logger zerolog.Logger) *Catalog {
	return &Catalog{dir: dir, logger: logger, shapes: shape.Defaults()}
}

func (c *Catalog) Dir() string { return c.dir }

// Shapes 返回当前模板快照
func (c *Catalog) Shapes() []*shape.Shape {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.shapes
}

// Load 读取目录下所有 .json 文件. 形状数据错误的方块一律拒绝并记警告;
// 目录不存在或没有任何有效方块时使用内置方块
func (c *Catalog) Load() error {
	var files []string
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("walk %s: %w", c.dir, err)
	}
	sort.Strings(files)

	seen := map[string]bool{}
	var loaded []*shape.Shape
	for _, f := range files {
		shapes, err := c.loadFile(f)
		if err != nil {
			c.logger.Warn().Err(err).Str("file", f).Msg("skip block file")
			continue
		}
		for _, s := range shapes {
			if seen[s.ID()] {
				c.logger.Warn().Str("file", f).Str("block", s.ID()).Msg("duplicate block id, skipped")
				continue
			}
			seen[s.ID()] = true
			loaded = append(loaded, s)
		}
	}

	if len(loaded) == 0 {
		c.logger.Info().Str("dir", c.dir).Msg("no block files, using builtin blocks")
		loaded = shape.Defaults()
	}

	c.mu.Lock()
	c.shapes = loaded
	c.mu.Unlock()
	c.logger.Info().Int("blocks", len(loaded)).Int("files", len(files)).Msg("block catalog loaded")
	return nil
}

func (c *Catalog) loadFile(path string) ([]*shape.Shape, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	shapes, errs := Parse(file)
	for _, e := range errs {
		c.logger.Warn().Err(e).Str("file", path).Msg("rejected block")
	}
	return shapes, nil
}
