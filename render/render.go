// Package render 把一局游戏画成 PNG, 供 IM 里直接发图
package render

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/hoshinonyaruko/block-in-im/game"
	"github.com/hoshinonyaruko/block-in-im/spawn"
)

const (
	emptyColor  = "#2b2d42"
	gridColor   = "#3d405b"
	defaultFill = "#8d99ae"
	trayRows    = 3
)

// Renderer 按格子像素大小绘制, 可并发使用
type Renderer struct {
	blockSize int
	// 按尺寸缓存的空棋盘背景
	backgrounds sync.Map
}

func New(blockSize int) *Renderer {
	return &Renderer{blockSize: blockSize}
}

// Layout 画布分区: 顶部分数栏, 中间棋盘, 底部方块托盘
type Layout struct {
	Width       int
	HeaderH     int
	BoardH      int
	TrayH       int
	TotalHeight int
}

func (r *Renderer) Layout(v game.View) Layout {
	bs := r.blockSize
	l := Layout{
		Width:   v.Width * bs,
		HeaderH: bs,
		BoardH:  v.Height * bs,
		TrayH:   trayRows * bs,
	}
	l.TotalHeight = l.HeaderH + l.BoardH + l.TrayH
	return l
}

// CellCenter 格子中心的像素坐标
func (r *Renderer) CellCenter(x, y int) (int, int) {
	bs := r.blockSize
	return x*bs + bs/2, bs + y*bs + bs/2
}

// Render 绘制完整画面
func (r *Renderer) Render(v game.View) image.Image {
	l := r.Layout(v)
	bs := r.blockSize

	dc := gg.NewContext(l.Width, l.TotalHeight)
	dc.SetHexColor("#1d1e2c")
	dc.Clear()

	dc.DrawImage(r.background(v.Width, v.Height), 0, l.HeaderH)

	for y, row := range v.Cells {
		for x, c := range row {
			if !c.Occupied {
				continue
			}
			drawCell(dc, float64(x*bs), float64(l.HeaderH+y*bs), float64(bs), c.Color)
		}
	}

	r.drawHeader(dc, v, l)
	r.drawTray(dc, v.Pieces, l)

	if v.State == game.GameOver {
		dc.SetRGBA(0, 0, 0, 0.6)
		dc.DrawRectangle(0, float64(l.HeaderH), float64(l.Width), float64(l.BoardH))
		dc.Fill()
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored("GAME OVER", float64(l.Width)/2, float64(l.HeaderH+l.BoardH/2), 0.5, 0.5)
	}
	return dc.Image()
}

// SavePNG 渲染并保存, 目录不存在时创建
func (r *Renderer) SavePNG(v game.View, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return gg.SavePNG(path, r.Render(v))
}

func (r *Renderer) background(w, h int) image.Image {
	key := fmt.Sprintf("%dx%d@%d", w, h, r.blockSize)
	if img, ok := r.backgrounds.Load(key); ok {
		return img.(image.Image)
	}

	bs := r.blockSize
	dc := gg.NewContext(w*bs, h*bs)
	dc.SetHexColor(emptyColor)
	dc.Clear()
	renderGrid(dc, w*bs, h*bs, bs)

	img := dc.Image()
	r.backgrounds.Store(key, img)
	return img
}

func renderGrid(dc *gg.Context, width, height, blockSize int) {
	dc.SetHexColor(gridColor)
	dc.SetLineWidth(1)
	for x := 0; x <= width; x += blockSize {
		dc.DrawLine(float64(x), 0, float64(x), float64(height))
		dc.Stroke()
	}
	for y := 0; y <= height; y += blockSize {
		dc.DrawLine(0, float64(y), float64(width), float64(y))
		dc.Stroke()
	}
}

func drawCell(dc *gg.Context, x, y, size float64, color string) {
	if color == "" {
		color = defaultFill
	}
	inset := size / 16
	dc.SetHexColor(color)
	dc.DrawRectangle(x+inset, y+inset, size-2*inset, size-2*inset)
	dc.Fill()
	// 高光
	dc.SetRGBA(1, 1, 1, 0.25)
	dc.DrawRectangle(x+inset, y+inset, size-2*inset, size/8)
	dc.Fill()
}

func (r *Renderer) drawHeader(dc *gg.Context, v game.View, l Layout) {
	dc.SetRGB(1, 1, 1)
	text := fmt.Sprintf("score %d  best %d", v.Score, v.HighScore)
	if v.Combo > 1 {
		text += fmt.Sprintf("  combo x%d", v.Combo)
	}
	dc.DrawStringAnchored(text, 6, float64(l.HeaderH)/2, 0, 0.5)
}

// drawTray 每个方块先按原始大小画出, 再用 imaging 缩放进槽位
func (r *Renderer) drawTray(dc *gg.Context, pieces []spawn.Piece, l Layout) {
	slots := 0
	for _, p := range pieces {
		slots = max(slots, p.Slot+1)
	}
	if slots == 0 {
		return
	}
	slotW := l.Width / slots
	top := l.HeaderH + l.BoardH
	pad := r.blockSize / 4
	labelH := 14

	for _, p := range pieces {
		thumb := imaging.Fit(r.pieceImage(p), max(slotW-2*pad, 1), max(l.TrayH-2*pad-labelH, 1), imaging.Lanczos)
		b := thumb.Bounds()
		x := p.Slot*slotW + (slotW-b.Dx())/2
		y := top + pad + (l.TrayH-2*pad-labelH-b.Dy())/2
		dc.DrawImage(thumb, x, y)

		dc.SetRGB(0.8, 0.8, 0.8)
		dc.DrawStringAnchored(fmt.Sprintf("#%d", p.ID), float64(p.Slot*slotW+slotW/2), float64(top+l.TrayH-pad-labelH/2), 0.5, 0.5)
	}
}

func (r *Renderer) pieceImage(p spawn.Piece) image.Image {
	bs := r.blockSize
	s := p.Shape
	lo, _ := s.Bounds()
	pc := gg.NewContext(max(s.Width(), 1)*bs, max(s.Height(), 1)*bs)
	for _, o := range s.Offsets() {
		drawCell(pc, float64((o.X-lo.X)*bs), float64((o.Y-lo.Y)*bs), float64(bs), s.Color())
	}
	return pc.Image()
}
