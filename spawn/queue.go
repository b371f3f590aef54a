// Package spawn 待放置方块槽位及补充策略
package spawn

import (
	"errors"
	"fmt"

	"github.com/kamstrup/intmap"

	"github.com/hoshinonyaruko/block-in-im/shape"
)

var (
	ErrEmptyCatalog = errors.New("no block templates available")
	ErrUnknownPiece = errors.New("unknown piece")
)

// Source 方块模板来源
type Source interface {
	Shapes() []*shape.Shape
}

// Templates 固定的模板列表
type Templates []*shape.Shape

func (t Templates) Shapes() []*shape.Shape { return t }

// Piece 槽位里的一个方块实例
type Piece struct {
	ID    uint64       `json:"id"`
	Slot  int          `json:"slot"`
	Shape *shape.Shape `json:"-"`
}

// Queue 固定数量的槽位, 全部放完后立即补满
type Queue struct {
	source Source
	picker Picker
	slots  []*Piece
	index  *intmap.Map[uint64, int]
	nextID uint64
}

func New(capacity int, source Source, picker Picker) (*Queue, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("spawn capacity %d must be positive", capacity)
	}
	if source == nil || picker == nil {
		return nil, errors.New("spawn queue needs a source and a picker")
	}
	return &Queue{
		source: source,
		picker: picker,
		slots:  make([]*Piece, capacity),
		index:  intmap.New[uint64, int](capacity),
	}, nil
}

func (q *Queue) Capacity() int { return len(q.slots) }

func (q *Queue) Len() int { return q.index.Len() }

// Fill 给每个空槽位抽一个模板
func (q *Queue) Fill() error {
	templates := q.source.Shapes()
	if len(templates) == 0 {
		return ErrEmptyCatalog
	}
	for slot, p := range q.slots {
		if p != nil {
			continue
		}
		s := q.picker.Pick(templates)
		if s == nil {
			return ErrEmptyCatalog
		}
		q.nextID++
		q.slots[slot] = &Piece{ID: q.nextID, Slot: slot, Shape: s}
		q.index.Put(q.nextID, slot)
	}
	return nil
}

// Remove 移除已放置的方块; 槽位全空时同步补满再返回
func (q *Queue) Remove(id uint64) error {
	slot, ok := q.index.Get(id)
	if !ok {
		return fmt.Errorf("piece %d: %w", id, ErrUnknownPiece)
	}
	q.index.Del(id)
	q.slots[slot] = nil
	if q.index.Len() == 0 {
		return q.Fill()
	}
	return nil
}

func (q *Queue) Get(id uint64) (Piece, bool) {
	slot, ok := q.index.Get(id)
	if !ok {
		return Piece{}, false
	}
	return *q.slots[slot], true
}

// Pieces 按槽位顺序返回当前方块的副本
func (q *Queue) Pieces() []Piece {
	out := make([]Piece, 0, len(q.slots))
	for _, p := range q.slots {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// Reset 清空所有槽位并重新补满, id 继续递增
func (q *Queue) Reset() error {
	clear(q.slots)
	q.index.Clear()
	return q.Fill()
}
