package spawn

import (
	"math/rand/v2"
	"sync"

	"github.com/hoshinonyaruko/block-in-im/shape"
)

// Picker 从模板集合里选一个, 测试里可替换为确定性的实现
type Picker interface {
	Pick(templates []*shape.Shape) *shape.Shape
}

// RandPicker 按权重随机选择, 相同种子得到相同序列
type RandPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandPicker(seed uint64) *RandPicker {
	return &RandPicker{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *RandPicker) Pick(templates []*shape.Shape) *shape.Shape {
	if len(templates) == 0 {
		return nil
	}
	total := 0
	for _, t := range templates {
		total += t.Weight()
	}

	p.mu.Lock()
	n := p.rng.IntN(total)
	p.mu.Unlock()

	for _, t := range templates {
		n -= t.Weight()
		if n < 0 {
			return t
		}
	}
	return templates[len(templates)-1]
}

// SequencePicker 按 id 顺序循环给出模板, 找不到的 id 跳过
type SequencePicker struct {
	mu  sync.Mutex
	ids []string
	pos int
}

func NewSequencePicker(ids ...string) *SequencePicker {
	return &SequencePicker{ids: ids}
}

func (p *SequencePicker) Pick(templates []*shape.Shape) *shape.Shape {
	p.mu.Lock()
	defer p.mu.Unlock()
	for range p.ids {
		id := p.ids[p.pos%len(p.ids)]
		p.pos++
		for _, t := range templates {
			if t.ID() == id {
				return t
			}
		}
	}
	if len(templates) == 0 {
		return nil
	}
	return templates[0]
}
