// Package event 游戏通知: 同步的订阅者列表
package event

import "sync"

type Kind int

const (
	ScoreChanged Kind = iota + 1
	ComboChanged
	HighScoreChanged
	GameStateChanged
)

func (k Kind) String() string {
	switch k {
	case ScoreChanged:
		return "score"
	case ComboChanged:
		return "combo"
	case HighScoreChanged:
		return "highscore"
	case GameStateChanged:
		return "gamestate"
	default:
		return "unknown"
	}
}

// Event 一次状态变化. ComboChanged 且 Value 为 0 表示连击中断
type Event struct {
	Kind     Kind `json:"kind"`
	Value    int  `json:"value"`
	GameOver bool `json:"game_over,omitempty"`
}

type Handler func(Event)

type subscriber struct {
	id int
	fn Handler
}

// Bus 按订阅顺序同步分发, 不关心订阅者身份和数量
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   []subscriber
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe 返回取消订阅函数
func (b *Bus) Subscribe(fn Handler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish 在调用方的 goroutine 里依次调用所有订阅者
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()
	for _, s := range subs {
		s.fn(e)
	}
}

// Channel 以带缓冲 channel 的形式订阅, 读取方太慢时丢弃事件
func (b *Bus) Channel(buf int) (<-chan Event, func()) {
	ch := make(chan Event, buf)
	var once sync.Once
	var mu sync.Mutex
	closed := false
	cancel := b.Subscribe(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- e:
		default:
		}
	})
	return ch, func() {
		once.Do(func() {
			cancel()
			mu.Lock()
			closed = true
			close(ch)
			mu.Unlock()
		})
	}
}
