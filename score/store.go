package score

import (
	"errors"
	"sync"
)

// HighScoreKey 最高分在键值存储里唯一的键
const HighScoreKey = "high_score"

// ErrNotFound 键不存在
var ErrNotFound = errors.New("key not found")

// Store 整数键值存储, 实现可以是内存或 sqlite
type Store interface {
	// GetInt 读取值, 不存在返回 ErrNotFound
	GetInt(key string) (int, error)
	// SetInt 写入值, 同步落盘
	SetInt(key string, value int) error
}

// MemoryStore 内存实现, 进程退出即丢失
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]int)}
}

func (m *MemoryStore) GetInt(key string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return 0, ErrNotFound
}

func (m *MemoryStore) SetInt(key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
