package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hoshinonyaruko/block-in-im/score"
)

const createKeyValuesTableSQL = `
CREATE TABLE IF NOT EXISTS KeyValues (
    Namespace TEXT NOT NULL,
    Key TEXT NOT NULL,
    Value INTEGER NOT NULL,
    UpdatedAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (Namespace, Key)
);
`

const createKeyValuesIndexSQL = `
CREATE INDEX IF NOT EXISTS idx_kv_namespace ON KeyValues (Namespace);
`

// Open 打开(不存在则创建)数据库并建表
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if err := InitializeDatabase(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func InitializeDatabase(db *sql.DB) error {
	for _, stmt := range []string{createKeyValuesTableSQL, createKeyValuesIndexSQL} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt, err)
		}
	}
	return nil
}

// KV 某个命名空间(群)下的整数键值, 实现 score.Store
type KV struct {
	db        *sql.DB
	namespace string
}

func NewKV(db *sql.DB, namespace string) *KV {
	return &KV{db: db, namespace: namespace}
}

func (kv *KV) GetInt(key string) (int, error) {
	var v int
	err := kv.db.QueryRow("SELECT Value FROM KeyValues WHERE Namespace = ? AND Key = ?", kv.namespace, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, score.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return v, nil
}

func (kv *KV) SetInt(key string, value int) error {
	_, err := kv.db.Exec(`INSERT INTO KeyValues (Namespace, Key, Value, UpdatedAt) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(Namespace, Key) DO UPDATE SET Value = excluded.Value, UpdatedAt = excluded.UpdatedAt`,
		kv.namespace, key, value)
	return err
}

// TopScores 各群最高分排行
func TopScores(db *sql.DB, limit int) ([]NamespaceScore, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.Query("SELECT Namespace, Value FROM KeyValues WHERE Key = ? ORDER BY Value DESC, Namespace ASC LIMIT ?",
		score.HighScoreKey, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]NamespaceScore, 0, limit)
	for rows.Next() {
		var r NamespaceScore
		if err := rows.Scan(&r.Namespace, &r.Score); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type NamespaceScore struct {
	Namespace string `json:"group_id"`
	Score     int    `json:"score"`
}
