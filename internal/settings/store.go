// Package settings 用 Badger 持久化最近一次 tick 的 settings 快照。
// 只存一个 key：整份快照每个 tick 整体覆盖写入，不保留历史。
// 启动时可以读回上一次快照，用于在第一次拉取完成前恢复显示。
package settings

import (
	"encoding/json"
	"errors"
	"strings"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/wattbot/gowatt/internal/domain"
)

// ErrNotFound 表示还没有保存过快照
var ErrNotFound = errors.New("settings: snapshot not found")

const snapshotKey = "pricing:snapshot"

// Store 基于 Badger 的快照存储。实现 display.Sink：
// 只响应 SetSettings，其余边界调用是宿主侧的事，这里直接放行。
type Store struct {
	db *badger.DB
}

// Open 打开（或创建）存储目录
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("settings: path is required")
	}
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close 关闭存储
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save 整体覆盖写入快照
func (s *Store) Save(settings domain.Settings) error {
	b, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(snapshotKey), b)
	})
}

// Load 读取最近保存的快照
func (s *Store) Load() (domain.Settings, error) {
	var out domain.Settings
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(snapshotKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &out)
		})
	})
	return out, err
}

// SetImage 无操作（图像只发给宿主）
func (s *Store) SetImage(string) error { return nil }

// SetTitle 无操作
func (s *Store) SetTitle(string) error { return nil }

// SetSettings 实现 display.Sink 的持久化调用
func (s *Store) SetSettings(settings domain.Settings) error {
	return s.Save(settings)
}

// SetState 无操作
func (s *Store) SetState(domain.DisplayState) error { return nil }
