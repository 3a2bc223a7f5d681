package display

import (
	"sync"
	"time"

	"github.com/wattbot/gowatt/internal/domain"
)

// Emission 一次完整的边界发射结果
type Emission struct {
	ImageDataURI string              `json:"imageDataURI"`
	Title        string              `json:"title"`
	Settings     domain.Settings     `json:"settings"`
	State        domain.DisplayState `json:"state"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// SnapshotBoard 持有最近一次发射的内存 sink。
// 预览服务和 TUI 从这里读最新状态；并发 tick 下后写者胜出。
type SnapshotBoard struct {
	mu      sync.RWMutex
	current Emission
	hasData bool
}

// NewSnapshotBoard 创建空白看板
func NewSnapshotBoard() *SnapshotBoard {
	return &SnapshotBoard{}
}

func (b *SnapshotBoard) SetImage(dataURI string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current.ImageDataURI = dataURI
	b.current.UpdatedAt = time.Now()
	b.hasData = true
	return nil
}

func (b *SnapshotBoard) SetTitle(text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current.Title = text
	return nil
}

func (b *SnapshotBoard) SetSettings(s domain.Settings) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current.Settings = s
	return nil
}

func (b *SnapshotBoard) SetState(state domain.DisplayState) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current.State = state
	return nil
}

// Current 返回最近一次发射；还没有任何发射时 ok 为 false
func (b *SnapshotBoard) Current() (Emission, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current, b.hasData
}
