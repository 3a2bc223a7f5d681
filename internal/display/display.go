// Package display 定义显示边界：核心管线只依赖这里的窄接口，
// 对宿主运行时（按键面板软件、预览服务、终端）零感知。
package display

import (
	"github.com/wattbot/gowatt/internal/domain"
	"github.com/wattbot/gowatt/pkg/logger"
)

// Sink 显示边界接口。每个 tick 结束时核心会依次调用这四个方法。
type Sink interface {
	// SetImage 设置按键图像（data:image/svg+xml,... 形式的 data URI）
	SetImage(dataURI string) error
	// SetTitle 设置按键标题（成功时为空串，失败时为 "Error"）
	SetTitle(text string) error
	// SetSettings 持久化本次 tick 的快照键值
	SetSettings(s domain.Settings) error
	// SetState 设置视觉状态（0 = normal, 1 = high）
	SetState(state domain.DisplayState) error
}

// MultiSink 把一次发射扇出到多个 sink。
// best-effort：单个 sink 失败只记日志，不影响其余 sink。
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink 创建扇出 sink
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Add 追加一个 sink
func (m *MultiSink) Add(s Sink) {
	if s != nil {
		m.sinks = append(m.sinks, s)
	}
}

func (m *MultiSink) SetImage(dataURI string) error {
	for _, s := range m.sinks {
		if err := s.SetImage(dataURI); err != nil {
			logger.Warnf("sink SetImage 失败: %v", err)
		}
	}
	return nil
}

func (m *MultiSink) SetTitle(text string) error {
	for _, s := range m.sinks {
		if err := s.SetTitle(text); err != nil {
			logger.Warnf("sink SetTitle 失败: %v", err)
		}
	}
	return nil
}

func (m *MultiSink) SetSettings(set domain.Settings) error {
	for _, s := range m.sinks {
		if err := s.SetSettings(set); err != nil {
			logger.Warnf("sink SetSettings 失败: %v", err)
		}
	}
	return nil
}

func (m *MultiSink) SetState(state domain.DisplayState) error {
	for _, s := range m.sinks {
		if err := s.SetState(state); err != nil {
			logger.Warnf("sink SetState 失败: %v", err)
		}
	}
	return nil
}
