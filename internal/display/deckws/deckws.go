// Package deckws 实现连接按键面板宿主软件的 websocket 适配器。
// 宿主在本机开一个 websocket 端口，插件连上后先发注册事件，
// 之后通过 setImage/setTitle/setSettings/setState 事件驱动按键显示。
package deckws

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wattbot/gowatt/internal/domain"
	"github.com/wattbot/gowatt/pkg/logger"
)

// Options 连接参数
type Options struct {
	Port          int    // 宿主 websocket 端口（本机）
	PluginUUID    string // 注册用的插件 UUID
	RegisterEvent string // 注册事件名
	Context       string // 按键上下文 ID，后续事件都带上它
}

// Host 宿主连接。实现 display.Sink。
type Host struct {
	conn    *websocket.Conn
	opts    Options
	writeMu sync.Mutex // gorilla 的写不支持并发，所有写操作串行化
	closed  bool
	mu      sync.Mutex
}

// registerFrame 注册帧
type registerFrame struct {
	Event string `json:"event"`
	UUID  string `json:"uuid"`
}

// eventFrame 注册后的事件帧
type eventFrame struct {
	Event   string      `json:"event"`
	Context string      `json:"context,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// Connect 连接宿主并完成注册
func Connect(ctx context.Context, opts Options) (*Host, error) {
	wsURL := fmt.Sprintf("ws://127.0.0.1:%d", opts.Port)

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	conn, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("连接宿主 websocket 失败: %w", err)
	}

	h := &Host{conn: conn, opts: opts}
	if err := h.writeJSON(registerFrame{Event: opts.RegisterEvent, UUID: opts.PluginUUID}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("注册插件失败: %w", err)
	}

	logger.Infof("已连接按键面板宿主: %s (uuid=%s)", wsURL, opts.PluginUUID)
	return h, nil
}

func (h *Host) writeJSON(v interface{}) error {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	h.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return h.conn.WriteJSON(v)
}

// SetImage 设置按键图像
func (h *Host) SetImage(dataURI string) error {
	return h.writeJSON(eventFrame{
		Event:   "setImage",
		Context: h.opts.Context,
		Payload: map[string]interface{}{"image": dataURI, "target": 0},
	})
}

// SetTitle 设置按键标题
func (h *Host) SetTitle(text string) error {
	return h.writeJSON(eventFrame{
		Event:   "setTitle",
		Context: h.opts.Context,
		Payload: map[string]interface{}{"title": text, "target": 0},
	})
}

// SetSettings 持久化快照到宿主的 settings 存储
func (h *Host) SetSettings(s domain.Settings) error {
	return h.writeJSON(eventFrame{
		Event:   "setSettings",
		Context: h.opts.Context,
		Payload: s,
	})
}

// SetState 设置按键视觉状态
func (h *Host) SetState(state domain.DisplayState) error {
	return h.writeJSON(eventFrame{
		Event:   "setState",
		Context: h.opts.Context,
		Payload: map[string]interface{}{"state": int(state)},
	})
}

// Close 关闭连接（幂等）
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	return h.conn.Close()
}
