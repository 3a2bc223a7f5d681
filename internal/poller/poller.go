// Package poller 驱动 fetch -> compute -> render -> emit 管线。
// 定时器和手动触发走同一个 Tick；tick 之间不做互斥，
// 结果写入共享显示面时后完成者胜出（tick 幂等，顺序无关紧要）。
package poller

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wattbot/gowatt/internal/display"
	"github.com/wattbot/gowatt/internal/domain"
	"github.com/wattbot/gowatt/internal/feed"
	"github.com/wattbot/gowatt/internal/icon"
	"github.com/wattbot/gowatt/internal/pricing"
	"github.com/wattbot/gowatt/pkg/logger"
	"github.com/wattbot/gowatt/pkg/sigchan"
)

// Poller 定价轮询器
type Poller struct {
	client         *feed.Client
	sink           display.Sink
	interval       time.Duration
	thresholdCents float64
	trigger        *sigchan.Chan
}

// New 创建轮询器。interval <= 0 时用 60 秒，threshold <= 0 时用默认阈值。
func New(client *feed.Client, sink display.Sink, interval time.Duration, thresholdCents float64) *Poller {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	if thresholdCents <= 0 {
		thresholdCents = pricing.DefaultHighThresholdCents
	}
	return &Poller{
		client:         client,
		sink:           sink,
		interval:       interval,
		thresholdCents: thresholdCents,
		trigger:        sigchan.New(1),
	}
}

// TriggerNow 手动触发一次 tick（非阻塞；正在排队时合并）
func (p *Poller) TriggerNow() {
	p.trigger.Emit()
}

// Tick 执行一次完整管线。
// 任一侧 fetch 失败或解析失败都走统一错误路径：错误图标 + "Error" 标题，
// 不写 settings（避免把过期趋势当新数据存下去），错误不往宿主抛。
func (p *Poller) Tick(ctx context.Context) (*domain.PricingSnapshot, error) {
	tickID := uuid.NewString()
	log := logger.WithField("tick", tickID)

	fiveMin, hourly, err := p.client.FetchBoth(ctx)
	if err != nil {
		log.Errorf("拉取价格失败: %v", err)
		p.emitError()
		return nil, err
	}

	current := fiveMin.Current()
	previous := fiveMin.Previous()
	hourlyPrice := hourly.Current()

	snap := &domain.PricingSnapshot{
		TickID:           tickID,
		FiveMinPrice:     current,
		PrevFiveMinPrice: previous,
		HourlyPrice:      hourlyPrice,
		FiveMinFormatted: pricing.Format(current),
		HourlyFormatted:  pricing.Format(hourlyPrice),
		Trend:            pricing.ComputeTrend(previous, current),
		State:            pricing.ClassifyAt(current, p.thresholdCents),
		FetchedAt:        time.Now(),
	}

	svg := icon.Render(icon.Input{
		FiveMinFormatted: snap.FiveMinFormatted,
		HourlyFormatted:  snap.HourlyFormatted,
		State:            snap.State,
		Trend:            snap.Trend,
	})

	// 图标承载全部文字，标题固定为空串
	p.emit(func() error { return p.sink.SetImage(icon.DataURI(svg)) })
	p.emit(func() error { return p.sink.SetTitle("") })
	p.emit(func() error { return p.sink.SetSettings(snap.ToSettings()) })
	p.emit(func() error { return p.sink.SetState(snap.State) })

	log.Debugf("tick 完成: price=%s trend=%s state=%d", snap.FiveMinFormatted, snap.Trend, snap.State)
	return snap, nil
}

// emitError 统一错误显示路径：错误图标 + Error 标题，不碰 settings 和 state
func (p *Poller) emitError() {
	p.emit(func() error { return p.sink.SetImage(icon.DataURI(icon.RenderError())) })
	p.emit(func() error { return p.sink.SetTitle("Error") })
}

// emit 边界调用失败只记日志，不让错误中断 tick
func (p *Poller) emit(fn func() error) {
	if err := fn(); err != nil {
		logger.Warnf("边界调用失败: %v", err)
	}
}

// Run 启动轮询循环：启动时立即执行一次，然后按固定间隔 + 手动触发执行。
// ctx 取消后定时器停止，不留孤儿后台任务。
func (p *Poller) Run(ctx context.Context) {
	logger.Infof("启动定价轮询: interval=%s threshold=%.1f¢", p.interval, p.thresholdCents)

	p.safeTick(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("定价轮询已停止")
			return
		case <-ticker.C:
			go p.safeTick(ctx)
		case <-p.trigger.C():
			go p.safeTick(ctx)
		}
	}
}

// safeTick 带 panic 兜底的单次 tick：任何意外都转化为错误显示路径
func (p *Poller) safeTick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("tick panic: %v", r)
			p.emitError()
		}
	}()
	_, _ = p.Tick(ctx)
}
