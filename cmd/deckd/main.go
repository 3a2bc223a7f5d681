package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wattbot/gowatt/internal/display"
	"github.com/wattbot/gowatt/internal/display/deckws"
	"github.com/wattbot/gowatt/internal/feed"
	"github.com/wattbot/gowatt/internal/poller"
	"github.com/wattbot/gowatt/internal/preview"
	"github.com/wattbot/gowatt/internal/settings"
	"github.com/wattbot/gowatt/pkg/config"
	"github.com/wattbot/gowatt/pkg/logger"
	"github.com/wattbot/gowatt/pkg/shutdown"
	"github.com/wattbot/gowatt/pkg/syncgroup"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（支持 .yaml, .yml）")
	flag.Parse()

	// 加载 .env（不存在不算错误）
	_ = godotenv.Load()

	if *configPath != "" {
		config.SetConfigPath(*configPath)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		OutputFile: cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}

	logger.Infof("gowatt 启动: api=%s interval=%s", cfg.APIBaseURL, cfg.PollInterval.Duration)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownMgr := shutdown.NewManager()

	// settings 快照存储
	store, err := settings.Open(cfg.SettingsPath)
	if err != nil {
		logger.Errorf("打开 settings 存储失败: %v", err)
		os.Exit(1)
	}
	shutdownMgr.OnShutdown("settings-store", func(ctx context.Context) {
		if err := store.Close(); err != nil {
			logger.Errorf("关闭 settings 存储失败: %v", err)
		}
	})

	// 第一次拉取完成前，上一次的快照可以先撑起显示
	if prev, err := store.Load(); err == nil {
		logger.Infof("恢复上次快照: price=%s trend=%s (%s)", prev.FiveMinFormatted, prev.Trend, prev.LastUpdate)
	} else if !errors.Is(err, settings.ErrNotFound) {
		logger.Warnf("读取上次快照失败: %v", err)
	}

	board := display.NewSnapshotBoard()
	sinks := display.NewMultiSink(board, store)

	// 按键面板宿主（可选）
	if cfg.Deck != nil {
		host, err := deckws.Connect(ctx, deckws.Options{
			Port:          cfg.Deck.Port,
			PluginUUID:    cfg.Deck.PluginUUID,
			RegisterEvent: cfg.Deck.RegisterEvent,
			Context:       cfg.Deck.Context,
		})
		if err != nil {
			// 宿主连不上不阻止启动，预览服务照常工作
			logger.Errorf("连接按键面板宿主失败: %v", err)
		} else {
			sinks.Add(host)
			shutdownMgr.OnShutdown("deck-host", func(ctx context.Context) {
				if err := host.Close(); err != nil {
					logger.Errorf("关闭宿主连接失败: %v", err)
				}
			})
		}
	}

	client := feed.NewClient(cfg.APIBaseURL, cfg.FetchTimeout.Duration)
	p := poller.New(client, sinks, cfg.PollInterval.Duration, cfg.HighThresholdCents)

	sg := syncgroup.NewSyncGroup()
	sg.Add(func() { p.Run(ctx) })

	// 预览服务（可选）
	if cfg.Preview != nil {
		pv := preview.New(board, p.TriggerNow)
		listen := cfg.Preview.Listen
		sg.Add(func() {
			if err := pv.Start(listen); err != nil {
				logger.Errorf("预览服务退出: %v", err)
			}
		})
		shutdownMgr.OnShutdown("preview-server", func(ctx context.Context) {
			if err := pv.Stop(ctx); err != nil {
				logger.Errorf("停止预览服务失败: %v", err)
			}
		})
	}

	sg.Run()

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("收到退出信号，开始关闭...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	shutdownMgr.Shutdown(shutdownCtx)

	sg.Wait()
	logger.Info("gowatt 已退出")
}
