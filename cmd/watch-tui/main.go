package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/wattbot/gowatt/internal/display"
	"github.com/wattbot/gowatt/internal/domain"
	"github.com/wattbot/gowatt/internal/feed"
	"github.com/wattbot/gowatt/internal/poller"
	"github.com/wattbot/gowatt/pkg/config"
	"github.com/wattbot/gowatt/pkg/logger"
)

var (
	// 样式定义
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	normalPriceStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("2")) // 绿色

	highPriceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("1")) // 红色

	trendUpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")) // 红色（涨价告警）

	trendDownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")) // 绿色（降价缓解）

	avgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")) // 灰色

	errStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("1"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(1, 2)
)

// snapshotMsg 一次成功 tick 的结果
type snapshotMsg *domain.PricingSnapshot

// tickErrMsg 一次失败 tick
type tickErrMsg struct{ err error }

// intervalMsg 定时刷新信号
type intervalMsg time.Time

type model struct {
	p        *poller.Poller
	interval time.Duration
	snap     *domain.PricingSnapshot
	err      error
	fetching bool
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), m.scheduleCmd())
}

// fetchCmd 执行一次 tick
func (m model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.p.Tick(context.Background())
		if err != nil {
			return tickErrMsg{err: err}
		}
		return snapshotMsg(snap)
	}
}

// scheduleCmd 下一次定时刷新
func (m model) scheduleCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return intervalMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			// 手动刷新
			m.fetching = true
			return m, m.fetchCmd()
		}
	case snapshotMsg:
		m.snap = msg
		m.err = nil
		m.fetching = false
		return m, nil
	case tickErrMsg:
		m.err = msg.err
		m.fetching = false
		return m, nil
	case intervalMsg:
		m.fetching = true
		return m, tea.Batch(m.fetchCmd(), m.scheduleCmd())
	}
	return m, nil
}

func (m model) View() string {
	header := headerStyle.Render("⚡ ComEd 实时电价")

	var body string
	switch {
	case m.err != nil:
		body = errStyle.Render("ERROR") + "\n" + avgStyle.Render(m.err.Error())
	case m.snap == nil:
		body = avgStyle.Render("加载中...")
	default:
		priceStyle := normalPriceStyle
		if m.snap.State == domain.StateHigh {
			priceStyle = highPriceStyle
		}

		trend := ""
		switch m.snap.Trend {
		case domain.TrendUp:
			trend = " " + trendUpStyle.Render("▲")
		case domain.TrendDown:
			trend = " " + trendDownStyle.Render("▼")
		}

		body = priceStyle.Render(m.snap.FiveMinFormatted) + trend + "\n" +
			avgStyle.Render(m.snap.HourlyFormatted+" avg") + "\n" +
			avgStyle.Render("更新于 "+m.snap.FetchedAt.Format("15:04:05"))
	}

	status := ""
	if m.fetching {
		status = avgStyle.Render(" 刷新中...")
	}

	footer := footerStyle.Render("q 退出 · r 立即刷新")
	return header + "\n" + borderStyle.Render(body) + status + "\n" + footer + "\n"
}

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	_ = godotenv.Load()

	if *configPath != "" {
		config.SetConfigPath(*configPath)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// TUI 模式日志只进文件，不污染终端
	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		OutputFile: "logs/watch-tui.log",
		MaxSize:    10,
		MaxBackups: 2,
		MaxAge:     7,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	fileOnly := mustLogFile()
	logger.Logger.SetOutput(fileOnly)
	logrus.SetOutput(fileOnly)

	client := feed.NewClient(cfg.APIBaseURL, cfg.FetchTimeout.Duration)
	p := poller.New(client, display.NewSnapshotBoard(), cfg.PollInterval.Duration, cfg.HighThresholdCents)

	m := model{p: p, interval: cfg.PollInterval.Duration, fetching: true}
	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "TUI 退出: %v\n", err)
		os.Exit(1)
	}
}

// mustLogFile 打开 TUI 专用日志文件（失败时丢弃日志）
func mustLogFile() *os.File {
	if err := os.MkdirAll("logs", 0755); err != nil {
		return os.NewFile(0, os.DevNull)
	}
	f, err := os.OpenFile("logs/watch-tui.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return os.NewFile(0, os.DevNull)
	}
	return f
}
