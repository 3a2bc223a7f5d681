// Package icon 把一次 tick 的定价结果渲染为 72x72 的 SVG 图标。
// 渲染是纯函数：只依赖输入，输出确定，方便直接断言字符串内容。
package icon

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/wattbot/gowatt/internal/domain"
)

// 画布与调色板常量。注意趋势颜色是反直觉的：
// 上涨=红色（电价变贵是坏事），下跌=绿色。这个语义必须保持。
const (
	CanvasSize = 72

	colorBackground = "#1a1a1a"
	colorNormal     = "#44ff44" // 主文本：normal 状态
	colorHigh       = "#ff4444" // 主文本：high 状态
	colorTrendUp    = "#ff4444" // 上涨箭头（涨价告警）
	colorTrendDown  = "#44ff44" // 下跌箭头（降价缓解）
	colorSecondary  = "#cccccc" // 小时均价文本
)

// Input 渲染输入
type Input struct {
	FiveMinFormatted string             // 格式化后的 5 分钟价（主文本）
	HourlyFormatted  string             // 格式化后的小时均价（副文本）
	State            domain.DisplayState // 状态分类结果（由原始 5 分钟价经分类器得出），决定主文本颜色
	Trend            domain.Trend       // 趋势，决定是否画箭头以及箭头颜色
}

// Render 渲染定价图标
func Render(in Input) string {
	primaryColor := colorNormal
	if in.State == domain.StateHigh {
		primaryColor = colorHigh
	}

	var b strings.Builder
	b.WriteString(svgOpen())
	b.WriteString(fmt.Sprintf(
		`<text x="36" y="34" font-family="Arial, sans-serif" font-size="18" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
		primaryColor, escapeText(in.FiveMinFormatted)))

	// neutral 不画箭头
	switch in.Trend {
	case domain.TrendUp:
		b.WriteString(fmt.Sprintf(`<polygon points="57,18 65,18 61,10" fill="%s"/>`, colorTrendUp))
	case domain.TrendDown:
		b.WriteString(fmt.Sprintf(`<polygon points="57,10 65,10 61,18" fill="%s"/>`, colorTrendDown))
	}

	b.WriteString(fmt.Sprintf(
		`<text x="36" y="58" font-family="Arial, sans-serif" font-size="11" fill="%s" text-anchor="middle">%s avg</text>`,
		colorSecondary, escapeText(in.HourlyFormatted)))
	b.WriteString(`</svg>`)
	return b.String()
}

// RenderError 渲染错误图标（拉取/解析失败时显示）
func RenderError() string {
	var b strings.Builder
	b.WriteString(svgOpen())
	b.WriteString(fmt.Sprintf(
		`<text x="36" y="42" font-family="Arial, sans-serif" font-size="16" font-weight="bold" fill="%s" text-anchor="middle">ERROR</text>`,
		colorHigh))
	b.WriteString(`</svg>`)
	return b.String()
}

// DataURI 把 SVG 文档编码为 data URI，边界 setImage 接受这个格式
func DataURI(svg string) string {
	return "data:image/svg+xml," + url.PathEscape(svg)
}

func svgOpen() string {
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
			`<rect width="%d" height="%d" rx="8" fill="%s"/>`,
		CanvasSize, CanvasSize, CanvasSize, CanvasSize, CanvasSize, CanvasSize, colorBackground)
}

// escapeText 转义进入 SVG 文本节点的内容
func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
