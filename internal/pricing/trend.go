package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wattbot/gowatt/internal/domain"
)

// ComputeTrend 比较上一个与当前 5 分钟价，返回趋势方向。
// 趋势只是装饰性信号，所以这里是刻意的 fail-soft：
// previous 缺失/为 "N/A"、任一侧解析失败，都返回 neutral 而不是报错。
func ComputeTrend(previous, current string) domain.Trend {
	prev := strings.TrimSpace(previous)
	cur := strings.TrimSpace(current)

	if prev == "" || prev == domain.NA || cur == domain.NA {
		return domain.TrendNeutral
	}

	p, err := decimal.NewFromString(prev)
	if err != nil {
		return domain.TrendNeutral
	}
	c, err := decimal.NewFromString(cur)
	if err != nil {
		return domain.TrendNeutral
	}

	switch c.Cmp(p) {
	case 1:
		return domain.TrendUp
	case -1:
		return domain.TrendDown
	default:
		return domain.TrendNeutral
	}
}
