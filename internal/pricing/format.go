// Package pricing 提供价格字面量到显示信号的纯函数转换：
// 格式化（美分 -> 显示字符串）、趋势（up/down/neutral）、状态（normal/high）。
// 所有函数都是全函数：任何非法输入都降级为安全默认值，绝不 panic。
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wattbot/gowatt/internal/domain"
)

var (
	oneDollar = decimal.NewFromInt(1)
	tenCents  = decimal.RequireFromString("0.1")
	hundred   = decimal.NewFromInt(100)
)

// Format 把美分字面量格式化为显示字符串。
// 规则：
//   - "N/A" 或解析失败 -> "N/A"
//   - dollars >= 1        -> "$X.XX"（2 位小数）
//   - 0.1 <= dollars < 1  -> "X.X¢"（1 位小数）
//   - dollars < 0.1       -> "X.XX¢"（2 位小数，负价也走这里，保留负号）
//
// 舍入使用 banker's rounding（StringFixedBank，四舍六入五成双），
// 与上游展示口径一致（例如 250.5 美分显示为 $2.50 而不是 $2.51）。
func Format(literal string) string {
	s := strings.TrimSpace(literal)
	if s == "" || s == domain.NA {
		return domain.NA
	}

	cents, err := decimal.NewFromString(s)
	if err != nil {
		return domain.NA
	}

	dollars := cents.Div(hundred)
	switch {
	case dollars.GreaterThanOrEqual(oneDollar):
		return "$" + dollars.StringFixedBank(2)
	case dollars.GreaterThanOrEqual(tenCents):
		return cents.StringFixedBank(1) + "¢"
	default:
		return cents.StringFixedBank(2) + "¢"
	}
}
