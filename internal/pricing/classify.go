package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wattbot/gowatt/internal/domain"
)

// DefaultHighThresholdCents 默认高价阈值（美分）。
// 严格大于阈值才算 high；恰好等于阈值算 normal。
const DefaultHighThresholdCents = 10.0

// Classify 按默认阈值对当前 5 分钟价做二值分类。
func Classify(literal string) domain.DisplayState {
	return ClassifyAt(literal, DefaultHighThresholdCents)
}

// ClassifyAt 按给定阈值（美分）分类。
// 解析失败视为 normal（与 Format 的 N/A 策略一致的 fail-soft）。
func ClassifyAt(literal string, thresholdCents float64) domain.DisplayState {
	cents, err := decimal.NewFromString(strings.TrimSpace(literal))
	if err != nil {
		return domain.StateNormal
	}
	if cents.GreaterThan(decimal.NewFromFloat(thresholdCents)) {
		return domain.StateHigh
	}
	return domain.StateNormal
}
