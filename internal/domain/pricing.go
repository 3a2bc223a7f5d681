package domain

import "time"

// NA 表示“无数据”的价格字面量（上游缺字段或数组为空时使用）
const NA = "N/A"

// Trend 价格趋势（当前 5 分钟价相对上一个样本的方向）
type Trend string

const (
	TrendUp      Trend = "up"      // 上涨
	TrendDown    Trend = "down"    // 下跌
	TrendNeutral Trend = "neutral" // 持平或无法比较
)

// DisplayState 显示状态（驱动主文本颜色）
type DisplayState int

const (
	StateNormal DisplayState = 0 // 正常（绿色）
	StateHigh   DisplayState = 1 // 高价（红色）
)

// PriceSample 一条价格样本（上游原样给出，未做校验）
type PriceSample struct {
	MillisUTC int64  `json:"millisUTC"` // epoch 毫秒时间戳（上游给什么存什么，不保证单调）
	Price     string `json:"price"`     // 价格字面量（美分），可能是非法数字
}

// FeedResponse 一个价格序列，约定最新在前（index 0 = 最新）
type FeedResponse []PriceSample

// Current 返回最新样本的价格字面量；序列为空返回 N/A
func (f FeedResponse) Current() string {
	if len(f) == 0 {
		return NA
	}
	if f[0].Price == "" {
		return NA
	}
	return f[0].Price
}

// Previous 返回上一个样本的价格字面量；不足两条返回空串（表示“缺失”）
func (f FeedResponse) Previous() string {
	if len(f) < 2 {
		return ""
	}
	return f[1].Price
}

// Settings 每个 tick 写入边界 setSettings 的快照键值
type Settings struct {
	FiveMinPrice     string `json:"fiveMinPrice"`
	HourlyPrice      string `json:"hourlyPrice"`
	FiveMinFormatted string `json:"fiveMinFormatted"`
	HourlyFormatted  string `json:"hourlyFormatted"`
	Trend            Trend  `json:"trend"`
	LastUpdate       string `json:"lastUpdate"`
}

// PricingSnapshot 单个 tick 的完整结果（每次新建，不与上一个 tick 合并）
type PricingSnapshot struct {
	TickID           string       // 本次 tick 的关联 ID（日志用）
	FiveMinPrice     string       // 当前 5 分钟价（原始字面量）
	PrevFiveMinPrice string       // 上一个 5 分钟价（缺失为空串）
	HourlyPrice      string       // 当前小时均价（原始字面量）
	FiveMinFormatted string       // 格式化后的 5 分钟价
	HourlyFormatted  string       // 格式化后的小时均价
	Trend            Trend        // 趋势
	State            DisplayState // 显示状态
	FetchedAt        time.Time    // 拉取时间
}

// ToSettings 转换为边界 settings 快照
func (s *PricingSnapshot) ToSettings() Settings {
	return Settings{
		FiveMinPrice:     s.FiveMinPrice,
		HourlyPrice:      s.HourlyPrice,
		FiveMinFormatted: s.FiveMinFormatted,
		HourlyFormatted:  s.HourlyFormatted,
		Trend:            s.Trend,
		LastUpdate:       s.FetchedAt.UTC().Format(time.RFC3339),
	}
}
