// Package feed 封装 ComEd hourly-pricing API 的拉取。
// 两个 feed 共用同一个端点，只靠 type 查询参数区分；
// 响应是 {millisUTC, price} 的 JSON 数组，约定最新在前。
// 响应内容一律按不可信处理：缺字段、空数组都不报错，由下游降级为 N/A。
package feed

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/wattbot/gowatt/internal/domain"
)

const (
	// DefaultBaseURL ComEd hourly pricing API 端点
	DefaultBaseURL = "https://hourlypricing.comed.com/api"
	// DefaultTimeout 单次请求超时（上游没有规定，这里取 10 秒）
	DefaultTimeout = 10 * time.Second

	// FeedFiveMinute 5 分钟粒度价格序列
	FeedFiveMinute = "5minutefeed"
	// FeedHourAverage 当前小时均价序列
	FeedHourAverage = "currenthouraverage"
)

// Client ComEd API 客户端
type Client struct {
	client *resty.Client
}

// NewClient 创建客户端。baseURL 为空时用默认端点，timeout <= 0 时用默认超时。
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{client: client}
}

// wireSample 上游的原始样本结构（两个字段都是字符串）
type wireSample struct {
	MillisUTC string `json:"millisUTC"`
	Price     string `json:"price"`
}

// Fetch 拉取一个 feed 并解析为价格序列
func (c *Client) Fetch(ctx context.Context, feedType string) (domain.FeedResponse, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"type":   feedType,
			"format": "json",
		}).
		Get("")
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s", feedType)
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("fetch %s: api returned status %d", feedType, resp.StatusCode())
	}

	var raw []wireSample
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, errors.Wrapf(err, "decode %s response", feedType)
	}

	out := make(domain.FeedResponse, 0, len(raw))
	for _, w := range raw {
		// millisUTC 解析失败记为 0，不影响价格本身的使用
		millis, _ := strconv.ParseInt(w.MillisUTC, 10, 64)
		out = append(out, domain.PriceSample{
			MillisUTC: millis,
			Price:     w.Price,
		})
	}
	return out, nil
}

// FetchBoth 并发拉取 5 分钟 feed 和小时均价 feed。
// 任一侧失败整体失败：不允许用半成功的结果渲染。
func (c *Client) FetchBoth(ctx context.Context) (fiveMin, hourly domain.FeedResponse, err error) {
	var (
		wg        sync.WaitGroup
		fiveErr   error
		hourlyErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		fiveMin, fiveErr = c.Fetch(ctx, FeedFiveMinute)
	}()
	go func() {
		defer wg.Done()
		hourly, hourlyErr = c.Fetch(ctx, FeedHourAverage)
	}()
	wg.Wait()

	if fiveErr != nil {
		return nil, nil, fiveErr
	}
	if hourlyErr != nil {
		return nil, nil, hourlyErr
	}
	return fiveMin, hourly, nil
}
