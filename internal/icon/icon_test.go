package icon

import (
	"strings"
	"testing"

	"github.com/wattbot/gowatt/internal/domain"
)

func TestRender_TrendUpGlyph(t *testing.T) {
	svg := Render(Input{
		FiveMinFormatted: "8.5¢",
		HourlyFormatted:  "7.0¢",
		State:            domain.StateNormal,
		Trend:            domain.TrendUp,
	})

	// 上涨箭头是红色的（涨价告警），且不能出现下跌箭头
	if !strings.Contains(svg, `<polygon points="57,18 65,18 61,10" fill="#ff4444"/>`) {
		t.Fatalf("expected red up glyph, svg=%s", svg)
	}
	if strings.Contains(svg, `61,18" fill="#44ff44"`) {
		t.Fatalf("unexpected down glyph present, svg=%s", svg)
	}
}

func TestRender_TrendDownGlyph(t *testing.T) {
	svg := Render(Input{
		FiveMinFormatted: "8.5¢",
		HourlyFormatted:  "7.0¢",
		State:            domain.StateNormal,
		Trend:            domain.TrendDown,
	})

	// 下跌箭头是绿色的（降价缓解）
	if !strings.Contains(svg, `<polygon points="57,10 65,10 61,18" fill="#44ff44"/>`) {
		t.Fatalf("expected green down glyph, svg=%s", svg)
	}
}

func TestRender_TrendNeutralNoGlyph(t *testing.T) {
	svg := Render(Input{
		FiveMinFormatted: "8.5¢",
		HourlyFormatted:  "7.0¢",
		State:            domain.StateNormal,
		Trend:            domain.TrendNeutral,
	})
	if strings.Contains(svg, "<polygon") {
		t.Fatalf("neutral trend must not render a glyph, svg=%s", svg)
	}
}

func TestRender_StateDrivesPrimaryColor(t *testing.T) {
	normal := Render(Input{FiveMinFormatted: "8.5¢", HourlyFormatted: "7.0¢", State: domain.StateNormal, Trend: domain.TrendNeutral})
	if !strings.Contains(normal, `fill="#44ff44" text-anchor="middle">8.5¢`) {
		t.Fatalf("expected green primary text for normal state, svg=%s", normal)
	}

	high := Render(Input{FiveMinFormatted: "15.7¢", HourlyFormatted: "7.0¢", State: domain.StateHigh, Trend: domain.TrendNeutral})
	if !strings.Contains(high, `fill="#ff4444" text-anchor="middle">15.7¢`) {
		t.Fatalf("expected red primary text for high state, svg=%s", high)
	}
}

func TestRender_SecondaryText(t *testing.T) {
	svg := Render(Input{FiveMinFormatted: "8.5¢", HourlyFormatted: "7.0¢", State: domain.StateNormal, Trend: domain.TrendNeutral})
	if !strings.Contains(svg, `fill="#cccccc" text-anchor="middle">7.0¢ avg</text>`) {
		t.Fatalf("expected gray hourly average with avg label, svg=%s", svg)
	}
}

func TestRender_Canvas(t *testing.T) {
	svg := Render(Input{FiveMinFormatted: "N/A", HourlyFormatted: "N/A", State: domain.StateNormal, Trend: domain.TrendNeutral})
	if !strings.Contains(svg, `width="72" height="72"`) {
		t.Fatalf("expected 72x72 canvas, svg=%s", svg)
	}
	if !strings.Contains(svg, `<rect width="72" height="72" rx="8" fill="#1a1a1a"/>`) {
		t.Fatalf("expected rounded solid background, svg=%s", svg)
	}
}

func TestRenderError(t *testing.T) {
	svg := RenderError()
	if !strings.Contains(svg, ">ERROR</text>") {
		t.Fatalf("expected ERROR text, svg=%s", svg)
	}
	if !strings.Contains(svg, `fill="#ff4444"`) {
		t.Fatalf("expected red error text, svg=%s", svg)
	}
	// 错误图标不包含价格和趋势内容
	if strings.Contains(svg, "<polygon") || strings.Contains(svg, "avg") {
		t.Fatalf("error icon must not carry price/trend content, svg=%s", svg)
	}
}

func TestRender_Deterministic(t *testing.T) {
	in := Input{FiveMinFormatted: "8.5¢", HourlyFormatted: "7.0¢", State: domain.StateHigh, Trend: domain.TrendUp}
	if Render(in) != Render(in) {
		t.Fatalf("render must be deterministic")
	}
}

func TestDataURI(t *testing.T) {
	uri := DataURI(RenderError())
	if !strings.HasPrefix(uri, "data:image/svg+xml,") {
		t.Fatalf("unexpected data URI prefix: %s", uri)
	}
	// URI 内不能出现未编码的空格和尖括号
	body := strings.TrimPrefix(uri, "data:image/svg+xml,")
	if strings.ContainsAny(body, " <>\"") {
		t.Fatalf("data URI body must be percent-encoded: %s", body)
	}
}
