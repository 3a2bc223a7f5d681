package pricing

import (
	"testing"

	"github.com/wattbot/gowatt/internal/domain"
)

func TestClassify_Threshold(t *testing.T) {
	if got := Classify("5.5"); got != domain.StateNormal {
		t.Fatalf("expected normal for 5.5, got %d", got)
	}
	// 阈值本身算 normal（严格大于才是 high）
	if got := Classify("10.0"); got != domain.StateNormal {
		t.Fatalf("expected normal at threshold, got %d", got)
	}
	if got := Classify("10.01"); got != domain.StateHigh {
		t.Fatalf("expected high just above threshold, got %d", got)
	}
	if got := Classify("15.7"); got != domain.StateHigh {
		t.Fatalf("expected high for 15.7, got %d", got)
	}
}

func TestClassify_FailSoft(t *testing.T) {
	// 解析失败视为 normal，和 Format 的 N/A 策略保持一致
	if got := Classify("N/A"); got != domain.StateNormal {
		t.Fatalf("expected normal for N/A, got %d", got)
	}
	if got := Classify("invalid"); got != domain.StateNormal {
		t.Fatalf("expected normal for invalid, got %d", got)
	}
	if got := Classify(""); got != domain.StateNormal {
		t.Fatalf("expected normal for empty, got %d", got)
	}
}

func TestClassifyAt_CustomThreshold(t *testing.T) {
	if got := ClassifyAt("6.0", 5.0); got != domain.StateHigh {
		t.Fatalf("expected high with threshold 5, got %d", got)
	}
	if got := ClassifyAt("6.0", 20.0); got != domain.StateNormal {
		t.Fatalf("expected normal with threshold 20, got %d", got)
	}
}
