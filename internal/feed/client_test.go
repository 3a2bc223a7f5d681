package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestFetch_ParsesSamplesNewestFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != FeedFiveMinute {
			t.Errorf("unexpected type param: %s", got)
		}
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("unexpected format param: %s", got)
		}
		w.Write([]byte(`[{"millisUTC":"1590006600000","price":"8.5"},{"millisUTC":"1590006300000","price":"7.2"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	resp, err := c.Fetch(context.Background(), FeedFiveMinute)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(resp))
	}
	if resp[0].Price != "8.5" || resp[0].MillisUTC != 1590006600000 {
		t.Fatalf("unexpected first sample: %+v", resp[0])
	}
	if resp.Current() != "8.5" || resp.Previous() != "7.2" {
		t.Fatalf("current/previous mismatch: %s %s", resp.Current(), resp.Previous())
	}
}

func TestFetch_EmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	resp, err := c.Fetch(context.Background(), FeedHourAverage)
	if err != nil {
		t.Fatalf("empty array must not be an error: %v", err)
	}
	if resp.Current() != "N/A" {
		t.Fatalf("expected N/A current for empty feed, got %s", resp.Current())
	}
	if resp.Previous() != "" {
		t.Fatalf("expected absent previous for empty feed, got %q", resp.Previous())
	}
}

func TestFetch_MissingFields(t *testing.T) {
	// 缺 price 字段不报错，由下游降级为 N/A
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"millisUTC":"not-a-number"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	resp, err := c.Fetch(context.Background(), FeedFiveMinute)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.Current() != "N/A" {
		t.Fatalf("expected N/A for missing price, got %s", resp.Current())
	}
	if resp[0].MillisUTC != 0 {
		t.Fatalf("unparsable millisUTC should be 0, got %d", resp[0].MillisUTC)
	}
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	if _, err := c.Fetch(context.Background(), FeedFiveMinute); err == nil {
		t.Fatalf("expected error on 502")
	}
}

func TestFetch_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"oops":`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	if _, err := c.Fetch(context.Background(), FeedFiveMinute); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestFetchBoth_EitherFailureFailsWhole(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		if r.URL.Query().Get("type") == FeedHourAverage {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"millisUTC":"1","price":"8.5"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	if _, _, err := c.FetchBoth(context.Background()); err == nil {
		t.Fatalf("expected failure when hourly feed fails")
	}
	// 两个请求都发出（并发拉取，不是短路）
	if atomic.LoadInt64(&calls) != 2 {
		t.Fatalf("expected 2 requests, got %d", calls)
	}
}

func TestFetchBoth_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("type") == FeedFiveMinute {
			w.Write([]byte(`[{"millisUTC":"2","price":"8.5"},{"millisUTC":"1","price":"7.2"}]`))
			return
		}
		w.Write([]byte(`[{"millisUTC":"2","price":"7.0"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	fiveMin, hourly, err := c.FetchBoth(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if fiveMin.Current() != "8.5" || hourly.Current() != "7.0" {
		t.Fatalf("unexpected feeds: %s %s", fiveMin.Current(), hourly.Current())
	}
}
