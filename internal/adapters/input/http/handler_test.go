package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"skinlog-bot/internal/domain"

	"github.com/gofiber/fiber/v2"
)

func newTradesApp(trades *MockTradeLogService, pinger *MockPinger) *fiber.App {
	var hdl *HTTPHandler
	if pinger == nil {
		hdl = New(trades, nil)
	} else {
		hdl = New(trades, pinger)
	}
	app := fiber.New()
	app.Get("/health", hdl.HealthCheck)
	app.Get("/v1/api/trades/last", hdl.GetLastLog)
	app.Get("/v1/api/trades/statistics", hdl.GetStatistics)
	app.Get("/v1/api/trades/recent", hdl.GetRecent)
	return app
}

func decodeBody(t *testing.T, app *fiber.App, target string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil), -1)
	if err != nil {
		t.Fatalf("request %s failed: %v", target, err)
	}
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode %s failed: %v", target, err)
	}
	return resp.StatusCode, body
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name   string
		pinger *MockPinger
		want   int
	}{
		{name: "no pinger", pinger: nil, want: fiber.StatusOK},
		{name: "healthy store", pinger: &MockPinger{}, want: fiber.StatusOK},
		{name: "store down", pinger: &MockPinger{Err: errors.New("connection refused")}, want: fiber.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := decodeBody(t, newTradesApp(&MockTradeLogService{}, tt.pinger), "/health")
			if status != tt.want {
				t.Errorf("expected %d, got %d", tt.want, status)
			}
		})
	}
}

func TestGetLastLog(t *testing.T) {
	trades := &MockTradeLogService{Last: &domain.LastLog{
		Date:    "2026-10-15",
		Items:   []domain.Skin{{Name: "AWP | Asiimov", Wear: domain.WearFactoryNew}},
		Price:   "55.00",
		Account: "Alt",
	}}

	status, body := decodeBody(t, newTradesApp(trades, nil), "/v1/api/trades/last")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	data := body["data"].(map[string]interface{})
	if data["date"] != "2026-10-15" || data["account"] != "Alt" {
		t.Errorf("unexpected data %v", data)
	}
}

func TestGetLastLogEmpty(t *testing.T) {
	status, body := decodeBody(t, newTradesApp(&MockTradeLogService{}, nil), "/v1/api/trades/last")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if _, ok := body["data"]; ok {
		t.Errorf("expected no data, got %v", body["data"])
	}
	msgs := body["status"].(map[string]interface{})["message"].([]interface{})
	if msgs[0] != domain.NoPreviousLogs {
		t.Errorf("expected %q, got %v", domain.NoPreviousLogs, msgs[0])
	}
}

func TestGetStatisticsUpstreamFailure(t *testing.T) {
	trades := &MockTradeLogService{Err: fmt.Errorf("%w: quota exceeded", domain.ErrUpstreamFetch)}

	status, _ := decodeBody(t, newTradesApp(trades, nil), "/v1/api/trades/statistics")
	if status != fiber.StatusBadGateway {
		t.Errorf("expected 502, got %d", status)
	}
}

func TestGetRecent(t *testing.T) {
	rows := make([]domain.TradeLogRow, 8)
	for i := range rows {
		rows[i] = domain.TradeLogRow{Date: "2026-10-16", SkinName: fmt.Sprintf("Skin %d", i), Price: "1.00", Account: "Main"}
	}

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantLimit  int
	}{
		{name: "default limit", target: "/v1/api/trades/recent", wantStatus: fiber.StatusOK, wantLimit: DefaultRecentTrades},
		{name: "explicit limit", target: "/v1/api/trades/recent?limit=3", wantStatus: fiber.StatusOK, wantLimit: 3},
		{name: "limit too large", target: "/v1/api/trades/recent?limit=51", wantStatus: fiber.StatusBadRequest},
		{name: "limit zero", target: "/v1/api/trades/recent?limit=0", wantStatus: fiber.StatusBadRequest},
		{name: "limit not a number", target: "/v1/api/trades/recent?limit=abc", wantStatus: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trades := &MockTradeLogService{Rows: rows}
			status, body := decodeBody(t, newTradesApp(trades, nil), tt.target)
			if status != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, status)
			}
			if tt.wantStatus != fiber.StatusOK {
				if len(trades.RecentLimits) != 0 {
					t.Error("expected the service not to be called")
				}
				return
			}
			if len(trades.RecentLimits) != 1 || trades.RecentLimits[0] != tt.wantLimit {
				t.Errorf("expected limit %d, got %v", tt.wantLimit, trades.RecentLimits)
			}
			if got := len(body["data"].([]interface{})); got != tt.wantLimit {
				t.Errorf("expected %d rows, got %d", tt.wantLimit, got)
			}
		})
	}
}
