package http

import (
	"net/http"

	"skinlog-bot/internal/domain"
)

var (
	// Success response
	Success = Status{Code: http.StatusOK, Message: []string{"Success"}}
	// BadRequest response
	BadRequest = Status{Code: http.StatusBadRequest, Message: []string{"Sorry, Not responding because of incorrect syntax"}}
	// InternalServerError response
	InternalServerError = Status{Code: http.StatusInternalServerError, Message: []string{"Internal Server Error"}}
	// BadGateway response
	BadGateway = Status{Code: http.StatusBadGateway, Message: []string{"Sorry, The trade sheet is not reachable right now"}}
	// ServiceUnavailable response
	ServiceUnavailable = Status{Code: http.StatusServiceUnavailable, Message: []string{"Sorry, The row store is not healthy"}}
)

// ResponseBody struct - Generic HTTP response wrapper
type ResponseBody struct {
	Status Status      `json:"status,omitempty"`
	Data   interface{} `json:"data,omitempty"`

	TotalItem *int `json:"total_item,omitempty"`
}

// Status struct
type Status struct {
	Code    int      `json:"code,omitempty"`
	Message []string `json:"message,omitempty"`
}

type (
	// SkinResponse struct - HTTP response DTO for a skin
	SkinResponse struct {
		Name string `json:"name"`
		Wear string `json:"wear,omitempty"`
	}

	// LastLogResponse struct - HTTP response DTO for the most recent log
	LastLogResponse struct {
		Date    string         `json:"date"`
		Items   []SkinResponse `json:"items"`
		Price   string         `json:"price"`
		Account string         `json:"account"`
	}

	// StatisticsResponse struct - HTTP response DTO for trade statistics
	StatisticsResponse struct {
		TotalTrades     int    `json:"total_trades"`
		TotalSpent      string `json:"total_spent"`
		MostTradedSkin  string `json:"most_traded_skin"`
		MostUsedAccount string `json:"most_used_account"`
	}

	// TradeResponse struct - HTTP response DTO for one trade log row
	TradeResponse struct {
		Date     string `json:"date"`
		SkinName string `json:"skin_name"`
		Wear     string `json:"wear"`
		Price    string `json:"price"`
		Account  string `json:"account"`
	}
)

func newLastLogResponse(last *domain.LastLog) *LastLogResponse {
	if last == nil {
		return nil
	}
	items := make([]SkinResponse, 0, len(last.Items))
	for _, item := range last.Items {
		items = append(items, SkinResponse{Name: item.Name, Wear: string(item.Wear)})
	}
	return &LastLogResponse{Date: last.Date, Items: items, Price: last.Price, Account: last.Account}
}

func newStatisticsResponse(stats *domain.TradeStatistics) StatisticsResponse {
	return StatisticsResponse{
		TotalTrades:     stats.TotalTrades,
		TotalSpent:      stats.TotalSpent,
		MostTradedSkin:  stats.MostTradedSkin,
		MostUsedAccount: stats.MostUsedAccount,
	}
}

func newTradeResponses(rows []domain.TradeLogRow) []TradeResponse {
	data := make([]TradeResponse, 0, len(rows))
	for _, row := range rows {
		data = append(data, TradeResponse{
			Date:     row.Date,
			SkinName: row.SkinName,
			Wear:     row.Wear,
			Price:    row.Price,
			Account:  row.Account,
		})
	}
	return data
}
