package http

type (
	// RecentTradesRequest struct - HTTP query request DTO for recent trades
	RecentTradesRequest struct {
		Limit *int `json:"limit,omitempty" validate:"omitempty,gte=1,lte=50" form:"limit" query:"limit"`
	}
)

// DefaultRecentTrades is the limit used when the query omits one
const DefaultRecentTrades = 5

// LimitOrDefault returns the requested limit or the default
func (r RecentTradesRequest) LimitOrDefault() int {
	if r.Limit == nil {
		return DefaultRecentTrades
	}
	return *r.Limit
}
