package domain

import "time"

const (
	DatetimeLayout     = "2006-01-02T15:04:05Z"
	OnlyDateTimeLayout = "2006-01-02 15:04:05"
	OnlyDate           = "2006-01-02"
	SlashDate          = "01/02/2006"
)

var tradeDateLayouts = []string{OnlyDate, OnlyDateTimeLayout, DatetimeLayout, SlashDate}

// LoadLocation loads a timezone by name, falling back to UTC
func LoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return location
}

// TradeDate returns the calendar day of t in location, as written to the log
func TradeDate(t time.Time, location *time.Location) string {
	return t.In(location).Format(OnlyDate)
}

// ParseTradeDate parses a log date cell in any layout the sheet may hold
func ParseTradeDate(s string) (time.Time, bool) {
	for _, layout := range tradeDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
