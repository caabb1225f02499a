package domain

import "strings"

// Wear is the cosmetic condition of a skin.
type Wear string

const (
	WearFactoryNew    Wear = "Factory New"
	WearMinimalWear   Wear = "Minimal Wear"
	WearFieldTested   Wear = "Field-Tested"
	WearWellWorn      Wear = "Well-Worn"
	WearBattleScarred Wear = "Battle-Scarred"
)

// Wears lists every wear in menu order.
var Wears = []Wear{
	WearFactoryNew,
	WearMinimalWear,
	WearFieldTested,
	WearWellWorn,
	WearBattleScarred,
}

var wearAbbreviations = map[string]Wear{
	"fn": WearFactoryNew,
	"mw": WearMinimalWear,
	"ft": WearFieldTested,
	"ww": WearWellWorn,
	"bs": WearBattleScarred,
}

// ParseWear resolves a full wear name or its two-letter abbreviation.
func ParseWear(s string) (Wear, bool) {
	s = strings.TrimSpace(s)
	for _, w := range Wears {
		if strings.EqualFold(s, string(w)) {
			return w, true
		}
	}
	w, ok := wearAbbreviations[strings.ToLower(s)]
	return w, ok
}

// Skin is a tradeable item with its condition. Wear is empty until chosen.
type Skin struct {
	Name string `json:"name"`
	Wear Wear   `json:"wear"`
}

// Label is the text the skin is searched and displayed by.
func (s Skin) Label() string {
	if s.Wear == "" {
		return s.Name
	}
	return s.Name + " " + string(s.Wear)
}

// ParseSkinLabel splits a legacy "name wear" label by matching a known wear
// suffix. Labels without one yield a skin with no wear.
func ParseSkinLabel(label string) Skin {
	label = strings.TrimSpace(label)
	for _, w := range Wears {
		suffix := " " + string(w)
		if len(label) > len(suffix) && strings.EqualFold(label[len(label)-len(suffix):], suffix) {
			return Skin{Name: strings.TrimSpace(label[:len(label)-len(suffix)]), Wear: w}
		}
	}
	if i := strings.LastIndexByte(label, ' '); i > 0 {
		if w, ok := wearAbbreviations[strings.ToLower(label[i+1:])]; ok {
			return Skin{Name: strings.TrimSpace(label[:i]), Wear: w}
		}
	}
	return Skin{Name: label}
}

// SkinFromRow decodes a names sheet row. Two-column rows carry the wear
// explicitly, single-column rows use the legacy label format.
func SkinFromRow(row []string) (Skin, bool) {
	if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
		return Skin{}, false
	}
	if len(row) > 1 && strings.TrimSpace(row[1]) != "" {
		w, _ := ParseWear(row[1])
		return Skin{Name: strings.TrimSpace(row[0]), Wear: w}, true
	}
	return ParseSkinLabel(row[0]), true
}
