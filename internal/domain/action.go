package domain

import (
	"fmt"
	"net/url"
	"strconv"
)

// ActionKind identifies what a button press asks for
type ActionKind string

const (
	// ActionStartLog - begin adding a skin
	ActionStartLog ActionKind = "start_log"
	// ActionFinish - stop adding skins and move to price entry
	ActionFinish ActionKind = "finish"
	// ActionSelectItem - pick a search result by absolute index
	ActionSelectItem ActionKind = "select_item"
	// ActionSelectWear - pick a wear by index into Wears
	ActionSelectWear ActionKind = "select_wear"
	// ActionSelectAccount - pick an account by index into the allow-list
	ActionSelectAccount ActionKind = "select_account"
	// ActionPage - show the page at Index of the current listing
	ActionPage ActionKind = "page"
	// ActionCancel - drop the log in progress
	ActionCancel ActionKind = "cancel"
	// ActionLastLog - show the most recent log
	ActionLastLog ActionKind = "last_log"
	// ActionStatistics - show aggregate statistics
	ActionStatistics ActionKind = "stats"
	// ActionRecent - show recent trades
	ActionRecent ActionKind = "recent"
)

var indexedActions = map[ActionKind]bool{
	ActionSelectItem:    true,
	ActionSelectWear:    true,
	ActionSelectAccount: true,
	ActionPage:          true,
}

var plainActions = map[ActionKind]bool{
	ActionStartLog:   true,
	ActionFinish:     true,
	ActionCancel:     true,
	ActionLastLog:    true,
	ActionStatistics: true,
	ActionRecent:     true,
}

// Action is a decoded button press.
type Action struct {
	Kind  ActionKind
	Index int
}

// Encode renders the action as postback data.
func (a Action) Encode() string {
	v := url.Values{}
	v.Set("action", string(a.Kind))
	if indexedActions[a.Kind] {
		v.Set("index", strconv.Itoa(a.Index))
	}
	return v.Encode()
}

// ParseAction decodes postback data produced by Encode.
func ParseAction(data string) (Action, error) {
	v, err := url.ParseQuery(data)
	if err != nil {
		return Action{}, fmt.Errorf("%w: %v", ErrUnknownAction, err)
	}

	kind := ActionKind(v.Get("action"))
	switch {
	case plainActions[kind]:
		return Action{Kind: kind}, nil
	case indexedActions[kind]:
		index, err := strconv.Atoi(v.Get("index"))
		if err != nil || index < 0 {
			return Action{}, fmt.Errorf("%w: bad index %q", ErrUnknownAction, v.Get("index"))
		}
		return Action{Kind: kind, Index: index}, nil
	default:
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, kind)
	}
}
