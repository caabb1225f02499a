package domain

import (
	"errors"
	"testing"
)

func TestActionEncodeParse(t *testing.T) {
	actions := []Action{
		{Kind: ActionSelectItem, Index: 7},
		{Kind: ActionPage, Index: 0},
		{Kind: ActionFinish},
	}
	for _, a := range actions {
		got, err := ParseAction(a.Encode())
		if err != nil {
			t.Fatalf("ParseAction(%q) returned error: %v", a.Encode(), err)
		}
		if got != a {
			t.Errorf("expected %+v, got %+v", a, got)
		}
	}
}

func TestParseActionRejectsUnknownData(t *testing.T) {
	inputs := []string{
		"",
		"action=launch",
		"action=select_item",
		"action=select_account&index=-1",
		"action=page&index=two",
		"%zz",
	}
	for _, in := range inputs {
		if _, err := ParseAction(in); !errors.Is(err, ErrUnknownAction) {
			t.Errorf("ParseAction(%q): expected ErrUnknownAction, got %v", in, err)
		}
	}
}
