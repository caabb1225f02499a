package application

import (
	"strconv"

	"skinlog-bot/internal/domain"
	"skinlog-bot/pkg/pagination"
)

func mainMenu() *domain.Menu {
	return &domain.Menu{Rows: [][]domain.Button{
		{{Label: "Add skin", Action: domain.Action{Kind: domain.ActionStartLog}}},
		{
			{Label: "Last log", Action: domain.Action{Kind: domain.ActionLastLog}},
			{Label: "Stats", Action: domain.Action{Kind: domain.ActionStatistics}},
			{Label: "Recent", Action: domain.Action{Kind: domain.ActionRecent}},
		},
	}}
}

func pendingMenu() *domain.Menu {
	return &domain.Menu{Rows: [][]domain.Button{
		{
			{Label: "Add another", Action: domain.Action{Kind: domain.ActionStartLog}},
			{Label: "Finish", Action: domain.Action{Kind: domain.ActionFinish}},
		},
		{{Label: "Cancel", Action: domain.Action{Kind: domain.ActionCancel}}},
	}}
}

func cancelMenu() *domain.Menu {
	return &domain.Menu{Rows: [][]domain.Button{
		{{Label: "Cancel", Action: domain.Action{Kind: domain.ActionCancel}}},
	}}
}

func wearMenu() *domain.Menu {
	row := make([]domain.Button, len(domain.Wears))
	for i, w := range domain.Wears {
		row[i] = domain.Button{Label: string(w), Action: domain.Action{Kind: domain.ActionSelectWear, Index: i}}
	}
	return &domain.Menu{Rows: [][]domain.Button{
		row,
		{{Label: "Cancel", Action: domain.Action{Kind: domain.ActionCancel}}},
	}}
}

// resultsMenu numbers the page's results by their absolute position
func resultsMenu(page pagination.Page[domain.Skin]) *domain.Menu {
	picks := make([]domain.Button, len(page.Items))
	for i := range page.Items {
		index := page.Offset + i
		picks[i] = domain.Button{
			Label:  strconv.Itoa(index + 1),
			Action: domain.Action{Kind: domain.ActionSelectItem, Index: index},
		}
	}
	return &domain.Menu{Rows: [][]domain.Button{
		picks,
		navRow(page.Index, page.HasPrev, page.HasNext),
	}}
}

func accountsMenu(page pagination.Page[string]) *domain.Menu {
	picks := make([]domain.Button, len(page.Items))
	for i, account := range page.Items {
		picks[i] = domain.Button{
			Label:  account,
			Action: domain.Action{Kind: domain.ActionSelectAccount, Index: page.Offset + i},
		}
	}
	return &domain.Menu{Rows: [][]domain.Button{
		picks,
		navRow(page.Index, page.HasPrev, page.HasNext),
	}}
}

func navRow(index int, hasPrev, hasNext bool) []domain.Button {
	var row []domain.Button
	if hasPrev {
		row = append(row, domain.Button{Label: "◀ Prev", Action: domain.Action{Kind: domain.ActionPage, Index: index - 1}})
	}
	if hasNext {
		row = append(row, domain.Button{Label: "Next ▶", Action: domain.Action{Kind: domain.ActionPage, Index: index + 1}})
	}
	return append(row, domain.Button{Label: "Cancel", Action: domain.Action{Kind: domain.ActionCancel}})
}
