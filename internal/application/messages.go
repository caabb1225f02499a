package application

import (
	"fmt"
	"strings"

	"skinlog-bot/internal/domain"
)

const (
	msgHelp = "Log your skin trades step by step.\n\n" +
		"/log - Start a new log\n" +
		"/done - Finish adding skins\n" +
		"/cancel - Drop the log in progress\n" +
		"/last - Show the last log\n" +
		"/stats - Show trade statistics\n" +
		"/recent [n] - Show recent trades\n" +
		"/help - Show this message"
	msgWelcome         = "Welcome! I keep track of your skin trades.\nTap \"Add skin\" to start a log."
	msgUseMenu         = "Please use the menu below, or send /help."
	msgSearchPrompt    = "Type part of the skin name to search."
	msgNoSkinsAdded    = "No skins added yet. Add at least one skin before finishing."
	msgInvalidPrice    = "Please enter the price as a positive number, e.g. 12.50"
	msgInvalidChoice   = "That selection is not available."
	msgStaleButton     = "That button is no longer active."
	msgNoMoreResults   = "No more results."
	msgNoMoreAccounts  = "No more accounts."
	msgFetchFailed     = "Could not reach the trade sheet right now. Please try again later."
	msgWriteFailed     = "Could not save the log. Please try again later."
	msgWriteFailedKeep = "Could not save the log. Your skins and price are kept, tap an account to retry."
	msgIncompleteLog   = "This log is incomplete. Add skins and a price first."
	msgCancelled       = "Log cancelled."
	msgNoTrades        = "No trades logged yet."
	msgPickWear        = "Choose the wear of %s:"
	msgApology         = "Sorry, something went wrong. Please try again."
)

func formatSkin(skin domain.Skin) string {
	if skin.Wear == "" {
		return skin.Name
	}
	return fmt.Sprintf("%s (%s)", skin.Name, skin.Wear)
}

func formatAdded(skin domain.Skin, pending int) string {
	return fmt.Sprintf("Added %s.\nThis log has %d skin(s). Add another or finish.", formatSkin(skin), pending)
}

func formatPendingSummary(skins []domain.Skin) string {
	var b strings.Builder
	b.WriteString("Skins in this log:\n")
	for i, s := range skins {
		fmt.Fprintf(&b, "%d. %s\n", i+1, formatSkin(s))
	}
	b.WriteString("\nEnter the price you paid.")
	return b.String()
}

func formatLogged(skins []domain.Skin, price, account string) string {
	return fmt.Sprintf("Logged %d skin(s) for %s on %s.", len(skins), price, account)
}

func formatLastLog(last *domain.LastLog) string {
	if last == nil || len(last.Items) == 0 {
		return domain.NoPreviousLogs
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Last log (%s):\n", last.Date)
	for _, item := range last.Items {
		fmt.Fprintf(&b, "- %s\n", formatSkin(item))
	}
	fmt.Fprintf(&b, "Price: %s\nAccount: %s", last.Price, last.Account)
	return b.String()
}

func formatStatistics(stats *domain.TradeStatistics) string {
	return fmt.Sprintf("Total trades: %d\nTotal spent: %s\nMost traded skin: %s\nMost used account: %s",
		stats.TotalTrades, stats.TotalSpent, stats.MostTradedSkin, stats.MostUsedAccount)
}

func formatTrade(row domain.TradeLogRow) string {
	return fmt.Sprintf("%s\n%s\nWear: %s\nPrice: %s\nAccount: %s",
		row.Date, row.SkinName, row.Wear, row.Price, row.Account)
}
