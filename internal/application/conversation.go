package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"skinlog-bot/internal/domain"
	"skinlog-bot/internal/ports/input"
	"skinlog-bot/internal/ports/output"
	"skinlog-bot/pkg/fuzzy"
	"skinlog-bot/pkg/pagination"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultPageSize is the number of results or accounts shown per page
const DefaultPageSize = 5

// NameSource provides the searchable skin catalog
type NameSource interface {
	Get(ctx context.Context, forceRefresh bool) ([]domain.Skin, error)
}

// ConversationConfig holds the knobs of the trade log conversation
type ConversationConfig struct {
	Accounts    []string // Allow-list of accounts a log can be filed under
	PageSize    int
	RecentLimit int
	// ResetOnWriteFailure drops the log when the sheet append fails.
	// When false the session stays at account selection so the user can retry.
	ResetOnWriteFailure bool
}

// Compile-time check to ensure TradeConversation implements the input port
var _ input.Conversation = (*TradeConversation)(nil)

// TradeConversation struct - Application service driving the per-user trade log flow
type TradeConversation struct {
	sessions output.SessionStore
	names    NameSource
	trades   input.TradeLogService
	config   ConversationConfig
}

// NewTradeConversation func - Creates the conversation state machine
func NewTradeConversation(sessions output.SessionStore, names NameSource, trades input.TradeLogService, config ConversationConfig) *TradeConversation {
	if config.PageSize <= 0 {
		config.PageSize = DefaultPageSize
	}
	if config.RecentLimit <= 0 {
		config.RecentLimit = DefaultRecentLimit
	}
	return &TradeConversation{
		sessions: sessions,
		names:    names,
		trades:   trades,
		config:   config,
	}
}

// Welcome returns the greeting with the main menu
func (c *TradeConversation) Welcome() domain.Reply {
	return domain.TextReply(msgWelcome, mainMenu())
}

// Handle consumes one event for one user. Events of the same user are
// serialized through the session store lock.
func (c *TradeConversation) Handle(ctx context.Context, event domain.UserEvent) domain.Reply {
	unlock := c.sessions.Lock(event.UserID)
	defer unlock()

	session := c.sessions.GetOrCreate(event.UserID)
	logrus.WithFields(logrus.Fields{
		"user_id": event.UserID,
		"step":    session.Step,
	}).Debug("Handling user event")

	if event.Action != nil {
		return c.handleAction(ctx, session, *event.Action)
	}
	return c.handleText(ctx, session, strings.TrimSpace(event.Text))
}

func (c *TradeConversation) handleText(ctx context.Context, session *domain.TradeSession, text string) domain.Reply {
	if strings.HasPrefix(text, "/") {
		return c.handleCommand(ctx, session, text)
	}

	switch session.Step {
	case domain.StepSearchSkin:
		if n, err := strconv.Atoi(text); err == nil && len(session.Search.Results) > 0 {
			return c.selectItem(session, n-1)
		}
		return c.search(ctx, session, text)
	case domain.StepEnterPrice:
		return c.enterPrice(session, text)
	case domain.StepAddSkin:
		return domain.TextReply(msgUseMenu, c.addMenu(session))
	default:
		return c.reprompt(session, "")
	}
}

func (c *TradeConversation) handleCommand(ctx context.Context, session *domain.TradeSession, text string) domain.Reply {
	parts := strings.Fields(text)
	command := strings.ToLower(parts[0])

	switch command {
	case "/start", "/help":
		return domain.TextReply(msgHelp, c.addMenu(session))
	case "/log", "/add":
		return c.handleAction(ctx, session, domain.Action{Kind: domain.ActionStartLog})
	case "/done", "/finish":
		return c.handleAction(ctx, session, domain.Action{Kind: domain.ActionFinish})
	case "/cancel":
		return c.cancel(session)
	case "/last":
		return c.lastLog(ctx, session)
	case "/stats":
		return c.statistics(ctx, session)
	case "/recent":
		n := c.config.RecentLimit
		if len(parts) > 1 {
			if v, err := strconv.Atoi(parts[1]); err == nil && v > 0 {
				n = min(v, n)
			}
		}
		return c.recent(ctx, session, n)
	default:
		return domain.TextReply(fmt.Sprintf("Unknown command: %s\nType /help for available commands", command), c.addMenu(session))
	}
}

func (c *TradeConversation) handleAction(ctx context.Context, session *domain.TradeSession, action domain.Action) domain.Reply {
	switch action.Kind {
	case domain.ActionCancel:
		return c.cancel(session)
	case domain.ActionLastLog:
		return c.lastLog(ctx, session)
	case domain.ActionStatistics:
		return c.statistics(ctx, session)
	case domain.ActionRecent:
		return c.recent(ctx, session, c.config.RecentLimit)
	}

	switch {
	case action.Kind == domain.ActionStartLog && session.Step == domain.StepAddSkin:
		session.StartSearch()
		return domain.TextReply(msgSearchPrompt, cancelMenu())

	case action.Kind == domain.ActionFinish && session.Step == domain.StepAddSkin:
		if err := session.Finish(); errors.Is(err, domain.ErrEmptyLog) {
			return domain.TextReply(msgNoSkinsAdded, c.addMenu(session))
		}
		return domain.TextReply(formatPendingSummary(session.PendingSkins), cancelMenu())

	case action.Kind == domain.ActionSelectItem && session.Step == domain.StepSearchSkin:
		return c.selectItem(session, action.Index)

	case action.Kind == domain.ActionSelectWear && session.Step == domain.StepSelectWear:
		return c.selectWear(session, action.Index)

	case action.Kind == domain.ActionSelectAccount && session.Step == domain.StepSelectAccount:
		return c.commit(ctx, session, action.Index)

	case action.Kind == domain.ActionPage && session.Step == domain.StepSearchSkin:
		return c.showResults(session, action.Index)

	case action.Kind == domain.ActionPage && session.Step == domain.StepSelectAccount:
		return c.showAccounts(session, action.Index)
	}

	return c.reprompt(session, msgStaleButton)
}

// search runs the query against the cached catalog and shows the first page
func (c *TradeConversation) search(ctx context.Context, session *domain.TradeSession, query string) domain.Reply {
	if query == "" {
		return domain.TextReply(msgSearchPrompt, cancelMenu())
	}

	skins, err := c.names.Get(ctx, false)
	if err != nil {
		logrus.Errorf("Failed to load skin names for userID=%s: %v", session.UserID, err)
		return domain.TextReply(msgFetchFailed, cancelMenu())
	}

	matches := fuzzy.Rank(skinLabels(skins), query, fuzzy.DefaultThreshold)
	if len(matches) == 0 {
		session.Search = domain.SearchState{Query: query}
		return domain.TextReply(fmt.Sprintf("No skins match \"%s\". Try another search.", query), cancelMenu())
	}

	results := make([]domain.Skin, len(matches))
	for i, m := range matches {
		results[i] = skins[m.Index]
	}
	session.Search = domain.SearchState{Query: query, Results: results}
	return c.showResults(session, 0)
}

// showResults renders a page of the stored search results
func (c *TradeConversation) showResults(session *domain.TradeSession, pageIndex int) domain.Reply {
	page, err := pagination.Paginate(session.Search.Results, pageIndex, c.config.PageSize)
	if errors.Is(err, pagination.ErrEmptyPage) {
		current, _ := pagination.Paginate(session.Search.Results, session.Search.PageIndex, c.config.PageSize)
		return domain.TextReply(msgNoMoreResults, resultsMenu(current))
	}
	session.Search.PageIndex = pageIndex

	var b strings.Builder
	fmt.Fprintf(&b, "Results for \"%s\" (page %d/%d):\n", session.Search.Query, page.Index+1, page.TotalPages)
	for i, skin := range page.Items {
		fmt.Fprintf(&b, "%d. %s\n", page.Offset+i+1, formatSkin(skin))
	}
	b.WriteString("Tap or type a number, or type a new search.")
	return domain.TextReply(b.String(), resultsMenu(page))
}

func (c *TradeConversation) selectItem(session *domain.TradeSession, index int) domain.Reply {
	if index < 0 || index >= len(session.Search.Results) {
		return c.reprompt(session, msgInvalidChoice)
	}

	skin := session.Search.Results[index]
	if skin.Wear == "" {
		session.CurrentSkin = &skin
		session.Step = domain.StepSelectWear
		return domain.TextReply(fmt.Sprintf(msgPickWear, skin.Name), wearMenu())
	}

	session.AddSkin(skin)
	return domain.TextReply(formatAdded(skin, len(session.PendingSkins)), c.addMenu(session))
}

func (c *TradeConversation) selectWear(session *domain.TradeSession, index int) domain.Reply {
	if session.CurrentSkin == nil {
		session.Step = domain.StepAddSkin
		return c.reprompt(session, msgStaleButton)
	}
	if index < 0 || index >= len(domain.Wears) {
		return c.reprompt(session, msgInvalidChoice)
	}

	skin := *session.CurrentSkin
	skin.Wear = domain.Wears[index]
	session.AddSkin(skin)
	return domain.TextReply(formatAdded(skin, len(session.PendingSkins)), c.addMenu(session))
}

func (c *TradeConversation) enterPrice(session *domain.TradeSession, text string) domain.Reply {
	price, err := parsePrice(text)
	if err == nil {
		err = session.SetPrice(price)
	}
	if err != nil {
		return domain.TextReply(msgInvalidPrice, cancelMenu())
	}
	return c.showAccounts(session, 0)
}

// showAccounts renders a page of the account allow-list
func (c *TradeConversation) showAccounts(session *domain.TradeSession, pageIndex int) domain.Reply {
	page, err := pagination.Paginate(c.config.Accounts, pageIndex, c.config.PageSize)
	if errors.Is(err, pagination.ErrEmptyPage) {
		current, _ := pagination.Paginate(c.config.Accounts, session.AccountPage, c.config.PageSize)
		return domain.TextReply(msgNoMoreAccounts, accountsMenu(current))
	}
	session.AccountPage = pageIndex

	var b strings.Builder
	if session.Price != nil {
		fmt.Fprintf(&b, "Price: %s\n", session.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "Choose the account (page %d/%d):", page.Index+1, page.TotalPages)
	return domain.TextReply(b.String(), accountsMenu(page))
}

// commit writes the log and resets the session. On a write failure the
// session is reset or kept according to ResetOnWriteFailure.
func (c *TradeConversation) commit(ctx context.Context, session *domain.TradeSession, index int) domain.Reply {
	if index < 0 || index >= len(c.config.Accounts) {
		return c.reprompt(session, msgInvalidChoice)
	}
	if !session.CanCommit() {
		return c.reprompt(session, msgIncompleteLog)
	}

	account := c.config.Accounts[index]
	skins := session.PendingSkins
	price := session.Price.StringFixed(2)

	if err := c.trades.Append(ctx, skins, *session.Price, account); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": session.UserID,
			"skins":   len(skins),
			"account": account,
		}).Errorf("Failed to commit trade log: %v", err)

		if c.config.ResetOnWriteFailure {
			c.sessions.Reset(session.UserID)
			return domain.TextReply(msgWriteFailed, mainMenu())
		}
		current, _ := pagination.Paginate(c.config.Accounts, session.AccountPage, c.config.PageSize)
		return domain.TextReply(msgWriteFailedKeep, accountsMenu(current))
	}

	c.sessions.Reset(session.UserID)
	return domain.TextReply(formatLogged(skins, price, account), mainMenu())
}

func (c *TradeConversation) cancel(session *domain.TradeSession) domain.Reply {
	c.sessions.Reset(session.UserID)
	return domain.TextReply(msgCancelled, mainMenu())
}

func (c *TradeConversation) lastLog(ctx context.Context, session *domain.TradeSession) domain.Reply {
	last, err := c.trades.LastLog(ctx)
	if err != nil {
		return domain.TextReply(msgFetchFailed, c.addMenu(session))
	}
	return domain.TextReply(formatLastLog(last), c.addMenu(session))
}

func (c *TradeConversation) statistics(ctx context.Context, session *domain.TradeSession) domain.Reply {
	stats, err := c.trades.Statistics(ctx)
	if err != nil {
		return domain.TextReply(msgFetchFailed, c.addMenu(session))
	}
	return domain.TextReply(formatStatistics(stats), c.addMenu(session))
}

// recent lists trades one message each
func (c *TradeConversation) recent(ctx context.Context, session *domain.TradeSession, n int) domain.Reply {
	rows, err := c.trades.Recent(ctx, n)
	if err != nil {
		return domain.TextReply(msgFetchFailed, c.addMenu(session))
	}
	if len(rows) == 0 {
		return domain.TextReply(msgNoTrades, c.addMenu(session))
	}

	reply := domain.Reply{Messages: make([]domain.LineOutgoingMessage, 0, len(rows))}
	for _, row := range rows {
		reply.Messages = append(reply.Messages, domain.LineOutgoingMessage{
			Type: domain.LineMessageTypeText,
			Text: formatTrade(row),
		})
	}
	reply.Messages[len(reply.Messages)-1].Menu = c.addMenu(session)
	return reply
}

// reprompt repeats the prompt of the current step, optionally prefixed
func (c *TradeConversation) reprompt(session *domain.TradeSession, prefix string) domain.Reply {
	var reply domain.Reply
	switch session.Step {
	case domain.StepSearchSkin:
		if len(session.Search.Results) > 0 {
			reply = c.showResults(session, session.Search.PageIndex)
		} else {
			reply = domain.TextReply(msgSearchPrompt, cancelMenu())
		}
	case domain.StepSelectWear:
		name := ""
		if session.CurrentSkin != nil {
			name = session.CurrentSkin.Name
		}
		reply = domain.TextReply(fmt.Sprintf(msgPickWear, name), wearMenu())
	case domain.StepEnterPrice:
		reply = domain.TextReply(formatPendingSummary(session.PendingSkins), cancelMenu())
	case domain.StepSelectAccount:
		reply = c.showAccounts(session, session.AccountPage)
	default:
		reply = domain.TextReply(msgUseMenu, c.addMenu(session))
	}

	if prefix != "" && len(reply.Messages) > 0 {
		reply.Messages[0].Text = prefix + "\n" + reply.Messages[0].Text
	}
	return reply
}

// addMenu offers the main menu, or add/finish once skins are pending
func (c *TradeConversation) addMenu(session *domain.TradeSession) *domain.Menu {
	if session.Step != domain.StepAddSkin {
		return nil
	}
	if len(session.PendingSkins) == 0 {
		return mainMenu()
	}
	return pendingMenu()
}

// parsePrice accepts a positive decimal, allowing a leading "$",
// thousands separators and a decimal comma
func parsePrice(text string) (decimal.Decimal, error) {
	s, ok := normalizeCommas(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "$")))
	if !ok || s == "" {
		return decimal.Zero, domain.ErrValidation
	}
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !price.IsPositive() {
		return decimal.Zero, domain.ErrValidation
	}
	return price, nil
}

// normalizeCommas rewrites commas into plain decimal notation. A single comma
// with no dot and at most two digits after it is a decimal comma, anything
// else must be well-formed thousands grouping.
func normalizeCommas(s string) (string, bool) {
	intPart, frac, hasDot := strings.Cut(s, ".")
	if strings.Contains(frac, ",") {
		return "", false
	}
	if !strings.Contains(intPart, ",") {
		return s, true
	}

	groups := strings.Split(intPart, ",")
	if !hasDot && len(groups) == 2 && groups[0] != "" && groups[1] != "" && len(groups[1]) <= 2 {
		return groups[0] + "." + groups[1], true
	}
	if len(groups[0]) == 0 || len(groups[0]) > 3 {
		return "", false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return "", false
		}
	}
	if hasDot {
		return strings.Join(groups, "") + "." + frac, true
	}
	return strings.Join(groups, ""), true
}
