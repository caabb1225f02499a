package configs

import (
	"strings"
	"testing"
	"time"
)

// setupTestEnv sets the settings a valid config needs
func setupTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("LINE_CHANNEL_SECRET", "test-secret")
	t.Setenv("LINE_CHANNEL_TOKEN", "test-token")
	t.Setenv("SHEETS_LOG_SHEET_ID", "log-sheet")
	t.Setenv("SHEETS_NAMES_SHEET_ID", "names-sheet")
	t.Setenv("SHEETS_CREDENTIALS_JSON", `{"type":"service_account"}`)
	t.Setenv("BOT_ACCOUNTS", "Main,Alt")
}

// TestDefaultsFromConfigFile tests the values shipped in config.yaml
func TestDefaultsFromConfigFile(t *testing.T) {
	setupTestEnv(t)
	InitViper(".", "test")
	cfg := GetViper()

	if cfg.RowStore.Backend != BackendSheets {
		t.Errorf("Expected backend sheets, got %s", cfg.RowStore.Backend)
	}
	if cfg.SessionTimeout() != time.Hour {
		t.Errorf("Expected session timeout 1h, got %s", cfg.SessionTimeout())
	}
	if cfg.NamesTTL() != time.Hour {
		t.Errorf("Expected names TTL 1h, got %s", cfg.NamesTTL())
	}
	if cfg.DedupeTTL() != 10*time.Minute {
		t.Errorf("Expected dedupe TTL 10m, got %s", cfg.DedupeTTL())
	}
	if cfg.Bot.PageSize != 5 || cfg.Bot.RecentLimit != 5 || !cfg.Bot.ResetOnWriteFailure {
		t.Errorf("Unexpected bot defaults %+v", cfg.Bot)
	}
	if cfg.Bot.Timezone != "Asia/Bangkok" {
		t.Errorf("Expected timezone Asia/Bangkok, got %s", cfg.Bot.Timezone)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected a valid config, got %v", err)
	}
}

// TestEnvironmentOverrides tests env keys with "." replaced by "_"
func TestEnvironmentOverrides(t *testing.T) {
	setupTestEnv(t)
	t.Setenv("SESSION_TIMEOUT", "45")
	t.Setenv("BOT_RESET_ON_WRITE_FAILURE", "false")
	t.Setenv("BOT_ACCOUNTS", "Main,Alt,Storage")

	InitViper(".", "test")
	cfg := GetViper()

	if cfg.Session.Timeout != 45 {
		t.Errorf("Expected Session.Timeout to be 45, got %d", cfg.Session.Timeout)
	}
	if cfg.Bot.ResetOnWriteFailure {
		t.Error("Expected ResetOnWriteFailure to be false")
	}
	if strings.Join(cfg.Bot.Accounts, "|") != "Main|Alt|Storage" {
		t.Errorf("Expected three accounts, got %v", cfg.Bot.Accounts)
	}
}

// TestValidateFailsFast tests the settings without which the bot cannot run
func TestValidateFailsFast(t *testing.T) {
	valid := func() Config {
		return Config{
			App:      App{Port: "9089"},
			Line:     Line{ChannelSecret: "s", ChannelToken: "t"},
			Sheets:   Sheets{LogSheetID: "log", NamesSheetID: "names", LogRange: "Log!A:F", NamesRange: "Names!A:B", CredentialsFile: "sa.json"},
			RowStore: RowStore{Backend: BackendSheets},
			Bot:      Bot{Accounts: []string{"Main"}, PageSize: 5, RecentLimit: 5},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing token", mutate: func(c *Config) { c.Line.ChannelToken = "" }, wantErr: true},
		{name: "missing log sheet", mutate: func(c *Config) { c.Sheets.LogSheetID = "" }, wantErr: true},
		{name: "missing names sheet", mutate: func(c *Config) { c.Sheets.NamesSheetID = "" }, wantErr: true},
		{name: "no accounts", mutate: func(c *Config) { c.Bot.Accounts = nil }, wantErr: true},
		{name: "blank account", mutate: func(c *Config) { c.Bot.Accounts = []string{"Main", ""} }, wantErr: true},
		{name: "unknown backend", mutate: func(c *Config) { c.RowStore.Backend = "redis" }, wantErr: true},
		{name: "sheets without credentials", mutate: func(c *Config) { c.Sheets.CredentialsFile = "" }, wantErr: true},
		{name: "postgres without host", mutate: func(c *Config) { c.RowStore.Backend = BackendPostgres }, wantErr: true},
		{name: "postgres", mutate: func(c *Config) {
			c.RowStore.Backend = BackendPostgres
			c.Sheets.CredentialsFile = ""
			c.Postgres = Postgres{Host: "localhost", Port: "5432", DbName: "skinlog"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected an error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}
