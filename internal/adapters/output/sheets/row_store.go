package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"

	"skinlog-bot/internal/ports/output"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	// valueInputOption lets the sheet parse dates and numbers as a user would type them
	valueInputOption = "USER_ENTERED"
	insertDataOption = "INSERT_ROWS"
)

// Credentials selects the service account used to reach the Sheets API.
// JSON wins over File when both are set.
type Credentials struct {
	File string
	JSON string
}

// RowStore struct - Output adapter reading and appending rows of Google Sheets
type RowStore struct {
	service       *sheets.Service
	healthSheetID string
}

// Compile-time checks to ensure RowStore implements the output ports
var (
	_ output.RowStore = (*RowStore)(nil)
	_ output.Pinger   = (*RowStore)(nil)
)

// NewRowStore func - Creates a Sheets row store authenticated as a service account.
// healthSheetID is the spreadsheet Ping reads metadata from.
func NewRowStore(ctx context.Context, creds Credentials, healthSheetID string) (*RowStore, error) {
	data, err := creds.load()
	if err != nil {
		return nil, err
	}

	googleCreds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithCredentials(googleCreds))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &RowStore{service: service, healthSheetID: healthSheetID}, nil
}

// GetRange returns the rows of the range as strings. Trailing empty cells
// are omitted by the API, so rows may be ragged.
func (s *RowStore) GetRange(ctx context.Context, sheetID, rangeSpec string) ([][]string, error) {
	resp, err := s.service.Spreadsheets.Values.Get(sheetID, rangeSpec).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rangeSpec, err)
	}
	logrus.Debugf("Read %d row(s) from %s", len(resp.Values), rangeSpec)
	return toStrings(resp.Values), nil
}

// AppendRows appends the rows after the last row of the range in one call
func (s *RowStore) AppendRows(ctx context.Context, sheetID, rangeSpec string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	values := &sheets.ValueRange{Values: toValues(rows)}

	resp, err := s.service.Spreadsheets.Values.Append(sheetID, rangeSpec, values).
		ValueInputOption(valueInputOption).
		InsertDataOption(insertDataOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to %s: %w", rangeSpec, err)
	}
	if resp.Updates != nil {
		logrus.Debugf("Appended %d row(s) at %s", resp.Updates.UpdatedRows, resp.Updates.UpdatedRange)
	}
	return nil
}

// Ping reads the metadata of the health spreadsheet
func (s *RowStore) Ping(ctx context.Context) error {
	if s.healthSheetID == "" {
		return nil
	}
	if _, err := s.service.Spreadsheets.Get(s.healthSheetID).Fields("spreadsheetId").Context(ctx).Do(); err != nil {
		return fmt.Errorf("sheets ping failed: %w", err)
	}
	return nil
}

func (c Credentials) load() ([]byte, error) {
	if c.JSON != "" {
		return []byte(c.JSON), nil
	}
	if c.File == "" {
		return nil, errors.New("no service account credentials configured")
	}
	data, err := os.ReadFile(c.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return data, nil
}

func toStrings(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v != nil {
				cells[j] = fmt.Sprint(v)
			}
		}
		rows[i] = cells
	}
	return rows
}

func toValues(rows [][]string) [][]interface{} {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		values[i] = cells
	}
	return values
}
