package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func TestToStrings(t *testing.T) {
	got := toStrings([][]interface{}{
		{"2026-10-16", "AK-47 | Redline", 12.5, nil},
		{},
	})
	want := [][]string{
		{"2026-10-16", "AK-47 | Redline", "12.5", ""},
		{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestToValues(t *testing.T) {
	got := toValues([][]string{{"a", ""}})
	if len(got) != 1 || got[0][0] != "a" || got[0][1] != "" {
		t.Errorf("unexpected values %v", got)
	}
}

func TestCredentialsLoad(t *testing.T) {
	if _, err := (Credentials{}).load(); err == nil {
		t.Error("expected an error without credentials")
	}

	data, err := (Credentials{JSON: `{"type":"service_account"}`, File: "/does/not/exist"}).load()
	if err != nil || string(data) != `{"type":"service_account"}` {
		t.Errorf("expected inline JSON to win, got %q (err %v)", data, err)
	}

	path := filepath.Join(t.TempDir(), "sa.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if data, err := (Credentials{File: path}).load(); err != nil || string(data) != `{}` {
		t.Errorf("expected file contents, got %q (err %v)", data, err)
	}
}

// newTestStore points the sheets client at a local server
func newTestStore(t *testing.T, handler http.HandlerFunc) *RowStore {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	service, err := sheets.NewService(context.Background(),
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return &RowStore{service: service, healthSheetID: "log"}
}

func TestGetRangeOverHTTP(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/v4/spreadsheets/names/values/") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"range":"Names!A1:B2","majorDimension":"ROWS","values":[["Name","Wear"],["AK-47 | Redline","Field-Tested"]]}`))
	})

	rows, err := store.GetRange(context.Background(), "names", "Names!A:B")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "AK-47 | Redline" {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestAppendRowsOverHTTP(t *testing.T) {
	var query string
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"updates":{"updatedRange":"Log!A10:F11","updatedRows":2}}`))
	})

	err := store.AppendRows(context.Background(), "log", "Log!A:F", [][]string{{"2026-10-16"}, {"2026-10-16"}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(query, "valueInputOption=USER_ENTERED") || !strings.Contains(query, "insertDataOption=INSERT_ROWS") {
		t.Errorf("unexpected query %s", query)
	}
}

func TestGetRangeError(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, http.StatusForbidden)
	})

	if _, err := store.GetRange(context.Background(), "names", "Names!A:B"); err == nil {
		t.Error("expected an error")
	}
	if err := store.Ping(context.Background()); err == nil {
		t.Error("expected ping to fail")
	}
}
