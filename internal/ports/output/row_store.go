package output

import "context"

// RowStore interface - Output port
// Defines what the application needs from the remote tabular store.
// Ranges use A1 notation ("Log!A:F"); the part before "!" names the tab.
type RowStore interface {
	// GetRange returns the rows of a range as cell strings, in sheet order.
	GetRange(ctx context.Context, sheetID, rangeSpec string) ([][]string, error)

	// AppendRows appends rows after the last row of the range.
	AppendRows(ctx context.Context, sheetID, rangeSpec string, rows [][]string) error
}

// Pinger is implemented by row stores that can report their health
type Pinger interface {
	Ping(ctx context.Context) error
}
