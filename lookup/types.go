package lookup

import (
	"context"

	"github.com/scilifelab/gdocs-projects/config"
)

// Credentials are passed through unexamined from the CredentialProvider to the SpreadsheetClient.
type Credentials struct {
	Source string
	JSON   []byte
	Tokens string
}

type CredentialProvider interface {
	Resolve(cfg *config.Config) (*Credentials, bool)
}

type SpreadsheetClient interface {
	Connect(ctx context.Context, credentials *Credentials) (Session, error)
}

// Session is a connected spreadsheet service. Spreadsheet and Worksheet return nil (and no error)
// if nothing matches the title.
type Session interface {
	Spreadsheet(ctx context.Context, title string) (*Spreadsheet, error)
	Worksheet(ctx context.Context, spreadsheet *Spreadsheet, title string) (*Worksheet, error)
	Rows(ctx context.Context, spreadsheet *Spreadsheet, worksheet *Worksheet, constraint map[string]string) ([]Row, error)
	Header(ctx context.Context, spreadsheet *Spreadsheet, worksheet *Worksheet) ([]string, error)
}

type Logger interface {
	Warnf(format string, args ...any)
}

type Spreadsheet struct {
	ID    string
	Title string
}

type Worksheet struct {
	ID    int64
	Title string
}

type Row []string

// Cell returns the value in the 1-based column, or "" if the row is shorter than that.
func (r Row) Cell(index int) string {
	if index < 1 || index > len(r) {
		return ""
	}

	return r[index-1]
}
