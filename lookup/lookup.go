package lookup

import (
	"context"
	"strings"

	"github.com/scilifelab/gdocs-projects/config"
)

const (
	NotAvailable      = "N/A"
	ProjectNameColumn = "Project name"
	UppnexIDColumn    = "Uppnex ID"
)

// DefaultColumns is the canonical set of project data columns retrieved when a query does not
// name any.
var DefaultColumns = []string{
	"ID",
	"Project name",
	"Queue date",
	"No of samples",
	"Lanes / Plates",
	"minimal M read pairs/sample (passed filter)",
	"Customer reference",
	"Application",
	"No of samples finished (All sequencing finished)",
	"Uppnex ID",
}

type Query struct {
	Project    string
	Columns    []string
	NameColumn string
}

// ProjectLookup retrieves project data from the projects spreadsheet described by the
// 'gdocs_upload' section of a configuration.
type ProjectLookup struct {
	Credentials CredentialProvider
	Client      SpreadsheetClient
	Log         Logger
}

func NewProjectLookup(credentials CredentialProvider, client SpreadsheetClient, log Logger) *ProjectLookup {
	return &ProjectLookup{
		Credentials: credentials,
		Client:      client,
		Log:         log,
	}
}

// Lookup returns the requested columns for the project. Every requested column is present in the
// result and defaults to "N/A". Failures are logged as warnings and never returned.
func (p *ProjectLookup) Lookup(ctx context.Context, query Query, cfg *config.Config) map[string]string {
	columns := query.Columns
	if columns == nil {
		columns = DefaultColumns
	}

	nameColumn := query.NameColumn
	if nameColumn == "" {
		nameColumn = ProjectNameColumn
	}

	data := map[string]string{}
	for _, column := range columns {
		data[column] = NotAvailable
	}

	credentials, ok := p.Credentials.Resolve(cfg)
	if !ok {
		p.warnf("The Google Docs credentials could not be found")
		return data
	}

	ref, ok := cfg.Projects()
	if !ok {
		p.warnf("The names of the projects spreadsheet and worksheet on Google Docs could not be found")
		return data
	}

	session, err := p.Client.Connect(ctx, credentials)
	if err != nil {
		p.warnf("Could not connect to Google Docs (%v)", err)
		return data
	}

	spreadsheet, err := session.Spreadsheet(ctx, ref.Spreadsheet)
	if err != nil {
		p.warnf("Could not connect to %s on Google Docs (%v)", ref.Spreadsheet, err)
		return data
	} else if spreadsheet == nil {
		p.warnf("Could not connect to %s on Google Docs", ref.Spreadsheet)
		return data
	}

	for _, title := range ref.Worksheets {
		worksheet, err := session.Worksheet(ctx, spreadsheet, title)
		if err != nil {
			p.warnf("Could not locate %s in %s (%v)", title, ref.Spreadsheet, err)
			continue
		} else if worksheet == nil {
			p.warnf("Could not locate %s in %s", title, ref.Spreadsheet)
			continue
		}

		rows, err := session.Rows(ctx, spreadsheet, worksheet, map[string]string{nameColumn: query.Project})
		if err != nil {
			p.warnf("Could not retrieve rows for %s from %s (%v)", query.Project, title, err)
			continue
		} else if len(rows) == 0 {
			continue
		}

		header, err := session.Header(ctx, spreadsheet, worksheet)
		if err != nil {
			p.warnf("Could not retrieve header row of %s (%v)", title, err)
			continue
		}

		for _, column := range columns {
			if index := ColumnIndex(header, column); index > 0 {
				values := make([]string, 0, len(rows))
				for _, row := range rows {
					values = append(values, row.Cell(index))
				}

				data[column] = strings.Join(values, ", ")
			}
		}
	}

	return data
}

// LookupUppnexID returns the Uppnex ID of the project, or "N/A" if it could not be found.
func (p *ProjectLookup) LookupUppnexID(ctx context.Context, project string, cfg *config.Config) string {
	query := Query{
		Project: project,
		Columns: []string{UppnexIDColumn},
	}

	return p.Lookup(ctx, query, cfg)[UppnexIDColumn]
}

// ColumnIndex returns the 1-based position of the first header cell that exactly matches the
// column name, or 0 if the header does not have the column. A blank column name never matches,
// even against the empty cells of a padded header.
func ColumnIndex(header []string, column string) int {
	if strings.TrimSpace(column) == "" {
		return 0
	}

	for i, h := range header {
		if h == column {
			return i + 1
		}
	}

	return 0
}

func (p *ProjectLookup) warnf(format string, args ...any) {
	if p.Log != nil {
		p.Log.Warnf(format, args...)
	}
}
