package lookup

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scilifelab/gdocs-projects/config"
)

type credentials struct {
	missing bool
}

func (c credentials) Resolve(cfg *config.Config) (*Credentials, bool) {
	if c.missing {
		return nil, false
	}

	return &Credentials{Source: "test"}, true
}

type table struct {
	header []string
	rows   [][]string
}

// service is an in-memory SpreadsheetClient keyed by spreadsheet and worksheet title.
type service struct {
	spreadsheets map[string]map[string]table
	connectErr   error
	worksheets   []string
}

func (s *service) Connect(ctx context.Context, c *Credentials) (Session, error) {
	if s.connectErr != nil {
		return nil, s.connectErr
	}

	return s, nil
}

func (s *service) Spreadsheet(ctx context.Context, title string) (*Spreadsheet, error) {
	if _, ok := s.spreadsheets[title]; !ok {
		return nil, nil
	}

	return &Spreadsheet{ID: title, Title: title}, nil
}

func (s *service) Worksheet(ctx context.Context, spreadsheet *Spreadsheet, title string) (*Worksheet, error) {
	s.worksheets = append(s.worksheets, title)

	if _, ok := s.spreadsheets[spreadsheet.Title][title]; !ok {
		return nil, nil
	}

	return &Worksheet{Title: title}, nil
}

func (s *service) Rows(ctx context.Context, spreadsheet *Spreadsheet, worksheet *Worksheet, constraint map[string]string) ([]Row, error) {
	t := s.spreadsheets[spreadsheet.Title][worksheet.Title]
	rows := []Row{}

	for k, v := range constraint {
		index := ColumnIndex(t.header, k)
		if index <= 0 {
			return nil, fmt.Errorf("no such column '%v'", k)
		}

		for _, row := range t.rows {
			if Row(row).Cell(index) == v {
				rows = append(rows, row)
			}
		}
	}

	return rows, nil
}

func (s *service) Header(ctx context.Context, spreadsheet *Spreadsheet, worksheet *Worksheet) ([]string, error) {
	return s.spreadsheets[spreadsheet.Title][worksheet.Title].header, nil
}

type logger struct {
	warnings []string
}

func (l *logger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

var projects = map[string]map[string]table{
	"Projects": {
		"2012": {
			header: []string{"ID", "Project name", "Queue date", "Customer reference", "Application", "Uppnex ID"},
			rows: [][]string{
				{"P1", "J.Doe_11_01", "2012-01-03", "X", "RNA-seq", "b2012001"},
				{"P2", "A.Svensson_12_02", "2012-02-14", "AS-12", "WGS", "b2012002"},
				{"P3", "J.Doe_11_01", "2012-01-05", "X", "WGS", "b2012001"},
			},
		},
		"2013": {
			header: []string{"Uppnex ID", "Customer reference", "Project name", "ID"},
			rows: [][]string{
				{"b2013005", "Y", "J.Doe_11_01", "P7"},
			},
		},
		"Archive": {
			header: []string{"Project", "Notes"},
			rows: [][]string{
				{"J.Doe_11_01", "archived"},
			},
		},
	},
}

func configuration(worksheets string) *config.Config {
	return &config.Config{
		GDocsUpload: config.GDocsUpload{
			ProjectsSpreadsheet: "Projects",
			ProjectsWorksheet:   worksheets,
		},
	}
}

func keys(m map[string]string) []string {
	list := []string{}
	for k := range m {
		list = append(list, k)
	}

	sort.Strings(list)

	return list
}

func sorted(columns []string) []string {
	list := append([]string{}, columns...)
	sort.Strings(list)

	return list
}

func allNA(columns []string) map[string]string {
	m := map[string]string{}
	for _, c := range columns {
		m[c] = NotAvailable
	}

	return m
}

func TestLookup(t *testing.T) {
	p := NewProjectLookup(credentials{}, &service{spreadsheets: projects}, &logger{})

	data := p.Lookup(context.Background(), Query{Project: "A.Svensson_12_02"}, configuration("2012"))

	expected := map[string]string{
		"ID":                 "P2",
		"Project name":       "A.Svensson_12_02",
		"Queue date":         "2012-02-14",
		"No of samples":      "N/A",
		"Lanes / Plates":     "N/A",
		"Customer reference": "AS-12",
		"Application":        "WGS",
		"Uppnex ID":          "b2012002",
		"minimal M read pairs/sample (passed filter)":       "N/A",
		"No of samples finished (All sequencing finished)": "N/A",
	}

	assert.Equal(t, expected, data)
}

func TestLookupJoinsMultipleRows(t *testing.T) {
	p := NewProjectLookup(credentials{}, &service{spreadsheets: projects}, &logger{})

	query := Query{
		Project: "J.Doe_11_01",
		Columns: []string{"Application", "Queue date"},
	}

	data := p.Lookup(context.Background(), query, configuration("2012"))

	assert.Equal(t, "RNA-seq, WGS", data["Application"])
	assert.Equal(t, "2012-01-03, 2012-01-05", data["Queue date"])
}

func TestLookupLastWorksheetWins(t *testing.T) {
	p := NewProjectLookup(credentials{}, &service{spreadsheets: projects}, &logger{})

	query := Query{
		Project: "J.Doe_11_01",
		Columns: []string{"Customer reference", "Queue date", "Uppnex ID"},
	}

	data := p.Lookup(context.Background(), query, configuration("2012, 2013"))

	expected := map[string]string{
		"Customer reference": "Y",
		"Queue date":         "2012-01-03, 2012-01-05",
		"Uppnex ID":          "b2013005",
	}

	assert.Equal(t, expected, data)
}

func TestLookupColumnMissingFromHeader(t *testing.T) {
	p := NewProjectLookup(credentials{}, &service{spreadsheets: projects}, &logger{})

	query := Query{
		Project: "J.Doe_11_01",
		Columns: []string{"Queue date", "ID"},
	}

	data := p.Lookup(context.Background(), query, configuration("2013"))

	assert.Equal(t, map[string]string{"Queue date": "N/A", "ID": "P7"}, data)
}

func TestLookupTrimsWorksheetTitles(t *testing.T) {
	s := service{spreadsheets: projects}
	p := NewProjectLookup(credentials{}, &s, &logger{})

	p.Lookup(context.Background(), Query{Project: "J.Doe_11_01"}, configuration(" 2012 ,2013"))

	assert.Equal(t, []string{"2012", "2013"}, s.worksheets)
}

func TestLookupWithMissingCredentials(t *testing.T) {
	log := logger{}
	p := NewProjectLookup(credentials{missing: true}, &service{spreadsheets: projects}, &log)

	data := p.Lookup(context.Background(), Query{Project: "J.Doe_11_01"}, configuration("2012"))

	assert.Equal(t, allNA(DefaultColumns), data)
	assert.Len(t, log.warnings, 1)
}

func TestLookupWithMissingConfiguration(t *testing.T) {
	tests := []*config.Config{
		nil,
		&config.Config{},
		configuration(""),
		&config.Config{GDocsUpload: config.GDocsUpload{ProjectsWorksheet: "2012"}},
	}

	for _, cfg := range tests {
		log := logger{}
		p := NewProjectLookup(credentials{}, &service{spreadsheets: projects}, &log)

		data := p.Lookup(context.Background(), Query{Project: "J.Doe_11_01"}, cfg)

		assert.Equal(t, allNA(DefaultColumns), data)
		assert.Len(t, log.warnings, 1)
	}
}

func TestLookupWithConnectionError(t *testing.T) {
	log := logger{}
	p := NewProjectLookup(credentials{}, &service{connectErr: fmt.Errorf("timeout")}, &log)

	data := p.Lookup(context.Background(), Query{Project: "J.Doe_11_01"}, configuration("2012"))

	assert.Equal(t, allNA(DefaultColumns), data)
	assert.Len(t, log.warnings, 1)
}

func TestLookupWithMissingSpreadsheet(t *testing.T) {
	log := logger{}
	p := NewProjectLookup(credentials{}, &service{spreadsheets: projects}, &log)

	cfg := configuration("2012")
	cfg.GDocsUpload.ProjectsSpreadsheet = "Projects 2011"

	data := p.Lookup(context.Background(), Query{Project: "J.Doe_11_01"}, cfg)

	assert.Equal(t, allNA(DefaultColumns), data)
	require.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], "Projects 2011")
}

func TestLookupSkipsMissingWorksheet(t *testing.T) {
	log := logger{}
	p := NewProjectLookup(credentials{}, &service{spreadsheets: projects}, &log)

	query := Query{
		Project: "J.Doe_11_01",
		Columns: []string{"Uppnex ID"},
	}

	data := p.Lookup(context.Background(), query, configuration("2011, 2013"))

	assert.Equal(t, map[string]string{"Uppnex ID": "b2013005"}, data)
	require.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], "2011")
}

func TestLookupSkipsWorksheetWithoutNameColumn(t *testing.T) {
	log := logger{}
	p := NewProjectLookup(credentials{}, &service{spreadsheets: projects}, &log)

	query := Query{
		Project: "J.Doe_11_01",
		Columns: []string{"Uppnex ID"},
	}

	data := p.Lookup(context.Background(), query, configuration("2013, Archive"))

	assert.Equal(t, map[string]string{"Uppnex ID": "b2013005"}, data)
}

func TestLookupWithCustomNameColumn(t *testing.T) {
	p := NewProjectLookup(credentials{}, &service{spreadsheets: projects}, &logger{})

	query := Query{
		Project:    "J.Doe_11_01",
		Columns:    []string{"Notes"},
		NameColumn: "Project",
	}

	data := p.Lookup(context.Background(), query, configuration("Archive"))

	assert.Equal(t, map[string]string{"Notes": "archived"}, data)
}

func TestLookupNoMatchingRows(t *testing.T) {
	log := logger{}
	p := NewProjectLookup(credentials{}, &service{spreadsheets: projects}, &log)

	data := p.Lookup(context.Background(), Query{Project: "Q.Nobody_99_01"}, configuration("2012, 2013"))

	assert.Equal(t, allNA(DefaultColumns), data)
	assert.Empty(t, log.warnings)
}

func TestLookupKeysMatchColumns(t *testing.T) {
	queries := [][]string{
		DefaultColumns,
		{"Uppnex ID"},
		{"Uppnex ID", "Not a column", "Application"},
		{},
	}

	configs := []*config.Config{
		nil,
		configuration("2012"),
		configuration("2012, 2013, 2011"),
	}

	for _, columns := range queries {
		for _, cfg := range configs {
			p := NewProjectLookup(credentials{}, &service{spreadsheets: projects}, &logger{})
			data := p.Lookup(context.Background(), Query{Project: "J.Doe_11_01", Columns: columns}, cfg)

			assert.Equal(t, sorted(columns), keys(data))
		}
	}
}

func TestLookupIsIdempotent(t *testing.T) {
	p := NewProjectLookup(credentials{}, &service{spreadsheets: projects}, &logger{})
	cfg := configuration("2012, 2013")

	first := p.Lookup(context.Background(), Query{Project: "J.Doe_11_01"}, cfg)
	second := p.Lookup(context.Background(), Query{Project: "J.Doe_11_01"}, cfg)

	assert.Equal(t, first, second)
}

func TestLookupUppnexID(t *testing.T) {
	p := NewProjectLookup(credentials{}, &service{spreadsheets: projects}, &logger{})
	cfg := configuration("2012")

	id := p.LookupUppnexID(context.Background(), "A.Svensson_12_02", cfg)
	data := p.Lookup(context.Background(), Query{Project: "A.Svensson_12_02", Columns: []string{"Uppnex ID"}}, cfg)

	assert.Equal(t, "b2012002", id)
	assert.Equal(t, data["Uppnex ID"], id)
}

func TestLookupUppnexIDNotFound(t *testing.T) {
	p := NewProjectLookup(credentials{missing: true}, &service{spreadsheets: projects}, &logger{})

	assert.Equal(t, NotAvailable, p.LookupUppnexID(context.Background(), "A.Svensson_12_02", configuration("2012")))
}

func TestColumnIndex(t *testing.T) {
	header := []string{"ID", "Project name", "Lanes / Plates", "Uppnex ID"}

	tests := map[string]int{
		"ID":             1,
		"Project name":   2,
		"project name":   0,
		"Project  name":  0,
		" Project name":  0,
		"Lanes / Plates": 3,
		"Uppnex ID":      4,
		"Queue date":     0,
		"":               0,
	}

	for column, expected := range tests {
		if index := ColumnIndex(header, column); index != expected {
			t.Errorf("Incorrect index for '%v' - expected:%v, got:%v", column, expected, index)
		}
	}
}

func TestColumnIndexWithSimilarHeaders(t *testing.T) {
	header := []string{"Id", "Project name", "ID", "Id"}

	assert.Equal(t, 1, ColumnIndex(header, "Id"))
	assert.Equal(t, 3, ColumnIndex(header, "ID"))
	assert.Equal(t, 0, ColumnIndex(header, "id"))
}

func TestColumnIndexWithBlankColumn(t *testing.T) {
	header := []string{"ID", "Project name", "", " "}

	assert.Equal(t, 0, ColumnIndex(header, ""))
	assert.Equal(t, 0, ColumnIndex(header, " "))
}

func TestLookupWithSimilarHeaders(t *testing.T) {
	spreadsheets := map[string]map[string]table{
		"Projects": {
			"2014": {
				header: []string{"Id", "Project name", "ID"},
				rows: [][]string{
					{"internal-9", "J.Doe_11_01", "P9"},
				},
			},
		},
	}

	p := NewProjectLookup(credentials{}, &service{spreadsheets: spreadsheets}, &logger{})

	query := Query{
		Project: "J.Doe_11_01",
		Columns: []string{"ID", "Id", "id"},
	}

	data := p.Lookup(context.Background(), query, configuration("2014"))

	assert.Equal(t, map[string]string{"ID": "P9", "Id": "internal-9", "id": NotAvailable}, data)
}

func TestLookupWithBlankColumn(t *testing.T) {
	spreadsheets := map[string]map[string]table{
		"Projects": {
			"2014": {
				header: []string{"ID", "Project name", ""},
				rows: [][]string{
					{"P9", "J.Doe_11_01", "unlabelled"},
				},
			},
		},
	}

	p := NewProjectLookup(credentials{}, &service{spreadsheets: spreadsheets}, &logger{})

	query := Query{
		Project: "J.Doe_11_01",
		Columns: []string{"ID", ""},
	}

	data := p.Lookup(context.Background(), query, configuration("2014"))

	assert.Equal(t, map[string]string{"ID": "P9", "": NotAvailable}, data)
}

func TestRowCell(t *testing.T) {
	row := Row{"a", "b"}

	assert.Equal(t, "a", row.Cell(1))
	assert.Equal(t, "b", row.Cell(2))
	assert.Equal(t, "", row.Cell(3))
	assert.Equal(t, "", row.Cell(0))
}
