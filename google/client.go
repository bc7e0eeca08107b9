package google

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/scilifelab/gdocs-projects/lookup"
)

const mimeSpreadsheet = "application/vnd.google-apps.spreadsheet"

// Client connects to Google Sheets, using Google Drive to find spreadsheets by title.
type Client struct {
	authorize func(context.Context, *lookup.Credentials) (*http.Client, error)
	sheets    []option.ClientOption
	drive     []option.ClientOption
}

type session struct {
	sheets       *sheets.Service
	drive        *drive.Service
	spreadsheets map[string][]*sheets.SheetProperties
	values       map[worksheetKey][][]string
}

type worksheetKey struct {
	spreadsheet string
	worksheet   int64
}

func NewClient() *Client {
	return &Client{
		authorize: authorize,
	}
}

func (c *Client) Connect(ctx context.Context, credentials *lookup.Credentials) (lookup.Session, error) {
	client, err := c.authorize(ctx, credentials)
	if err != nil {
		return nil, fmt.Errorf("authentication/authorization error (%w)", err)
	}

	gsheets, err := sheets.NewService(ctx, append([]option.ClientOption{option.WithHTTPClient(client)}, c.sheets...)...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%w)", err)
	}

	gdrive, err := drive.NewService(ctx, append([]option.ClientOption{option.WithHTTPClient(client)}, c.drive...)...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Drive client (%w)", err)
	}

	return &session{
		sheets:       gsheets,
		drive:        gdrive,
		spreadsheets: map[string][]*sheets.SheetProperties{},
		values:       map[worksheetKey][][]string{},
	}, nil
}

// Spreadsheet returns the most recently modified spreadsheet with exactly the title.
func (s *session) Spreadsheet(ctx context.Context, title string) (*lookup.Spreadsheet, error) {
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escape(title), mimeSpreadsheet)
	files := []*drive.File{}
	page := ""

	for {
		call := s.drive.Files.List().
			Context(ctx).
			Q(q).
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true).
			OrderBy("modifiedTime desc").
			Fields("nextPageToken, files(id, name, modifiedTime)")

		if page != "" {
			call = call.PageToken(page)
		}

		list, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("error searching for spreadsheet '%s' (%w)", title, err)
		}

		files = append(files, list.Files...)

		if page = list.NextPageToken; page == "" {
			break
		}
	}

	if len(files) == 0 {
		return nil, nil
	}

	if len(files) > 1 {
		log.Debugf("%v spreadsheets titled '%s' - using %v (modified %v)", len(files), title, files[0].Id, files[0].ModifiedTime)
	}

	spreadsheet, err := s.sheets.Spreadsheets.
		Get(files[0].Id).
		Fields("spreadsheetId,properties(title),sheets(properties(sheetId,title))").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet (%w)", err)
	}

	worksheets := []*sheets.SheetProperties{}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil {
			worksheets = append(worksheets, sheet.Properties)
		}
	}

	s.spreadsheets[spreadsheet.SpreadsheetId] = worksheets

	return &lookup.Spreadsheet{
		ID:    spreadsheet.SpreadsheetId,
		Title: title,
	}, nil
}

func (s *session) Worksheet(ctx context.Context, spreadsheet *lookup.Spreadsheet, title string) (*lookup.Worksheet, error) {
	worksheets, ok := s.spreadsheets[spreadsheet.ID]
	if !ok {
		return nil, fmt.Errorf("unknown spreadsheet %v", spreadsheet.ID)
	}

	for _, p := range worksheets {
		if p.Title == title {
			return &lookup.Worksheet{
				ID:    p.SheetId,
				Title: p.Title,
			}, nil
		}
	}

	return nil, nil
}

// Rows returns the worksheet rows for which every constrained column has exactly the constraint
// value. A constraint on a column that is not in the header matches nothing.
func (s *session) Rows(ctx context.Context, spreadsheet *lookup.Spreadsheet, worksheet *lookup.Worksheet, constraint map[string]string) ([]lookup.Row, error) {
	values, err := s.get(ctx, spreadsheet, worksheet)
	if err != nil {
		return nil, err
	}

	rows := []lookup.Row{}
	if len(values) == 0 {
		return rows, nil
	}

	header := values[0]
	index := map[int]string{}
	for column, v := range constraint {
		ix := lookup.ColumnIndex(header, column)
		if ix <= 0 {
			log.Debugf("worksheet '%s' has no '%s' column", worksheet.Title, column)
			return rows, nil
		}

		index[ix] = v
	}

	for _, row := range values[1:] {
		r := lookup.Row(row)
		matched := true
		for ix, v := range index {
			if r.Cell(ix) != v {
				matched = false
				break
			}
		}

		if matched {
			rows = append(rows, r)
		}
	}

	return rows, nil
}

func (s *session) Header(ctx context.Context, spreadsheet *lookup.Spreadsheet, worksheet *lookup.Worksheet) ([]string, error) {
	values, err := s.get(ctx, spreadsheet, worksheet)
	if err != nil {
		return nil, err
	}

	if len(values) == 0 {
		return []string{}, nil
	}

	return values[0], nil
}

// get retrieves the worksheet values once per session, with every row padded to the widest row.
func (s *session) get(ctx context.Context, spreadsheet *lookup.Spreadsheet, worksheet *lookup.Worksheet) ([][]string, error) {
	key := worksheetKey{
		spreadsheet: spreadsheet.ID,
		worksheet:   worksheet.ID,
	}

	if values, ok := s.values[key]; ok {
		return values, nil
	}

	response, err := s.sheets.Spreadsheets.Values.
		Get(spreadsheet.ID, quote(worksheet.Title)).
		MajorDimension("ROWS").
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet '%s' (%w)", worksheet.Title, err)
	}

	values := table(response)
	s.values[key] = values

	log.Debugf("retrieved %v rows from '%s'", len(values), worksheet.Title)

	return values, nil
}

func table(response *sheets.ValueRange) [][]string {
	values := [][]string{}
	if response == nil || len(response.Values) == 0 {
		return values
	}

	width := len(response.Values[0])
	for _, row := range response.Values {
		if len(row) > width {
			width = len(row)
		}
	}

	for _, row := range response.Values {
		record := make([]string, width)
		for i, v := range row {
			if v != nil {
				record[i] = fmt.Sprintf("%v", v)
			}
		}

		values = append(values, record)
	}

	return values
}

// quote formats a worksheet title as an A1 range covering the whole worksheet.
func quote(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// escape formats a string literal for a Drive query.
func escape(v string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v)
}
