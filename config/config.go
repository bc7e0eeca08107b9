package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the subset of the pipeline configuration used to locate the projects spreadsheet.
// Any other sections in the configuration file are ignored.
type Config struct {
	GDocsUpload GDocsUpload `yaml:"gdocs_upload"`
}

type GDocsUpload struct {
	Credentials         string `yaml:"gdocs_credentials"`
	Tokens              string `yaml:"gdocs_tokens"`
	ProjectsSpreadsheet string `yaml:"projects_spreadsheet"`
	ProjectsWorksheet   string `yaml:"projects_worksheet"`
}

// SpreadsheetRef identifies the projects spreadsheet and the worksheets to search, in search order.
type SpreadsheetRef struct {
	Spreadsheet string
	Worksheets  []string
}

// Load reads a YAML (or JSON) configuration file. Relative credentials and tokens file paths are
// resolved against the directory of the configuration file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	cfg, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	cfg.GDocsUpload.Credentials = resolve(dir, cfg.GDocsUpload.Credentials)
	cfg.GDocsUpload.Tokens = resolve(dir, cfg.GDocsUpload.Tokens)

	return cfg, nil
}

func Read(r io.Reader) (*Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	cfg := Config{}
	if len(bytes.TrimSpace(b)) == 0 {
		return &cfg, nil
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration (%w)", err)
	}

	return &cfg, nil
}

// Projects returns the projects spreadsheet title and the worksheet titles, split on commas and
// trimmed. Returns false if either the spreadsheet or the worksheet is not configured.
func (c *Config) Projects() (SpreadsheetRef, bool) {
	if c == nil {
		return SpreadsheetRef{}, false
	}

	spreadsheet := strings.TrimSpace(c.GDocsUpload.ProjectsSpreadsheet)
	worksheets := strings.TrimSpace(c.GDocsUpload.ProjectsWorksheet)
	if spreadsheet == "" || worksheets == "" {
		return SpreadsheetRef{}, false
	}

	ref := SpreadsheetRef{
		Spreadsheet: spreadsheet,
		Worksheets:  []string{},
	}

	for _, title := range strings.Split(worksheets, ",") {
		ref.Worksheets = append(ref.Worksheets, strings.TrimSpace(title))
	}

	return ref, true
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}

	return filepath.Join(dir, path)
}
