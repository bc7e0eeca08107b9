package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/scilifelab/gdocs-projects/lookup"
)

var GetProjectCmd = GetProject{
	command: command{
		config:  DEFAULT_CONFIG,
		timeout: 60 * time.Second,
		debug:   false,
	},

	project:    "",
	columns:    "",
	nameColumn: lookup.ProjectNameColumn,
	format:     "tsv",
	file:       "",
}

type GetProject struct {
	command
	project    string
	columns    string
	nameColumn string
	format     string
	file       string
}

func (cmd *GetProject) Name() string {
	return "get-project"
}

func (cmd *GetProject) Description() string {
	return "Retrieves the project data for a project from the Google Docs projects spreadsheet"
}

func (cmd *GetProject) Usage() string {
	return "--config <file> --project <name> [--columns <columns>] [--format tsv|yaml] [--file <file>]"
}

func (cmd *GetProject) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get-project [options] --project <name>\n", APP)
	fmt.Println()
	fmt.Println("  Retrieves the project data for a project from the worksheets of the Google Docs projects")
	fmt.Println("  spreadsheet and writes it to the console or a file. Columns that cannot be found are")
	fmt.Printf("  reported as '%s'.\n", lookup.NotAvailable)
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    gdocs-projects get-project --config "post_process.yaml" --project "J.Doe_11_01"`)
	fmt.Println(`    gdocs-projects --debug get-project --config "post_process.yaml" \`)
	fmt.Println(`                                       --project "J.Doe_11_01" \`)
	fmt.Println(`                                       --columns "Application, Uppnex ID" \`)
	fmt.Println(`                                       --format yaml \`)
	fmt.Println(`                                       --file "J.Doe_11_01.yaml"`)
	fmt.Println()
}

func (cmd *GetProject) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get-project")

	flagset.StringVar(&cmd.project, "project", cmd.project, "Project name")
	flagset.StringVar(&cmd.columns, "columns", cmd.columns, "Comma separated list of columns to retrieve. Defaults to the standard project data columns")
	flagset.StringVar(&cmd.nameColumn, "name-column", cmd.nameColumn, "Worksheet column holding the project name")
	flagset.StringVar(&cmd.format, "format", cmd.format, "Output format ('tsv' or 'yaml')")
	flagset.StringVar(&cmd.file, "file", cmd.file, "Output file. Defaults to the console")

	return flagset
}

func (cmd *GetProject) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	// ... check parameters
	if strings.TrimSpace(cmd.project) == "" {
		return fmt.Errorf("--project is a required option")
	}

	var render func(io.Writer, []string, map[string]string) error

	switch strings.ToLower(strings.TrimSpace(cmd.format)) {
	case "tsv":
		render = projectToTSV
	case "yaml":
		render = projectToYAML
	default:
		return fmt.Errorf("invalid --format '%v' - expected 'tsv' or 'yaml'", cmd.format)
	}

	cfg, err := cmd.load()
	if err != nil {
		return err
	}

	query := lookup.Query{
		Project:    strings.TrimSpace(cmd.project),
		Columns:    columns(cmd.columns),
		NameColumn: strings.TrimSpace(cmd.nameColumn),
	}

	if query.Columns == nil {
		query.Columns = lookup.DefaultColumns
	}

	if cmd.debug {
		debugf("Project - name:%s  columns:%v  config:%s", query.Project, query.Columns, cmd.config)
	}

	ctx, cancel := cmd.withTimeout()
	defer cancel()

	data := newProjectLookup().Lookup(ctx, query, cfg)

	if cmd.file == "" {
		return render(os.Stdout, query.Columns, data)
	}

	if err := write(cmd.file, func(f *os.File) error { return render(f, query.Columns, data) }); err != nil {
		return fmt.Errorf("error writing project data to %v (%v)", cmd.file, err)
	}

	infof("Retrieved project data for %s to file %s", query.Project, cmd.file)

	return nil
}

// columns splits a comma separated column list, returning nil for an empty list.
func columns(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}

	columns := []string{}
	for _, c := range strings.Split(list, ",") {
		if column := strings.TrimSpace(c); column != "" {
			columns = append(columns, column)
		}
	}

	return columns
}
