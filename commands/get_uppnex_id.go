package commands

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/scilifelab/gdocs-projects/lookup"
)

var GetUppnexIDCmd = GetUppnexID{
	command: command{
		config:  DEFAULT_CONFIG,
		timeout: 60 * time.Second,
		debug:   false,
	},

	project: "",
	strict:  false,
}

type GetUppnexID struct {
	command
	project string
	strict  bool
}

func (cmd *GetUppnexID) Name() string {
	return "get-uppnex-id"
}

func (cmd *GetUppnexID) Description() string {
	return "Retrieves the Uppnex ID for a project from the Google Docs projects spreadsheet"
}

func (cmd *GetUppnexID) Usage() string {
	return "--config <file> --project <name>"
}

func (cmd *GetUppnexID) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get-uppnex-id [options] --project <name>\n", APP)
	fmt.Println()
	fmt.Printf("  Prints the Uppnex ID of the project, or '%s' if it could not be found\n", lookup.NotAvailable)
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    gdocs-projects get-uppnex-id --config "post_process.yaml" --project "J.Doe_11_01"`)
	fmt.Println()
}

func (cmd *GetUppnexID) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get-uppnex-id")

	flagset.StringVar(&cmd.project, "project", cmd.project, "Project name")
	flagset.BoolVar(&cmd.strict, "strict", cmd.strict, fmt.Sprintf("Returns an error if the Uppnex ID is '%s'", lookup.NotAvailable))

	return flagset
}

func (cmd *GetUppnexID) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	if strings.TrimSpace(cmd.project) == "" {
		return fmt.Errorf("--project is a required option")
	}

	cfg, err := cmd.load()
	if err != nil {
		return err
	}

	ctx, cancel := cmd.withTimeout()
	defer cancel()

	project := strings.TrimSpace(cmd.project)
	id := newProjectLookup().LookupUppnexID(ctx, project, cfg)

	if cmd.debug {
		debugf("Project - name:%s  Uppnex ID:%s", project, id)
	}

	fmt.Println(id)

	if cmd.strict && id == lookup.NotAvailable {
		return fmt.Errorf("no Uppnex ID for project %s", project)
	}

	return nil
}
