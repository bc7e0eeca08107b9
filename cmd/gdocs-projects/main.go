package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	uhppoted "github.com/uhppoted/uhppoted-lib/command"

	"github.com/scilifelab/gdocs-projects/commands"
)

var cli = []uhppoted.Command{
	&commands.VersionCmd,
	&commands.GetProjectCmd,
	&commands.GetUppnexIDCmd,
	&commands.AuthoriseCmd,
}

var options = commands.Options{
	Debug: false,
}

var help = uhppoted.NewHelp(commands.APP, cli, nil)

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	if options.Debug {
		log.SetLevel(log.DebugLevel)
	}

	cmd, err := uhppoted.Parse(cli, nil, help)
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	if cmd == nil {
		help.Execute()
		os.Exit(1)
	}

	if err = cmd.Execute(&options); err != nil {
		log.Fatalf("%v", err)
	}
}
