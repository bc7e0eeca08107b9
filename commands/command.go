package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/scilifelab/gdocs-projects/config"
	"github.com/scilifelab/gdocs-projects/google"
	"github.com/scilifelab/gdocs-projects/lookup"
)

const APP = "gdocs-projects"

type Options struct {
	Debug bool
}

type command struct {
	config  string
	timeout time.Duration
	debug   bool
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.config, "config", c.config, "Configuration file with the 'gdocs_upload' section")
	flagset.DurationVar(&c.timeout, "timeout", c.timeout, "Maximum time to wait for Google Docs")

	return flagset
}

func (c *command) load() (*config.Config, error) {
	if strings.TrimSpace(c.config) == "" {
		return nil, fmt.Errorf("--config is a required option")
	}

	cfg, err := config.Load(c.config)
	if err != nil {
		return nil, fmt.Errorf("could not load configuration (%v)", err)
	}

	return cfg, nil
}

// withTimeout returns a context bounded by --timeout, if set.
func (c *command) withTimeout() (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(context.Background(), c.timeout)
	}

	return context.WithCancel(context.Background())
}

func newProjectLookup() *lookup.ProjectLookup {
	credentials := google.CredentialsFile{
		Env: google.CredentialsEnv,
	}

	return lookup.NewProjectLookup(credentials, google.NewClient(), log.StandardLogger())
}

// write stores the output to a temporary file which is then renamed to the destination file.
func write(file string, f func(*os.File) error) error {
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(file)+"-*")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := f(tmp); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), file)
}

func helpOptions(flagset *flag.FlagSet) {
	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	fmt.Println()
	fmt.Println("  Options:")
	fmt.Println()
	fmt.Println("    --debug   Displays vaguely useful internal information")
}

func debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

func infof(format string, args ...any) {
	log.Infof(format, args...)
}

func warnf(format string, args ...any) {
	log.Warnf(format, args...)
}
