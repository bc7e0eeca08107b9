package commands

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/scilifelab/gdocs-projects/google"
)

var AuthoriseCmd = Authorise{
	command: command{
		config:  DEFAULT_CONFIG,
		timeout: 5 * time.Minute,
		debug:   false,
	},
}

type Authorise struct {
	command
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises gdocs-projects to read the Google Docs projects spreadsheet"
}

func (cmd *Authorise) Usage() string {
	return "--config <file> [--timeout <duration>]"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] authorise [options]\n", APP)
	fmt.Println()
	fmt.Println("  Authorises gdocs-projects to read the Google Docs projects spreadsheet with the OAuth2 client")
	fmt.Println("  credentials in 'gdocs_upload.gdocs_credentials' and saves the access token to 'gdocs_upload.gdocs_tokens'")
	fmt.Println("  (or <credentials>.tokens). Not required for service account credentials.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    gdocs-projects authorise --config "post_process.yaml"`)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	return cmd.flagset("authorise")
}

func (cmd *Authorise) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	cfg, err := cmd.load()
	if err != nil {
		return err
	}

	credentials, ok := google.CredentialsFile{Env: google.CredentialsEnv}.Resolve(cfg)
	if !ok {
		return fmt.Errorf("the Google Docs credentials could not be found")
	}

	if cmd.debug {
		debugf("Authorising with credentials %s", credentials.Source)
	}

	ctx, cancel := cmd.withTimeout()
	defer cancel()

	tokens, err := google.Authorise(ctx, credentials, os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("authorisation error (%v)", err)
	}

	infof("Saved OAuth2 token to %s", tokens)

	if cfg.GDocsUpload.Tokens == "" {
		warnf("'gdocs_upload.gdocs_tokens' is not set - using the default tokens file %s", tokens)
	}

	return nil
}
