package google

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/scilifelab/gdocs-projects/config"
	"github.com/scilifelab/gdocs-projects/lookup"
)

const CredentialsEnv = "GDOCS_CREDENTIALS"

// CredentialsFile resolves the Google credentials from the file named by 'gdocs_credentials' in
// the 'gdocs_upload' configuration section, falling back to the file named by the Env environment
// variable.
type CredentialsFile struct {
	Env string
}

func (c CredentialsFile) Resolve(cfg *config.Config) (*lookup.Credentials, bool) {
	file := ""
	tokens := ""

	if cfg != nil {
		file = strings.TrimSpace(cfg.GDocsUpload.Credentials)
		tokens = strings.TrimSpace(cfg.GDocsUpload.Tokens)
	}

	if file == "" && c.Env != "" {
		file = strings.TrimSpace(os.Getenv(c.Env))
	}

	if file == "" {
		return nil, false
	}

	if err := unix.Access(file, unix.R_OK); err != nil {
		log.Debugf("credentials file %v is not readable (%v)", file, err)
		return nil, false
	}

	b, err := os.ReadFile(file)
	if err != nil || len(strings.TrimSpace(string(b))) == 0 {
		log.Debugf("unable to read credentials file %v (%v)", file, err)
		return nil, false
	}

	return &lookup.Credentials{
		Source: file,
		JSON:   b,
		Tokens: tokens,
	}, true
}
