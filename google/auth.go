package google

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"

	"github.com/scilifelab/gdocs-projects/lookup"
)

var scopes = []string{
	drive.DriveMetadataReadonlyScope,
	sheets.SpreadsheetsReadonlyScope,
}

type credentialsType struct {
	Type      string          `json:"type"`
	Installed json.RawMessage `json:"installed"`
	Web       json.RawMessage `json:"web"`
}

// authorize returns an HTTP client authorised with either a service account key or an OAuth2
// client secret and the token cached by 'authorise'.
func authorize(ctx context.Context, credentials *lookup.Credentials) (*http.Client, error) {
	if credentials == nil || len(credentials.JSON) == 0 {
		return nil, fmt.Errorf("missing Google credentials")
	}

	var kind credentialsType
	if err := json.Unmarshal(credentials.JSON, &kind); err != nil {
		return nil, fmt.Errorf("invalid Google credentials %v (%w)", credentials.Source, err)
	}

	switch {
	case kind.Type == "service_account":
		creds, err := google.CredentialsFromJSON(ctx, credentials.JSON, scopes...)
		if err != nil {
			return nil, err
		}

		return oauth2.NewClient(ctx, creds.TokenSource), nil

	case len(kind.Installed) > 0 || len(kind.Web) > 0:
		config, err := google.ConfigFromJSON(credentials.JSON, scopes...)
		if err != nil {
			return nil, err
		}

		tokens := tokensFile(credentials)
		token, err := tokenFromFile(tokens)
		if err != nil {
			return nil, fmt.Errorf("no OAuth2 token in %v - run 'authorise' first (%w)", tokens, err)
		}

		return config.Client(ctx, token), nil

	default:
		return nil, fmt.Errorf("unsupported Google credentials %v - expected a service account key or OAuth2 client secret", credentials.Source)
	}
}

// Authorise runs the OAuth2 consent flow on the console for an 'installed application' client
// secret and saves the resulting token alongside the credentials.
func Authorise(ctx context.Context, credentials *lookup.Credentials, in io.Reader, out io.Writer) (string, error) {
	if credentials == nil || len(credentials.JSON) == 0 {
		return "", fmt.Errorf("missing Google credentials")
	}

	config, err := google.ConfigFromJSON(credentials.JSON, scopes...)
	if err != nil {
		return "", fmt.Errorf("invalid OAuth2 client secret %v (%w)", credentials.Source, err)
	}

	url := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)

	fmt.Fprintf(out, "Go to the following link in your browser then type the authorization code: \n%v\n", url)

	var code string
	if _, err := fmt.Fscan(in, &code); err != nil {
		return "", fmt.Errorf("unable to read authorization code (%w)", err)
	}

	token, err := config.Exchange(ctx, strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("unable to retrieve token from web (%w)", err)
	}

	tokens := tokensFile(credentials)
	if err := saveToken(tokens, token); err != nil {
		return "", err
	}

	return tokens, nil
}

// tokensFile defaults to <credentials>.tokens in the credentials directory.
func tokensFile(credentials *lookup.Credentials) string {
	if credentials.Tokens != "" {
		return credentials.Tokens
	}

	dir, file := filepath.Split(credentials.Source)
	name := strings.TrimSuffix(file, filepath.Ext(file))

	return filepath.Join(dir, fmt.Sprintf("%s.tokens", name))
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(token)

	return token, err
}

func saveToken(path string, token *oauth2.Token) error {
	log.Debugf("saving OAuth2 token to %s", path)

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth2 token (%w)", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
