package climate

import (
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is the World Bank Climate Data API.
const DefaultBaseURL = "http://climatedataapi.worldbank.org"

// DefaultFixtureDir is where recorded fixtures are kept, relative to the
// working directory of the test run.
const DefaultFixtureDir = "playback_data"

// Options configure a climate Client.
type Options struct {
	// BaseURL is the climate data service to call in Direct and Record
	// modes. (defaults to the CLIMATE_API_BASE_URL environment variable,
	// or the World Bank API if not set)
	BaseURL string

	// Mode selects Direct, Record or Playback behaviour for the lifetime
	// of the client. (defaults to the CLIMATE_API_MODE environment
	// variable, or Direct if not set)
	Mode Mode

	// Fixture is the test-case identity: the name of the transcript a
	// Record run writes and the matching Playback run reads. Required in
	// Record and Playback modes. The same name pairs a Record run with
	// its later Playback runs; concurrently running tests must use
	// distinct names.
	Fixture string

	// FixtureDir is the directory transcripts are stored in.
	// (defaults to the CLIMATE_API_FIXTURE_DIR environment variable,
	// or "playback_data" if not set)
	FixtureDir string

	// DropResponseHeaders lists response headers omitted from recordings,
	// keeping fixtures stable across runs.
	// (defaults to Set-Cookie and Date)
	DropResponseHeaders []string

	// HTTPClient is used for live calls in Direct and Record modes.
	// (defaults to http.DefaultClient)
	HTTPClient *http.Client
}

func (o *Options) parse() (*Options, error) {
	if o == nil {
		o = &Options{}
	} else {
		copy := *o
		o = &copy
	}

	godotenv.Load()

	if o.BaseURL == "" {
		o.BaseURL = os.Getenv("CLIMATE_API_BASE_URL")
	}
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if u, err := url.Parse(o.BaseURL); err != nil || (u.Scheme != "https" && u.Scheme != "http") {
		return nil, fmt.Errorf("climate: invalid BaseURL %q", o.BaseURL)
	}

	if v := os.Getenv("CLIMATE_API_MODE"); v != "" && o.Mode == Direct {
		mode, err := ParseMode(v)
		if err != nil {
			return nil, err
		}
		o.Mode = mode
	}

	if o.FixtureDir == "" {
		o.FixtureDir = os.Getenv("CLIMATE_API_FIXTURE_DIR")
	}
	if o.FixtureDir == "" {
		o.FixtureDir = DefaultFixtureDir
	}

	if o.Fixture == "" && o.Mode != Direct {
		return nil, fmt.Errorf("climate: %s mode requires a Fixture name", o.Mode)
	}

	if o.DropResponseHeaders == nil {
		o.DropResponseHeaders = []string{"Set-Cookie", "Date"}
	}

	if o.HTTPClient == nil {
		o.HTTPClient = http.DefaultClient
	}

	return o, nil
}
