// Package climate is a client for the World Bank climate data web service
// with built-in record/playback support for deterministic tests.
//
// A Client runs in one of three modes, fixed at construction: [Direct] talks
// to the live service, [Record] talks to the live service and captures every
// successful exchange into a markdown fixture, and [Playback] replays a
// previously recorded fixture without any network access. The call contract
// is identical in all three modes, so the same test body can be pointed at
// three sources of truth.
package climate

import (
	"fmt"
	"io"
	"net/http"

	"github.com/servirtium/demo-go-climate-data-tck/internal/transcript"
)

// Client fetches average annual rainfall figures. Use New to construct one;
// the zero value is not usable.
//
// A Client is synchronous: calls do not overlap and there are no background
// tasks. In Record mode the fixture is held in memory until Close persists
// it, so Close must be called at the end of a recording run.
type Client struct {
	options *Options
	http    *http.Client
	store   *transcript.Store
	rec     *recorder
	closed  bool
}

// New creates a Client in the mode set by the options.
// In Playback mode the fixture is loaded here, in full, before any call;
// a missing fixture surfaces as transcript.ErrNotFound.
func New(o *Options) (*Client, error) {
	o, err := o.parse()
	if err != nil {
		return nil, err
	}

	c := &Client{options: o}
	switch o.Mode {
	case Direct:
		// Live calls only. Direct mode never reads or writes fixtures,
		// even when one exists for the same name.
		c.http = o.HTTPClient
	case Record:
		c.store = transcript.NewStore(o.FixtureDir)
		c.rec = newRecorder(o.HTTPClient.Transport, o.Fixture, o.DropResponseHeaders)
		c.http = wrap(o.HTTPClient, c.rec)
	case Playback:
		c.store = transcript.NewStore(o.FixtureDir)
		t, err := c.store.Load(o.Fixture)
		if err != nil {
			return nil, err
		}
		c.http = wrap(o.HTTPClient, newPlayer(t))
	default:
		return nil, fmt.Errorf("climate: unsupported mode %v", o.Mode)
	}
	return c, nil
}

// wrap returns a copy of client that routes requests through rt.
func wrap(client *http.Client, rt http.RoundTripper) *http.Client {
	return &http.Client{
		Transport:     rt,
		CheckRedirect: client.CheckRedirect,
		Jar:           client.Jar,
		Timeout:       client.Timeout,
	}
}

// FetchAverageRainfall returns the average annual rainfall (mm) for the
// given ISO3 country code, keyed by year, averaged across the Global
// Circulation Models the service reports. The behaviour is identical in all
// three modes; only the source of the response bytes differs.
func (c *Client) FetchAverageRainfall(fromYear, toYear int, countryISO string) (map[int]float64, error) {
	datums, err := c.fetch(fromYear, toYear, countryISO)
	if err != nil {
		return nil, err
	}
	return rainfallByYear(datums), nil
}

// AverageAnnualRainfall returns the mean of the annual averages reported by
// every Global Circulation Model for the range.
func (c *Client) AverageAnnualRainfall(fromYear, toYear int, countryISO string) (float64, error) {
	datums, err := c.fetch(fromYear, toYear, countryISO)
	if err != nil {
		return 0, err
	}
	return averageRainfall(datums), nil
}

// AverageAnnualRainfallForTwo fetches the mean annual rainfall for two
// countries over the same range, in order.
func (c *Client) AverageAnnualRainfallForTwo(fromYear, toYear int, firstISO, secondISO string) (float64, float64, error) {
	first, err := c.AverageAnnualRainfall(fromYear, toYear, firstISO)
	if err != nil {
		return 0, 0, err
	}
	second, err := c.AverageAnnualRainfall(fromYear, toYear, secondISO)
	if err != nil {
		return 0, 0, err
	}
	return first, second, nil
}

func (c *Client) fetch(fromYear, toYear int, countryISO string) ([]annualGcmDatum, error) {
	if c.closed {
		return nil, ErrClosed
	}

	url := fmt.Sprintf("%s/climateweb/rest/v1/country/annualavg/pr/%d/%d/%s.xml",
		c.options.BaseURL, fromYear, toYear, countryISO)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	datums, err := parseAnnualGcmData(string(body))
	if err != nil {
		return nil, err
	}
	if len(datums) == 0 {
		return nil, &DateRangeError{FromYear: fromYear, ToYear: toYear}
	}
	return datums, nil
}

// Close ends the run. In Record mode it persists the transcript, replacing
// any previous recording under the same fixture name. A run that captured
// nothing saves nothing, so a fully failed re-record cannot clobber a good
// fixture. No calls are valid after Close.
func (c *Client) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	if c.rec != nil && c.rec.transcript.Len() > 0 {
		return c.store.Save(c.rec.transcript)
	}
	return nil
}
