package climate

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/servirtium/demo-go-climate-data-tck/internal/transcript"
)

// player is an http.RoundTripper that satisfies each request from the next
// unconsumed interaction of a previously recorded transcript. It performs no
// network I/O: playback runs work offline and at full speed.
type player struct {
	transcript *transcript.Transcript
	cursor     int
}

func newPlayer(t *transcript.Transcript) *player {
	return &player{transcript: t}
}

func (p *player) RoundTrip(req *http.Request) (*http.Response, error) {
	if p.cursor >= p.transcript.Len() {
		return nil, ErrTranscriptExhausted
	}

	next := p.transcript.Interactions[p.cursor]
	if !next.Matches(req.Method, req.URL.RequestURI()) {
		return nil, &MismatchError{
			Expected: next.Describe(),
			Actual:   req.Method + " " + req.URL.RequestURI(),
		}
	}
	p.cursor++

	header := http.Header{}
	for k, v := range next.ResponseHeaders {
		header.Set(k, v)
	}
	return &http.Response{
		StatusCode:    next.Status,
		Status:        fmt.Sprintf("%d %s", next.Status, http.StatusText(next.Status)),
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(strings.NewReader(next.ResponseBody)),
		ContentLength: int64(len(next.ResponseBody)),
		Request:       req,
	}, nil
}
