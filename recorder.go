package climate

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/servirtium/demo-go-climate-data-tck/internal/transcript"
)

// recorder is an http.RoundTripper that performs the live call through next
// and, as a side effect, appends each successful exchange to its transcript.
// Transport errors and non-2xx responses pass through unrecorded so the
// transcript only ever holds replayable exchanges.
type recorder struct {
	next        http.RoundTripper
	transcript  *transcript.Transcript
	dropHeaders []string
}

func newRecorder(next http.RoundTripper, name string, dropHeaders []string) *recorder {
	if next == nil {
		next = http.DefaultTransport
	}
	return &recorder{
		next:        next,
		transcript:  transcript.New(name),
		dropHeaders: dropHeaders,
	}
}

func (r *recorder) RoundTrip(req *http.Request) (*http.Response, error) {
	reqBody, rc, err := duplicateBody(req.Body)
	if err != nil {
		return nil, err
	}
	req.Body = rc

	resp, err := r.next.RoundTrip(req)
	if err != nil {
		return resp, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, nil
	}

	respBody, rc, err := duplicateBody(resp.Body)
	resp.Body = rc
	if err != nil {
		// body truncated mid-transfer: the caller sees the read error,
		// the transcript must not capture the partial exchange
		return resp, nil
	}

	r.transcript.Append(transcript.Interaction{
		Method:          req.Method,
		Path:            req.URL.RequestURI(),
		RequestHeaders:  headersToMap(req.Header, nil),
		RequestBody:     reqBody,
		Status:          resp.StatusCode,
		ResponseHeaders: headersToMap(resp.Header, r.dropHeaders),
		ResponseBody:    respBody,
	})
	return resp, nil
}

// duplicateBody drains a body and hands back its contents along with a
// replacement reader, so recording a response leaves it readable by the
// caller. A failed read is reported to the caller through both the error
// and the replacement reader.
func duplicateBody(rc io.ReadCloser) (string, io.ReadCloser, error) {
	if rc == nil {
		return "", nil, nil
	}
	b, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return "", &errReader{err: err}, err
	}
	return string(b), io.NopCloser(bytes.NewReader(b)), nil
}

type errReader struct{ err error }

func (r *errReader) Read([]byte) (int, error) { return 0, r.err }
func (r *errReader) Close() error             { return nil }

func headersToMap(h http.Header, drop []string) map[string]string {
	if len(h) == 0 {
		return nil
	}
	dropped := map[string]bool{}
	for _, k := range drop {
		dropped[http.CanonicalHeaderKey(k)] = true
	}

	m := map[string]string{}
	for k, vs := range h {
		if dropped[http.CanonicalHeaderKey(k)] || len(vs) == 0 {
			continue
		}
		m[k] = strings.Join(vs, ", ")
	}
	if len(m) == 0 {
		return nil
	}
	return m
}
