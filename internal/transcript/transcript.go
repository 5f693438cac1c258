// Package transcript stores recorded HTTP exchanges as servirtium-style
// markdown files, one file per test case, so fixtures can be reviewed and
// checked into source control.
package transcript

import "fmt"

// Interaction is one captured request/response exchange.
// It is immutable once appended to a Transcript.
type Interaction struct {
	Method          string
	Path            string // includes the query string, if any
	RequestHeaders  map[string]string
	RequestBody     string
	Status          int
	ResponseHeaders map[string]string
	ResponseBody    string
}

// Describe renders the request descriptor used for playback matching
// and for mismatch error messages.
func (i Interaction) Describe() string {
	return fmt.Sprintf("%s %s", i.Method, i.Path)
}

// Matches reports whether the stored descriptor matches the given one.
func (i Interaction) Matches(method, path string) bool {
	return i.Method == method && i.Path == path
}

// Transcript is the ordered list of Interactions for one test case.
// It is append-only while recording and read-only while replaying;
// ordering is significant for playback.
type Transcript struct {
	Name         string
	Interactions []Interaction
}

// New returns an empty transcript for the named test case.
func New(name string) *Transcript {
	return &Transcript{Name: name}
}

// Append adds an interaction to the end of the transcript.
func (t *Transcript) Append(i Interaction) {
	t.Interactions = append(t.Interactions, i)
}

// Len returns the number of recorded interactions.
func (t *Transcript) Len() int {
	return len(t.Interactions)
}
