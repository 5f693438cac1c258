package transcript

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// The on-disk format is servirtium markdown: one "## Interaction N" heading
// per exchange, each followed by four fenced sections (request headers,
// request body, response headers, response body). The response body heading
// carries the recorded status and content type.

var (
	interactionRe = regexp.MustCompile(`^## Interaction (\d+): ([A-Z]+) (.+)$`)
	sectionRe     = regexp.MustCompile(`^### (Request|Response) (headers|body) recorded for playback(?: \((.*)\))?:$`)
	headerLineRe  = regexp.MustCompile(`^([A-Za-z0-9!#$%&'*+.^_` + "`" + `|~-]+): (.*)$`)
)

const fence = "```"

// Marshal encodes a transcript in servirtium markdown. Bodies are framed by
// markdown fences, so a body containing a bare fence line cannot be encoded
// without corrupting the decode and is rejected.
func Marshal(t *Transcript) ([]byte, error) {
	var buf bytes.Buffer
	for n, i := range t.Interactions {
		if hasFenceLine(i.RequestBody) || hasFenceLine(i.ResponseBody) {
			return nil, fmt.Errorf("transcript: interaction %d (%s) body contains a %s line and cannot be stored as markdown", n, i.Describe(), fence)
		}
		fmt.Fprintf(&buf, "## Interaction %d: %s %s\n\n", n, i.Method, i.Path)

		fmt.Fprintf(&buf, "### Request headers recorded for playback:\n\n")
		writeFenced(&buf, formatHeaders(i.RequestHeaders))

		fmt.Fprintf(&buf, "### Request body recorded for playback (%s):\n\n", i.RequestHeaders["Content-Type"])
		writeFenced(&buf, i.RequestBody)

		fmt.Fprintf(&buf, "### Response headers recorded for playback:\n\n")
		writeFenced(&buf, formatHeaders(i.ResponseHeaders))

		fmt.Fprintf(&buf, "### Response body recorded for playback (%d: %s):\n\n", i.Status, i.ResponseHeaders["Content-Type"])
		writeFenced(&buf, i.ResponseBody)
	}
	return buf.Bytes(), nil
}

// hasFenceLine reports whether any line of body is exactly a fence,
// which Unmarshal would take for the end of the block.
func hasFenceLine(body string) bool {
	for _, line := range strings.Split(body, "\n") {
		if line == fence {
			return true
		}
	}
	return false
}

// Unmarshal decodes servirtium markdown into a transcript.
// Surrounding whitespace in fenced bodies is not significant.
func Unmarshal(data []byte) (*Transcript, error) {
	t := &Transcript{}
	lines := strings.Split(string(data), "\n")

	var cur *Interaction
	flush := func() {
		if cur != nil {
			t.Interactions = append(t.Interactions, *cur)
		}
	}

	for ln := 0; ln < len(lines); ln++ {
		line := lines[ln]
		if m := interactionRe.FindStringSubmatch(line); m != nil {
			flush()
			if want := strconv.Itoa(t.Len()); m[1] != want {
				return nil, fmt.Errorf("transcript: interaction %s out of order at line %d (expected %s)", m[1], ln+1, want)
			}
			cur = &Interaction{Method: m[2], Path: m[3]}
			continue
		}
		m := sectionRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if cur == nil {
			return nil, fmt.Errorf("transcript: section %q before any interaction heading at line %d", line, ln+1)
		}
		body, next, err := readFenced(lines, ln+1)
		if err != nil {
			return nil, err
		}
		ln = next

		switch m[1] + " " + m[2] {
		case "Request headers":
			cur.RequestHeaders = parseHeaders(body)
		case "Request body":
			cur.RequestBody = body
		case "Response headers":
			cur.ResponseHeaders = parseHeaders(body)
		case "Response body":
			status, _, _ := strings.Cut(m[3], ":")
			code, err := strconv.Atoi(strings.TrimSpace(status))
			if err != nil {
				return nil, fmt.Errorf("transcript: invalid status %q at line %d", status, ln+1)
			}
			cur.Status = code
			cur.ResponseBody = body
		}
	}
	flush()

	if t.Len() == 0 {
		return nil, fmt.Errorf("transcript: no interactions found")
	}
	return t, nil
}

func writeFenced(buf *bytes.Buffer, body string) {
	buf.WriteString(fence)
	buf.WriteByte('\n')
	if body != "" {
		buf.WriteString(strings.TrimRight(body, "\n"))
		buf.WriteByte('\n')
	}
	buf.WriteString(fence)
	buf.WriteString("\n\n")
}

// readFenced scans forward from lines[from] for a fenced block and returns
// its trimmed contents plus the index of the closing fence.
func readFenced(lines []string, from int) (string, int, error) {
	start := -1
	for i := from; i < len(lines); i++ {
		switch {
		case lines[i] == fence:
			start = i + 1
		case strings.TrimSpace(lines[i]) == "":
			continue
		}
		if start >= 0 {
			break
		}
		return "", 0, fmt.Errorf("transcript: expected fenced block near line %d, got %q", i+1, lines[i])
	}
	if start < 0 {
		return "", 0, fmt.Errorf("transcript: unterminated section near line %d", from+1)
	}
	for i := start; i < len(lines); i++ {
		if lines[i] == fence {
			return strings.TrimSpace(strings.Join(lines[start:i], "\n")), i, nil
		}
	}
	return "", 0, fmt.Errorf("transcript: missing closing fence after line %d", start)
}

func formatHeaders(h map[string]string) string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s: %s\n", k, h[k])
	}
	return sb.String()
}

func parseHeaders(body string) map[string]string {
	if body == "" {
		return nil
	}
	h := map[string]string{}
	for _, line := range strings.Split(body, "\n") {
		if m := headerLineRe.FindStringSubmatch(line); m != nil {
			h[m[1]] = strings.TrimSpace(m[2])
		}
	}
	if len(h) == 0 {
		return nil
	}
	return h
}
