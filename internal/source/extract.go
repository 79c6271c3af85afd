package source

import (
	"bytes"
	"encoding/json"
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/dosanma1/vncard-cli/internal/names"
)

// Keys tried, in order, when a JSON object wraps the list of names.
var containerKeys = []string{"data", "results", "items", "names"}

// Keys tried, in order, inside a JSON object describing one person.
var nameKeys = []string{"full_name", "name", "fullname"}

var (
	// Tags that end a block of text. Any other tag is inline and only
	// separates words.
	blockTagPattern = regexp.MustCompile(`(?i)</?(?:address|article|aside|blockquote|body|br|dd|div|dl|dt|footer|form|h[1-6]|head|header|hr|html|li|main|nav|ol|option|p|pre|section|table|tbody|td|tfoot|th|thead|title|tr|ul)\b[^>]*>`)
	tagPattern      = regexp.MustCompile(`<[^>]+>`)

	// A capitalized Vietnamese word: one upper-case letter followed by one or
	// more lower-case letters of the Vietnamese alphabet.
	vnWord = regexp.MustCompile(`^[A-ZÀÁÂÃÄÅĂẠẢẤẦẨẪẬẮẰẲẴẶÈÉÊËẸẺẼẾỀỂỄỆÌÍÎÏỊỈĨÒÓÔÕÖƠỌỎỐỒỔỖỘỚỜỞỠỢÙÚÛÜƯỤỦỨỪỬỮỰỲÝỶỸỴĐ]` +
		`[a-zàáâãäåăạảấầẩẫậắằẳẵặèéêëẹẻẽếềểễệìíîïịỉĩòóôõöơọỏốồổỗộớờởỡợùúûüưụủứừửữựỳýỷỹỵđ]+$`)
)

// Extract pulls candidate names out of an HTTP response body. Structured JSON
// is tried first. A JSON body without name fields is only scanned for
// capitalized runs; anything else is treated as HTML or plain text. The text
// heuristic is best-effort by nature: it depends on formatting choices of
// third-party pages and is not meant to be exhaustive.
func Extract(body []byte) []string {
	payload, ok := decodeJSON(body)
	if !ok {
		return ExtractText(string(body))
	}
	if found := namesFromJSON(payload); len(found) > 0 {
		return found
	}
	return scanRuns(stripTags(string(body)))
}

// ExtractJSON accepts an array of strings, an array of objects with a
// name-like field, a single such object, or an object wrapping either under
// one of the known container keys.
func ExtractJSON(body []byte) []string {
	payload, ok := decodeJSON(body)
	if !ok {
		return nil
	}
	return namesFromJSON(payload)
}

func decodeJSON(body []byte) (any, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return nil, false
	}
	var payload any
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, false
	}
	return payload, true
}

func namesFromJSON(payload any) []string {
	data := payload
	if obj, ok := payload.(map[string]any); ok {
		for _, key := range containerKeys {
			if v, found := obj[key]; found {
				data = v
				break
			}
		}
	}

	var out []string
	switch v := data.(type) {
	case []any:
		for _, item := range v {
			switch it := item.(type) {
			case string:
				out = append(out, it)
			case map[string]any:
				if s, ok := nameField(it); ok {
					out = append(out, s)
				}
			}
		}
	case map[string]any:
		if s, ok := nameField(v); ok {
			out = append(out, s)
		}
	}
	return out
}

func nameField(obj map[string]any) (string, bool) {
	for _, key := range nameKeys {
		if s, ok := obj[key].(string); ok {
			return s, true
		}
	}
	return "", false
}

// ExtractText strips markup and collects runs of 2 to 4 capitalized
// Vietnamese words. If no run is found every non-empty line is returned.
func ExtractText(text string) []string {
	plain := stripTags(text)
	if found := scanRuns(plain); len(found) > 0 {
		return found
	}

	var lines []string
	for _, line := range strings.Split(plain, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// stripTags turns block-level tags into line breaks and inline tags into
// spaces, then unescapes entities.
func stripTags(text string) string {
	text = blockTagPattern.ReplaceAllString(text, "\n")
	text = tagPattern.ReplaceAllString(text, " ")
	return html.UnescapeString(text)
}

func scanRuns(plain string) []string {
	var found []string
	for _, line := range strings.Split(plain, "\n") {
		found = append(found, capitalizedRuns(names.Normalize(line))...)
	}
	return found
}

// capitalizedRuns splits one line into groups of consecutive capitalized
// words. A token that carries punctuation ends the group it belongs to. Groups
// longer than MaxExternalWords are cut into chunks; trailing chunks shorter
// than MinExternalWords are dropped.
func capitalizedRuns(line string) []string {
	var (
		out []string
		run []string
	)
	flush := func() {
		for len(run) >= names.MinExternalWords {
			n := min(len(run), names.MaxExternalWords)
			out = append(out, strings.Join(run[:n], " "))
			run = run[n:]
		}
		run = run[:0]
	}

	for _, tok := range strings.Fields(line) {
		core := strings.TrimLeftFunc(tok, isPunct)
		leading := len(core) != len(tok)
		trimmed := strings.TrimRightFunc(core, isPunct)
		trailing := len(trimmed) != len(core)

		if !vnWord.MatchString(trimmed) {
			flush()
			continue
		}
		if leading {
			flush()
		}
		run = append(run, trimmed)
		if trailing {
			flush()
		}
	}
	flush()
	return out
}

func isPunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
