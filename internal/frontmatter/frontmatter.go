// Package frontmatter extracts the YAML metadata block from the head of a
// markdown document. Parsing is tolerant: unknown keys pass through, and a
// malformed block degrades to line-wise parsing that skips bad lines instead
// of erroring.
package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Document is the result of splitting a markdown file into frontmatter and body.
type Document struct {
	Frontmatter map[string]string
	Body        string
}

// Name returns the conventional "name" key, or empty when absent.
func (d Document) Name() string {
	return d.Frontmatter["name"]
}

// Description returns the conventional "description" key, or empty when absent.
func (d Document) Description() string {
	return d.Frontmatter["description"]
}

// Parse splits content into a frontmatter map and the remaining body. A
// document without a leading delimiter yields an empty map and the full
// original text as body.
func Parse(content string) Document {
	doc := Document{
		Frontmatter: map[string]string{},
		Body:        content,
	}

	rest, ok := strings.CutPrefix(content, delimiter+"\n")
	if !ok {
		// Allow CRLF after the opening delimiter.
		rest, ok = strings.CutPrefix(content, delimiter+"\r\n")
		if !ok {
			return doc
		}
	}

	block, body, ok := cutClosingDelimiter(rest)
	if !ok {
		return doc
	}

	doc.Frontmatter = parseBlock(block)
	doc.Body = body
	return doc
}

// cutClosingDelimiter finds the first line consisting of the delimiter and
// splits rest around it.
func cutClosingDelimiter(rest string) (block, body string, ok bool) {
	lines := strings.SplitAfter(rest, "\n")
	offset := 0
	for _, line := range lines {
		if strings.TrimRight(line, "\r\n") == delimiter {
			return rest[:offset], rest[offset+len(line):], true
		}
		offset += len(line)
	}
	return "", "", false
}

// parseBlock decodes the delimited region. Well-formed YAML wins; anything
// else falls back to per-line "key: value" extraction so one bad line never
// discards the rest.
func parseBlock(block string) map[string]string {
	out := map[string]string{}

	var raw map[string]interface{}
	if err := yaml.Unmarshal([]byte(block), &raw); err == nil {
		for key, value := range raw {
			switch v := value.(type) {
			case nil:
				out[key] = ""
			case string:
				out[key] = v
			case bool, int, int64, float64:
				out[key] = fmt.Sprintf("%v", v)
			default:
				// Nested structures are not scalar metadata; skip them.
			}
		}
		return out
	}

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = strings.Trim(strings.TrimSpace(value), `"'`)
	}
	return out
}
