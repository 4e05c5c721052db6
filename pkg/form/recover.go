package form

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Recover extracts one JSON object from a model reply that may carry fences,
// commentary or trailing commas. It fails with ErrExtraction.
func Recover(reply string) (map[string]any, error) {
	if obj, err := decodeObject(reply); err == nil {
		return obj, nil
	}

	err := errors.New("no JSON object found")

	fenced, stripped := stripFences(reply)

	for _, s := range []string{fenced, stripped} {
		candidate, ok := firstObject(s)

		if !ok {
			continue
		}

		obj, parseErr := decodeObject(candidate)

		if parseErr == nil {
			return obj, nil
		}

		if obj, err := decodeObject(dropTrailingCommas(candidate)); err == nil {
			return obj, nil
		}

		err = parseErr
	}

	return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
}

func decodeObject(s string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any

	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}

	obj, ok := v.(map[string]any)

	if !ok {
		return nil, errors.New("JSON value is not an object")
	}

	return obj, nil
}

// stripFences returns the bodies of fenced code blocks holding an object,
// and the whole reply with its fence markers removed.
func stripFences(s string) (string, string) {
	source := []byte(s)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var blocks []string

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		block, ok := n.(*ast.FencedCodeBlock)

		if !ok {
			return ast.WalkContinue, nil
		}

		var buf bytes.Buffer
		lines := block.Lines()

		for i := 0; i < lines.Len(); i++ {
			segment := lines.At(i)
			buf.Write(segment.Value(source))
		}

		if strings.Contains(buf.String(), "{") {
			blocks = append(blocks, buf.String())
		}

		return ast.WalkSkipChildren, nil
	})

	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```JSON", "")
	s = strings.ReplaceAll(s, "```", "")

	return strings.Join(blocks, "\n"), s
}

// firstObject returns the balanced {...} span with the earliest opening
// brace in a single pass. Braces inside JSON strings are ignored, and an
// opening brace that never closes is skipped in favour of the next one.
func firstObject(s string) (string, bool) {
	var open []int

	start, end := -1, -1

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}

			continue
		}

		switch c {
		case '"':
			// quotes only count once an object has been opened
			inString = len(open) > 0

		case '{':
			open = append(open, i)

		case '}':
			if len(open) == 0 {
				continue
			}

			p := open[len(open)-1]
			open = open[:len(open)-1]

			if start < 0 || p < start {
				start, end = p, i
			}

			// every earlier brace is closed, nothing later can start sooner
			if len(open) == 0 {
				return s[start : end+1], true
			}
		}
	}

	if start < 0 {
		return "", false
	}

	return s[start : end+1], true
}

// dropTrailingCommas removes commas directly followed (after whitespace) by a
// closing brace or bracket. String contents are left untouched.
func dropTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}

			b.WriteByte(c)
			continue
		}

		if c == '"' {
			inString = true
		}

		if c == ',' {
			j := i + 1

			for j < len(s) && isSpace(s[j]) {
				j++
			}

			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
		}

		b.WriteByte(c)
	}

	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
