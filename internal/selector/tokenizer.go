package selector

import (
	"strconv"
	"strings"
)

// Parse tokenizes a cascaded selector into segments. Splitting happens at
// top level only: combinators inside quoted strings, brackets, or
// parentheses belong to the segment body. Engine bodies are statically
// validated here so that every pattern error surfaces at parse time, not
// during resolution.
func Parse(sel string) (*Query, error) {
	raws, err := splitSegments(sel)
	if err != nil {
		return nil, err
	}
	if len(raws) == 0 {
		return nil, parseErr(ErrEmptySegment, 0, strings.TrimSpace(sel), "selector is empty")
	}

	q := &Query{Raw: sel}
	seenCapture := false
	for _, r := range raws {
		seg, err := parseSegment(r.text, r.offset, r.comb)
		if err != nil {
			return nil, err
		}
		if seg.Capture {
			if seenCapture {
				q.ExtraCaptures = append(q.ExtraCaptures, seg.Offset)
			}
			seenCapture = true
		}
		q.Segments = append(q.Segments, seg)
	}
	return q, nil
}

type rawSegment struct {
	text   string
	offset int
	comb   Combinator
}

// splitSegments cuts the selector at top-level combinators. ">>" binds
// tighter than ">", and bare whitespace between compounds is a descendant
// combinator.
func splitSegments(sel string) ([]rawSegment, error) {
	var segs []rawSegment
	pending := CombinatorDescendant
	pendingExplicit := false

	i := 0
	for i < len(sel) {
		c := sel[i]
		if c == ' ' || c == '\t' {
			i++
			continue
		}
		if c == '>' {
			if pendingExplicit || len(segs) == 0 {
				return nil, parseErr(ErrEmptySegment, i, combinatorAt(sel, i), "combinator without a segment before it")
			}
			if i+1 < len(sel) && sel[i+1] == '>' {
				pending = CombinatorDescendant
				i += 2
			} else {
				pending = CombinatorChild
				i++
			}
			pendingExplicit = true
			continue
		}

		start := i
		var quote byte
		depthSq, depthPar := 0, 0
	chunk:
		for i < len(sel) {
			ch := sel[i]
			if quote != 0 {
				if ch == '\\' && i+1 < len(sel) {
					i += 2
					continue
				}
				if ch == quote {
					quote = 0
				}
				i++
				continue
			}
			switch ch {
			case '\'', '"':
				quote = ch
				i++
			case '[':
				depthSq++
				i++
			case ']':
				if depthSq > 0 {
					depthSq--
				}
				i++
			case '(':
				depthPar++
				i++
			case ')':
				if depthPar > 0 {
					depthPar--
				}
				i++
			case ' ', '\t', '>':
				if depthSq == 0 && depthPar == 0 {
					break chunk
				}
				i++
			default:
				i++
			}
		}
		if quote != 0 {
			return nil, parseErr(ErrUnterminatedLiteral, start, sel[start:], "quote is never closed")
		}
		if depthSq > 0 || depthPar > 0 {
			return nil, parseErr(ErrUnterminatedLiteral, start, sel[start:], "bracket is never closed")
		}

		segs = append(segs, rawSegment{text: sel[start:i], offset: start, comb: pending})
		pending = CombinatorDescendant
		pendingExplicit = false
	}

	if pendingExplicit {
		return nil, parseErr(ErrEmptySegment, len(sel), "", "selector ends with a combinator")
	}
	return segs, nil
}

func combinatorAt(sel string, i int) string {
	if i+1 < len(sel) && sel[i+1] == '>' {
		return ">>"
	}
	return string(sel[i])
}

// parseSegment classifies one raw segment and compiles its engine body.
func parseSegment(raw string, offset int, comb Combinator) (Segment, error) {
	seg := Segment{Combinator: comb, Raw: raw, Offset: offset}

	body := raw
	bodyOffset := offset
	// A leading "*" marks the capture segment, unless the segment is the
	// universal css selector itself ("*", "*[...]", "*:...").
	if len(body) > 1 && body[0] == '*' && body[1] != '[' && body[1] != ':' {
		seg.Capture = true
		body = body[1:]
		bodyOffset++
	}

	engine := EngineCSS
	rest := body
	if eq := enginePrefixEnd(body); eq >= 0 {
		word := body[:eq]
		eng, ok := enginePrefixes[word]
		if !ok {
			return seg, parseErr(ErrUnknownEngine, bodyOffset, word,
				"known engines: class, name, text, index, xpath, id")
		}
		engine = eng
		rest = body[eq+1:]
	}
	if engine == EngineCSS && containerKeyword(body) != "" {
		engine = EngineContainer
	}
	seg.Engine = engine
	seg.Body = rest

	var err error
	switch engine {
	case EngineCSS:
		seg.css, err = parseCSSCompound(rest, bodyOffset)
	case EngineClass:
		seg.Body = unquote(rest)
		if seg.Body == "" {
			err = parseErr(ErrBadPattern, bodyOffset, raw, "class engine needs a type name")
		}
	case EngineName:
		seg.Body = unquote(rest)
	case EngineText:
		// A quoted body is literal text: no regex interpretation.
		wasQuoted := len(rest) >= 2 && (rest[0] == '\'' || rest[0] == '"')
		seg.text, err = parseTextPattern(unquote(rest), bodyOffset, !wasQuoted)
	case EngineIndex:
		seg.index, err = parseIndexBody(rest, bodyOffset)
	case EngineXPath:
		seg.xpath, err = parseXPath(rest, bodyOffset)
	case EngineID:
		seg.Body = unquote(rest)
		if seg.Body == "" {
			err = parseErr(ErrBadPattern, bodyOffset, raw, "id engine needs an identifier")
		}
	case EngineContainer:
		seg.container, err = parseContainerExpr(body, bodyOffset)
	}
	if err != nil {
		return seg, err
	}
	return seg, nil
}

// enginePrefixEnd returns the position of the "=" terminating an engine
// prefix, or -1 when the segment has no engine prefix. Only an unbroken run
// of letters directly before the first "=" counts; anything else (brackets,
// quotes, "#", ".", ":") means the segment is a css compound.
func enginePrefixEnd(body string) int {
	for j := 0; j < len(body); j++ {
		ch := body[j]
		if ch == '=' {
			return j
		}
		if !isLetter(ch) {
			return -1
		}
	}
	return -1
}

var containerKeywords = []string{"cell", "row", "column", "node", "tab", "menu"}

// containerKeyword reports the container sub-grammar keyword a segment
// starts with, or "" for a plain css segment. The keyword must be followed
// directly by its argument bracket.
func containerKeyword(body string) string {
	for _, kw := range containerKeywords {
		if strings.HasPrefix(body, kw+"[") {
			return kw
		}
	}
	return ""
}

func parseIndexBody(body string, offset int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(body))
	if err != nil {
		return 0, parseErr(ErrBadPattern, offset, body, "index engine needs an integer")
	}
	return n, nil
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// unquote strips one pair of matching surrounding quotes and resolves
// backslash escapes inside them. Unquoted input passes through unchanged.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	q := s[0]
	if (q != '\'' && q != '"') || s[len(s)-1] != q {
		return s
	}
	inner := s[1 : len(s)-1]
	if !strings.ContainsRune(inner, '\\') {
		return inner
	}
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
		}
		b.WriteByte(inner[i])
	}
	return b.String()
}
