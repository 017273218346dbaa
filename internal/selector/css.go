package selector

import (
	"strconv"
	"strings"

	"github.com/widgetlab/widget-cli/internal/model"
)

// cssCompound is one compiled css segment: an optional type test plus any
// number of id, category, attribute, and pseudo-class tests.
type cssCompound struct {
	typeName   string // "" none, "*" universal
	uid        string
	cats       []string
	attrs      []attrTest
	states     []string // "enabled", "visible"
	positional []positionalTest
}

type attrTest struct {
	key   string
	op    string // "=", "*=", "^=", "$="
	value string
}

type positionalTest struct {
	kind string // "first", "last", "nth"
	n    int    // 1-indexed, nth only
}

// queryableAttrs is the closed set of attribute keys usable in [attr op v]
// tests and xpath predicates. Unknown keys are rejected at parse time.
var queryableAttrs = map[string]bool{
	"name": true, "text": true, "tooltip": true, "type": true,
	"id": true, "uid": true,
	"enabled": true, "visible": true, "selected": true,
	"editable": true, "expanded": true,
	"x": true, "y": true, "width": true, "height": true,
	"index": true, "childcount": true,
}

func parseCSSCompound(body string, offset int) (*cssCompound, error) {
	if body == "" {
		return nil, parseErr(ErrBadPattern, offset, body, "empty css segment")
	}
	c := &cssCompound{}
	i := 0

	if body[0] == '*' {
		c.typeName = "*"
		i = 1
	} else if isIdentStart(body[0]) {
		start := i
		for i < len(body) && isIdentChar(body[i]) {
			i++
		}
		c.typeName = body[start:i]
	}

	for i < len(body) {
		switch body[i] {
		case '#':
			ident, next := readIdent(body, i+1)
			if ident == "" {
				return nil, parseErr(ErrBadPattern, offset+i, body, "'#' needs an identifier")
			}
			if c.uid != "" {
				return nil, parseErr(ErrBadPattern, offset+i, body, "more than one '#' test")
			}
			c.uid = ident
			i = next
		case '.':
			ident, next := readIdent(body, i+1)
			if ident == "" {
				return nil, parseErr(ErrBadPattern, offset+i, body, "'.' needs a category tag")
			}
			c.cats = append(c.cats, ident)
			i = next
		case '[':
			end := findCloseBracket(body, i)
			if end < 0 {
				return nil, parseErr(ErrUnterminatedLiteral, offset+i, body[i:], "bracket is never closed")
			}
			test, err := parseAttrTest(body[i+1:end], offset+i+1)
			if err != nil {
				return nil, err
			}
			c.attrs = append(c.attrs, test)
			i = end + 1
		case ':':
			name, arg, next, err := readPseudo(body, i, offset)
			if err != nil {
				return nil, err
			}
			switch name {
			case "enabled", "visible":
				c.states = append(c.states, name)
			case "first-child":
				c.positional = append(c.positional, positionalTest{kind: "first"})
			case "last-child":
				c.positional = append(c.positional, positionalTest{kind: "last"})
			case "nth-child":
				n, convErr := strconv.Atoi(arg)
				if convErr != nil || n < 1 {
					return nil, parseErr(ErrBadPattern, offset+i, body[i:next], "nth-child needs a positive integer")
				}
				c.positional = append(c.positional, positionalTest{kind: "nth", n: n})
			default:
				return nil, parseErr(ErrBadPattern, offset+i, ":"+name, "unknown pseudo-class")
			}
			i = next
		default:
			return nil, parseErr(ErrBadPattern, offset+i, body[i:], "unexpected character in css segment")
		}
	}
	return c, nil
}

func parseAttrTest(inner string, offset int) (attrTest, error) {
	inner = strings.TrimSpace(inner)
	key, i := readIdent(inner, 0)
	for i < len(inner) && inner[i] == ' ' {
		i++
	}
	op := ""
	switch {
	case strings.HasPrefix(inner[i:], "*="), strings.HasPrefix(inner[i:], "^="), strings.HasPrefix(inner[i:], "$="):
		op = inner[i : i+2]
		i += 2
	case strings.HasPrefix(inner[i:], "="):
		op = "="
		i++
	default:
		return attrTest{}, parseErr(ErrBadPattern, offset, inner, "attribute test needs =, *=, ^=, or $=")
	}
	value := strings.TrimSpace(inner[i:])
	if !queryableAttrs[key] {
		return attrTest{}, parseErr(ErrBadPattern, offset, key, "unknown attribute")
	}
	return attrTest{key: key, op: op, value: unquote(value)}, nil
}

func readPseudo(body string, i, offset int) (name, arg string, next int, err error) {
	name, next = readIdent(body, i+1)
	if name == "" {
		return "", "", 0, parseErr(ErrBadPattern, offset+i, body[i:], "':' needs a pseudo-class name")
	}
	if next < len(body) && body[next] == '(' {
		end := strings.IndexByte(body[next:], ')')
		if end < 0 {
			return "", "", 0, parseErr(ErrUnterminatedLiteral, offset+next, body[next:], "parenthesis is never closed")
		}
		arg = strings.TrimSpace(body[next+1 : next+end])
		next = next + end + 1
	}
	return name, arg, next, nil
}

// matchBase applies every non-positional test of the compound to one node.
func (c *cssCompound) matchBase(n *model.Node) bool {
	if c.typeName != "" && c.typeName != "*" && !model.TypeEquals(c.typeName, n.Type) {
		return false
	}
	if c.uid != "" && n.UID != c.uid {
		return false
	}
	for _, cat := range c.cats {
		if model.Category(n.Type) != cat {
			return false
		}
	}
	for _, a := range c.attrs {
		v, ok := n.Attr(a.key)
		if !ok || !attrCompare(v, a.op, a.value) {
			return false
		}
	}
	for _, s := range c.states {
		if s == "enabled" && !n.Enabled {
			return false
		}
		if s == "visible" && !n.Visible {
			return false
		}
	}
	return true
}

func attrCompare(have, op, want string) bool {
	switch op {
	case "=":
		return have == want
	case "*=":
		return strings.Contains(have, want)
	case "^=":
		return strings.HasPrefix(have, want)
	case "$=":
		return strings.HasSuffix(have, want)
	}
	return false
}

// applyPositional filters nodes that already passed the non-positional
// tests by their position among same-parent siblings that also passed.
// Positions are 1-indexed within each sibling group, which is why this runs
// after the rest of the compound.
func applyPositional(matches []*model.Node, tests []positionalTest) []*model.Node {
	if len(tests) == 0 || len(matches) == 0 {
		return matches
	}

	groups := make(map[*model.Node][]*model.Node)
	for _, n := range matches {
		groups[n.Parent] = append(groups[n.Parent], n)
	}

	keep := make(map[*model.Node]bool)
	for _, group := range groups {
		for idx, n := range group {
			ok := true
			for _, t := range tests {
				switch t.kind {
				case "first":
					ok = ok && idx == 0
				case "last":
					ok = ok && idx == len(group)-1
				case "nth":
					ok = ok && idx == t.n-1
				}
			}
			if ok {
				keep[n] = true
			}
		}
	}

	var result []*model.Node
	for _, n := range matches {
		if keep[n] {
			result = append(result, n)
		}
	}
	return result
}

func isIdentStart(ch byte) bool {
	return isLetter(ch) || ch == '_'
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || (ch >= '0' && ch <= '9') || ch == '_' || ch == '-'
}

func readIdent(s string, i int) (string, int) {
	start := i
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	return s[start:i], i
}

func findCloseBracket(s string, open int) int {
	var quote byte
	for i := open + 1; i < len(s); i++ {
		ch := s[i]
		if quote != 0 {
			if ch == '\\' && i+1 < len(s) {
				i++
				continue
			}
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"':
			quote = ch
		case ']':
			return i
		}
	}
	return -1
}
