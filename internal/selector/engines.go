package selector

import (
	"regexp"
	"strings"

	"github.com/widgetlab/widget-cli/internal/model"
)

// matchClass compares a class engine body against a node's widget type.
// The comparison is case-insensitive and the toolkit "J" prefix is stripped
// from both sides first, so class=button matches JButton and Button alike.
func matchClass(body string, n *model.Node) bool {
	return strings.EqualFold(stripClassPrefix(body), stripClassPrefix(n.Type))
}

func stripClassPrefix(t string) string {
	if len(t) > 1 && (t[0] == 'J' || t[0] == 'j') {
		return t[1:]
	}
	return t
}

// matchName compares a name engine body against a node's programmatic
// name. The match is exact and case-sensitive, with leading and trailing
// "*" wildcards.
func matchName(body string, n *model.Node) bool {
	return wildcardMatch(body, n.Name)
}

// matchID compares an id engine body against a node's library-assigned UID.
func matchID(body string, n *model.Node) bool {
	return n.UID != "" && n.UID == body
}

// wildcardMatch matches s against a pattern supporting "*" at the start
// and/or end only.
func wildcardMatch(pattern, s string) bool {
	leading := strings.HasPrefix(pattern, "*")
	trailing := strings.HasSuffix(pattern, "*") && pattern != "*"
	core := strings.TrimSuffix(strings.TrimPrefix(pattern, "*"), "*")

	switch {
	case pattern == "*":
		return true
	case leading && trailing:
		return strings.Contains(s, core)
	case leading:
		return strings.HasSuffix(s, core)
	case trailing:
		return strings.HasPrefix(s, core)
	default:
		return pattern == s
	}
}

// textPattern is a compiled text engine body: exact text, "*" wildcards,
// or a /regex/ literal. Both regex variants are compiled at parse time so
// the case-sensitivity option stays a pure resolution-time switch.
type textPattern struct {
	raw      string
	isRegex  bool
	re       *regexp.Regexp // case-sensitive
	reFold   *regexp.Regexp // case-insensitive
	wildcard bool
}

func parseTextPattern(body string, offset int, allowRegex bool) (*textPattern, error) {
	p := &textPattern{raw: body}
	if allowRegex && len(body) >= 2 && body[0] == '/' && body[len(body)-1] == '/' {
		expr := body[1 : len(body)-1]
		// Anchored: a regex text pattern must match the whole text.
		re, err := regexp.Compile("^(?:" + expr + ")$")
		if err != nil {
			return nil, parseErr(ErrBadPattern, offset, body, "invalid regular expression")
		}
		reFold, err := regexp.Compile("^(?i:" + expr + ")$")
		if err != nil {
			return nil, parseErr(ErrBadPattern, offset, body, "invalid regular expression")
		}
		p.isRegex = true
		p.re = re
		p.reFold = reFold
		return p, nil
	}
	p.wildcard = strings.HasPrefix(body, "*") || strings.HasSuffix(body, "*")
	return p, nil
}

// Match tests a node's text against the pattern. Regex patterns must match
// the whole text.
func (p *textPattern) Match(text string, matchCase bool) bool {
	if p.isRegex {
		if matchCase {
			return p.re.MatchString(text)
		}
		return p.reFold.MatchString(text)
	}
	if matchCase {
		return wildcardMatch(p.raw, text)
	}
	return wildcardMatch(strings.ToLower(p.raw), strings.ToLower(text))
}
