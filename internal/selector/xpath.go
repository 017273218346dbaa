package selector

import (
	"strconv"
	"strings"

	"github.com/widgetlab/widget-cli/internal/model"
)

type xpathAxis int

const (
	axisChild xpathAxis = iota
	axisSelf
	axisParent
	axisDescendant
	axisAncestor
	axisFollowingSibling
	axisPrecedingSibling
)

var xpathAxes = map[string]xpathAxis{
	"child":             axisChild,
	"self":              axisSelf,
	"parent":            axisParent,
	"descendant":        axisDescendant,
	"ancestor":          axisAncestor,
	"following-sibling": axisFollowingSibling,
	"preceding-sibling": axisPrecedingSibling,
}

// xpathPred is a step predicate: either an attribute equality test or a
// 1-indexed position within the step's results per context node.
type xpathPred struct {
	attr  string
	value string
	pos   int
}

type xpathStep struct {
	axis     xpathAxis
	typeName string // "" for . and .., "*" wildcard
	preds    []xpathPred
}

// parseXPath compiles the supported xpath subset: steps separated by "/",
// axes self (.), parent (..), child (bare name), descendant::, ancestor::,
// following-sibling::, preceding-sibling::, with [@attr='v'] and [n]
// predicates.
func parseXPath(body string, offset int) ([]xpathStep, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, parseErr(ErrBadPattern, offset, body, "xpath engine needs at least one step")
	}

	var steps []xpathStep
	for _, tok := range splitXPathSteps(body) {
		tok.text = strings.TrimSpace(tok.text)
		if tok.text == "" {
			return nil, parseErr(ErrBadPattern, offset+tok.offset, body, "empty xpath step")
		}
		step, err := parseXPathStep(tok.text, offset+tok.offset)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

type xpathToken struct {
	text   string
	offset int
}

// splitXPathSteps cuts on "/" outside quotes and predicate brackets.
func splitXPathSteps(body string) []xpathToken {
	var toks []xpathToken
	start := 0
	depth := 0
	var quote byte
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if quote != 0 {
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"':
			quote = ch
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '/':
			if depth == 0 {
				toks = append(toks, xpathToken{text: body[start:i], offset: start})
				start = i + 1
			}
		}
	}
	return append(toks, xpathToken{text: body[start:], offset: start})
}

func parseXPathStep(tok string, offset int) (xpathStep, error) {
	step := xpathStep{axis: axisChild}

	name := tok
	predStart := strings.IndexByte(tok, '[')
	if predStart >= 0 {
		name = tok[:predStart]
	}

	switch {
	case name == ".":
		step.axis = axisSelf
	case name == "..":
		step.axis = axisParent
	default:
		if idx := strings.Index(name, "::"); idx >= 0 {
			axis, ok := xpathAxes[name[:idx]]
			if !ok {
				return step, parseErr(ErrBadPattern, offset, name[:idx], "unknown xpath axis")
			}
			step.axis = axis
			name = name[idx+2:]
		}
		if name != "*" && !isXPathName(name) {
			return step, parseErr(ErrBadPattern, offset, tok, "invalid xpath step name")
		}
		step.typeName = name
	}

	if predStart >= 0 {
		preds, err := parseXPathPreds(tok[predStart:], offset+predStart)
		if err != nil {
			return step, err
		}
		step.preds = preds
	}
	return step, nil
}

func parseXPathPreds(s string, offset int) ([]xpathPred, error) {
	var preds []xpathPred
	i := 0
	for i < len(s) {
		if s[i] != '[' {
			return nil, parseErr(ErrBadPattern, offset+i, s[i:], "unexpected text after xpath predicate")
		}
		end := findCloseBracket(s, i)
		if end < 0 {
			return nil, parseErr(ErrUnterminatedLiteral, offset+i, s[i:], "bracket is never closed")
		}
		inner := strings.TrimSpace(s[i+1 : end])
		pred, err := parseXPathPred(inner, offset+i+1)
		if err != nil {
			return nil, err
		}
		preds = append(preds, pred)
		i = end + 1
	}
	return preds, nil
}

func parseXPathPred(inner string, offset int) (xpathPred, error) {
	if inner == "" {
		return xpathPred{}, parseErr(ErrBadPattern, offset, inner, "empty xpath predicate")
	}
	if inner[0] == '@' {
		eq := strings.IndexByte(inner, '=')
		if eq < 0 {
			return xpathPred{}, parseErr(ErrBadPattern, offset, inner, "attribute predicate needs @attr='value'")
		}
		attr := strings.TrimSpace(inner[1:eq])
		if !queryableAttrs[attr] {
			return xpathPred{}, parseErr(ErrBadPattern, offset, attr, "unknown attribute")
		}
		return xpathPred{attr: attr, value: unquote(strings.TrimSpace(inner[eq+1:]))}, nil
	}
	pos, err := strconv.Atoi(inner)
	if err != nil || pos < 1 {
		return xpathPred{}, parseErr(ErrBadPattern, offset, inner, "positional predicate needs a positive integer")
	}
	return xpathPred{pos: pos}, nil
}

func isXPathName(name string) bool {
	if name == "" {
		return false
	}
	if !isIdentStart(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isIdentChar(name[i]) {
			return false
		}
	}
	return true
}

// evalXPath runs compiled steps against each context node and returns the
// union of results, deduplicated, in traversal order.
func evalXPath(steps []xpathStep, contexts []*model.Node) []*model.Node {
	current := contexts
	for _, step := range steps {
		var next []*model.Node
		for _, n := range current {
			next = append(next, step.eval(n)...)
		}
		current = dedupeNodes(next)
	}
	return current
}

// eval applies one step to one context node: gather the axis candidates,
// filter by type, then apply predicates in order. Positional predicates are
// 1-indexed within this context node's surviving candidates.
func (s xpathStep) eval(n *model.Node) []*model.Node {
	var cands []*model.Node
	switch s.axis {
	case axisSelf:
		cands = []*model.Node{n}
	case axisParent:
		if n.Parent != nil {
			cands = []*model.Node{n.Parent}
		}
	case axisChild:
		cands = n.Children
	case axisDescendant:
		cands = model.Descendants(n)
	case axisAncestor:
		cands = model.Ancestors(n)
	case axisFollowingSibling:
		cands = model.FollowingSiblings(n)
	case axisPrecedingSibling:
		cands = model.PrecedingSiblings(n)
	}

	if s.typeName != "" && s.typeName != "*" {
		var filtered []*model.Node
		for _, c := range cands {
			if model.TypeEquals(s.typeName, c.Type) {
				filtered = append(filtered, c)
			}
		}
		cands = filtered
	}

	for _, p := range s.preds {
		if p.pos > 0 {
			if p.pos > len(cands) {
				cands = nil
			} else {
				cands = []*model.Node{cands[p.pos-1]}
			}
			continue
		}
		var filtered []*model.Node
		for _, c := range cands {
			if v, ok := c.Attr(p.attr); ok && v == p.value {
				filtered = append(filtered, c)
			}
		}
		cands = filtered
	}
	return cands
}
