package selector

import (
	"fmt"
	"strings"

	"github.com/widgetlab/widget-cli/internal/model"
)

// Options configure resolution behavior. The zero value matches
// case-sensitively with unlimited depth.
type Options struct {
	// MaxDepth caps descendant pooling below each context node. 0 is
	// unlimited.
	MaxDepth int
	// IgnoreCase makes the text engine compare case-insensitively.
	IgnoreCase bool
}

// Resolver evaluates cascaded selectors against a snapshot tree. It never
// fetches trees itself: callers own the snapshot and pass its root in, so
// every segment of one resolution sees the same consistent tree.
type Resolver struct {
	Opts Options
}

// New creates a resolver with the given options.
func New(opts Options) *Resolver {
	return &Resolver{Opts: opts}
}

// FindAll resolves a selector and returns every match in document order.
// No matches is an empty result, not an error; only parse errors fail.
func (r *Resolver) FindAll(root *model.Node, sel string) ([]*model.Node, error) {
	q, err := Parse(sel)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, nil
	}
	return r.resolve(root, q), nil
}

// FindOne resolves a selector that must land on exactly one node. Zero
// matches is a not-found ResolutionError; more than one is an ambiguous
// ResolutionError carrying candidate descriptions.
func (r *Resolver) FindOne(root *model.Node, sel string) (*model.Node, error) {
	matches, err := r.FindAll(root, sel)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, &ResolutionError{Kind: ErrNotFound, Selector: sel}
	case 1:
		return matches[0], nil
	}
	return nil, &ResolutionError{
		Kind:       ErrAmbiguous,
		Selector:   sel,
		Count:      len(matches),
		Candidates: describeCandidates(matches),
	}
}

// Exists reports whether a selector matches at least one node.
func (r *Resolver) Exists(root *model.Node, sel string) (bool, error) {
	matches, err := r.FindAll(root, sel)
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

// resolve narrows the context set segment by segment. Each segment's
// matches become the next segment's contexts; an empty intermediate set
// does not stop the walk, it just starves every later segment. The first
// capture-marked segment's results are snapshotted and returned in place
// of the final context set.
func (r *Resolver) resolve(root *model.Node, q *Query) []*model.Node {
	contexts := []*model.Node{root}
	capIdx := q.CaptureIndex()
	var captured []*model.Node

	for i := range q.Segments {
		seg := &q.Segments[i]
		var matches []*model.Node
		switch seg.Engine {
		case EngineContainer:
			// Container entities are synthesized from the context widgets
			// themselves; they are never in the descendant pool.
			matches = resolveContainer(seg.container, contexts)
		case EngineXPath:
			// XPath steps carry their own axes, so they start from the
			// contexts directly.
			matches = evalXPath(seg.xpath, contexts)
		default:
			pool := r.buildPool(contexts, seg.Combinator, i == 0)
			matches = r.matchSegment(seg, pool)
		}

		if i == capIdx {
			captured = append([]*model.Node(nil), matches...)
		}
		contexts = matches
	}

	if capIdx >= 0 {
		return captured
	}
	return contexts
}

// buildPool gathers the candidate nodes for one segment. The first segment
// searches each context plus all its descendants; later segments search
// direct children (">") or all descendants (">>"), in document order,
// deduplicated with first occurrence winning.
func (r *Resolver) buildPool(contexts []*model.Node, comb Combinator, first bool) []*model.Node {
	var pool []*model.Node
	for _, ctx := range contexts {
		switch {
		case first:
			pool = append(pool, model.SelfAndDescendantsTo(ctx, r.Opts.MaxDepth)...)
		case comb == CombinatorChild:
			pool = append(pool, ctx.Children...)
		default:
			pool = append(pool, model.DescendantsTo(ctx, r.Opts.MaxDepth)...)
		}
	}
	return dedupeNodes(pool)
}

func (r *Resolver) matchSegment(seg *Segment, pool []*model.Node) []*model.Node {
	switch seg.Engine {
	case EngineIndex:
		// Indexes address the pooled candidates, negative from the end.
		// Out of range is empty, never an error.
		idx := seg.index
		if idx < 0 {
			idx += len(pool)
		}
		if idx < 0 || idx >= len(pool) {
			return nil
		}
		return []*model.Node{pool[idx]}
	case EngineCSS:
		var matches []*model.Node
		for _, n := range pool {
			if seg.css.matchBase(n) {
				matches = append(matches, n)
			}
		}
		return applyPositional(matches, seg.css.positional)
	case EngineClass:
		return filterNodes(pool, func(n *model.Node) bool { return matchClass(seg.Body, n) })
	case EngineName:
		return filterNodes(pool, func(n *model.Node) bool { return matchName(seg.Body, n) })
	case EngineText:
		matchCase := !r.Opts.IgnoreCase
		return filterNodes(pool, func(n *model.Node) bool { return seg.text.Match(n.Text, matchCase) })
	case EngineID:
		return filterNodes(pool, func(n *model.Node) bool { return matchID(seg.Body, n) })
	}
	return nil
}

func filterNodes(pool []*model.Node, pred func(*model.Node) bool) []*model.Node {
	var matches []*model.Node
	for _, n := range pool {
		if pred(n) {
			matches = append(matches, n)
		}
	}
	return matches
}

// dedupeNodes removes pointer duplicates, preserving first occurrence.
func dedupeNodes(nodes []*model.Node) []*model.Node {
	if len(nodes) < 2 {
		return nodes
	}
	seen := make(map[*model.Node]bool, len(nodes))
	result := nodes[:0:0]
	for _, n := range nodes {
		if !seen[n] {
			seen[n] = true
			result = append(result, n)
		}
	}
	return result
}

// maxCandidates caps how many match descriptions an ambiguous-match error
// carries.
const maxCandidates = 5

func describeCandidates(matches []*model.Node) []string {
	n := len(matches)
	if n > maxCandidates {
		n = maxCandidates
	}
	descs := make([]string, 0, n)
	for _, m := range matches[:n] {
		descs = append(descs, DescribeNode(m))
	}
	if len(matches) > n {
		descs = append(descs, fmt.Sprintf("... and %d more", len(matches)-n))
	}
	return descs
}

// DescribeNode renders a compact one-line description of a node for error
// messages and diagnostics.
func DescribeNode(n *model.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "id=%d %s", n.ID, n.Type)
	if n.Name != "" {
		fmt.Fprintf(&b, " name=%q", n.Name)
	}
	if n.Text != "" {
		fmt.Fprintf(&b, " text=%q", n.Text)
	}
	if n.IsVirtual() {
		fmt.Fprintf(&b, " (%s of id=%d)", n.Virtual.Kind, n.Virtual.Owner.ID)
	} else {
		fmt.Fprintf(&b, " (%d,%d,%d,%d)", n.Bounds[0], n.Bounds[1], n.Bounds[2], n.Bounds[3])
	}
	return b.String()
}
