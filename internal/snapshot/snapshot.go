package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/widgetlab/widget-cli/internal/model"
)

// Provider produces widget tree snapshots. Implementations talk to
// whatever agent is embedded in the target application; the resolver never
// calls one directly, callers fetch a tree and hand its root in.
type Provider interface {
	// FetchTree returns the tree below the widget identified by root (UID
	// or programmatic name; "" means the whole tree), at most maxDepth
	// levels deep (0 = unlimited). The returned tree is repaired and ready
	// to resolve against.
	FetchTree(ctx context.Context, root string, maxDepth int) (*model.Node, error)
}

// FileProvider serves snapshots from an agent JSON dump on disk. It is the
// offline provider behind the --snapshot flag: dump once, query many times.
type FileProvider struct {
	Path string
}

func (p *FileProvider) FetchTree(ctx context.Context, root string, maxDepth int) (*model.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tree, err := Load(p.Path)
	if err != nil {
		return nil, err
	}
	return Scope(tree, root, maxDepth)
}

// Load reads and repairs a snapshot file.
func Load(path string) (*model.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var root model.Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	model.Repair(&root)
	return &root, nil
}

// Save writes a snapshot tree to disk as JSON.
func Save(path string, root *model.Node) error {
	data, err := json.Marshal(root)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Scope narrows a repaired tree to the subtree rooted at the widget with
// the given UID or name, optionally pruned to maxDepth levels. An empty
// root keeps the whole tree.
func Scope(tree *model.Node, root string, maxDepth int) (*model.Node, error) {
	scoped := tree
	if root != "" {
		scoped = model.FindByUID(tree, root)
		if scoped == nil {
			scoped = findByName(tree, root)
		}
		if scoped == nil {
			return nil, fmt.Errorf("no widget with uid or name %q in snapshot", root)
		}
	}
	if maxDepth > 0 {
		scoped = prune(scoped, maxDepth)
		model.Repair(scoped)
	}
	return scoped, nil
}

func findByName(tree *model.Node, name string) *model.Node {
	var found *model.Node
	model.Walk(tree, func(n *model.Node) bool {
		if n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// prune copies a tree keeping depth levels below n. Shallow node copies
// keep the container payloads; Repair reattaches them to the copies.
func prune(n *model.Node, depth int) *model.Node {
	copied := *n
	copied.Children = nil
	if depth > 0 {
		for _, c := range n.Children {
			copied.Children = append(copied.Children, prune(c, depth-1))
		}
	}
	return &copied
}
