package model

import (
	"crypto/sha256"
	"fmt"
)

// HashChange represents a changed node detected by hash-based diffing.
type HashChange struct {
	ID      int                  `yaml:"i"           json:"i"`
	Type    string               `yaml:"t,omitempty" json:"t,omitempty"`
	Name    string               `yaml:"n,omitempty" json:"n,omitempty"`
	Changes map[string][2]string `yaml:"changes"     json:"changes"`
}

// TreeDiff is the result of comparing two snapshots by content hash.
type TreeDiff struct {
	Added          []FlatNode   `yaml:"added,omitempty"   json:"added,omitempty"`
	Removed        []FlatNode   `yaml:"removed,omitempty" json:"removed,omitempty"`
	Changed        []HashChange `yaml:"changed,omitempty" json:"changed,omitempty"`
	UnchangedCount int          `yaml:"unchanged_count"   json:"unchanged_count"`
}

// NodeHash computes a stable identity hash for a node based on its type,
// name, UID, and position in the tree. This allows matching nodes across
// separate snapshots where sequential IDs may shift.
func NodeHash(n FlatNode) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s", n.Type, n.Name, n.UID, n.Path)
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// DiffByHash compares two flat node lists using content hashing for stable
// identity, so added and removed widgets don't cascade ID shifts into
// spurious changes.
func DiffByHash(prev, curr []FlatNode) TreeDiff {
	prevByHash := make(map[string]FlatNode, len(prev))
	for _, n := range prev {
		prevByHash[NodeHash(n)] = n
	}
	currByHash := make(map[string]FlatNode, len(curr))
	for _, n := range curr {
		currByHash[NodeHash(n)] = n
	}

	var diff TreeDiff

	for _, n := range curr {
		prevNode, existed := prevByHash[NodeHash(n)]
		if !existed {
			diff.Added = append(diff.Added, n)
			continue
		}
		changes := diffNodeProperties(prevNode, n)
		if len(changes) > 0 {
			diff.Changed = append(diff.Changed, HashChange{
				ID:      n.ID,
				Type:    n.Type,
				Name:    n.Name,
				Changes: changes,
			})
		} else {
			diff.UnchangedCount++
		}
	}

	for _, n := range prev {
		if _, exists := currByHash[NodeHash(n)]; !exists {
			diff.Removed = append(diff.Removed, n)
		}
	}

	return diff
}

// diffNodeProperties compares mutable properties between two nodes matched
// by content hash. Type, name, UID, and path are part of the hash so they
// won't differ here.
func diffNodeProperties(prev, curr FlatNode) map[string][2]string {
	diffs := make(map[string][2]string)

	if prev.Text != curr.Text {
		diffs["x"] = [2]string{prev.Text, curr.Text}
	}
	if prev.Bounds != curr.Bounds {
		diffs["b"] = [2]string{
			fmt.Sprintf("%v", prev.Bounds),
			fmt.Sprintf("%v", curr.Bounds),
		}
	}
	if prev.Enabled != curr.Enabled {
		diffs["e"] = [2]string{
			fmt.Sprintf("%v", prev.Enabled),
			fmt.Sprintf("%v", curr.Enabled),
		}
	}
	if prev.Selected != curr.Selected {
		diffs["sel"] = [2]string{
			fmt.Sprintf("%v", prev.Selected),
			fmt.Sprintf("%v", curr.Selected),
		}
	}

	if len(diffs) == 0 {
		return nil
	}
	return diffs
}
