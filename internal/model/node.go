package model

import "strconv"

// Node is a single widget in a snapshot of a live widget tree.
type Node struct {
	ID       int     `yaml:"i"              json:"i"`                        // Snapshot-scoped sequential ID
	UID      string  `yaml:"uid,omitempty"  json:"uid,omitempty"`            // Library-assigned stable identifier
	Type     string  `yaml:"t"              json:"t"`                        // Canonical widget type ("Button", "Table", ...)
	Name     string  `yaml:"n,omitempty"    json:"n,omitempty"`              // Programmatic name set by the app developer
	Text     string  `yaml:"x,omitempty"    json:"x,omitempty"`              // Visible text / label / current value
	Tooltip  string  `yaml:"tip,omitempty"  json:"tip,omitempty"`            // Hover tooltip text
	Enabled  bool    `yaml:"e"              json:"e"`
	Visible  bool    `yaml:"vis"            json:"vis"`
	Selected bool    `yaml:"sel,omitempty"  json:"sel,omitempty"`
	Editable bool    `yaml:"ed,omitempty"   json:"ed,omitempty"`
	Expanded bool    `yaml:"exp,omitempty"  json:"exp,omitempty"`
	Bounds   [4]int  `yaml:"b"              json:"b"`                        // [x, y, width, height]
	Children []*Node `yaml:"c,omitempty"    json:"c,omitempty"`

	// Container payloads, at most one per node.
	Table     *TableModel `yaml:"table,omitempty" json:"table,omitempty"`
	Tree      *TreeModel  `yaml:"tree,omitempty"  json:"tree,omitempty"`
	TabFolder *TabModel   `yaml:"tabs,omitempty"  json:"tabs,omitempty"`
	Menu      *MenuModel  `yaml:"menu,omitempty"  json:"menu,omitempty"`

	// Rebuilt after decode; never serialized.
	Parent  *Node        `yaml:"-" json:"-"`
	Index   int          `yaml:"-" json:"-"`
	Virtual *VirtualInfo `yaml:"-" json:"-"`
}

// VirtualInfo marks a node synthesized from a container payload (a table
// cell, tree item, tab, menu entry) rather than read from the widget tree.
type VirtualInfo struct {
	Kind  string // "row", "cell", "column", "treeitem", "tab", "menuitem"
	Owner *Node  // The container widget the entity belongs to
	Row   int
	Col   int
	Pos   int
	Path  string // Text path for tree and menu items, segments joined with "|"
}

// IsVirtual reports whether the node was synthesized from a container payload.
func (n *Node) IsVirtual() bool {
	return n.Virtual != nil
}

// Attr returns the value of a queryable attribute as a string. Booleans
// render as "true"/"false", numbers in base 10. The second return is false
// for unknown attribute keys.
func (n *Node) Attr(key string) (string, bool) {
	switch key {
	case "name":
		return n.Name, true
	case "text":
		return n.Text, true
	case "tooltip":
		return n.Tooltip, true
	case "type":
		return n.Type, true
	case "id", "uid":
		return n.UID, true
	case "enabled":
		return strconv.FormatBool(n.Enabled), true
	case "visible":
		return strconv.FormatBool(n.Visible), true
	case "selected":
		return strconv.FormatBool(n.Selected), true
	case "editable":
		return strconv.FormatBool(n.Editable), true
	case "expanded":
		return strconv.FormatBool(n.Expanded), true
	case "x":
		return strconv.Itoa(n.Bounds[0]), true
	case "y":
		return strconv.Itoa(n.Bounds[1]), true
	case "width":
		return strconv.Itoa(n.Bounds[2]), true
	case "height":
		return strconv.Itoa(n.Bounds[3]), true
	case "index":
		return strconv.Itoa(n.Index), true
	case "childcount":
		return strconv.Itoa(len(n.Children)), true
	}
	return "", false
}

// Repair rebuilds Parent and Index pointers after a tree has been decoded,
// and attaches container payloads to their owning nodes. Must be called on
// every freshly loaded snapshot before resolving selectors against it.
func Repair(root *Node) {
	if root == nil {
		return
	}
	repairNode(root, nil, 0)
}

func repairNode(n *Node, parent *Node, index int) {
	n.Parent = parent
	n.Index = index
	if n.Table != nil {
		n.Table.owner = n
	}
	if n.Tree != nil {
		n.Tree.owner = n
	}
	if n.TabFolder != nil {
		n.TabFolder.owner = n
	}
	if n.Menu != nil {
		n.Menu.owner = n
	}
	for i, c := range n.Children {
		repairNode(c, n, i)
	}
}
