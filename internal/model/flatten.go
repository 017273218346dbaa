package model

// FlatNode is a node with a path breadcrumb instead of children.
type FlatNode struct {
	ID       int    `yaml:"i"             json:"i"`
	UID      string `yaml:"uid,omitempty" json:"uid,omitempty"`
	Type     string `yaml:"t"             json:"t"`
	Name     string `yaml:"n,omitempty"   json:"n,omitempty"`
	Text     string `yaml:"x,omitempty"   json:"x,omitempty"`
	Bounds   [4]int `yaml:"b"             json:"b"`
	Enabled  bool   `yaml:"e"             json:"e"`
	Selected bool   `yaml:"sel,omitempty" json:"sel,omitempty"`
	Path     string `yaml:"p,omitempty"   json:"p,omitempty"`
}

// Flatten converts a widget tree into a flat list. Each node gets a path
// string showing its location in the tree using widget type names joined
// with " > ".
func Flatten(root *Node) []FlatNode {
	var result []FlatNode
	if root != nil {
		flattenRecursive(root, "", &result)
	}
	return result
}

func flattenRecursive(n *Node, parentPath string, result *[]FlatNode) {
	currentPath := n.Type
	if parentPath != "" {
		currentPath = parentPath + " > " + n.Type
	}

	*result = append(*result, FlatNode{
		ID:       n.ID,
		UID:      n.UID,
		Type:     n.Type,
		Name:     n.Name,
		Text:     n.Text,
		Bounds:   n.Bounds,
		Enabled:  n.Enabled,
		Selected: n.Selected,
		Path:     currentPath,
	})

	for _, child := range n.Children {
		flattenRecursive(child, currentPath, result)
	}
}
