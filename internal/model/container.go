package model

import "strings"

// Container payloads describe the internal structure of composite widgets
// (tables, trees, tab folders, menus) that the widget tree itself does not
// expose as child nodes. Each payload synthesizes virtual nodes for its
// entities on first access and memoizes them, so the same logical entity is
// always the same *Node no matter which selector route reached it.

// TableModel is the container payload of a Table widget.
type TableModel struct {
	ColumnNames  []string   `yaml:"columns,omitempty"  json:"columns,omitempty"`
	Cells        [][]string `yaml:"cells,omitempty"    json:"cells,omitempty"`
	SelectedRows []int      `yaml:"selected,omitempty" json:"selected,omitempty"`
	EditableCols []int      `yaml:"editable,omitempty" json:"editable,omitempty"`

	owner *Node
	rows  []*Node
	cols  []*Node
}

// RowCount returns the number of data rows.
func (t *TableModel) RowCount() int { return len(t.Cells) }

// ColCount returns the number of columns.
func (t *TableModel) ColCount() int { return len(t.ColumnNames) }

// ColumnIndex resolves a column header name to its index.
func (t *TableModel) ColumnIndex(name string) (int, bool) {
	for i, n := range t.ColumnNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// Rows returns the virtual row nodes in table order. Each row's children
// are its cell nodes.
func (t *TableModel) Rows() []*Node {
	t.ensure()
	return t.rows
}

// Row returns the virtual node for row i.
func (t *TableModel) Row(i int) (*Node, bool) {
	t.ensure()
	if i < 0 || i >= len(t.rows) {
		return nil, false
	}
	return t.rows[i], true
}

// Cell returns the virtual node for the cell at (row, col).
func (t *TableModel) Cell(row, col int) (*Node, bool) {
	r, ok := t.Row(row)
	if !ok || col < 0 || col >= len(r.Children) {
		return nil, false
	}
	return r.Children[col], true
}

// Columns returns the virtual column nodes. Each column's children are the
// cells of that column, which stay parented to their rows.
func (t *TableModel) Columns() []*Node {
	t.ensure()
	return t.cols
}

func (t *TableModel) ensure() {
	if t.rows != nil || t.owner == nil {
		return
	}
	selected := make(map[int]bool, len(t.SelectedRows))
	for _, r := range t.SelectedRows {
		selected[r] = true
	}
	editable := make(map[int]bool, len(t.EditableCols))
	for _, c := range t.EditableCols {
		editable[c] = true
	}

	seq := 0
	t.rows = make([]*Node, 0, len(t.Cells))
	for r, rowCells := range t.Cells {
		row := &Node{
			ID:       virtualID(t.owner, &seq),
			Type:     "TableRow",
			Enabled:  t.owner.Enabled,
			Visible:  t.owner.Visible,
			Selected: selected[r],
			Index:    r,
			Parent:   t.owner,
			Virtual:  &VirtualInfo{Kind: "row", Owner: t.owner, Row: r, Pos: r},
		}
		for c, val := range rowCells {
			cell := &Node{
				ID:       virtualID(t.owner, &seq),
				Type:     "TableCell",
				Text:     val,
				Enabled:  t.owner.Enabled,
				Visible:  t.owner.Visible,
				Selected: selected[r],
				Editable: editable[c],
				Index:    c,
				Parent:   row,
				Virtual:  &VirtualInfo{Kind: "cell", Owner: t.owner, Row: r, Col: c, Pos: c},
			}
			row.Children = append(row.Children, cell)
		}
		t.rows = append(t.rows, row)
	}

	t.cols = make([]*Node, 0, len(t.ColumnNames))
	for c, name := range t.ColumnNames {
		col := &Node{
			ID:       virtualID(t.owner, &seq),
			Type:     "TableColumn",
			Name:     name,
			Text:     name,
			Enabled:  t.owner.Enabled,
			Visible:  t.owner.Visible,
			Editable: editable[c],
			Index:    c,
			Parent:   t.owner,
			Virtual:  &VirtualInfo{Kind: "column", Owner: t.owner, Col: c, Pos: c},
		}
		for _, row := range t.rows {
			if c < len(row.Children) {
				col.Children = append(col.Children, row.Children[c])
			}
		}
		t.cols = append(t.cols, col)
	}
}

// TreeItem is one entry of a TreeModel payload.
type TreeItem struct {
	Text     string      `yaml:"x"              json:"x"`
	Expanded bool        `yaml:"exp,omitempty"  json:"exp,omitempty"`
	Selected bool        `yaml:"sel,omitempty"  json:"sel,omitempty"`
	Children []*TreeItem `yaml:"c,omitempty"    json:"c,omitempty"`
}

// TreeModel is the container payload of a Tree widget.
type TreeModel struct {
	Roots []*TreeItem `yaml:"roots,omitempty" json:"roots,omitempty"`

	owner  *Node
	items  []*Node
	byPath map[string]*Node
}

// Items returns all virtual tree item nodes in pre-order.
func (t *TreeModel) Items() []*Node {
	t.ensure()
	return t.items
}

// ByPath resolves a text path (item texts from a root item down) to its
// virtual node.
func (t *TreeModel) ByPath(segments []string) (*Node, bool) {
	t.ensure()
	n, ok := t.byPath[strings.Join(segments, "|")]
	return n, ok
}

func (t *TreeModel) ensure() {
	if t.items != nil || t.owner == nil {
		return
	}
	t.items = []*Node{}
	t.byPath = make(map[string]*Node)
	seq := 0
	for i, item := range t.Roots {
		t.buildItem(item, t.owner, i, nil, &seq)
	}
}

func (t *TreeModel) buildItem(item *TreeItem, parent *Node, index int, prefix []string, seq *int) {
	path := append(append([]string{}, prefix...), item.Text)
	n := &Node{
		ID:       virtualID(t.owner, seq),
		Type:     "TreeItem",
		Text:     item.Text,
		Enabled:  t.owner.Enabled,
		Visible:  t.owner.Visible,
		Selected: item.Selected,
		Expanded: item.Expanded,
		Index:    index,
		Parent:   parent,
		Virtual:  &VirtualInfo{Kind: "treeitem", Owner: t.owner, Pos: index, Path: strings.Join(path, "|")},
	}
	if parent != t.owner {
		parent.Children = append(parent.Children, n)
	}
	t.items = append(t.items, n)
	t.byPath[n.Virtual.Path] = n
	for i, child := range item.Children {
		t.buildItem(child, n, i, path, seq)
	}
}

// TabModel is the container payload of a TabFolder widget.
type TabModel struct {
	Titles   []string `yaml:"titles,omitempty" json:"titles,omitempty"`
	Selected int      `yaml:"selected"         json:"selected"`

	owner *Node
	tabs  []*Node
}

// Tabs returns the virtual tab nodes in folder order.
func (t *TabModel) Tabs() []*Node {
	t.ensure()
	return t.tabs
}

// Tab returns the virtual node for tab i.
func (t *TabModel) Tab(i int) (*Node, bool) {
	t.ensure()
	if i < 0 || i >= len(t.tabs) {
		return nil, false
	}
	return t.tabs[i], true
}

// ByTitle returns the virtual node for the tab with the given title.
func (t *TabModel) ByTitle(title string) (*Node, bool) {
	t.ensure()
	for _, tab := range t.tabs {
		if tab.Text == title {
			return tab, true
		}
	}
	return nil, false
}

func (t *TabModel) ensure() {
	if t.tabs != nil || t.owner == nil {
		return
	}
	t.tabs = make([]*Node, 0, len(t.Titles))
	seq := 0
	for i, title := range t.Titles {
		t.tabs = append(t.tabs, &Node{
			ID:       virtualID(t.owner, &seq),
			Type:     "TabItem",
			Text:     title,
			Enabled:  t.owner.Enabled,
			Visible:  t.owner.Visible,
			Selected: i == t.Selected,
			Index:    i,
			Parent:   t.owner,
			Virtual:  &VirtualInfo{Kind: "tab", Owner: t.owner, Pos: i},
		})
	}
}

// MenuItem is one entry of a MenuModel payload.
type MenuItem struct {
	Text     string      `yaml:"x"             json:"x"`
	Enabled  bool        `yaml:"e"             json:"e"`
	Children []*MenuItem `yaml:"c,omitempty"   json:"c,omitempty"`
}

// MenuModel is the container payload of a MenuBar or Menu widget.
type MenuModel struct {
	Roots []*MenuItem `yaml:"roots,omitempty" json:"roots,omitempty"`

	owner  *Node
	items  []*Node
	byPath map[string]*Node
}

// Items returns all virtual menu item nodes in pre-order.
func (m *MenuModel) Items() []*Node {
	m.ensure()
	return m.items
}

// TopLevel returns the virtual nodes of the top-level menu entries.
func (m *MenuModel) TopLevel() []*Node {
	m.ensure()
	var result []*Node
	for _, n := range m.items {
		if n.Parent == m.owner {
			result = append(result, n)
		}
	}
	return result
}

// ByPath resolves a text path like ["File", "Save"] to its virtual node.
func (m *MenuModel) ByPath(segments []string) (*Node, bool) {
	m.ensure()
	n, ok := m.byPath[strings.Join(segments, "|")]
	return n, ok
}

func (m *MenuModel) ensure() {
	if m.items != nil || m.owner == nil {
		return
	}
	m.items = []*Node{}
	m.byPath = make(map[string]*Node)
	seq := 0
	for i, item := range m.Roots {
		m.buildItem(item, m.owner, i, nil, &seq)
	}
}

func (m *MenuModel) buildItem(item *MenuItem, parent *Node, index int, prefix []string, seq *int) {
	path := append(append([]string{}, prefix...), item.Text)
	n := &Node{
		ID:      virtualID(m.owner, seq),
		Type:    "MenuItem",
		Text:    item.Text,
		Enabled: item.Enabled,
		Visible: m.owner.Visible,
		Index:   index,
		Parent:  parent,
		Virtual: &VirtualInfo{Kind: "menuitem", Owner: m.owner, Pos: index, Path: strings.Join(path, "|")},
	}
	if parent != m.owner {
		parent.Children = append(parent.Children, n)
	}
	m.items = append(m.items, n)
	m.byPath[n.Virtual.Path] = n
	for i, child := range item.Children {
		m.buildItem(child, n, i, path, seq)
	}
}

// virtualID mints a deterministic negative ID for a synthesized node so it
// cannot collide with snapshot-scoped IDs.
func virtualID(owner *Node, seq *int) int {
	*seq++
	return -(owner.ID*1000 + *seq)
}
