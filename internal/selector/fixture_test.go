package selector

import (
	"github.com/widgetlab/widget-cli/internal/model"
)

// buildFixture assembles the window tree the resolution tests run against:
// a frame with a menu bar, a toolbar, a content panel holding a table, a
// tree, a tab folder, and a second save button, plus a confirmation dialog.
func buildFixture() *model.Node {
	root := &model.Node{
		ID: 1, Type: "Frame", Name: "app", UID: "frameApp",
		Enabled: true, Visible: true, Bounds: [4]int{0, 0, 800, 600},
		Children: []*model.Node{
			{
				ID: 2, Type: "MenuBar", Enabled: true, Visible: true,
				Menu: &model.MenuModel{
					Roots: []*model.MenuItem{
						{Text: "File", Enabled: true, Children: []*model.MenuItem{
							{Text: "New", Enabled: true},
							{Text: "Save", Enabled: true},
							{Text: "Open", Enabled: false},
						}},
						{Text: "Edit", Enabled: true, Children: []*model.MenuItem{
							{Text: "Cut", Enabled: true},
							{Text: "Copy", Enabled: true},
						}},
					},
				},
			},
			{
				ID: 3, Type: "Panel", Name: "toolbar", Enabled: true, Visible: true,
				Children: []*model.Node{
					{ID: 4, Type: "Button", Name: "save", Text: "Save", UID: "btnSave",
						Enabled: true, Visible: true, Bounds: [4]int{10, 10, 80, 25}},
					{ID: 5, Type: "Button", Name: "cancel", Text: "Cancel",
						Enabled: false, Visible: true},
					{ID: 6, Type: "TextField", Name: "search", Text: "",
						Enabled: true, Visible: true, Editable: true},
				},
			},
			{
				ID: 7, Type: "Panel", Name: "content", Enabled: true, Visible: true,
				Children: []*model.Node{
					{
						ID: 8, Type: "Table", Name: "orders", Enabled: true, Visible: true,
						Table: &model.TableModel{
							ColumnNames: []string{"ID", "Status", "Amount"},
							Cells: [][]string{
								{"1", "pending", "10"},
								{"2", "shipped", "20"},
								{"3", "pending", "30"},
							},
							SelectedRows: []int{1},
							EditableCols: []int{2},
						},
					},
					{
						ID: 9, Type: "Tree", Name: "nav", Enabled: true, Visible: true,
						Tree: &model.TreeModel{
							Roots: []*model.TreeItem{
								{Text: "Root", Expanded: true, Children: []*model.TreeItem{
									{Text: "Folder A", Expanded: true, Children: []*model.TreeItem{
										{Text: "Leaf 1", Selected: true},
									}},
									{Text: "Folder B", Children: []*model.TreeItem{
										{Text: "Leaf 2"},
									}},
								}},
							},
						},
					},
					{
						ID: 10, Type: "TabFolder", Name: "views", Enabled: true, Visible: true,
						TabFolder: &model.TabModel{
							Titles:   []string{"Overview", "Details", "History"},
							Selected: 0,
						},
					},
					{ID: 11, Type: "Button", Name: "apply", Text: "Save",
						Enabled: true, Visible: true, Bounds: [4]int{10, 500, 80, 25}},
				},
			},
			{
				ID: 12, Type: "Dialog", Name: "confirm", Enabled: true, Visible: true,
				Children: []*model.Node{
					{ID: 13, Type: "Label", Text: "Are you sure?", Enabled: true, Visible: true},
					{ID: 14, Type: "Button", Name: "ok", Text: "OK", UID: "btnOk",
						Enabled: true, Visible: true},
					{ID: 15, Type: "Button", Name: "cancel", Text: "Cancel",
						Enabled: true, Visible: true},
				},
			},
		},
	}
	model.Repair(root)
	return root
}

func nodeIDs(nodes []*model.Node) []int {
	ids := make([]int, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

func sameIDs(got []*model.Node, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	for i, n := range got {
		if n.ID != want[i] {
			return false
		}
	}
	return true
}
