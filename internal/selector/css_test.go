package selector

import (
	"errors"
	"testing"

	"github.com/widgetlab/widget-cli/internal/model"
)

func TestParseCSSCompound(t *testing.T) {
	c, err := parseCSSCompound("Button#btnSave.button[name^=sa][text='Save']:enabled:first-child", 0)
	if err != nil {
		t.Fatalf("parseCSSCompound: %v", err)
	}
	if c.typeName != "Button" || c.uid != "btnSave" {
		t.Errorf("type=%q uid=%q", c.typeName, c.uid)
	}
	if len(c.cats) != 1 || c.cats[0] != "button" {
		t.Errorf("cats = %v", c.cats)
	}
	if len(c.attrs) != 2 {
		t.Fatalf("attrs = %v", c.attrs)
	}
	if c.attrs[0] != (attrTest{key: "name", op: "^=", value: "sa"}) {
		t.Errorf("attrs[0] = %+v", c.attrs[0])
	}
	if c.attrs[1] != (attrTest{key: "text", op: "=", value: "Save"}) {
		t.Errorf("attrs[1] = %+v", c.attrs[1])
	}
	if len(c.states) != 1 || c.states[0] != "enabled" {
		t.Errorf("states = %v", c.states)
	}
	if len(c.positional) != 1 || c.positional[0].kind != "first" {
		t.Errorf("positional = %v", c.positional)
	}
}

func TestParseCSSCompound_Errors(t *testing.T) {
	tests := []string{
		"",
		"Button##x",
		"Button#a#b",
		"Button#",
		"Button.",
		"Button[bogus=1]",
		"Button[name~=x]",
		"Button:hover",
		"Button:nth-child(0)",
		"Button:nth-child(x)",
		"Button:nth-child(2",
	}
	for _, body := range tests {
		if _, err := parseCSSCompound(body, 0); err == nil {
			t.Errorf("parseCSSCompound(%q) succeeded, want error", body)
		} else {
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("parseCSSCompound(%q): %v is not a ParseError", body, err)
			}
		}
	}
}

func TestMatchBase(t *testing.T) {
	n := &model.Node{
		ID: 3, UID: "btnSave", Type: "JButton", Name: "save", Text: "Save As",
		Enabled: true, Visible: true, Bounds: [4]int{10, 20, 80, 25},
	}
	tests := []struct {
		body string
		want bool
	}{
		{"Button", true}, // toolkit prefix leniency
		{"JButton", true},
		{"button", false}, // css type test is case-sensitive
		{"*", true},
		{"#btnSave", true},
		{"#btnOther", false},
		{".button", true},
		{".label", false},
		{"[name=save]", true},
		{"[name=Save]", false},
		{"[text*=As]", true},
		{"[text^=Save]", true},
		{"[text$=As]", true},
		{"[text$=Save]", false},
		{"[x=10]", true},
		{"[width=80]", true},
		{"[enabled=true]", true},
		{"[childcount=0]", true},
		{":enabled", true},
		{":visible", true},
		{"Button#btnSave[name=save]:enabled", true},
		{"Button#btnSave[name=cancel]", false},
	}
	for _, tt := range tests {
		c, err := parseCSSCompound(tt.body, 0)
		if err != nil {
			t.Fatalf("parseCSSCompound(%q): %v", tt.body, err)
		}
		if got := c.matchBase(n); got != tt.want {
			t.Errorf("matchBase(%q) = %v, want %v", tt.body, got, tt.want)
		}
	}
}

func TestMatchBase_States(t *testing.T) {
	disabled := &model.Node{Type: "Button", Visible: true}
	c, _ := parseCSSCompound("Button:enabled", 0)
	if c.matchBase(disabled) {
		t.Errorf(":enabled matched a disabled node")
	}
	hidden := &model.Node{Type: "Button", Enabled: true}
	c, _ = parseCSSCompound("Button:visible", 0)
	if c.matchBase(hidden) {
		t.Errorf(":visible matched a hidden node")
	}
}

func TestApplyPositional(t *testing.T) {
	p1 := &model.Node{ID: 1}
	p2 := &model.Node{ID: 2}
	a := &model.Node{ID: 10, Parent: p1}
	b := &model.Node{ID: 11, Parent: p1}
	c := &model.Node{ID: 12, Parent: p1}
	d := &model.Node{ID: 20, Parent: p2}
	matches := []*model.Node{a, b, c, d}

	first := applyPositional(matches, []positionalTest{{kind: "first"}})
	if !sameNodes(first, []*model.Node{a, d}) {
		t.Errorf("first-child = %v", idsOfNodes(first))
	}

	last := applyPositional(matches, []positionalTest{{kind: "last"}})
	if !sameNodes(last, []*model.Node{c, d}) {
		t.Errorf("last-child = %v", idsOfNodes(last))
	}

	nth := applyPositional(matches, []positionalTest{{kind: "nth", n: 2}})
	if !sameNodes(nth, []*model.Node{b}) {
		t.Errorf("nth-child(2) = %v", idsOfNodes(nth))
	}

	none := applyPositional(matches, []positionalTest{{kind: "nth", n: 5}})
	if len(none) != 0 {
		t.Errorf("nth-child(5) = %v", idsOfNodes(none))
	}
}

func sameNodes(got, want []*model.Node) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func idsOfNodes(nodes []*model.Node) []int {
	ids := make([]int, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
