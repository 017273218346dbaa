package selector

import (
	"errors"
	"strings"
	"testing"

	"github.com/widgetlab/widget-cli/internal/model"
)

func findAll(t *testing.T, root *model.Node, sel string) []*model.Node {
	t.Helper()
	matches, err := New(Options{}).FindAll(root, sel)
	if err != nil {
		t.Fatalf("FindAll(%q): %v", sel, err)
	}
	return matches
}

func TestFindAll_SingleSegment(t *testing.T) {
	root := buildFixture()
	tests := []struct {
		sel  string
		want []int
	}{
		{"Button", []int{4, 5, 11, 14, 15}},
		{"Frame", []int{1}},
		{"#btnSave", []int{4}},
		{"id=btnOk", []int{14}},
		{"class=button", []int{4, 5, 11, 14, 15}},
		{"name=save", []int{4}},
		{"name=*a*", []int{1, 3, 4, 5, 6, 9, 11, 15}},
		{"text=Save", []int{4, 11}},
		{"text=/Sa(ve|lute)/", []int{4, 11}},
		{"Button:enabled", []int{4, 11, 14, 15}},
		{".container", []int{1, 3, 7, 10, 12}},
		{"Button[name=cancel]", []int{5, 15}},
		{"[text$=sure?]", []int{13}},
	}
	for _, tt := range tests {
		got := findAll(t, root, tt.sel)
		if !sameIDs(got, tt.want) {
			t.Errorf("%q = %v, want %v", tt.sel, nodeIDs(got), tt.want)
		}
	}

	// The universal selector matches the root itself plus every descendant.
	got := findAll(t, root, "*")
	if len(got) != 15 || got[0].ID != 1 {
		t.Errorf("* matched %d nodes starting at %d", len(got), got[0].ID)
	}
}

func TestFindAll_Combinators(t *testing.T) {
	root := buildFixture()
	tests := []struct {
		sel  string
		want []int
	}{
		{"Panel > Button", []int{4, 5, 11}},
		{"Panel >> Button", []int{4, 5, 11}},
		{"Panel Button", []int{4, 5, 11}},
		{"Dialog > Button", []int{14, 15}},
		{"Frame > Button", nil},
		{"Panel > text=Save", []int{4, 11}},
		{"Panel[name=toolbar] > Button", []int{4, 5}},
		{"Dialog >> text=Cancel", []int{15}},
		{"Frame >> Panel >> Button:enabled", []int{4, 11}},
	}
	for _, tt := range tests {
		got := findAll(t, root, tt.sel)
		if !sameIDs(got, tt.want) {
			t.Errorf("%q = %v, want %v", tt.sel, nodeIDs(got), tt.want)
		}
	}
}

func TestFindAll_IndexEngine(t *testing.T) {
	root := buildFixture()
	tests := []struct {
		sel  string
		want []int
	}{
		{"Panel[name=toolbar] > index=0", []int{4}},
		{"Panel[name=toolbar] > index=1", []int{5}},
		{"Panel[name=toolbar] > index=-1", []int{6}},
		{"Panel[name=toolbar] > index=9", nil},
		{"Panel[name=toolbar] > index=-9", nil},
	}
	for _, tt := range tests {
		got := findAll(t, root, tt.sel)
		if !sameIDs(got, tt.want) {
			t.Errorf("%q = %v, want %v", tt.sel, nodeIDs(got), tt.want)
		}
	}
}

func TestFindAll_Positional(t *testing.T) {
	root := buildFixture()
	tests := []struct {
		sel  string
		want []int
	}{
		// Positions count within same-parent groups of base matches.
		{"Button:first-child", []int{4, 11, 14}},
		{"Button:last-child", []int{5, 11, 15}},
		{"Button:nth-child(2)", []int{5, 15}},
	}
	for _, tt := range tests {
		got := findAll(t, root, tt.sel)
		if !sameIDs(got, tt.want) {
			t.Errorf("%q = %v, want %v", tt.sel, nodeIDs(got), tt.want)
		}
	}
}

func TestFindAll_Capture(t *testing.T) {
	root := buildFixture()

	// The captured segment's results come back, not the final segment's.
	got := findAll(t, root, "*Panel > Button")
	if !sameIDs(got, []int{3, 7}) {
		t.Errorf("*Panel > Button = %v, want the panels", nodeIDs(got))
	}

	// The capture snapshot survives later segments that match nothing.
	got = findAll(t, root, "*Button > Dialog")
	if !sameIDs(got, []int{4, 5, 11, 14, 15}) {
		t.Errorf("capture before empty tail = %v", nodeIDs(got))
	}

	// Only the first capture takes effect.
	got = findAll(t, root, "*Panel > *Button")
	if !sameIDs(got, []int{3, 7}) {
		t.Errorf("double capture = %v", nodeIDs(got))
	}
}

func TestFindAll_EmptyIntermediateDoesNotError(t *testing.T) {
	root := buildFixture()
	got := findAll(t, root, "Spinner >> Button")
	if len(got) != 0 {
		t.Errorf("got %v, want empty", nodeIDs(got))
	}
}

func TestFindAll_Dedupe(t *testing.T) {
	root := buildFixture()
	// Both panels pool overlapping descendants of the frame; each button
	// must come back once.
	got := findAll(t, root, "Frame Panel Button")
	if !sameIDs(got, []int{4, 5, 11}) {
		t.Errorf("got %v", nodeIDs(got))
	}
}

func TestFindAll_Deterministic(t *testing.T) {
	root := buildFixture()
	first := nodeIDs(findAll(t, root, "Button:enabled"))
	for i := 0; i < 10; i++ {
		again := nodeIDs(findAll(t, root, "Button:enabled"))
		if len(again) != len(first) {
			t.Fatalf("run %d: %v vs %v", i, again, first)
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("run %d: %v vs %v", i, again, first)
			}
		}
	}
}

func TestFindAll_ContainerCascade(t *testing.T) {
	root := buildFixture()

	direct := findAll(t, root, "Table[name=orders] > cell[row=1,col=2]")
	viaRow := findAll(t, root, "Table[name=orders] > row[index=1] >> cell[index=2]")
	byName := findAll(t, root, "Table cell[row=1,col='Amount']")
	if len(direct) != 1 || len(viaRow) != 1 || len(byName) != 1 {
		t.Fatalf("direct=%v viaRow=%v byName=%v", direct, viaRow, byName)
	}
	if direct[0] != viaRow[0] || direct[0] != byName[0] {
		t.Errorf("cell routes disagree on identity")
	}
	if direct[0].Text != "20" {
		t.Errorf("cell text = %q", direct[0].Text)
	}

	got := findAll(t, root, "Table > row[contains='pending'] >> cell[col='Status']")
	if len(got) != 2 || got[0].Text != "pending" || got[1].Text != "pending" {
		t.Errorf("status cells = %v", got)
	}

	got = findAll(t, root, "Tree[name=nav] node[path='Root|Folder A|Leaf 1']")
	if len(got) != 1 || got[0].Text != "Leaf 1" {
		t.Errorf("tree path = %v", got)
	}

	got = findAll(t, root, "MenuBar menu[path='File|Save']")
	if len(got) != 1 || got[0].Text != "Save" {
		t.Errorf("menu path = %v", got)
	}

	got = findAll(t, root, "TabFolder tab[]:selected")
	if len(got) != 1 || got[0].Text != "Overview" {
		t.Errorf("selected tab = %v", got)
	}
}

func TestFindAll_XPathSegment(t *testing.T) {
	root := buildFixture()

	got := findAll(t, root, "xpath=Panel/Button[@name='save']")
	if !sameIDs(got, []int{4}) {
		t.Errorf("xpath segment = %v", nodeIDs(got))
	}

	// An xpath segment continues from the previous segment's results.
	got = findAll(t, root, "Dialog xpath=./Button")
	if !sameIDs(got, []int{14, 15}) {
		t.Errorf("cascaded xpath = %v", nodeIDs(got))
	}
}

func TestFindAll_NilRoot(t *testing.T) {
	got, err := New(Options{}).FindAll(nil, "Button")
	if err != nil || len(got) != 0 {
		t.Errorf("FindAll(nil) = %v, %v", got, err)
	}
}

func TestFindAll_ParseErrorPropagates(t *testing.T) {
	_, err := New(Options{}).FindAll(buildFixture(), "foo=bar")
	if !IsParseError(err) {
		t.Errorf("err = %v, want a parse error", err)
	}
}

func TestFindOne(t *testing.T) {
	root := buildFixture()
	r := New(Options{})

	n, err := r.FindOne(root, "#btnSave")
	if err != nil || n.ID != 4 {
		t.Fatalf("FindOne = %v, %v", n, err)
	}

	_, err = r.FindOne(root, "Spinner")
	if !IsNotFound(err) {
		t.Errorf("err = %v, want not-found", err)
	}

	_, err = r.FindOne(root, "Button")
	if !IsAmbiguous(err) {
		t.Fatalf("err = %v, want ambiguous", err)
	}
	var re *ResolutionError
	if !errors.As(err, &re) {
		t.Fatal("not a ResolutionError")
	}
	if re.Count != 5 || len(re.Candidates) != 5 {
		t.Errorf("count=%d candidates=%d", re.Count, len(re.Candidates))
	}
	if !strings.Contains(re.Candidates[0], "Button") {
		t.Errorf("candidate = %q", re.Candidates[0])
	}
}

func TestFindOne_CandidateCap(t *testing.T) {
	root := buildFixture()
	_, err := New(Options{}).FindOne(root, "*")
	var re *ResolutionError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v", err)
	}
	if len(re.Candidates) != maxCandidates+1 {
		t.Fatalf("candidates = %d", len(re.Candidates))
	}
	last := re.Candidates[len(re.Candidates)-1]
	if !strings.HasPrefix(last, "... and ") {
		t.Errorf("last candidate = %q", last)
	}
}

func TestExists(t *testing.T) {
	root := buildFixture()
	r := New(Options{})

	ok, err := r.Exists(root, "#btnSave")
	if err != nil || !ok {
		t.Errorf("Exists(#btnSave) = %v, %v", ok, err)
	}
	ok, err = r.Exists(root, "Spinner")
	if err != nil || ok {
		t.Errorf("Exists(Spinner) = %v, %v", ok, err)
	}
	if _, err = r.Exists(root, "foo=bar"); err == nil {
		t.Errorf("parse error should propagate")
	}
}

func TestOptions_MaxDepth(t *testing.T) {
	root := buildFixture()

	// Depth 1 pools only the frame and its direct children.
	got, err := New(Options{MaxDepth: 1}).FindAll(root, "Button")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("depth 1 = %v", nodeIDs(got))
	}

	got, err = New(Options{MaxDepth: 2}).FindAll(root, "Button")
	if err != nil {
		t.Fatal(err)
	}
	if !sameIDs(got, []int{4, 5, 11, 14, 15}) {
		t.Errorf("depth 2 = %v", nodeIDs(got))
	}
}

func TestOptions_IgnoreCase(t *testing.T) {
	root := buildFixture()

	got, err := New(Options{IgnoreCase: true}).FindAll(root, "text=save")
	if err != nil {
		t.Fatal(err)
	}
	if !sameIDs(got, []int{4, 11}) {
		t.Errorf("ignore-case text = %v", nodeIDs(got))
	}

	got = findAll(t, root, "text=save")
	if len(got) != 0 {
		t.Errorf("case-sensitive text = %v", nodeIDs(got))
	}
}

func TestDescribeNode(t *testing.T) {
	root := buildFixture()
	save := findNode(t, root, 4)
	desc := DescribeNode(save)
	for _, want := range []string{"id=4", "Button", `name="save"`, `text="Save"`} {
		if !strings.Contains(desc, want) {
			t.Errorf("DescribeNode = %q, missing %q", desc, want)
		}
	}

	table := findNode(t, root, 8)
	cell, _ := table.Table.Cell(0, 0)
	desc = DescribeNode(cell)
	if !strings.Contains(desc, "cell of id=8") {
		t.Errorf("virtual DescribeNode = %q", desc)
	}
}
