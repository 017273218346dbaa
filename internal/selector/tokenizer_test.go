package selector

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, sel string) *Query {
	t.Helper()
	q, err := Parse(sel)
	if err != nil {
		t.Fatalf("Parse(%q): %v", sel, err)
	}
	return q
}

func TestParse_Segments(t *testing.T) {
	tests := []struct {
		sel         string
		engines     []Engine
		combinators []Combinator
	}{
		{"Button", []Engine{EngineCSS}, []Combinator{CombinatorDescendant}},
		{"Panel Button", []Engine{EngineCSS, EngineCSS}, []Combinator{CombinatorDescendant, CombinatorDescendant}},
		{"Panel >> Button", []Engine{EngineCSS, EngineCSS}, []Combinator{CombinatorDescendant, CombinatorDescendant}},
		{"Panel > Button", []Engine{EngineCSS, EngineCSS}, []Combinator{CombinatorDescendant, CombinatorChild}},
		{"Panel>Button", []Engine{EngineCSS, EngineCSS}, []Combinator{CombinatorDescendant, CombinatorChild}},
		{"Panel>>Button", []Engine{EngineCSS, EngineCSS}, []Combinator{CombinatorDescendant, CombinatorDescendant}},
		{"  Panel   >   Button  ", []Engine{EngineCSS, EngineCSS}, []Combinator{CombinatorDescendant, CombinatorChild}},
		{"class=Button", []Engine{EngineClass}, []Combinator{CombinatorDescendant}},
		{"name=save", []Engine{EngineName}, []Combinator{CombinatorDescendant}},
		{"text=Save", []Engine{EngineText}, []Combinator{CombinatorDescendant}},
		{"index=2", []Engine{EngineIndex}, []Combinator{CombinatorDescendant}},
		{"xpath=descendant::Button", []Engine{EngineXPath}, []Combinator{CombinatorDescendant}},
		{"id=btnSave", []Engine{EngineID}, []Combinator{CombinatorDescendant}},
		{"cell[row=1,col=2]", []Engine{EngineContainer}, []Combinator{CombinatorDescendant}},
		{"Table > row[index=0] >> cell[index=1]",
			[]Engine{EngineCSS, EngineContainer, EngineContainer},
			[]Combinator{CombinatorDescendant, CombinatorChild, CombinatorDescendant}},
	}
	for _, tt := range tests {
		q := mustParse(t, tt.sel)
		if len(q.Segments) != len(tt.engines) {
			t.Errorf("%q: %d segments, want %d", tt.sel, len(q.Segments), len(tt.engines))
			continue
		}
		for i, seg := range q.Segments {
			if seg.Engine != tt.engines[i] {
				t.Errorf("%q seg %d: engine %v, want %v", tt.sel, i, seg.Engine, tt.engines[i])
			}
			if seg.Combinator != tt.combinators[i] {
				t.Errorf("%q seg %d: combinator %v, want %v", tt.sel, i, seg.Combinator, tt.combinators[i])
			}
		}
	}
}

func TestParse_QuotedCombinatorsStayInBody(t *testing.T) {
	q := mustParse(t, "text='a >> b'")
	if len(q.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(q.Segments))
	}
	if q.Segments[0].Engine != EngineText {
		t.Errorf("engine = %v", q.Segments[0].Engine)
	}

	q = mustParse(t, "Button[name='a > b']")
	if len(q.Segments) != 1 {
		t.Fatalf("bracketed: got %d segments, want 1", len(q.Segments))
	}
}

func TestParse_Capture(t *testing.T) {
	tests := []struct {
		sel     string
		capture int
		extras  int
	}{
		{"Panel Button", -1, 0},
		{"*Button", 0, 0},
		{"Panel *Button Label", 1, 0},
		{"*text=Save", 0, 0},
		{"*name=save > Label", 0, 0},
		{"*Panel *Button", 0, 1},
		// Universal css forms are not captures.
		{"*", -1, 0},
		{"*[name=save]", -1, 0},
		{"*:enabled", -1, 0},
	}
	for _, tt := range tests {
		q := mustParse(t, tt.sel)
		if got := q.CaptureIndex(); got != tt.capture {
			t.Errorf("%q: CaptureIndex = %d, want %d", tt.sel, got, tt.capture)
		}
		if len(q.ExtraCaptures) != tt.extras {
			t.Errorf("%q: %d extra captures, want %d", tt.sel, len(q.ExtraCaptures), tt.extras)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		sel  string
		kind ParseErrorKind
	}{
		{"", ErrEmptySegment},
		{"   ", ErrEmptySegment},
		{"> Button", ErrEmptySegment},
		{">> Button", ErrEmptySegment},
		{"Panel >", ErrEmptySegment},
		{"Panel >>", ErrEmptySegment},
		{"Panel > > Button", ErrEmptySegment},
		{"Panel >> >> Button", ErrEmptySegment},
		{"foo=bar", ErrUnknownEngine},
		{"engine=Button", ErrUnknownEngine},
		{"text='unterminated", ErrUnterminatedLiteral},
		{"Button[name=x", ErrUnterminatedLiteral},
		{"index=abc", ErrBadPattern},
		{"index=", ErrBadPattern},
		{"class=", ErrBadPattern},
		{"id=", ErrBadPattern},
		{"text=/[bad/", ErrBadPattern},
	}
	for _, tt := range tests {
		_, err := Parse(tt.sel)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want %v", tt.sel, tt.kind)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q): %v is not a ParseError", tt.sel, err)
			continue
		}
		if pe.Kind != tt.kind {
			t.Errorf("Parse(%q): kind %v, want %v", tt.sel, pe.Kind, tt.kind)
		}
	}
}

func TestParse_EnginePrefixDetection(t *testing.T) {
	// Only a pure letter run before the first "=" is an engine prefix.
	q := mustParse(t, "Button[name=save]")
	if q.Segments[0].Engine != EngineCSS {
		t.Errorf("attribute selector parsed as %v", q.Segments[0].Engine)
	}
	q = mustParse(t, "text=a=b")
	if q.Segments[0].Engine != EngineText || q.Segments[0].Body != "a=b" {
		t.Errorf("got engine %v body %q", q.Segments[0].Engine, q.Segments[0].Body)
	}
}

func TestParse_TextQuoting(t *testing.T) {
	q := mustParse(t, `text='Save As\''`)
	if q.Segments[0].text == nil {
		t.Fatal("text pattern not compiled")
	}
	if !q.Segments[0].text.Match("Save As'", true) {
		t.Errorf("escaped quote body did not match")
	}

	// Quoted regex syntax is literal text.
	q = mustParse(t, `text='/Save/'`)
	if !q.Segments[0].text.Match("/Save/", true) {
		t.Errorf("quoted body should match literally")
	}
	if q.Segments[0].text.Match("Save", true) {
		t.Errorf("quoted body should not be treated as a regex")
	}
}

func TestParse_Offsets(t *testing.T) {
	q := mustParse(t, "Panel > Button")
	if q.Segments[0].Offset != 0 || q.Segments[1].Offset != 8 {
		t.Errorf("offsets = %d, %d", q.Segments[0].Offset, q.Segments[1].Offset)
	}
}
