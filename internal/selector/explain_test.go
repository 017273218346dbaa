package selector

import "testing"

func TestExplain(t *testing.T) {
	result, err := Explain("Panel > *text=Save >> cell[row=1,col=2]")
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if len(result.Segments) != 3 {
		t.Fatalf("got %d segments", len(result.Segments))
	}

	segs := result.Segments
	if segs[0].Engine != "css" || segs[0].Combinator != ">>" {
		t.Errorf("seg 0 = %+v", segs[0])
	}
	if segs[1].Engine != "text" || segs[1].Combinator != ">" || !segs[1].Capture {
		t.Errorf("seg 1 = %+v", segs[1])
	}
	if segs[2].Engine != "container" || segs[2].Combinator != ">>" {
		t.Errorf("seg 2 = %+v", segs[2])
	}
	if result.CaptureIndex != 1 {
		t.Errorf("CaptureIndex = %d", result.CaptureIndex)
	}
}

func TestExplain_ParseError(t *testing.T) {
	if _, err := Explain("foo=bar"); !IsParseError(err) {
		t.Errorf("err = %v, want parse error", err)
	}
}
