package selector

// Engine identifies which matching engine interprets a segment body. The
// set is closed: resolver dispatch is an exhaustive switch over it.
type Engine int

const (
	EngineCSS Engine = iota
	EngineClass
	EngineName
	EngineText
	EngineIndex
	EngineXPath
	EngineID
	EngineContainer
)

func (e Engine) String() string {
	switch e {
	case EngineCSS:
		return "css"
	case EngineClass:
		return "class"
	case EngineName:
		return "name"
	case EngineText:
		return "text"
	case EngineIndex:
		return "index"
	case EngineXPath:
		return "xpath"
	case EngineID:
		return "id"
	case EngineContainer:
		return "container"
	default:
		return "unknown"
	}
}

// enginePrefixes maps the keyword before "=" to its engine.
var enginePrefixes = map[string]Engine{
	"class": EngineClass,
	"name":  EngineName,
	"text":  EngineText,
	"index": EngineIndex,
	"xpath": EngineXPath,
	"id":    EngineID,
}

// Combinator relates a segment to the results of the previous segment.
type Combinator int

const (
	// CombinatorDescendant: ">>" or bare whitespace. Candidates are all
	// descendants of the previous results.
	CombinatorDescendant Combinator = iota
	// CombinatorChild: ">". Candidates are direct children only.
	CombinatorChild
)

func (c Combinator) String() string {
	if c == CombinatorChild {
		return ">"
	}
	return ">>"
}

// Segment is one step of a cascaded selector.
type Segment struct {
	Engine     Engine
	Combinator Combinator
	Capture    bool
	Body       string // Engine body, without prefix or capture marker
	Raw        string // Original segment text
	Offset     int    // Byte offset of Raw within the selector

	// Compiled forms, populated at parse time per engine.
	css       *cssCompound
	text      *textPattern
	index     int
	xpath     []xpathStep
	container *containerExpr
}

// Query is a parsed cascaded selector.
type Query struct {
	Raw      string
	Segments []Segment
	// ExtraCaptures holds offsets of capture markers after the first one.
	// They parse fine but only the first capture takes effect; callers can
	// surface them as a diagnostic.
	ExtraCaptures []int
}

// CaptureIndex returns the index of the segment whose results the query
// captures, or -1 when no segment is marked.
func (q *Query) CaptureIndex() int {
	for i := range q.Segments {
		if q.Segments[i].Capture {
			return i
		}
	}
	return -1
}
