package selector

// SegmentInfo is a serializable view of one parsed segment.
type SegmentInfo struct {
	Engine     string `yaml:"engine"            json:"engine"`
	Combinator string `yaml:"combinator"        json:"combinator"`
	Capture    bool   `yaml:"capture,omitempty" json:"capture,omitempty"`
	Raw        string `yaml:"raw"               json:"raw"`
	Body       string `yaml:"body,omitempty"    json:"body,omitempty"`
	Offset     int    `yaml:"offset"            json:"offset"`
}

// ExplainResult describes how a selector tokenized, without resolving it.
type ExplainResult struct {
	Selector string        `yaml:"selector"                 json:"selector"`
	Segments []SegmentInfo `yaml:"segments"                 json:"segments"`
	// CaptureIndex is the segment whose results the query returns, -1 when
	// the final segment's results are returned.
	CaptureIndex int `yaml:"capture_index" json:"capture_index"`
	// ExtraCaptures lists offsets of capture markers beyond the first,
	// which parse but have no effect.
	ExtraCaptures []int `yaml:"extra_captures,omitempty" json:"extra_captures,omitempty"`
}

// Explain parses a selector and reports its segments. Useful for debugging
// why a selector matches or fails without touching a snapshot.
func Explain(sel string) (*ExplainResult, error) {
	q, err := Parse(sel)
	if err != nil {
		return nil, err
	}
	result := &ExplainResult{
		Selector:      sel,
		CaptureIndex:  q.CaptureIndex(),
		ExtraCaptures: q.ExtraCaptures,
	}
	for _, seg := range q.Segments {
		result.Segments = append(result.Segments, SegmentInfo{
			Engine:     seg.Engine.String(),
			Combinator: seg.Combinator.String(),
			Capture:    seg.Capture,
			Raw:        seg.Raw,
			Body:       seg.Body,
			Offset:     seg.Offset,
		})
	}
	return result, nil
}
