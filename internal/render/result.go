package render

// OpResult records what happened to one operation.
type OpResult struct {
	Index int    `json:"index"`
	Rule  string `json:"rule"`
	Line  string `json:"line"`
	Err   error  `json:"-"`
}

func (r OpResult) Failed() bool {
	return r.Err != nil
}

// Result holds the output of a conversion together with the per-operation
// outcome. Markdown is the intermediate markdown text for dialects that
// render through it; for the markdown dialect it equals Output.
type Result struct {
	Output   string     `json:"output"`
	Markdown string     `json:"markdown"`
	Ops      []OpResult `json:"ops"`
}

func (r *Result) Failures() []OpResult {
	if r == nil {
		return nil
	}
	out := make([]OpResult, 0)
	for _, op := range r.Ops {
		if op.Failed() {
			out = append(out, op)
		}
	}
	return out
}

func (r *Result) HasFailures() bool {
	return len(r.Failures()) > 0
}
