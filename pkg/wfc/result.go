package wfc

// BanResult is the outcome of Engine.Ban.
type BanResult uint8

const (
	// BanNoop means the pattern was already impossible at the cell.
	BanNoop BanResult = iota
	// BanContradiction means the cell has no possible pattern left.
	BanContradiction
	// BanOK means the ban applied and the cell still has options.
	BanOK
)

func (r BanResult) String() string {
	switch r {
	case BanNoop:
		return "noop"
	case BanContradiction:
		return "contradiction"
	case BanOK:
		return "ok"
	}
	return "unknown"
}

// Status is the outcome of Observe, ForceObserve and Step.
type Status uint8

const (
	// StatusContinue means more work remains.
	StatusContinue Status = iota
	// StatusSuccess means every cell is determined.
	StatusSuccess
	// StatusFailure means a contradiction was found or the request was a no-op.
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusContinue:
		return "continue"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	}
	return "unknown"
}

// Outcome is the result of Run and Resume.
type Outcome uint8

const (
	// OutcomeSolved means every cell was determined.
	OutcomeSolved Outcome = iota
	// OutcomeFailed means the run hit a contradiction.
	OutcomeFailed
	// OutcomeIncomplete means the step budget ran out first.
	OutcomeIncomplete
)

// OK reports whether the run ended without contradiction.
func (o Outcome) OK() bool { return o != OutcomeFailed }

func (o Outcome) String() string {
	switch o {
	case OutcomeSolved:
		return "solved"
	case OutcomeFailed:
		return "failed"
	case OutcomeIncomplete:
		return "incomplete"
	}
	return "unknown"
}
