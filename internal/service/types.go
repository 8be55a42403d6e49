package service

// PairOutcome reports how one subtitle pair fared during a run. A failure
// stays local to its pair: sibling pairs always run to completion.
type PairOutcome struct {
	Base          string
	PrimaryCues   int
	SecondaryCues int
	Matched       int   // pairs with a secondary side
	Inserted      int64 // rows handed to the store
	Violations    int   // containment violations left after a repair run
	Err           error
}

// RunSummary aggregates a full run over the scanned library.
type RunSummary struct {
	Pairs     []PairOutcome
	Unmatched []string
}

// Failed counts pairs that ended in an error.
func (s *RunSummary) Failed() int {
	failed := 0
	for _, outcome := range s.Pairs {
		if outcome.Err != nil {
			failed++
		}
	}
	return failed
}
