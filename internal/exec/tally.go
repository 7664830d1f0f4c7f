package exec

// outcome is the terminal state of one per-file operation.
type outcome int

const (
	outcomeSucceeded outcome = iota
	outcomeSkipped
	outcomeFailed
)

// fileResult is what a per-file operation returns: the file it worked on,
// how it ended, and the classified error for failures.
type fileResult struct {
	relPath string
	outcome outcome
	err     error
}

// Tally counts per-file outcomes for one pass over the input tree.
// Succeeded + Skipped + Failed always equals Found.
type Tally struct {
	Found     int
	Succeeded int
	Skipped   int
	Failed    int
}

// record folds one file result into the tally.
func (t *Tally) record(res fileResult) {
	t.Found++

	switch res.outcome {
	case outcomeSucceeded:
		t.Succeeded++
	case outcomeSkipped:
		t.Skipped++
	case outcomeFailed:
		t.Failed++
	}
}
