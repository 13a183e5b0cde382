package service

import "log/slog"

// Tally counts the outcomes of a batch operation.
// Every attempted record ends up in exactly one of the other three counters.
type Tally struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// Succeed records a successful record.
func (t *Tally) Succeed() {
	t.Attempted++
	t.Succeeded++
}

// Skip records a record left out on purpose (unresolvable or malformed).
func (t *Tally) Skip() {
	t.Attempted++
	t.Skipped++
}

// Fail records a record whose write failed.
func (t *Tally) Fail() {
	t.Attempted++
	t.Failed++
}

// Add folds other into t.
func (t *Tally) Add(other Tally) {
	t.Attempted += other.Attempted
	t.Succeeded += other.Succeeded
	t.Skipped += other.Skipped
	t.Failed += other.Failed
}

// LogValue renders the tally as a slog group.
func (t Tally) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("attempted", t.Attempted),
		slog.Int("succeeded", t.Succeeded),
		slog.Int("skipped", t.Skipped),
		slog.Int("failed", t.Failed),
	)
}
