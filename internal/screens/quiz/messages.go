package quiz

// advanceMsg fires the deferred auto-advance. Seq must match the screen's
// current token; any other action bumps the token so a stale timer can't
// swap the question out from under the learner.
type advanceMsg struct {
	Seq int
}
