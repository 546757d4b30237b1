package core

// Restartable is implemented by anything that can replay its intro from the
// beginning, even after it already completed.
type Restartable interface {
	Restart()
}

// Refresher is implemented by views that can re-read their model on demand.
type Refresher interface {
	ForceRefresh()
}
