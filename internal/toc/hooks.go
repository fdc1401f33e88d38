package toc

// BeforeBuildEvent is dispatched before any row is fetched.
// Callbacks may replace PageIDs or Config; the final values drive the build.
type BeforeBuildEvent struct {
	PageIDs []int
	Config  Configuration
}

// ItemFilterEvent is dispatched for every candidate entry during traversal.
type ItemFilterEvent struct {
	entry   Entry
	row     Row
	skipped bool
}

// Entry returns the current candidate.
func (e *ItemFilterEvent) Entry() Entry { return e.entry }

// SetEntry replaces the candidate.
func (e *ItemFilterEvent) SetEntry(entry Entry) { e.entry = entry }

// Row returns the raw row the candidate was mapped from.
func (e *ItemFilterEvent) Row() Row { return e.row }

// Skip drops the candidate from the result. Descent into its children is unaffected.
func (e *ItemFilterEvent) Skip() { e.skipped = true }

// Skipped reports whether a callback dropped the candidate.
func (e *ItemFilterEvent) Skipped() bool { return e.skipped }

// AfterBuildEvent is dispatched with the complete, unsorted result.
// Callbacks may replace Entries wholesale.
type AfterBuildEvent struct {
	PageIDs []int
	Config  Configuration
	Entries []Entry
}

// Hooks holds the extension callbacks of a build. Callbacks run synchronously
// in slice order. A nil *Hooks is valid and does nothing.
type Hooks struct {
	BeforeBuild []func(*BeforeBuildEvent)
	FilterItem  []func(*ItemFilterEvent)
	AfterBuild  []func(*AfterBuildEvent)
}

// OnBeforeBuild appends a before-build callback and returns h for chaining.
func (h *Hooks) OnBeforeBuild(fn func(*BeforeBuildEvent)) *Hooks {
	h.BeforeBuild = append(h.BeforeBuild, fn)
	return h
}

// OnFilterItem appends a per-item callback and returns h for chaining.
func (h *Hooks) OnFilterItem(fn func(*ItemFilterEvent)) *Hooks {
	h.FilterItem = append(h.FilterItem, fn)
	return h
}

// OnAfterBuild appends an after-build callback and returns h for chaining.
func (h *Hooks) OnAfterBuild(fn func(*AfterBuildEvent)) *Hooks {
	h.AfterBuild = append(h.AfterBuild, fn)
	return h
}

func (h *Hooks) dispatchBeforeBuild(ev *BeforeBuildEvent) {
	if h == nil {
		return
	}
	for _, fn := range h.BeforeBuild {
		fn(ev)
	}
}

func (h *Hooks) dispatchFilterItem(ev *ItemFilterEvent) {
	if h == nil {
		return
	}
	for _, fn := range h.FilterItem {
		fn(ev)
	}
}

func (h *Hooks) dispatchAfterBuild(ev *AfterBuildEvent) {
	if h == nil {
		return
	}
	for _, fn := range h.AfterBuild {
		fn(ev)
	}
}
