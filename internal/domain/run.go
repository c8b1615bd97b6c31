package domain

import "time"

// BuildRun is one recorded build in the local history.
type BuildRun struct {
	ID             string
	Command        string
	Seed           int64
	ItemCount      int
	SchoolCount    int
	TotalNodes     int
	ReachableNodes int
	AllValid       bool
	LLMMode        string
	ElapsedMs      int64
	InputPath      string
	OutputPath     string
	CreatedAt      time.Time
	Schools        []RunSchool
}

// RunSchool is the per-category line of a recorded build.
type RunSchool struct {
	School           string
	Root             string
	LayoutStyle      string
	TotalNodes       int
	ReachableNodes   int
	Valid            bool
	RepairIncomplete bool
}

// DisplayID returns the first eight characters of the run id.
func (r *BuildRun) DisplayID() string {
	if len(r.ID) >= 8 {
		return r.ID[:8]
	}
	return r.ID
}

// NewBuildRun summarizes a finished build for the history store.
// Schools are listed in sorted name order.
func NewBuildRun(tree *TreeData, itemCount int, elapsedMs int64) *BuildRun {
	run := &BuildRun{
		Command:        tree.Command,
		Seed:           tree.Seed,
		ItemCount:      itemCount,
		SchoolCount:    len(tree.Schools),
		TotalNodes:     tree.Validation.TotalNodes,
		ReachableNodes: tree.Validation.ReachableNodes,
		AllValid:       tree.Validation.AllValid,
		LLMMode:        tree.LLMMode,
		ElapsedMs:      elapsedMs,
	}
	for _, name := range SortedSchoolNames(tree.Schools) {
		st := tree.Schools[name]
		v := tree.Validation.Schools[name]
		run.Schools = append(run.Schools, RunSchool{
			School:           name,
			Root:             st.Root,
			LayoutStyle:      st.LayoutStyle,
			TotalNodes:       v.TotalNodes,
			ReachableNodes:   v.ReachableNodes,
			Valid:            v.Valid,
			RepairIncomplete: v.RepairIncomplete,
		})
	}
	return run
}
