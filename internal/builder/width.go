package builder

import "github.com/alexanderramin/spelltree/internal/domain"

// treeWidth is the branching width of the classic, tree and thematic
// builders: a "sun" layout with few points per category narrows to 2, a
// dense "flat" layout widens to 4.
func treeWidth(cfg domain.BuildConfig) int {
	w := cfg.MaxChildrenPerNode
	if h := cfg.GridHint; h != nil {
		switch {
		case h.Mode == "sun" && w > 2 && h.AvgPointsPerSchool < 40:
			w = 2
		case h.Mode == "flat" && w < 4 && h.AvgPointsPerSchool > 60:
			w = 4
		}
	}
	return w
}

// graphWidth applies the same hint one step wider.
func graphWidth(cfg domain.BuildConfig) int {
	w := cfg.MaxChildrenPerNode
	if h := cfg.GridHint; h != nil {
		switch {
		case h.Mode == "sun" && w > 3 && h.AvgPointsPerSchool < 40:
			w = 3
		case h.Mode == "flat" && w < 5 && h.AvgPointsPerSchool > 60:
			w = 5
		}
	}
	return w
}

// oracleWidth ignores the hint; chains are sequential and only heads and
// leftovers compete for capacity.
func oracleWidth(cfg domain.BuildConfig) int {
	return cfg.MaxChildrenPerNode
}
