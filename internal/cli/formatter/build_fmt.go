package formatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/spelltree/internal/app"
	"github.com/alexanderramin/spelltree/internal/domain"
)

// FormatBuildSummary renders the box printed after `spelltree build`.
func FormatBuildSummary(tree *domain.TreeData, elapsedMs int64, runID string) string {
	v := tree.Validation
	pairs := [][2]string{
		{"strategy", StrategyLabel(tree.Command)},
		{"seed", strconv.FormatInt(tree.Seed, 10)},
	}
	if tree.LLMMode != "" {
		pairs = append(pairs, [2]string{"llm mode", LLMModeBadge(tree.LLMMode)})
	}
	pairs = append(pairs,
		[2]string{"reachable", RenderReachability(v.ReachableNodes, v.TotalNodes, 20)},
		[2]string{"status", ValidityIndicator(v.AllValid, v.RepairIncomplete)},
		[2]string{"elapsed", FormatElapsed(elapsedMs)},
	)
	if runID != "" {
		pairs = append(pairs, [2]string{"run", TruncID(runID)})
	}

	var b strings.Builder
	b.WriteString(KeyValue(pairs))
	b.WriteString("\n\n")
	b.WriteString(strings.TrimRight(schoolTable(tree), "\n"))
	return RenderBox("build summary", b.String())
}

func schoolTable(tree *domain.TreeData) string {
	headers := []string{"SCHOOL", "LAYOUT", "NODES", "REACHABLE", "DEPTH", "WIDEST", "STATUS"}
	var rows [][]string
	for _, name := range domain.SortedSchoolNames(tree.Schools) {
		st := tree.Schools[name]
		depth, widest := st.Shape()
		sv, ok := tree.Validation.Schools[name]
		reachable, status := "-", Dim("unchecked")
		if ok {
			reachable = strconv.Itoa(sv.ReachableNodes)
			status = ValidityIndicator(sv.Valid, sv.RepairIncomplete)
		}
		rows = append(rows, []string{
			SchoolStyle(name, st.Color).Render(name),
			Dim(st.LayoutStyle),
			strconv.Itoa(len(st.Nodes)),
			reachable,
			strconv.Itoa(depth),
			strconv.Itoa(widest),
			status,
		})
	}
	return RenderTable(headers, rows)
}

// FormatCompare renders one row per strategy run by `spelltree compare`.
func FormatCompare(resp *app.CompareResponse) string {
	headers := []string{"STRATEGY", "SCHOOLS", "NODES", "REACHABLE", "MAX DEPTH", "WIDEST", "ELAPSED", "STATUS"}
	rows := make([][]string, 0, len(resp.Rows))
	for _, r := range resp.Rows {
		if !r.Success {
			rows = append(rows, []string{
				StrategyLabel(r.Command), "-", "-", "-", "-", "-",
				FormatElapsed(r.Elapsed.Milliseconds()),
				StyleRed.Render("✖ " + r.Error),
			})
			continue
		}
		rows = append(rows, []string{
			StrategyLabel(r.Command),
			strconv.Itoa(r.Schools),
			strconv.Itoa(r.TotalNodes),
			strconv.Itoa(r.ReachableNodes),
			strconv.Itoa(r.MaxDepth),
			strconv.Itoa(r.WidestNode),
			FormatElapsed(r.Elapsed.Milliseconds()),
			ValidityIndicator(r.AllValid, false),
		})
	}

	var b strings.Builder
	b.WriteString(Header("Strategy comparison"))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("seed %d", resp.Seed)))
	b.WriteString("\n\n")
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

// maxListed caps how many unreachable ids a validation report spells out.
const maxListed = 5

// FormatValidation renders the per-category result of `spelltree validate`.
func FormatValidation(v domain.ValidationSummary) string {
	var b strings.Builder
	b.WriteString(Header("Validation"))
	b.WriteString("\n")

	names := make([]string, 0, len(v.Schools))
	for name := range v.Schools {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sv := v.Schools[name]
		fmt.Fprintf(&b, "%s  %s  %s",
			SchoolStyle(name, "").Render(name),
			ValidityIndicator(sv.Valid, sv.RepairIncomplete),
			RenderReachability(sv.ReachableNodes, sv.TotalNodes, 12),
		)
		if sv.Cycles > 0 {
			b.WriteString("  " + StyleRed.Render(fmt.Sprintf("%d cycle(s)", sv.Cycles)))
		}
		b.WriteString("\n")

		if len(sv.Unreachable) > 0 {
			listed := sv.Unreachable
			more := ""
			if len(listed) > maxListed {
				more = fmt.Sprintf(" (+%d more)", len(listed)-maxListed)
				listed = listed[:maxListed]
			}
			b.WriteString("  " + Dim("unreachable: "+strings.Join(listed, ", ")+more) + "\n")
		}
		for _, w := range sv.Warnings {
			b.WriteString("  " + StyleYellow.Render("! "+w) + "\n")
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s\n",
		ValidityIndicator(v.AllValid, v.RepairIncomplete),
		RenderReachability(v.ReachableNodes, v.TotalNodes, 20),
	)
	return b.String()
}
