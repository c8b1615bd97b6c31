package formatter

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/spelltree/internal/domain"
)

// FormatHistory renders recorded builds, newest first as given.
func FormatHistory(runs []*domain.BuildRun, now time.Time) string {
	if len(runs) == 0 {
		return Dim("No builds recorded yet.") + "\n"
	}

	headers := []string{"ID", "WHEN", "STRATEGY", "SEED", "ITEMS", "SCHOOLS", "NODES", "ELAPSED", "STATUS"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			TruncID(r.ID),
			HumanTimestamp(r.CreatedAt, now),
			StrategyLabel(r.Command),
			strconv.FormatInt(r.Seed, 10),
			strconv.Itoa(r.ItemCount),
			strconv.Itoa(r.SchoolCount),
			strconv.Itoa(r.ReachableNodes) + "/" + strconv.Itoa(r.TotalNodes),
			FormatElapsed(r.ElapsedMs),
			ValidityIndicator(r.AllValid, false),
		})
	}
	return RenderTable(headers, rows)
}

// FormatRun renders one recorded build with its per-category rows.
func FormatRun(r *domain.BuildRun) string {
	pairs := [][2]string{
		{"id", r.ID},
		{"created", r.CreatedAt.Local().Format("Jan 2, 2006 15:04:05")},
		{"strategy", StrategyLabel(r.Command)},
		{"seed", strconv.FormatInt(r.Seed, 10)},
		{"items", strconv.Itoa(r.ItemCount)},
		{"reachable", RenderReachability(r.ReachableNodes, r.TotalNodes, 20)},
		{"status", ValidityIndicator(r.AllValid, false)},
		{"elapsed", FormatElapsed(r.ElapsedMs)},
	}
	if r.LLMMode != "" {
		pairs = append(pairs, [2]string{"llm mode", LLMModeBadge(r.LLMMode)})
	}
	if r.InputPath != "" {
		pairs = append(pairs, [2]string{"input", r.InputPath})
	}
	if r.OutputPath != "" {
		pairs = append(pairs, [2]string{"output", r.OutputPath})
	}

	var b strings.Builder
	b.WriteString(KeyValue(pairs))

	if len(r.Schools) > 0 {
		headers := []string{"SCHOOL", "ROOT", "LAYOUT", "NODES", "REACHABLE", "STATUS"}
		rows := make([][]string, 0, len(r.Schools))
		for _, s := range r.Schools {
			rows = append(rows, []string{
				SchoolStyle(s.School, "").Render(s.School),
				s.Root,
				Dim(s.LayoutStyle),
				strconv.Itoa(s.TotalNodes),
				strconv.Itoa(s.ReachableNodes),
				ValidityIndicator(s.Valid, s.RepairIncomplete),
			})
		}
		b.WriteString("\n\n")
		b.WriteString(strings.TrimRight(RenderTable(headers, rows), "\n"))
	}
	return RenderBox("build "+r.DisplayID(), b.String())
}
