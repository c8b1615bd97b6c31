package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderReachability draws reachable/total as a bar like [████░░░░] 12/16.
// Anything short of full coverage is red, since an unreachable node is a
// broken tree.
func RenderReachability(reachable, total, width int) string {
	width = max(width, 2)
	if total <= 0 {
		return fmt.Sprintf("[%s] 0/0", StyleDim.Render(strings.Repeat(emptyBlock, width)))
	}
	reachable = min(max(reachable, 0), total)

	filled := reachable * width / total
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if reachable < total {
		style = StyleRed
	}
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), reachable, total)
}
