package intelligence

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/spelltree/internal/domain"
)

const chainSystemPrompt = "You are a game design AI that outputs only valid JSON."

const (
	maxPromptEffects = 3
	maxPromptDesc    = 60
)

// BuildChainPrompt lists one batch of a school's spells and asks for 3-8
// ordered learning chains that cover every id exactly once.
func BuildChainPrompt(school string, batch []domain.Item) string {
	var spells strings.Builder
	for _, it := range batch {
		name := it.Name
		if name == "" {
			name = it.FormID
		}
		tier := it.SkillLevel
		if tier == "" {
			tier = "?"
		}
		fmt.Fprintf(&spells, "  - id=%q name=%q tier=%s", it.FormID, name, tier)
		if effs := promptEffects(it); len(effs) > 0 {
			fmt.Fprintf(&spells, " effects=[%s]", strings.Join(effs, ", "))
		}
		if desc := truncate(it.Description, maxPromptDesc); desc != "" {
			fmt.Fprintf(&spells, " desc=%q", desc)
		}
		spells.WriteByte('\n')
	}

	firstID := "0x000"
	if len(batch) > 0 {
		firstID = batch[0].FormID
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a Skyrim spell taxonomy expert. These are %s spells. ", school)
	fmt.Fprintf(&b, "Group them into thematic learning chains within the %s school.\n\n", school)
	b.WriteString("Group these spells into 3-8 thematic learning chains. Order each chain from\n")
	b.WriteString("simplest/most fundamental to most advanced. Every spell must belong to\n")
	b.WriteString("exactly one chain. Each chain should represent a coherent progression\n")
	b.WriteString("(e.g., \"Fire Mastery\": Flames -> Fire Rune -> Fireball -> Incinerate).\n\n")
	b.WriteString("SPELLS:\n")
	b.WriteString(spells.String())
	b.WriteString("\nReturn ONLY valid JSON in this exact format (no explanation):\n")
	b.WriteString("{\n  \"chains\": [\n    {\n")
	b.WriteString("      \"name\": \"Chain Theme Name\",\n")
	b.WriteString("      \"narrative\": \"Brief 1-sentence learning progression description\",\n")
	fmt.Fprintf(&b, "      \"spellIds\": [%q, ...]\n", firstID)
	b.WriteString("    }\n  ]\n}\n\n")
	b.WriteString("RULES:\n")
	b.WriteString("- Every spell ID from the list above MUST appear in exactly one chain\n")
	b.WriteString("- Order spells within each chain from easiest (Novice) to hardest (Master)\n")
	b.WriteString("- 3-8 chains total\n")
	b.WriteString("- Chain names should be evocative (e.g., \"Pyromancer's Path\", \"Frost Mastery\")\n")
	b.WriteString("- Return ONLY the JSON object")
	return b.String()
}

// promptEffects prefers the explicit effectNames list and falls back to
// the effect records.
func promptEffects(it domain.Item) []string {
	names := it.EffectNames
	if len(names) == 0 {
		names = it.EffectLabels()
	}
	var out []string
	for _, n := range names {
		if n == "" {
			continue
		}
		out = append(out, n)
		if len(out) == maxPromptEffects {
			break
		}
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
