package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Effect is one magic effect attached to an item.
type Effect struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Item is an immutable input record. Items are supplied fresh per build
// request and never mutated by the engine.
type Item struct {
	FormID           string   `json:"formId"`
	Name             string   `json:"name"`
	School           string   `json:"school"`
	SkillLevel       string   `json:"skillLevel"`
	Description      string   `json:"description,omitempty"`
	Effects          []Effect `json:"effects,omitempty"`
	EffectNames      []string `json:"effectNames,omitempty"`
	Keywords         []string `json:"keywords,omitempty"`
	MagickaCost      float64  `json:"magickaCost,omitempty"`
	BaseCost         float64  `json:"baseCost,omitempty"`
	LLMKeyword       string   `json:"llm_keyword,omitempty"`
	LLMKeywordParent string   `json:"llm_keyword_parent,omitempty"`
}

// UnmarshalJSON accepts "desc" as an alias for "description" and effects
// given either as objects or as plain names.
func (it *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	var aux struct {
		plain
		Desc    string            `json:"desc"`
		Effects []json.RawMessage `json:"effects"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*it = Item(aux.plain)
	if it.Description == "" {
		it.Description = aux.Desc
	}
	it.Effects = nil
	for i, raw := range aux.Effects {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			continue
		}
		if raw[0] == '"' {
			var name string
			if err := json.Unmarshal(raw, &name); err != nil {
				return fmt.Errorf("effect %d: %w", i, err)
			}
			it.Effects = append(it.Effects, Effect{Name: name})
			continue
		}
		var eff Effect
		if err := json.Unmarshal(raw, &eff); err != nil {
			return fmt.Errorf("effect %d: %w", i, err)
		}
		it.Effects = append(it.Effects, eff)
	}
	return nil
}

// Cost is the tie-break sort key: magicka cost, or base cost when unset.
func (it Item) Cost() float64 {
	if it.MagickaCost != 0 {
		return it.MagickaCost
	}
	return it.BaseCost
}

// Tier returns the zero-based tier index, treating unknown levels as Novice.
func (it Item) Tier() int {
	return TierOf(it.SkillLevel)
}

// EffectLabels returns effect object names followed by the loose
// effectNames list.
func (it Item) EffectLabels() []string {
	out := make([]string, 0, len(it.Effects)+len(it.EffectNames))
	for _, e := range it.Effects {
		if e.Name != "" {
			out = append(out, e.Name)
		}
	}
	for _, n := range it.EffectNames {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
