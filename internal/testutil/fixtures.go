package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/spelltree/internal/domain"
)

// Item options
type ItemOption func(*domain.Item)

func WithDescription(d string) ItemOption {
	return func(it *domain.Item) {
		it.Description = d
	}
}

func WithEffects(names ...string) ItemOption {
	return func(it *domain.Item) {
		it.EffectNames = append(it.EffectNames, names...)
		for _, n := range names {
			it.Effects = append(it.Effects, domain.Effect{Name: n})
		}
	}
}

func WithCost(c float64) ItemOption {
	return func(it *domain.Item) {
		it.MagickaCost = c
	}
}

func WithKeywords(kw ...string) ItemOption {
	return func(it *domain.Item) {
		it.Keywords = append(it.Keywords, kw...)
	}
}

func WithLLMKeyword(kw, parent string) ItemOption {
	return func(it *domain.Item) {
		it.LLMKeyword = kw
		it.LLMKeywordParent = parent
	}
}

func NewTestItem(id, name, school, tier string, opts ...ItemOption) domain.Item {
	it := domain.Item{
		FormID:     id,
		Name:       name,
		School:     school,
		SkillLevel: tier,
	}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}

// DestructionItems is a fifteen item category spread over every tier with
// fire, frost and shock families.
func DestructionItems() []domain.Item {
	const s = "Destruction"
	return []domain.Item{
		NewTestItem("0x00012FCD", "Flames", s, "Novice", WithEffects("Fire Damage"), WithCost(14), WithDescription("A gout of fire that burns the target")),
		NewTestItem("0x0002B96B", "Frostbite", s, "Novice", WithEffects("Frost Damage"), WithCost(16), WithDescription("A blast of cold that drains stamina")),
		NewTestItem("0x0002DD2A", "Sparks", s, "Novice", WithEffects("Shock Damage"), WithCost(17), WithDescription("Lightning that drains magicka")),
		NewTestItem("0x00012FD0", "Firebolt", s, "Apprentice", WithEffects("Fire Damage"), WithCost(41), WithDescription("A bolt of fire that burns the target")),
		NewTestItem("0x0002B96C", "Ice Spike", s, "Apprentice", WithEffects("Frost Damage"), WithCost(48), WithDescription("A spike of ice that drains stamina")),
		NewTestItem("0x0002DDA2", "Lightning Bolt", s, "Apprentice", WithEffects("Shock Damage"), WithCost(52), WithDescription("A bolt of lightning that drains magicka")),
		NewTestItem("0x0001C789", "Fireball", s, "Adept", WithEffects("Fire Damage"), WithCost(133), WithDescription("A fiery explosion that burns targets")),
		NewTestItem("0x0001C78A", "Ice Storm", s, "Adept", WithEffects("Frost Damage"), WithCost(144), WithDescription("A freezing whirlwind of ice")),
		NewTestItem("0x0001C78B", "Chain Lightning", s, "Adept", WithEffects("Shock Damage"), WithCost(157), WithDescription("Lightning that leaps between targets")),
		NewTestItem("0x0010F7EC", "Incinerate", s, "Expert", WithEffects("Fire Damage"), WithCost(201), WithDescription("A blast of fire that ignites the target")),
		NewTestItem("0x0010F7ED", "Icy Spear", s, "Expert", WithEffects("Frost Damage"), WithCost(213), WithDescription("A spear of ice that drains stamina")),
		NewTestItem("0x0010F7EE", "Thunderbolt", s, "Expert", WithEffects("Shock Damage"), WithCost(226), WithDescription("A thunderbolt that drains magicka")),
		NewTestItem("0x0007E8E1", "Fire Storm", s, "Master", WithEffects("Fire Damage"), WithCost(1069), WithDescription("A massive blast of fire around the caster")),
		NewTestItem("0x0007E8E2", "Blizzard", s, "Master", WithEffects("Frost Damage"), WithCost(1111), WithDescription("A freezing storm of ice around the caster")),
		NewTestItem("0x0007E8E3", "Lightning Storm", s, "Master", WithEffects("Shock Damage"), WithCost(1288), WithDescription("A beam of lightning that drains magicka")),
	}
}

// GeneratedItems returns n items of school cycling through the tiers.
func GeneratedItems(school string, n int) []domain.Item {
	families := []string{"Ward", "Heal", "Light", "Turn"}
	out := make([]domain.Item, 0, n)
	for i := range n {
		fam := families[i%len(families)]
		tier := domain.Tiers[(i/len(families))%len(domain.Tiers)]
		out = append(out, NewTestItem(
			fmt.Sprintf("0x%08X", 0x00020000+i),
			fmt.Sprintf("%s %s %d", tier, fam, i),
			school,
			tier,
			WithEffects(fam+" Effect"),
			WithCost(float64(10+i)),
			WithDescription(fmt.Sprintf("A %s spell of the %s family", tier, fam)),
		))
	}
	return out
}

// Run options
type RunOption func(*domain.BuildRun)

func WithRunSeed(seed int64) RunOption {
	return func(r *domain.BuildRun) {
		r.Seed = seed
	}
}

func WithCreatedAt(t time.Time) RunOption {
	return func(r *domain.BuildRun) {
		r.CreatedAt = t
	}
}

func WithRunSchools(schools ...domain.RunSchool) RunOption {
	return func(r *domain.BuildRun) {
		r.Schools = schools
		r.SchoolCount = len(schools)
	}
}

// NewTestRun returns a valid single-school run. The ID is left empty so
// the repository assigns one.
func NewTestRun(command string, opts ...RunOption) *domain.BuildRun {
	r := &domain.BuildRun{
		Command:        command,
		Seed:           42,
		ItemCount:      15,
		SchoolCount:    1,
		TotalNodes:     15,
		ReachableNodes: 15,
		AllValid:       true,
		ElapsedMs:      3,
		InputPath:      "spells.json",
		OutputPath:     "tree.json",
		CreatedAt:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Schools: []domain.RunSchool{{
			School: "Destruction", Root: "0x00012FCD", LayoutStyle: "graph_arborescence",
			TotalNodes: 15, ReachableNodes: 15, Valid: true,
		}},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}
