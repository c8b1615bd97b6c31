package builder

import (
	"context"
	"slices"

	"github.com/alexanderramin/spelltree/internal/affinity"
	"github.com/alexanderramin/spelltree/internal/chains"
	"github.com/alexanderramin/spelltree/internal/domain"
	"go.uber.org/zap"
)

// buildOracle asks the configured ChainGrouper for learning chains in
// batches of batch_size items. Batches the grouper fails on are laid out as
// Cluster Lanes inside the same tree; when every batch fails, or grouping
// is disabled, the whole category becomes a Cluster Lane tree.
func buildOracle(ctx context.Context, s *school) *domain.SchoolTree {
	if !s.init() {
		return nil
	}
	if !s.state.llmEnabled {
		return s.clusterLane()
	}

	grouped, failed := s.groupChains(ctx)
	if len(grouped) == 0 {
		s.log.Warn("chain grouping produced nothing, using cluster lanes")
		s.state.fellBack()
		return s.clusterLane()
	}
	if len(failed) > 0 {
		s.log.Warn("chain grouping failed for part of the category", zap.Int("items", len(failed)))
		s.state.fellBack()
		lanes, _ := laneGroups(failed, s.themes)
		for _, l := range lanes {
			grouped = append(grouped, domain.Chain{
				Name:      laneName(l.theme),
				Narrative: l.theme + " progression lane",
				SpellIDs:  itemIDs(l.items),
			})
		}
	}
	return s.buildFromChains(grouped)
}

// groupChains sends each batch to the grouper under its own timeout. It
// returns the cleaned chains and the items of every batch that failed or
// came back empty. Chains from different batches with similar names are
// merged.
func (s *school) groupChains(ctx context.Context) ([]domain.Chain, []domain.Item) {
	size := max(s.cfg.BatchSize, 1)
	var out []domain.Chain
	var failed []domain.Item
	batches := 0
	for start := 0; start < len(s.items); start += size {
		batch := s.items[start:min(start+size, len(s.items))]
		batches++
		got, err := s.groupBatch(ctx, batch)
		if err != nil {
			s.log.Warn("chain grouping call failed", zap.Int("batch", batches), zap.Error(err))
			failed = append(failed, batch...)
			continue
		}
		if len(got) == 0 {
			s.log.Warn("chain grouping returned no usable chains", zap.Int("batch", batches))
			failed = append(failed, batch...)
			continue
		}
		out = append(out, got...)
	}
	if batches > 1 {
		out = chains.MergeSimilar(out)
	}
	return out, failed
}

func (s *school) groupBatch(ctx context.Context, batch []domain.Item) ([]domain.Chain, error) {
	if t := s.state.opts.LLMTimeout; t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}
	got, err := s.state.opts.Grouper.GroupChains(ctx, s.name, batch)
	if err != nil {
		return nil, err
	}
	return chains.Filter(got, itemIDs(batch)), nil
}

// buildFromChains turns every chain into a path: the easiest member hangs
// off the root and each following member off the previous one. Members
// already placed by an earlier chain are skipped.
func (s *school) buildFromChains(in []domain.Chain) *domain.SchoolTree {
	root := s.rootNode()
	meta := make([]domain.Chain, 0, len(in))
	for _, c := range in {
		var members []domain.Item
		for _, id := range c.SpellIDs {
			if it, ok := s.byID[id]; ok && (id == s.root || !s.connected[id]) {
				members = append(members, it)
			}
		}
		if len(members) == 0 {
			continue
		}
		sortByTierAndCost(members)
		ids := itemIDs(members)
		for _, id := range ids {
			n := s.node(id)
			n.Theme = c.Name
			n.Chain = c.Name
		}

		prev := root
		if head := s.node(ids[0]); head != root {
			s.link(root, head)
			prev = head
		}
		for _, id := range ids[1:] {
			if id == s.root || s.connected[id] {
				continue
			}
			n := s.node(id)
			s.link(prev, n)
			prev = n
		}
		meta = append(meta, domain.Chain{Name: c.Name, Narrative: c.Narrative, SpellIDs: ids})
	}

	s.forceConnect(affinity.ForceConnectWeights(), nil, false)

	return &domain.SchoolTree{
		LayoutStyle: "oracle_llm",
		Color:       domain.SchoolColor(s.name, domain.DefaultSchoolColor),
		Chains:      meta,
		ConfigUsed: s.configUsed("oracle_chains", "oracle_llm", map[string]any{
			"chain_style": s.cfg.ChainStyle,
		}),
	}
}

func itemIDs(items []domain.Item) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.FormID)
	}
	return ids
}

// sortedIDs is itemIDs over a tier and cost ordered copy.
func sortedIDs(items []domain.Item) []string {
	sorted := slices.Clone(items)
	sortByTierAndCost(sorted)
	return itemIDs(sorted)
}
