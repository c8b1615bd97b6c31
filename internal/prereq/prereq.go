// Package prereq scores candidate prerequisites for single items. It backs
// the lock-assignment flow where the caller already has a shortlist of
// nearby nodes and wants the most related one.
package prereq

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/alexanderramin/spelltree/internal/similarity"
	"github.com/alexanderramin/spelltree/internal/textmodel"
)

// DefaultTopN is how many ranked candidates a score keeps.
const DefaultTopN = 5

// PoolNearby blends text similarity with graph distance.
const PoolNearby = "nearby"

// Subject is the item that needs a prerequisite.
type Subject struct {
	Name        string   `json:"name"`
	Description string   `json:"desc"`
	Effects     []string `json:"effects"`
}

// Candidate is one possible prerequisite. Distance is the graph distance
// from the subject; nil counts as the maximum distance.
type Candidate struct {
	NodeID      string   `json:"nodeId"`
	Name        string   `json:"name"`
	Description string   `json:"desc"`
	Effects     []string `json:"effects"`
	Distance    *float64 `json:"distance,omitempty"`
}

// Settings controls proximity blending.
type Settings struct {
	ProximityBias float64 `json:"proximityBias"`
	PoolSource    string  `json:"poolSource"`
	MaxDistance   float64 `json:"distance"`
}

// DefaultSettings returns bias 0.5, pool "nearby" and distance 5.
func DefaultSettings() Settings {
	return Settings{ProximityBias: 0.5, PoolSource: PoolNearby, MaxDistance: 5}
}

// UnmarshalJSON keeps defaults for absent keys.
func (s *Settings) UnmarshalJSON(data []byte) error {
	type plain Settings
	p := plain(DefaultSettings())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Settings(p)
	return nil
}

// CandidateScore is one ranked candidate.
type CandidateScore struct {
	NodeID string  `json:"nodeId"`
	Score  float64 `json:"score"`
}

// Result is the ranking for one subject.
type Result struct {
	SpellID       string           `json:"spellId"`
	BestMatch     string           `json:"bestMatch"`
	Score         float64          `json:"score"`
	TopCandidates []CandidateScore `json:"topCandidates"`
}

func textOf(name, desc string, effects []string) string {
	parts := []string{name, name, desc}
	parts = append(parts, effects...)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// Score ranks candidates against subject by TF-IDF cosine over a corpus of
// the subject plus every candidate. In the nearby pool with a positive
// bias the score becomes (1-bias)*cos + bias*max(0, 1-distance/max).
// Scores are rounded to four decimals and sorted descending; ties keep
// input order. It returns nil when there are no candidates.
func Score(subject Subject, candidates []Candidate, settings Settings, topN int) *Result {
	if len(candidates) == 0 {
		return nil
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	docs := make([][]string, 0, len(candidates)+1)
	docs = append(docs, textmodel.Tokenize(textOf(subject.Name, subject.Description, subject.Effects)))
	for _, c := range candidates {
		docs = append(docs, textmodel.Tokenize(textOf(c.Name, c.Description, c.Effects)))
	}
	vecs := similarity.ComputeTfIdf(docs)

	blend := settings.PoolSource == PoolNearby && settings.ProximityBias > 0
	scored := make([]CandidateScore, len(candidates))
	for i, c := range candidates {
		s := similarity.CosineSimilarity(vecs[0], vecs[i+1])
		if blend {
			s = (1-settings.ProximityBias)*s + settings.ProximityBias*proximity(c.Distance, settings.MaxDistance)
		}
		scored[i] = CandidateScore{NodeID: c.NodeID, Score: round4(s)}
	}
	sort.SliceStable(scored, func(a, b int) bool { return scored[a].Score > scored[b].Score })

	top := scored[:min(topN, len(scored))]
	return &Result{
		BestMatch:     top[0].NodeID,
		Score:         top[0].Score,
		TopCandidates: top,
	}
}

func proximity(distance *float64, maxDistance float64) float64 {
	if maxDistance <= 0 {
		return 0
	}
	d := maxDistance
	if distance != nil {
		d = *distance
	}
	return max(0, 1-d/maxDistance)
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// Pair is one subject with its candidate shortlist.
type Pair struct {
	SpellID    string      `json:"spellId"`
	Spell      Subject     `json:"spell"`
	Candidates []Candidate `json:"candidates"`
}

// Request is a batch scoring request.
type Request struct {
	Pairs    []Pair   `json:"pairs"`
	Settings Settings `json:"settings"`
}

// Response is the batch reply. Pairs without candidates are left out.
type Response struct {
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
	Scores  []Result `json:"scores"`
	Count   int      `json:"count"`
}

// ProcessRequest decodes and scores a request. Malformed JSON is reported
// in the response rather than as a Go error.
func ProcessRequest(data []byte) Response {
	req := Request{Settings: DefaultSettings()}
	if err := json.Unmarshal(data, &req); err != nil {
		return Response{Success: false, Error: fmt.Sprintf("Invalid JSON: %v", err), Scores: []Result{}}
	}
	return Process(req)
}

// Process scores every pair of an already decoded request.
func Process(req Request) Response {
	scores := []Result{}
	for _, p := range req.Pairs {
		r := Score(p.Spell, p.Candidates, req.Settings, DefaultTopN)
		if r == nil {
			continue
		}
		r.SpellID = p.SpellID
		scores = append(scores, *r)
	}
	return Response{Success: true, Scores: scores, Count: len(scores)}
}
