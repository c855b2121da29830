package credits

import (
	"context"
	"log/slog"
	"sort"
)

// strategy is one search approach in the resolution cascade. Strategies run
// in order; the first to yield a positive-scoring candidate wins.
type strategy struct {
	name string
	run  func(ctx context.Context, q Query) ([]ScoredCandidate, error)
}

// strategies returns the ordered resolution cascade for q. The order is:
// grouped search with year, grouped without year, release search with year,
// release without year, and a grouped retry with the normalized title when
// normalization changes it.
func (s *Service) strategies(q Query) []strategy {
	list := []strategy{
		{name: "group", run: s.searchGroups(q.Title, true)},
	}
	if q.Year != 0 {
		list = append(list, strategy{name: "group-no-year", run: s.searchGroups(q.Title, false)})
	}
	list = append(list, strategy{name: "release", run: s.searchReleases(q.Title, true)})
	if q.Year != 0 {
		list = append(list, strategy{name: "release-no-year", run: s.searchReleases(q.Title, false)})
	}
	if stripped := Normalize(q.Title); stripped != "" && stripped != q.Title {
		list = append(list, strategy{name: "group-normalized", run: s.searchGroups(stripped, true)})
	}
	return list
}

// searchGroups builds a work-group search strategy for the given title,
// optionally constrained by the query year. Work-groups typed as albums get
// a small bonus.
func (s *Service) searchGroups(title string, withYear bool) func(context.Context, Query) ([]ScoredCandidate, error) {
	return func(ctx context.Context, q Query) ([]ScoredCandidate, error) {
		year := 0
		if withYear {
			year = q.Year
		}
		cands, err := s.mb.SearchReleaseGroups(ctx, title, q.Artist, year)
		if err != nil {
			return nil, err
		}
		scored := make([]ScoredCandidate, 0, len(cands))
		for _, c := range cands {
			sc := Score(c.Title, c.Artist, title, q.Artist, q.Year, c.Year)
			if c.PrimaryType == "album" {
				sc += albumTypePoints
			}
			scored = append(scored, ScoredCandidate{Candidate: c, Score: sc})
		}
		return scored, nil
	}
}

// searchReleases builds an individual-release search strategy.
func (s *Service) searchReleases(title string, withYear bool) func(context.Context, Query) ([]ScoredCandidate, error) {
	return func(ctx context.Context, q Query) ([]ScoredCandidate, error) {
		year := 0
		if withYear {
			year = q.Year
		}
		cands, err := s.mb.SearchReleases(ctx, title, q.Artist, year)
		if err != nil {
			return nil, err
		}
		scored := make([]ScoredCandidate, 0, len(cands))
		for _, c := range cands {
			scored = append(scored, ScoredCandidate{
				Candidate: c,
				Score:     Score(c.Title, c.Artist, title, q.Artist, q.Year, c.Year),
			})
		}
		return scored, nil
	}
}

// ResolveTarget finds the best-matching work-group or release for q. It
// never returns an error: a failing strategy is skipped and the cascade
// continues, and exhausting every strategy yields a zero ResolvedTarget.
func (s *Service) ResolveTarget(ctx context.Context, q Query) ResolvedTarget {
	for _, st := range s.strategies(q) {
		scored, err := st.run(ctx, q)
		if err != nil {
			s.logger.Debug("search strategy failed",
				slog.String("strategy", st.name),
				slog.String("title", q.Title),
				slog.String("error", err.Error()))
			continue
		}

		best, ok := bestCandidate(scored)
		if !ok {
			continue
		}

		s.logger.Debug("resolved target",
			slog.String("strategy", st.name),
			slog.String("id", best.ID),
			slog.Int("score", best.Score))

		if best.GroupID != "" {
			return ResolvedTarget{GroupID: best.GroupID}
		}
		return ResolvedTarget{ReleaseID: best.ID}
	}
	return ResolvedTarget{}
}

// bestCandidate picks the highest-scoring candidate, keeping provider order
// on ties. A best score of zero counts as no match.
func bestCandidate(scored []ScoredCandidate) (ScoredCandidate, bool) {
	if len(scored) == 0 {
		return ScoredCandidate{}, false
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if scored[0].Score <= 0 {
		return ScoredCandidate{}, false
	}
	return scored[0], true
}
