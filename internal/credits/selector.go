package credits

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

// probeLimit bounds how many member releases are probed for relationship
// richness. A politeness concession to the upstream rate limit, not a
// correctness requirement.
const probeLimit = 6

// SelectRelease picks a representative release from a work-group: the member
// whose relationship graph carries the most typed relations. Official
// releases are preferred when any exist. Returns an empty id when the group
// has no releases. The error is non-nil only when the group itself cannot be
// fetched; individual probe failures just zero that candidate's score.
func (s *Service) SelectRelease(ctx context.Context, groupID string) (string, error) {
	releases, err := s.mb.GetGroupReleases(ctx, groupID)
	if err != nil {
		return "", err
	}
	if len(releases) == 0 {
		return "", nil
	}

	candidates := officialOrAll(releases)

	sample := candidates
	if len(sample) > probeLimit {
		sample = sample[:probeLimit]
	}

	scores := make([]int, len(sample))
	g, gctx := errgroup.WithContext(ctx)
	for i, rel := range sample {
		g.Go(func() error {
			n, probeErr := s.countRelations(gctx, rel.ID)
			if probeErr != nil {
				s.logger.Debug("release probe failed",
					slog.String("release", rel.ID),
					slog.String("error", probeErr.Error()))
				return nil
			}
			scores[i] = n
			return nil
		})
	}
	// Probes only ever return nil; Wait surfaces context cancellation.
	if err := g.Wait(); err != nil {
		return "", err
	}

	bestIdx, bestScore := 0, 0
	for i, n := range scores {
		if n > bestScore {
			bestIdx, bestScore = i, n
		}
	}
	if bestScore > 0 {
		return sample[bestIdx].ID, nil
	}

	// Every probe came back empty: fall back to the first candidate.
	return candidates[0].ID, nil
}

// officialOrAll filters to status "official", falling back to the full set
// when no release carries that status.
func officialOrAll(releases []GroupRelease) []GroupRelease {
	var official []GroupRelease
	for _, r := range releases {
		if strings.EqualFold(r.Status, "official") {
			official = append(official, r)
		}
	}
	if len(official) > 0 {
		return official
	}
	return releases
}

// countRelations fetches a release and counts its typed relations at the
// release level and across every track recording.
func (s *Service) countRelations(ctx context.Context, releaseID string) (int, error) {
	rel, err := s.mb.GetRelease(ctx, releaseID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, r := range rel.Relations {
		if r.Type != "" {
			count++
		}
	}
	for _, med := range rel.Media {
		for _, trk := range med.Tracks {
			if trk.Recording == nil {
				continue
			}
			for _, r := range trk.Recording.Relations {
				if r.Type != "" {
					count++
				}
			}
		}
	}
	return count, nil
}
