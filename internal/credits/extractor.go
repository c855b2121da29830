package credits

import (
	"context"
	"strings"
)

// ExtractCredits fetches a release and flattens its relationship graph into
// deduplicated credit records: release-level relations first, then every
// track recording's relations in medium order. Relations missing a role type
// or a resolvable contributor name are skipped individually.
func (s *Service) ExtractCredits(ctx context.Context, releaseID string) (Result, error) {
	rel, err := s.mb.GetRelease(ctx, releaseID)
	if err != nil {
		return Result{Source: Source, Credits: []Credit{}}, err
	}

	var credits []Credit
	for _, r := range rel.Relations {
		if c, ok := toCredit(r, ScopeRelease); ok {
			credits = append(credits, c)
		}
	}
	for _, med := range rel.Media {
		for _, trk := range med.Tracks {
			if trk.Recording == nil {
				continue
			}
			for _, r := range trk.Recording.Relations {
				if c, ok := toCredit(r, ScopeRecording); ok {
					credits = append(credits, c)
				}
			}
		}
	}

	return Result{
		Source:    Source,
		MatchedID: releaseID,
		Credits:   dedupe(credits),
	}, nil
}

// toCredit converts a raw relation into a credit record. Contributor name
// precedence: linked artist display name, then target credit, then artist
// credit phrase, then the raw name field. Relations without both a type and
// a name are dropped.
func toCredit(r Relation, scope Scope) (Credit, bool) {
	name := r.ArtistName
	if name == "" {
		name = r.TargetCredit
	}
	if name == "" {
		name = r.ArtistCreditPhrase
	}
	if name == "" {
		name = r.Name
	}

	if r.Type == "" || name == "" {
		return Credit{}, false
	}

	c := Credit{
		Role:  strings.ToLower(r.Type),
		Name:  name,
		Scope: scope,
	}
	if r.ArtistName != "" {
		c.MBID = r.ArtistID
	}
	return c, true
}

// dedupe removes duplicate (role, name) pairs case-insensitively, keeping
// the first occurrence.
func dedupe(credits []Credit) []Credit {
	seen := make(map[string]struct{}, len(credits))
	out := make([]Credit, 0, len(credits))
	for _, c := range credits {
		key := strings.ToLower(c.Role + "::" + c.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
