package credits

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

// groupSearch records the arguments of one SearchReleaseGroups call.
type groupSearch struct {
	title  string
	artist string
	year   int
}

// fakeMetadata is a scriptable MetadataService that counts calls.
type fakeMetadata struct {
	groupsFn        func(title, artist string, year int) ([]Candidate, error)
	releasesFn      func(title, artist string, year int) ([]Candidate, error)
	groupReleasesFn func(groupID string) ([]GroupRelease, error)
	releaseFn       func(id string) (*Release, error)

	groupSearches   []groupSearch
	releaseSearches []groupSearch
	probes          []string
}

func (f *fakeMetadata) SearchReleaseGroups(_ context.Context, title, artist string, year int) ([]Candidate, error) {
	f.groupSearches = append(f.groupSearches, groupSearch{title, artist, year})
	if f.groupsFn == nil {
		return nil, nil
	}
	return f.groupsFn(title, artist, year)
}

func (f *fakeMetadata) SearchReleases(_ context.Context, title, artist string, year int) ([]Candidate, error) {
	f.releaseSearches = append(f.releaseSearches, groupSearch{title, artist, year})
	if f.releasesFn == nil {
		return nil, nil
	}
	return f.releasesFn(title, artist, year)
}

func (f *fakeMetadata) GetGroupReleases(_ context.Context, groupID string) ([]GroupRelease, error) {
	if f.groupReleasesFn == nil {
		return nil, nil
	}
	return f.groupReleasesFn(groupID)
}

func (f *fakeMetadata) GetRelease(_ context.Context, id string) (*Release, error) {
	f.probes = append(f.probes, id)
	if f.releaseFn == nil {
		return nil, errors.New("no release scripted")
	}
	return f.releaseFn(id)
}

func newTestService(fake *fakeMetadata) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(fake, logger)
}

func TestResolveTarget_GroupShortCircuit(t *testing.T) {
	fake := &fakeMetadata{
		groupsFn: func(title, artist string, year int) ([]Candidate, error) {
			return []Candidate{{
				ID:          "rg-1",
				GroupID:     "rg-1",
				Title:       "OK Computer",
				Artist:      "Radiohead",
				Year:        1997,
				PrimaryType: "album",
			}}, nil
		},
	}
	s := newTestService(fake)

	got := s.ResolveTarget(context.Background(), Query{Title: "OK Computer", Artist: "Radiohead", Year: 1997})
	if got.GroupID != "rg-1" {
		t.Fatalf("expected group rg-1, got %+v", got)
	}
	if len(fake.groupSearches) != 1 {
		t.Errorf("expected 1 group search, got %d", len(fake.groupSearches))
	}
	if len(fake.releaseSearches) != 0 {
		t.Errorf("expected no release searches after group hit, got %d", len(fake.releaseSearches))
	}
}

func TestResolveTarget_ZeroScoreFallsThrough(t *testing.T) {
	fake := &fakeMetadata{
		groupsFn: func(title, artist string, year int) ([]Candidate, error) {
			// Unrelated hit: scores 0, must not short-circuit.
			return []Candidate{{ID: "rg-x", GroupID: "rg-x", Title: "Nevermind", Artist: "Nirvana"}}, nil
		},
		releasesFn: func(title, artist string, year int) ([]Candidate, error) {
			return []Candidate{{ID: "rel-1", GroupID: "rg-2", Title: "Kid A", Artist: "Radiohead"}}, nil
		},
	}
	s := newTestService(fake)

	got := s.ResolveTarget(context.Background(), Query{Title: "Kid A", Artist: "Radiohead"})
	if got.GroupID != "rg-2" {
		t.Fatalf("expected fall-through to release search group, got %+v", got)
	}
}

func TestResolveTarget_ReleaseWithoutGroupRef(t *testing.T) {
	fake := &fakeMetadata{
		releasesFn: func(title, artist string, year int) ([]Candidate, error) {
			return []Candidate{{ID: "rel-9", Title: "Kid A", Artist: "Radiohead"}}, nil
		},
	}
	s := newTestService(fake)

	got := s.ResolveTarget(context.Background(), Query{Title: "Kid A", Artist: "Radiohead"})
	if got.ReleaseID != "rel-9" || got.GroupID != "" {
		t.Fatalf("expected bare release id, got %+v", got)
	}
}

func TestResolveTarget_YearRetry(t *testing.T) {
	fake := &fakeMetadata{
		groupsFn: func(title, artist string, year int) ([]Candidate, error) {
			if year != 0 {
				return nil, nil // strict search finds nothing
			}
			return []Candidate{{ID: "rg-3", GroupID: "rg-3", Title: "Homogenic", Artist: "Björk"}}, nil
		},
	}
	s := newTestService(fake)

	got := s.ResolveTarget(context.Background(), Query{Title: "Homogenic", Artist: "Björk", Year: 1997})
	if got.GroupID != "rg-3" {
		t.Fatalf("expected year-less retry to match, got %+v", got)
	}
	if len(fake.groupSearches) != 2 {
		t.Errorf("expected 2 group searches (with and without year), got %d", len(fake.groupSearches))
	}
	if fake.groupSearches[0].year != 1997 || fake.groupSearches[1].year != 0 {
		t.Errorf("expected year then no-year order, got %+v", fake.groupSearches)
	}
}

func TestResolveTarget_NormalizedRetryFiresLast(t *testing.T) {
	const raw = "In Rainbows (Remastered)"
	fake := &fakeMetadata{}
	fake.groupsFn = func(title, artist string, year int) ([]Candidate, error) {
		if title == raw {
			return nil, nil
		}
		// Only the normalized title matches.
		return []Candidate{{ID: "rg-5", GroupID: "rg-5", Title: "In Rainbows", Artist: "Radiohead"}}, nil
	}
	s := newTestService(fake)

	got := s.ResolveTarget(context.Background(), Query{Title: raw, Artist: "Radiohead", Year: 2007})
	if got.GroupID != "rg-5" {
		t.Fatalf("expected normalized retry to match, got %+v", got)
	}

	// Stages 1-2 (group with/without year) then stage 5 (normalized).
	if len(fake.groupSearches) != 3 {
		t.Fatalf("expected 3 group searches, got %d", len(fake.groupSearches))
	}
	if fake.groupSearches[2].title != "in rainbows" {
		t.Errorf("expected final search with normalized title, got %q", fake.groupSearches[2].title)
	}
	// Release searches (stages 3-4) must have run before the normalized retry.
	if len(fake.releaseSearches) != 2 {
		t.Errorf("expected 2 release searches before normalized retry, got %d", len(fake.releaseSearches))
	}
}

func TestResolveTarget_NoNormalizedRetryWhenUnchanged(t *testing.T) {
	fake := &fakeMetadata{}
	s := newTestService(fake)

	got := s.ResolveTarget(context.Background(), Query{Title: "already plain", Artist: "someone"})
	if !got.IsZero() {
		t.Fatalf("expected no match, got %+v", got)
	}
	if len(fake.groupSearches) != 1 {
		t.Errorf("expected a single group search for an already-normalized title, got %d", len(fake.groupSearches))
	}
}

func TestResolveTarget_StrategyErrorSwallowed(t *testing.T) {
	fake := &fakeMetadata{
		groupsFn: func(title, artist string, year int) ([]Candidate, error) {
			return nil, errors.New("upstream 503")
		},
		releasesFn: func(title, artist string, year int) ([]Candidate, error) {
			return []Candidate{{ID: "rel-2", GroupID: "rg-7", Title: "Kid A", Artist: "Radiohead"}}, nil
		},
	}
	s := newTestService(fake)

	got := s.ResolveTarget(context.Background(), Query{Title: "Kid A", Artist: "Radiohead"})
	if got.GroupID != "rg-7" {
		t.Fatalf("expected cascade to continue past failing strategy, got %+v", got)
	}
}

func TestResolveTarget_TotalFailure(t *testing.T) {
	fake := &fakeMetadata{}
	s := newTestService(fake)

	got := s.ResolveTarget(context.Background(), Query{Title: "Unknown", Artist: "Nobody", Year: 1999})
	if !got.IsZero() {
		t.Fatalf("expected zero target, got %+v", got)
	}
}

func TestResolveTarget_BestOfStage(t *testing.T) {
	fake := &fakeMetadata{
		groupsFn: func(title, artist string, year int) ([]Candidate, error) {
			return []Candidate{
				{ID: "rg-contain", GroupID: "rg-contain", Title: "OK Computer OKNOTOK", Artist: "Radiohead"},
				{ID: "rg-exact", GroupID: "rg-exact", Title: "OK Computer", Artist: "Radiohead", PrimaryType: "album"},
			}, nil
		},
	}
	s := newTestService(fake)

	got := s.ResolveTarget(context.Background(), Query{Title: "OK Computer", Artist: "Radiohead"})
	if got.GroupID != "rg-exact" {
		t.Fatalf("expected highest-scoring candidate, got %+v", got)
	}
}

func TestResolveTarget_TieKeepsProviderOrder(t *testing.T) {
	fake := &fakeMetadata{
		groupsFn: func(title, artist string, year int) ([]Candidate, error) {
			return []Candidate{
				{ID: "rg-first", GroupID: "rg-first", Title: "Kid A", Artist: "Radiohead"},
				{ID: "rg-second", GroupID: "rg-second", Title: "Kid A", Artist: "Radiohead"},
			}, nil
		},
	}
	s := newTestService(fake)

	got := s.ResolveTarget(context.Background(), Query{Title: "Kid A", Artist: "Radiohead"})
	if got.GroupID != "rg-first" {
		t.Fatalf("expected stable tie-break on provider order, got %+v", got)
	}
}
