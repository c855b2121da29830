package credits

import (
	"context"
	"log/slog"
)

// Service is the credit-aggregation pipeline. Every call is independent and
// stateless; a single Service is safe for concurrent use.
type Service struct {
	mb     MetadataService
	logger *slog.Logger
}

// NewService creates the pipeline over the given metadata service.
func NewService(mb MetadataService, logger *slog.Logger) *Service {
	return &Service{
		mb:     mb,
		logger: logger.With(slog.String("component", "credits")),
	}
}

// GetCredits is the pipeline entry point: resolve q to a release, pick a
// representative edition when only a work-group matched, and extract its
// credits. It never returns an error; every upstream failure degrades to an
// empty credit list with whatever provenance was established.
func (s *Service) GetCredits(ctx context.Context, q Query) Result {
	target := s.ResolveTarget(ctx, q)
	if target.IsZero() {
		return Result{Source: Source, Credits: []Credit{}}
	}

	releaseID := target.ReleaseID
	if releaseID == "" {
		id, err := s.SelectRelease(ctx, target.GroupID)
		if err != nil {
			s.logger.Debug("release selection failed",
				slog.String("group", target.GroupID),
				slog.String("error", err.Error()))
		}
		releaseID = id
	}

	if releaseID == "" {
		return Result{Source: Source, MatchedID: target.GroupID, Credits: []Credit{}}
	}

	result, err := s.ExtractCredits(ctx, releaseID)
	if err != nil {
		s.logger.Debug("credit extraction failed",
			slog.String("release", releaseID),
			slog.String("error", err.Error()))
		return Result{Source: Source, MatchedID: releaseID, Credits: []Credit{}}
	}
	return result
}
