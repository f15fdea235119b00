package service

import (
	"context"
	"errors"

	"moba-stats/internal/constants"
	"moba-stats/internal/domain"
	"moba-stats/internal/repository"

	"github.com/rs/zerolog"
)

type MatchService struct {
	matchRepo *repository.MatchRepository
	logger    zerolog.Logger
}

func NewMatchService(matchRepo *repository.MatchRepository, logger zerolog.Logger) *MatchService {
	return &MatchService{matchRepo: matchRepo, logger: logger}
}

func (s *MatchService) ListMatches(ctx context.Context) ([]domain.MatchGame, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.matchRepo.List(ctx)
}

func (s *MatchService) GetMatchDetail(ctx context.Context, matchID int64) (*domain.MatchDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	s.logger.Debug().Int64("match_id", matchID).Msg("getting match")

	match, err := s.matchRepo.Get(ctx, matchID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debug().Int64("match_id", matchID).Msg("match not found")
		}
		return nil, err
	}

	players, err := s.matchRepo.Participants(ctx, matchID)
	if err != nil {
		s.logger.Error().Err(err).Int64("match_id", matchID).Msg("failed to load participants")
		return nil, err
	}

	return &domain.MatchDetail{Match: *match, Players: players}, nil
}
