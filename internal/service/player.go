package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"moba-stats/internal/constants"
	"moba-stats/internal/domain"
	"moba-stats/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type PlayerService struct {
	repo   *repository.PlayerRepository
	logger zerolog.Logger
}

func NewPlayerService(repo *repository.PlayerRepository, logger zerolog.Logger) *PlayerService {
	return &PlayerService{repo: repo, logger: logger}
}

func (s *PlayerService) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.List(ctx)
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID int64) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.Get(ctx, playerID)
}

// SavePlayer inserts when PlayerID is zero and fully replaces the row
// otherwise. It returns the id of the affected player.
func (s *PlayerService) SavePlayer(ctx context.Context, p *domain.Player) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	p.DisplayName = strings.TrimSpace(p.DisplayName)
	p.Email = strings.TrimSpace(p.Email)
	p.PasswordHash = strings.TrimSpace(p.PasswordHash)
	if p.DisplayName == "" || p.Email == "" || p.PasswordHash == "" {
		return 0, fmt.Errorf("%w: display name, email and password hash are required", domain.ErrInvalidInput)
	}

	if p.PlayerID == 0 {
		id, err := s.repo.Create(ctx, p)
		if err != nil {
			s.logger.Error().Err(err).Str("email", p.Email).Msg("failed to create player")
			return 0, err
		}
		s.logger.Info().Int64("player_id", id).Msg("player created")
		return id, nil
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error().Err(err).Int64("player_id", p.PlayerID).Msg("failed to update player")
		return 0, err
	}
	s.logger.Info().Int64("player_id", p.PlayerID).Msg("player updated")
	return p.PlayerID, nil
}

func (s *PlayerService) DeletePlayer(ctx context.Context, playerID int64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.repo.Delete(ctx, playerID); err != nil {
		s.logger.Error().Err(err).Int64("player_id", playerID).Msg("failed to delete player")
		return err
	}
	return nil
}

func (s *PlayerService) SearchPlayers(ctx context.Context, term string) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: search term required", domain.ErrInvalidInput)
	}

	players, err := s.repo.Search(ctx, term, constants.SearchResultLimit)
	if err != nil {
		s.logger.Error().Err(err).Str("query", term).Msg("failed to search players")
		return nil, err
	}

	s.logger.Debug().Int("count", len(players)).Str("query", term).Msg("search completed")
	return players, nil
}

// GetProfile loads the player, then runs the summary, recent match and
// favorite character queries concurrently. Each one only reads.
func (s *PlayerService) GetProfile(ctx context.Context, playerID int64) (*domain.PlayerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	player, err := s.repo.Get(ctx, playerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debug().Int64("player_id", playerID).Msg("player not found")
		}
		return nil, err
	}

	profile := &domain.PlayerProfile{Player: *player}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.repo.Stats(gCtx, playerID)
		if err != nil {
			return err
		}
		profile.Stats = stats
		return nil
	})
	g.Go(func() error {
		matches, err := s.repo.RecentMatches(gCtx, playerID, constants.RecentMatchLimit)
		if err != nil {
			return err
		}
		profile.Matches = matches
		return nil
	})
	g.Go(func() error {
		characters, err := s.repo.FavoriteCharacters(gCtx, playerID, constants.FavoriteCharacterLimit)
		if err != nil {
			return err
		}
		profile.Characters = characters
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int64("player_id", playerID).Msg("failed to build player profile")
		return nil, err
	}

	s.logger.Debug().
		Int64("player_id", playerID).
		Int("total_matches", profile.Stats.TotalMatches).
		Int("recent", len(profile.Matches)).
		Msg("player profile built")
	return profile, nil
}
