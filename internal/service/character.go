package service

import (
	"context"
	"errors"

	"moba-stats/internal/constants"
	"moba-stats/internal/domain"
	"moba-stats/internal/repository"

	"github.com/rs/zerolog"
)

type CharacterService struct {
	repo   *repository.CharacterRepository
	logger zerolog.Logger
}

func NewCharacterService(repo *repository.CharacterRepository, logger zerolog.Logger) *CharacterService {
	return &CharacterService{repo: repo, logger: logger}
}

func (s *CharacterService) ListCharacters(ctx context.Context) ([]domain.CharacterSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	characters := make([]domain.CharacterSummary, len(rows))
	for i, row := range rows {
		characters[i] = domain.CharacterSummary{
			GameCharacter: row.Character,
			RoleName:      row.RoleName,
		}
	}
	return characters, nil
}

func (s *CharacterService) GetCharacterDetail(ctx context.Context, characterID int64) (*domain.CharacterDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	root, err := s.repo.Get(ctx, characterID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debug().Int64("character_id", characterID).Msg("character not found")
		}
		return nil, err
	}

	abilities, err := s.repo.Abilities(ctx, characterID)
	if err != nil {
		s.logger.Error().Err(err).Int64("character_id", characterID).Msg("failed to load abilities")
		return nil, err
	}

	stats, err := s.repo.PlayStats(ctx, characterID)
	if err != nil {
		s.logger.Error().Err(err).Int64("character_id", characterID).Msg("failed to load play stats")
		return nil, err
	}

	return &domain.CharacterDetail{
		Character:       root.Character,
		RoleName:        root.RoleName,
		RoleDescription: root.RoleDescription,
		Abilities:       abilities,
		Stats:           stats,
	}, nil
}
