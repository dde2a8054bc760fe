package services

import (
	"context"
	"errors"
	"fmt"

	"gambler/arcade/domain/entities"
	"gambler/arcade/domain/events"
	"gambler/arcade/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type gameRoundService struct {
	roundRepo      interfaces.GameRoundRepository
	eventPublisher interfaces.EventPublisher
}

// NewGameRoundService creates a new game round service
func NewGameRoundService(roundRepo interfaces.GameRoundRepository, eventPublisher interfaces.EventPublisher) interfaces.GameRoundService {
	return &gameRoundService{
		roundRepo:      roundRepo,
		eventPublisher: eventPublisher,
	}
}

func (s *gameRoundService) RecordRound(ctx context.Context, round *entities.GameRound) error {
	err := s.roundRepo.Create(ctx, round)
	if errors.Is(err, entities.ErrRoundRecorded) {
		log.WithField("sessionID", round.SessionID).Debug("Round already recorded")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to record round %s: %w", round.SessionID, err)
	}

	event := events.GameSettledEvent{
		SessionID: round.SessionID,
		GuildID:   round.GuildID,
		UserID:    round.DiscordID,
		Game:      round.Game,
		Outcome:   round.Outcome,
		Stake:     round.Stake,
		Payout:    round.Payout,
		Modifiers: round.Modifiers,
		EndedAt:   round.EndedAt,
	}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish game settled event")
	}

	return nil
}

func (s *gameRoundService) GetRecentRounds(ctx context.Context, discordID int64, limit int) ([]*entities.GameRound, error) {
	rounds, err := s.roundRepo.GetRecentByUser(ctx, discordID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent rounds: %w", err)
	}
	return rounds, nil
}

func (s *gameRoundService) GetSummary(ctx context.Context, discordID int64) (*entities.GameSummary, error) {
	summary, err := s.roundRepo.GetSummaryByUser(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get round summary: %w", err)
	}
	return summary, nil
}
