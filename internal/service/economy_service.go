package service

import (
	"context"
	"fmt"
	"log"

	"tagarena/internal/cache"
	"tagarena/internal/model"
	"tagarena/internal/repository"
)

// EconomyService persists ledger records and mirrors balances into the
// taggerz leaderboard. It is the store handed to the game registry.
type EconomyService struct {
	repo        repository.LedgerRepo
	leaderboard cache.LeaderboardCache
}

// NewEconomyService creates a new economy service. leaderboard may be nil.
func NewEconomyService(repo repository.LedgerRepo, leaderboard cache.LeaderboardCache) *EconomyService {
	return &EconomyService{
		repo:        repo,
		leaderboard: leaderboard,
	}
}

// Load returns the ledger record for an account, or a fresh zero-balance
// record for identities never seen before.
func (s *EconomyService) Load(ctx context.Context, account string) (*model.Account, error) {
	acct, err := s.repo.Get(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	if acct == nil {
		acct = &model.Account{Name: account, Purchased: []string{}}
	}
	return acct, nil
}

// Save writes the record and updates the leaderboard. A leaderboard failure
// is logged, not surfaced: the ledger write is the source of truth.
func (s *EconomyService) Save(ctx context.Context, acct *model.Account) error {
	if err := s.repo.Upsert(ctx, acct); err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	if s.leaderboard != nil {
		if err := s.leaderboard.UpdateScore(ctx, acct.Name, acct.Taggerz); err != nil {
			log.Printf("leaderboard update for %s: %v", acct.Name, err)
		}
	}
	return nil
}
