// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/hiromon0125/swen746-project/internal/apperr"
	"github.com/hiromon0125/swen746-project/internal/domain"
	"github.com/hiromon0125/swen746-project/internal/gateway"
)

// Miner is the use case for the fetch pipeline. It drains a gateway iterator,
// normalizes each raw record, and halts on the first malformed one so a bad
// upstream payload can never produce a silent partial export.
type Miner struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
}

// NewMiner creates a new Miner instance.
func NewMiner(fetcher gateway.Fetcher, logger *log.Logger) *Miner {
	return &Miner{
		fetcher: fetcher,
		logger:  logger,
	}
}

// MineCommits fetches up to max commits from the repository and normalizes
// them. A duplicated sha within one fetch is treated as a malformed result.
func (m *Miner) MineCommits(ctx context.Context, repo string, max int) ([]domain.CommitRecord, error) {
	it, err := m.fetcher.FetchCommits(ctx, repo, max)
	if err != nil {
		return nil, err
	}
	records := []domain.CommitRecord{}
	seen := make(map[string]struct{})
	for {
		raw, err := it.Next(ctx)
		if errors.Is(err, gateway.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		rec, err := NormalizeCommit(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[rec.SHA]; ok {
			return nil, apperr.New(apperr.ErrMalformedRecord, "duplicate sha %s in fetch result", rec.SHA)
		}
		seen[rec.SHA] = struct{}{}
		records = append(records, rec)
	}
	m.logger.Printf("Fetched %d commits from %s", len(records), repo)
	return records, nil
}

// MineIssues fetches up to max issues from the repository and normalizes
// them. Pull requests were already filtered out by the gateway.
func (m *Miner) MineIssues(ctx context.Context, repo, state string, max int) ([]domain.IssueRecord, error) {
	it, err := m.fetcher.FetchIssues(ctx, repo, state, max)
	if err != nil {
		return nil, err
	}
	records := []domain.IssueRecord{}
	seen := make(map[int64]struct{})
	for {
		raw, err := it.Next(ctx)
		if errors.Is(err, gateway.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		rec, err := NormalizeIssue(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[rec.ID]; ok {
			return nil, apperr.New(apperr.ErrMalformedRecord, "duplicate issue id %d in fetch result", rec.ID)
		}
		seen[rec.ID] = struct{}{}
		records = append(records, rec)
	}
	m.logger.Printf("Fetched %d issues from %s", len(records), repo)
	return records, nil
}
