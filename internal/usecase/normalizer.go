package usecase

import (
	"strings"
	"time"

	"github.com/hiromon0125/swen746-project/internal/apperr"
	"github.com/hiromon0125/swen746-project/internal/domain"
	"github.com/hiromon0125/swen746-project/internal/gateway"
)

// NormalizeCommit maps a raw commit into the fixed row schema. The sha is
// the only required field; absent optionals become the empty string so that
// every exported row carries the full column set.
func NormalizeCommit(raw *gateway.RawCommit) (domain.CommitRecord, error) {
	if raw.SHA == "" {
		return domain.CommitRecord{}, apperr.New(apperr.ErrMalformedRecord, "commit record is missing sha")
	}
	var date string
	if raw.AuthoredAt != nil {
		date = raw.AuthoredAt.UTC().Format(time.RFC3339)
	}
	return domain.CommitRecord{
		SHA:     raw.SHA,
		Author:  raw.AuthorName,
		Email:   raw.AuthorEmail,
		Date:    date,
		Message: raw.Message,
		URL:     raw.HTMLURL,
	}, nil
}

// NormalizeIssue maps a raw issue into the fixed row schema. Timestamps are
// coerced to RFC3339 UTC; an issue that is still open gets an empty closed_at
// and the explicit absent sentinel for its open duration.
func NormalizeIssue(raw *gateway.RawIssue) (domain.IssueRecord, error) {
	if raw.ID <= 0 {
		return domain.IssueRecord{}, apperr.New(apperr.ErrMalformedRecord, "issue record is missing id")
	}
	var createdAt, closedAt string
	duration := domain.OpenDurationAbsent
	if raw.CreatedAt != nil {
		createdAt = raw.CreatedAt.UTC().Format(time.RFC3339)
	}
	if raw.ClosedAt != nil {
		closedAt = raw.ClosedAt.UTC().Format(time.RFC3339)
		if raw.CreatedAt != nil {
			duration = int(raw.ClosedAt.Sub(*raw.CreatedAt).Hours() / 24)
		}
	}
	return domain.IssueRecord{
		ID:               raw.ID,
		Number:           raw.Number,
		Title:            raw.Title,
		Author:           raw.AuthorLogin,
		State:            strings.ToLower(raw.State),
		CreatedAt:        createdAt,
		ClosedAt:         closedAt,
		Comments:         raw.Comments,
		OpenDurationDays: duration,
	}, nil
}
