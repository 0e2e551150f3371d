// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST client and its pagination.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/hiromon0125/swen746-project/internal/apperr"
	"github.com/hiromon0125/swen746-project/internal/config"
)

// Done is returned by an iterator's Next once the sequence is exhausted.
// Iterators are finite and non-restartable; after Done every subsequent
// call returns Done again.
var Done = errors.New("no more records")

// RawCommit is the raw commit payload reduced to the fields the
// normalizer consumes. go-github types never cross this boundary.
type RawCommit struct {
	SHA         string
	AuthorName  string
	AuthorEmail string
	AuthoredAt  *time.Time
	Message     string
	HTMLURL     string
}

// RawIssue is the raw issue payload reduced to the fields the
// normalizer consumes. Pull requests are filtered out before this point.
type RawIssue struct {
	ID          int64
	Number      int
	Title       string
	AuthorLogin string
	State       string
	CreatedAt   *time.Time
	ClosedAt    *time.Time
	Comments    int
}

// CommitIterator yields raw commits one at a time, fetching pages lazily.
type CommitIterator interface {
	Next(ctx context.Context) (*RawCommit, error)
}

// IssueIterator yields raw issues one at a time, fetching pages lazily.
type IssueIterator interface {
	Next(ctx context.Context) (*RawIssue, error)
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
// max bounds the total records yielded: negative means unlimited, zero yields
// an immediately exhausted iterator without any network call.
type Fetcher interface {
	FetchCommits(ctx context.Context, repo string, max int) (CommitIterator, error)
	FetchIssues(ctx context.Context, repo, state string, max int) (IssueIterator, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	client  *github.Client
	perPage int
	logger  *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// The token is injected through the config; nothing downstream reads the
// process environment.
func NewGitHubGateway(cfg config.Config, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GithubToken})
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		client:  github.NewClient(httpClient),
		perPage: cfg.PerPage,
		logger:  logger,
	}, nil
}

// FetchCommits returns a lazy iterator over the repository's commits in the
// platform's default order, most recent first.
func (g *GitHubGateway) FetchCommits(ctx context.Context, repo string, max int) (CommitIterator, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}
	g.logger.Printf("Fetching commits for %s...", repo)
	return &commitIterator{g: g, owner: owner, name: name, remaining: max, page: 1}, nil
}

// FetchIssues returns a lazy iterator over the repository's issues filtered
// by state (all, open or closed). The REST listing interleaves pull requests
// with issues; those are skipped and do not count against max.
func (g *GitHubGateway) FetchIssues(ctx context.Context, repo, state string, max int) (IssueIterator, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}
	g.logger.Printf("Fetching %s issues for %s...", state, repo)
	return &issueIterator{g: g, owner: owner, name: name, state: state, remaining: max, page: 1}, nil
}

func splitRepo(repo string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/name", repo)
	}
	return owner, name, nil
}

type commitIterator struct {
	g           *GitHubGateway
	owner, name string
	remaining   int // records still allowed; negative means unlimited
	page        int // next page to request; 0 once the last page was fetched
	buf         []*RawCommit
	done        bool
}

func (it *commitIterator) Next(ctx context.Context) (*RawCommit, error) {
	if it.remaining == 0 {
		it.done = true
		it.buf = nil
	}
	for len(it.buf) == 0 && !it.done {
		if err := it.fetchPage(ctx); err != nil {
			return nil, err
		}
	}
	if len(it.buf) == 0 {
		return nil, Done
	}
	rec := it.buf[0]
	it.buf = it.buf[1:]
	if it.remaining > 0 {
		it.remaining--
	}
	return rec, nil
}

func (it *commitIterator) fetchPage(ctx context.Context) error {
	if it.page == 0 {
		it.done = true
		return nil
	}
	opts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: it.g.perPage, Page: it.page},
	}
	commits, resp, err := it.g.client.Repositories.ListCommits(ctx, it.owner, it.name, opts)
	if err != nil {
		it.done = true
		return mapAPIError(err, it.owner+"/"+it.name)
	}
	it.page = resp.NextPage
	for _, c := range commits {
		if c == nil {
			continue
		}
		it.buf = append(it.buf, rawCommit(c))
	}
	if it.page != 0 {
		it.g.logger.Println("  Fetching next page of commits...")
	}
	return nil
}

type issueIterator struct {
	g           *GitHubGateway
	owner, name string
	state       string
	remaining   int
	page        int
	buf         []*RawIssue
	done        bool
}

func (it *issueIterator) Next(ctx context.Context) (*RawIssue, error) {
	if it.remaining == 0 {
		it.done = true
		it.buf = nil
	}
	for len(it.buf) == 0 && !it.done {
		if err := it.fetchPage(ctx); err != nil {
			return nil, err
		}
	}
	if len(it.buf) == 0 {
		return nil, Done
	}
	rec := it.buf[0]
	it.buf = it.buf[1:]
	if it.remaining > 0 {
		it.remaining--
	}
	return rec, nil
}

func (it *issueIterator) fetchPage(ctx context.Context) error {
	if it.page == 0 {
		it.done = true
		return nil
	}
	opts := &github.IssueListByRepoOptions{
		State:       it.state,
		ListOptions: github.ListOptions{PerPage: it.g.perPage, Page: it.page},
	}
	issues, resp, err := it.g.client.Issues.ListByRepo(ctx, it.owner, it.name, opts)
	if err != nil {
		it.done = true
		return mapAPIError(err, it.owner+"/"+it.name)
	}
	it.page = resp.NextPage
	for _, i := range issues {
		if i == nil || i.IsPullRequest() {
			continue
		}
		it.buf = append(it.buf, rawIssue(i))
	}
	if it.page != 0 {
		it.g.logger.Println("  Fetching next page of issues...")
	}
	return nil
}

func rawCommit(c *github.RepositoryCommit) *RawCommit {
	raw := &RawCommit{
		SHA:     c.GetSHA(),
		Message: c.GetCommit().GetMessage(),
		HTMLURL: c.GetHTMLURL(),
	}
	if a := c.GetCommit().GetAuthor(); a != nil {
		raw.AuthorName = a.GetName()
		raw.AuthorEmail = a.GetEmail()
		if a.Date != nil {
			t := a.Date.Time
			raw.AuthoredAt = &t
		}
	}
	return raw
}

func rawIssue(i *github.Issue) *RawIssue {
	raw := &RawIssue{
		ID:          i.GetID(),
		Number:      i.GetNumber(),
		Title:       i.GetTitle(),
		AuthorLogin: i.GetUser().GetLogin(),
		State:       i.GetState(),
		Comments:    i.GetComments(),
	}
	if i.CreatedAt != nil {
		t := i.CreatedAt.Time
		raw.CreatedAt = &t
	}
	if i.ClosedAt != nil {
		t := i.ClosedAt.Time
		raw.ClosedAt = &t
	}
	return raw
}

// mapAPIError classifies go-github failures into the application's error
// taxonomy at this single boundary. Nothing is retried here.
func mapAPIError(err error, repo string) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return apperr.Wrap(apperr.ErrRateLimit, err, "github throttled the request")
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return apperr.Wrap(apperr.ErrRateLimit, err, "github throttled the request")
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return apperr.Wrap(apperr.ErrAuthentication, err, "github rejected the credentials")
		case http.StatusNotFound:
			return apperr.Wrap(apperr.ErrNotFound, err, "repository %s does not exist or is not accessible", repo)
		}
	}
	return fmt.Errorf("github api request failed: %w", err)
}
