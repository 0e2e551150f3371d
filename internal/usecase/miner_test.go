package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hiromon0125/swen746-project/internal/apperr"
	"github.com/hiromon0125/swen746-project/internal/gateway"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchCommits(ctx context.Context, repo string, max int) (gateway.CommitIterator, error) {
	args := m.Called(ctx, repo, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(gateway.CommitIterator), args.Error(1)
}

func (m *mockFetcher) FetchIssues(ctx context.Context, repo, state string, max int) (gateway.IssueIterator, error) {
	args := m.Called(ctx, repo, state, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(gateway.IssueIterator), args.Error(1)
}

// sliceCommitIterator replays a fixed sequence, then an optional failure,
// then Done.
type sliceCommitIterator struct {
	recs []*gateway.RawCommit
	err  error
	i    int
}

func (it *sliceCommitIterator) Next(ctx context.Context) (*gateway.RawCommit, error) {
	if it.i < len(it.recs) {
		rec := it.recs[it.i]
		it.i++
		return rec, nil
	}
	if it.err != nil {
		return nil, it.err
	}
	return nil, gateway.Done
}

type sliceIssueIterator struct {
	recs []*gateway.RawIssue
	i    int
}

func (it *sliceIssueIterator) Next(ctx context.Context) (*gateway.RawIssue, error) {
	if it.i < len(it.recs) {
		rec := it.recs[it.i]
		it.i++
		return rec, nil
	}
	return nil, gateway.Done
}

func TestMiner_MineCommits(t *testing.T) {
	testCases := []struct {
		name         string
		iterator     gateway.CommitIterator
		fetchErr     error
		expectedSHAs []string
		expectedKind error
	}{
		{
			name: "happy path - drains the iterator and normalizes every record",
			iterator: &sliceCommitIterator{recs: []*gateway.RawCommit{
				{SHA: "sha1", AuthorName: "Alice"},
				{SHA: "sha2", AuthorName: "Bob"},
			}},
			expectedSHAs: []string{"sha1", "sha2"},
		},
		{
			name:         "empty case - an exhausted iterator yields an empty slice",
			iterator:     &sliceCommitIterator{},
			expectedSHAs: []string{},
		},
		{
			name: "one malformed record halts the whole fetch",
			iterator: &sliceCommitIterator{recs: []*gateway.RawCommit{
				{SHA: "sha1"},
				{AuthorName: "no sha"},
			}},
			expectedKind: apperr.ErrMalformedRecord,
		},
		{
			name: "a duplicated sha halts the whole fetch",
			iterator: &sliceCommitIterator{recs: []*gateway.RawCommit{
				{SHA: "sha1"},
				{SHA: "sha1"},
			}},
			expectedKind: apperr.ErrMalformedRecord,
		},
		{
			name: "a mid-sequence gateway failure is surfaced as-is",
			iterator: &sliceCommitIterator{
				recs: []*gateway.RawCommit{{SHA: "sha1"}},
				err:  apperr.New(apperr.ErrRateLimit, "github throttled the request"),
			},
			expectedKind: apperr.ErrRateLimit,
		},
		{
			name:         "a fetch setup failure is surfaced as-is",
			fetchErr:     errors.New("invalid repository"),
			expectedKind: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			if tc.fetchErr != nil {
				fetcher.On("FetchCommits", mock.Anything, "octocat/hello-world", 5).Return(nil, tc.fetchErr)
			} else {
				fetcher.On("FetchCommits", mock.Anything, "octocat/hello-world", 5).Return(tc.iterator, nil)
			}
			miner := NewMiner(fetcher, log.New(io.Discard, "", 0))

			records, err := miner.MineCommits(context.Background(), "octocat/hello-world", 5)

			switch {
			case tc.fetchErr != nil:
				assert.ErrorIs(t, err, tc.fetchErr)
			case tc.expectedKind != nil:
				assert.ErrorIs(t, err, tc.expectedKind)
			default:
				require.NoError(t, err)
				shas := make([]string, 0, len(records))
				for _, rec := range records {
					shas = append(shas, rec.SHA)
				}
				assert.Equal(t, tc.expectedSHAs, shas)
			}
			fetcher.AssertExpectations(t)
		})
	}
}

func TestMiner_MineIssues(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchIssues", mock.Anything, "octocat/hello-world", "closed", -1).
		Return(gateway.IssueIterator(&sliceIssueIterator{recs: []*gateway.RawIssue{
			{ID: 101, Number: 1, AuthorLogin: "alice", State: "closed"},
			{ID: 102, Number: 2, AuthorLogin: "bob", State: "closed"},
		}}), nil)
	miner := NewMiner(fetcher, log.New(io.Discard, "", 0))

	records, err := miner.MineIssues(context.Background(), "octocat/hello-world", "closed", -1)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(101), records[0].ID)
	assert.Equal(t, "bob", records[1].Author)
	fetcher.AssertExpectations(t)
}
