package usecase

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"slices"
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/hiromon0125/swen746-project/internal/apperr"
	"github.com/hiromon0125/swen746-project/internal/domain"
)

// Summarizer is the use case for the offline aggregation pipeline. It loads
// a pair of previously exported files back into typed records and computes
// the summary report. It never touches the network or credentials.
type Summarizer struct {
	logger *log.Logger
}

// NewSummarizer creates a new Summarizer instance.
func NewSummarizer(logger *log.Logger) *Summarizer {
	return &Summarizer{logger: logger}
}

// Summarize computes total counts, issues grouped by state, commits grouped
// by author (case-sensitive exact match), and the mean/median open duration
// over closed issues.
func (s *Summarizer) Summarize(issuesPath, commitsPath string) (*domain.SummaryReport, error) {
	issues, err := LoadIssues(issuesPath)
	if err != nil {
		return nil, err
	}
	commits, err := LoadCommits(commitsPath)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("Loaded %d issues and %d commits", len(issues), len(commits))

	report := &domain.SummaryReport{
		TotalCommits:    len(commits),
		TotalIssues:     len(issues),
		IssuesByState:   make(map[string]int),
		CommitsByAuthor: make(map[string]int),
	}

	durations := []float64{}
	for _, issue := range issues {
		report.IssuesByState[issue.State]++
		// Open issues carry the absent sentinel and stay out of the
		// duration aggregates instead of being counted as zero days.
		if issue.OpenDurationDays != domain.OpenDurationAbsent {
			durations = append(durations, float64(issue.OpenDurationDays))
		}
	}
	for _, commit := range commits {
		report.CommitsByAuthor[commit.Author]++
	}
	if len(durations) > 0 {
		report.MeanOpenDurationDays, _ = stats.Mean(durations)
		report.MedianOpenDurationDays, _ = stats.Median(durations)
	}
	return report, nil
}

// LoadCommits reads a commits export back into typed records. It is the
// exact inverse of ExportCommits.
func LoadCommits(path string) ([]domain.CommitRecord, error) {
	rows, err := readCSV(path, domain.CommitColumns)
	if err != nil {
		return nil, err
	}
	records := make([]domain.CommitRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.CommitRecord{
			SHA:     row[0],
			Author:  row[1],
			Email:   row[2],
			Date:    row[3],
			Message: row[4],
			URL:     row[5],
		})
	}
	return records, nil
}

// LoadIssues reads an issues export back into typed records. It is the
// exact inverse of ExportIssues.
func LoadIssues(path string) ([]domain.IssueRecord, error) {
	rows, err := readCSV(path, domain.IssueColumns)
	if err != nil {
		return nil, err
	}
	records := make([]domain.IssueRecord, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrMalformedRecord, err, "%s: invalid issue id %q", path, row[0])
		}
		number, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrMalformedRecord, err, "%s: invalid issue number %q", path, row[1])
		}
		comments, err := strconv.Atoi(row[7])
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrMalformedRecord, err, "%s: invalid comment count %q", path, row[7])
		}
		duration := domain.OpenDurationAbsent
		if row[8] != "" {
			duration, err = strconv.Atoi(row[8])
			if err != nil {
				return nil, apperr.Wrap(apperr.ErrMalformedRecord, err, "%s: invalid open duration %q", path, row[8])
			}
		}
		records = append(records, domain.IssueRecord{
			ID:               id,
			Number:           number,
			Title:            row[2],
			Author:           row[3],
			State:            row[4],
			CreatedAt:        row[5],
			ClosedAt:         row[6],
			Comments:         comments,
			OpenDurationDays: duration,
		})
	}
	return records, nil
}

func readCSV(path string, want []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.Wrap(apperr.ErrFileNotFound, err, "%s does not exist", path)
		}
		return nil, apperr.Wrap(apperr.ErrIO, err, "cannot open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrSchemaMismatch, err, "%s has no header row", path)
	}
	if !slices.Equal(header, want) {
		return nil, apperr.New(apperr.ErrSchemaMismatch, "%s has columns %v, want %v", path, header, want)
	}
	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrMalformedRecord, err, "cannot parse %s", path)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
