// Package domain contains the core data structures and domain logic for the application.
package domain

// OpenDurationAbsent marks an issue that has not been closed yet; it is
// exported as an empty CSV field rather than a fabricated number.
const OpenDurationAbsent = -1

// CommitColumns is the fixed header of a commits export, in column order.
var CommitColumns = []string{"sha", "author", "email", "date", "message", "url"}

// IssueColumns is the fixed header of an issues export, in column order.
var IssueColumns = []string{"id", "number", "title", "author", "state", "created_at", "closed_at", "comments", "open_duration_days"}

// CommitRecord is one normalized commit row. Timestamps are RFC3339 UTC
// strings; optional fields hold the empty string when absent upstream.
type CommitRecord struct {
	SHA     string
	Author  string
	Email   string
	Date    string
	Message string
	URL     string
}

// IssueRecord is one normalized issue row. ClosedAt is empty while the issue
// is open, and OpenDurationDays is OpenDurationAbsent in that case.
type IssueRecord struct {
	ID               int64
	Number           int
	Title            string
	Author           string
	State            string
	CreatedAt        string
	ClosedAt         string
	Comments         int
	OpenDurationDays int
}

// SummaryReport holds the aggregates computed over a pair of exported files.
// It is recomputed on every invocation and never persisted.
type SummaryReport struct {
	TotalCommits           int            `json:"total_commits"`
	TotalIssues            int            `json:"total_issues"`
	IssuesByState          map[string]int `json:"issues_by_state"`
	CommitsByAuthor        map[string]int `json:"commits_by_author"`
	MeanOpenDurationDays   float64        `json:"mean_open_duration_days"`
	MedianOpenDurationDays float64        `json:"median_open_duration_days"`
}
