package usecase

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/hiromon0125/swen746-project/internal/apperr"
	"github.com/hiromon0125/swen746-project/internal/domain"
)

// ExportCommits writes the records to dest as CSV, header first, and returns
// the number of data rows written. Writes are not atomic: a failure can leave
// a truncated file behind.
func ExportCommits(records []domain.CommitRecord, dest string) (int, error) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.SHA, r.Author, r.Email, r.Date, r.Message, r.URL})
	}
	return writeCSV(dest, domain.CommitColumns, rows)
}

// ExportIssues writes the records to dest as CSV, header first, and returns
// the number of data rows written. The absent open-duration sentinel is
// encoded as an empty field.
func ExportIssues(records []domain.IssueRecord, dest string) (int, error) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		duration := ""
		if r.OpenDurationDays != domain.OpenDurationAbsent {
			duration = strconv.Itoa(r.OpenDurationDays)
		}
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			strconv.Itoa(r.Number),
			r.Title,
			r.Author,
			r.State,
			r.CreatedAt,
			r.ClosedAt,
			strconv.Itoa(r.Comments),
			duration,
		})
	}
	return writeCSV(dest, domain.IssueColumns, rows)
}

func writeCSV(dest string, header []string, rows [][]string) (int, error) {
	f, err := os.Create(dest)
	if err != nil {
		return 0, apperr.Wrap(apperr.ErrIO, err, "cannot create %s", dest)
	}
	w := csv.NewWriter(f)
	w.Write(header)
	for _, row := range rows {
		w.Write(row)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return 0, apperr.Wrap(apperr.ErrIO, err, "cannot write %s", dest)
	}
	if err := f.Close(); err != nil {
		return 0, apperr.Wrap(apperr.ErrIO, err, "cannot write %s", dest)
	}
	return len(rows), nil
}
