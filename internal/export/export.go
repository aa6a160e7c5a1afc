// Package export renders saved estimates and feedback as CSV and clipboard text.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/iburimskiy/time-estimator/internal/store"
)

// ErrEmpty is returned when there is nothing to export.
var ErrEmpty = errors.New("export: nothing to export")

// Default file names offered by the save dialog.
const (
	EstimatesFile = "estimates.csv"
	FeedbackFile  = "feedback.csv"
)

type estimateRow struct {
	Wood       string `csv:"wood"`
	Size       string `csv:"size"`
	Complexity string `csv:"complexity"`
	Tool       string `csv:"tool"`
	Hours      int    `csv:"hours"`
	Minutes    int    `csv:"minutes"`
	Created    string `csv:"created"`
}

type feedbackRow struct {
	Name    string `csv:"name"`
	Rating  int    `csv:"rating"`
	Message string `csv:"message"`
	Created string `csv:"created"`
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// WriteEstimates writes estimates in insertion order.
func WriteEstimates(w io.Writer, estimates []store.Estimate) error {
	if len(estimates) == 0 {
		return ErrEmpty
	}
	rows := make([]estimateRow, 0, len(estimates))
	for _, e := range estimates {
		rows = append(rows, estimateRow{
			Wood:       e.Wood,
			Size:       formatNumber(e.Size),
			Complexity: formatNumber(e.Complexity),
			Tool:       e.Tool,
			Hours:      e.Hours,
			Minutes:    e.Minutes,
			Created:    formatTime(e.Created),
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing estimates: %w", err)
	}
	return nil
}

// WriteFeedback writes feedback in insertion order.
func WriteFeedback(w io.Writer, feedbacks []store.Feedback) error {
	if len(feedbacks) == 0 {
		return ErrEmpty
	}
	rows := make([]feedbackRow, 0, len(feedbacks))
	for _, f := range feedbacks {
		rows = append(rows, feedbackRow{
			Name:    f.Name,
			Rating:  f.Rating,
			Message: f.Message,
			Created: formatTime(f.Created),
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing feedback: %w", err)
	}
	return nil
}

// ToFile creates path and fills it with write.
func ToFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// EstimateText is the one-line summary of a history row, as shown and copied.
func EstimateText(e store.Estimate) string {
	return fmt.Sprintf("%s, %scm, complexity %s, %s = %dh %dm",
		e.Wood, formatNumber(e.Size), formatNumber(e.Complexity), e.Tool, e.Hours, e.Minutes)
}

// LatestText is what the card's Copy button puts on the clipboard.
func LatestText(e store.Estimate) string {
	return fmt.Sprintf("%s, %scm, %s complexity, %s = %dh %dm",
		e.Wood, formatNumber(e.Size), formatNumber(e.Complexity), e.Tool, e.Hours, e.Minutes)
}
