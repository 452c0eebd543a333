// Package reporting is the read-only aggregation layer: dashboard summary
// statistics, CSV export, and the nightly ComplaintMetrics rollup. It never
// mutates complaints.
package reporting

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"helpdesk/backend/internal/config"
	"helpdesk/backend/internal/models"
	"helpdesk/backend/internal/storage"

	log "github.com/sirupsen/logrus"
)

type Service struct {
	Storage storage.Storage
}

func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// Summary is the dashboard aggregate for a date range.
type Summary struct {
	From             time.Time               `json:"from"`
	To               time.Time               `json:"to"`
	Stats            storage.ResolutionStats `json:"stats"`
	StatusBreakdown  map[string]int          `json:"status_breakdown"`
	UrgencyBreakdown map[string]int          `json:"urgency_breakdown"`
	TypeBreakdown    map[string]int          `json:"type_breakdown"`
}

// Summarize computes the dashboard summary, serving a cached copy when one
// is fresh enough.
func (s *Service) Summarize(from, to time.Time) (*Summary, error) {
	cacheKey := fmt.Sprintf("helpdesk:summary:%s:%s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	if cached, ok, err := s.Storage.CacheGet(cacheKey); err == nil && ok {
		var summary Summary
		if err := json.Unmarshal(cached, &summary); err == nil {
			return &summary, nil
		}
	}

	stats, err := s.Storage.GetResolutionStats(from, to, config.SLAWindow)
	if err != nil {
		return nil, err
	}

	complaints, err := s.Storage.FindComplaints(storage.ComplaintFilter{
		CreatedFrom: &from,
		CreatedTo:   &to,
	})
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		From:             from,
		To:               to,
		Stats:            *stats,
		StatusBreakdown:  map[string]int{},
		UrgencyBreakdown: map[string]int{},
		TypeBreakdown:    map[string]int{},
	}
	for _, c := range complaints {
		if c.Status != nil {
			summary.StatusBreakdown[c.Status.Name]++
		}
		summary.UrgencyBreakdown[string(c.Urgency)]++
		if c.Type != nil {
			summary.TypeBreakdown[c.Type.Name]++
		}
	}

	if payload, err := json.Marshal(summary); err == nil {
		if err := s.Storage.CacheSet(cacheKey, payload, config.DashboardCacheTTL); err != nil {
			log.WithError(err).Warn("summary cache write failed")
		}
	}

	return summary, nil
}

// ExportCSV writes the complaints created inside [from, to) as CSV.
func (s *Service) ExportCSV(w io.Writer, from, to time.Time) error {
	complaints, err := s.Storage.FindComplaints(storage.ComplaintFilter{
		CreatedFrom: &from,
		CreatedTo:   &to,
	})
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{
		"id", "title", "type", "status", "urgency", "submitted_by",
		"assigned_to", "location", "created_at", "resolved_at", "resolution_hours",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, c := range complaints {
		row := []string{
			strconv.FormatUint(uint64(c.ID), 10),
			c.Title,
			name(c.Type),
			statusName(c.Status),
			string(c.Urgency),
			displayName(c.User),
			displayName(c.AssignedTo),
			c.Location,
			c.CreatedAt.Format(time.RFC3339),
			formatTime(c.ResolvedAt),
			resolutionHours(&c),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// RollupDay recomputes the metrics snapshot for one calendar day. Reruns
// replace the existing row.
func (s *Service) RollupDay(day time.Time) error {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)

	stats, err := s.Storage.GetResolutionStats(from, to, config.SLAWindow)
	if err != nil {
		return err
	}
	complaints, err := s.Storage.FindComplaints(storage.ComplaintFilter{
		CreatedFrom: &from,
		CreatedTo:   &to,
	})
	if err != nil {
		return err
	}

	urgency := map[string]int{}
	types := map[string]int{}
	open := 0
	for _, c := range complaints {
		urgency[string(c.Urgency)]++
		if c.Type != nil {
			types[c.Type.Name]++
		}
		if !c.IsClosed() {
			open++
		}
	}

	urgencyJSON, _ := json.Marshal(urgency)
	typesJSON, _ := json.Marshal(types)

	metrics := &models.ComplaintMetrics{
		Date:               from,
		TotalComplaints:    int(stats.Total),
		OpenComplaints:     open,
		ResolvedComplaints: int(stats.Resolved),
		UrgencyBreakdown:   string(urgencyJSON),
		TypeBreakdown:      string(typesJSON),
		AvgResolutionHours: stats.AvgHours,
		AvgRating:          stats.AverageRating,
	}
	if err := s.Storage.UpsertMetrics(metrics); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"date":  from.Format("2006-01-02"),
		"total": metrics.TotalComplaints,
	}).Info("metrics rollup complete")
	return nil
}

// RollupYesterday exists for the cron schedule.
func (s *Service) RollupYesterday() {
	if err := s.RollupDay(time.Now().AddDate(0, 0, -1)); err != nil {
		log.WithError(err).Error("nightly metrics rollup failed")
	}
}

func name(t *models.ComplaintType) string {
	if t == nil {
		return ""
	}
	return t.Name
}

func statusName(st *models.Status) string {
	if st == nil {
		return ""
	}
	return st.Name
}

func displayName(u *models.User) string {
	if u == nil {
		return ""
	}
	return u.DisplayName()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func resolutionHours(c *models.Complaint) string {
	if c.ResolvedAt == nil {
		return ""
	}
	return fmt.Sprintf("%.1f", c.ResolvedAt.Sub(c.CreatedAt).Hours())
}
