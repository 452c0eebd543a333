package storage

import (
	"encoding/json"
	"errors"
	"time"

	"helpdesk/backend/internal/models"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm/clause"
)

// eventChannel is the Redis Pub/Sub channel lifecycle events fan out on.
const eventChannel = "helpdesk:events"

// GetResolutionStats aggregates complaints created inside [from, to).
func (s *Service) GetResolutionStats(from, to time.Time, slaWindow time.Duration) (*ResolutionStats, error) {
	stats := &ResolutionStats{}

	err := s.DB.Model(&models.Complaint{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&stats.Total).Error
	if err != nil {
		return nil, err
	}
	err = s.DB.Model(&models.Complaint{}).
		Where("created_at >= ? AND created_at < ? AND resolved_at IS NOT NULL", from, to).
		Count(&stats.Resolved).Error
	if err != nil {
		return nil, err
	}
	err = s.DB.Model(&models.Complaint{}).
		Where("created_at >= ? AND created_at < ? AND resolved_at IS NOT NULL", from, to).
		Where("EXTRACT(EPOCH FROM (resolved_at - created_at)) <= ?", slaWindow.Seconds()).
		Count(&stats.WithinSLA).Error
	if err != nil {
		return nil, err
	}

	// Average resolution time in hours across resolved complaints.
	var avgHours *float64
	err = s.DB.Model(&models.Complaint{}).
		Where("created_at >= ? AND created_at < ? AND resolved_at IS NOT NULL", from, to).
		Select("AVG(EXTRACT(EPOCH FROM (resolved_at - created_at)) / 3600.0)").
		Scan(&avgHours).Error
	if err != nil {
		return nil, err
	}
	if avgHours != nil {
		stats.AvgHours = *avgHours
	}

	var avgRating *float64
	err = s.DB.Model(&models.ComplaintFeedback{}).
		Joins("JOIN complaints ON complaints.id = complaint_feedbacks.complaint_id").
		Where("complaints.created_at >= ? AND complaints.created_at < ?", from, to).
		Select("AVG(complaint_feedbacks.rating)").
		Scan(&avgRating).Error
	if err != nil {
		return nil, err
	}
	if avgRating != nil {
		stats.AverageRating = *avgRating
	}

	return stats, nil
}

// UpsertMetrics writes the daily snapshot, replacing an existing row for the
// same date so reruns of the rollup are safe.
func (s *Service) UpsertMetrics(m *models.ComplaintMetrics) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_complaints", "open_complaints", "resolved_complaints",
			"urgency_breakdown", "type_breakdown", "avg_resolution_hours", "avg_rating",
		}),
	}).Create(m).Error
}

func (s *Service) GetMetricsRange(from, to time.Time) ([]models.ComplaintMetrics, error) {
	var metrics []models.ComplaintMetrics
	err := s.DB.Where("date >= ? AND date < ?", from, to).
		Order("date asc").
		Find(&metrics).Error
	return metrics, err
}

// PublishEvent pushes a lifecycle event onto the Redis channel for the live
// feed. A nil Redis client makes this a no-op so the admin CLI can run
// without Redis.
func (s *Service) PublishEvent(event models.ComplaintEvent) error {
	if s.Redis == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := s.Redis.Publish(s.Ctx, eventChannel, payload).Err(); err != nil {
		log.WithError(err).WithField("complaint_id", event.ComplaintID).Error("failed to publish event")
		return err
	}
	return nil
}

// SubscribeEvents returns a subscription on the lifecycle event channel.
// Only the concrete Service exposes this; consumers that need it hold a
// *Service, not the Storage interface.
func (s *Service) SubscribeEvents() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, eventChannel)
}

func (s *Service) CacheSet(key string, value []byte, ttl time.Duration) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Set(s.Ctx, key, value, ttl).Err()
}

func (s *Service) CacheGet(key string) ([]byte, bool, error) {
	if s.Redis == nil {
		return nil, false, nil
	}
	value, err := s.Redis.Get(s.Ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}
