package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"madrasa_backend/internal/model"
	"madrasa_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressKV is the storage port for per-course completion maps. The
// production implementation is Redis; tests swap in an in-memory fake.
type ProgressKV interface {
	// Get returns the raw value for key, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// RedisProgressKV stores progress maps in Redis.
type RedisProgressKV struct {
	Client *redis.Client
}

func NewRedisProgressKV(client *redis.Client) *RedisProgressKV {
	return &RedisProgressKV{Client: client}
}

func (s *RedisProgressKV) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *RedisProgressKV) Put(ctx context.Context, key string, value []byte) error {
	return s.Client.Set(ctx, key, value, 0).Err()
}

// ProgressRepository persists completion state in the KV store and mirrors
// aggregate numbers into MySQL for instructor dashboards.
type ProgressRepository struct {
	KV ProgressKV
	DB *gorm.DB
}

func NewProgressRepository(kv ProgressKV, db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{KV: kv, DB: db}
}

// ProgressKey names the completion map for one user and course.
func ProgressKey(userID uint, courseID string) string {
	return fmt.Sprintf("user:%d:course-%s-progress", userID, courseID)
}

// Load returns the stored completion map. A missing key or a value that no
// longer parses both yield an empty map so a corrupted entry never blocks
// the learner.
func (r *ProgressRepository) Load(ctx context.Context, userID uint, courseID string) (model.ProgressMap, error) {
	data, err := r.KV.Get(ctx, ProgressKey(userID, courseID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return model.ProgressMap{}, nil
	}

	var progress model.ProgressMap
	if err := json.Unmarshal(data, &progress); err != nil {
		logger.Log.Warn("discarding unreadable progress entry",
			zap.Uint("user_id", userID),
			zap.String("course_id", courseID),
			zap.Error(err))
		return model.ProgressMap{}, nil
	}
	if progress == nil {
		progress = model.ProgressMap{}
	}
	return progress, nil
}

// Save writes the whole completion map back under the user's key.
func (r *ProgressRepository) Save(ctx context.Context, userID uint, courseID string, progress model.ProgressMap) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return err
	}
	return r.KV.Put(ctx, ProgressKey(userID, courseID), data)
}

// SyncSummary upserts the MySQL mirror row with aggregate numbers derived
// from the completion map.
func (r *ProgressRepository) SyncSummary(userID uint, course *model.Course, progress model.ProgressMap, resume *model.ResumePoint) error {
	count := progress.TotalProgress(course)

	row := model.UserProgress{
		UserID:               userID,
		CourseID:             course.ID,
		CompletedSubsections: count.Completed,
		TotalSubsections:     count.Total,
		ProgressPercentage:   progress.Percentage(course),
		LastAccessed:         time.Now(),
	}
	if resume != nil {
		row.CurrentSectionID = resume.SectionID
		row.CurrentSubsectionID = resume.SubsectionID
	}
	if count.Total > 0 && count.Completed == count.Total {
		now := time.Now()
		row.CompletedAt = &now
	}

	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"completed_subsections", "total_subsections", "progress_percentage",
			"current_section_id", "current_subsection_id", "last_accessed", "completed_at",
		}),
	}).Create(&row).Error
}

func (r *ProgressRepository) ListSummaries(userID uint) ([]model.UserProgress, error) {
	var rows []model.UserProgress
	err := r.DB.Where("user_id = ?", userID).Order("last_accessed DESC").Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) ListByCourse(courseID string) ([]model.UserProgress, error) {
	var rows []model.UserProgress
	err := r.DB.Where("course_id = ?", courseID).Find(&rows).Error
	return rows, err
}
