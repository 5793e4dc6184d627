package app

import (
	"errors"
	"sync"
	"time"

	"github.com/atelier-mireille/backend/internal/domain"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultSettingsCacheTTL = time.Minute

// SettingsManager caches sys_config rows with a TTL so per-request reads
// (e.g. the notification toggle) do not hit the database.
type SettingsManager struct {
	db  *gorm.DB
	ttl time.Duration

	mu       sync.RWMutex
	values   map[string]string
	loadedAt time.Time
}

func NewSettingsManager(db *gorm.DB, ttl time.Duration) *SettingsManager {
	return &SettingsManager{db: db, ttl: ttl, values: map[string]string{}}
}

func (m *SettingsManager) snapshot() map[string]string {
	m.mu.RLock()
	fresh := time.Since(m.loadedAt) < m.ttl
	values := m.values
	m.mu.RUnlock()
	if fresh {
		return values
	}

	var rows []domain.Setting
	if err := m.db.Find(&rows).Error; err != nil {
		zap.L().Warn("settings refresh failed, serving stale values", zap.Error(err))
		return values
	}
	next := make(map[string]string, len(rows))
	for _, r := range rows {
		next[r.Category+"/"+r.Name] = r.Value
	}

	m.mu.Lock()
	m.values = next
	m.loadedAt = time.Now()
	m.mu.Unlock()
	return next
}

func (m *SettingsManager) GetString(category, name string) string {
	return m.snapshot()[category+"/"+name]
}

func (m *SettingsManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.GetString(category, name))
}

func (m *SettingsManager) GetBool(category, name string) bool {
	return cast.ToBool(m.GetString(category, name))
}

// checkSettings seeds the runtime settings rows that the service reads,
// leaving existing values untouched.
func (a *Application) checkSettings() {
	defaults := []domain.Setting{
		{Category: "notify", Name: "enabled", Value: "true", Remark: "order notification toggle"},
		{Category: "notify", Name: "chat_id", Value: "", Remark: "override destination chat"},
		{Category: "uploads", Name: "retention_days", Value: "30", Remark: "orphan upload retention"},
	}
	for _, s := range defaults {
		var existing domain.Setting
		err := a.gormDB.Where("category = ? AND name = ?", s.Category, s.Name).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := a.gormDB.Create(&s).Error; err != nil {
				zap.L().Error("failed to seed setting", zap.String("name", s.Name), zap.Error(err))
			}
		case err != nil:
			zap.L().Error("failed to query setting", zap.String("name", s.Name), zap.Error(err))
		}
	}
}
