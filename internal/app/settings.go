package app

import (
	"errors"
	"sync"
	"time"

	"github.com/spf13/cast"
	"github.com/vroomify/vroom/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const settingsCacheTTL = 30 * time.Second

// SettingsManager serves typed values from the sys_config table with a
// short-lived read cache.
type SettingsManager struct {
	db       *gorm.DB
	mu       sync.RWMutex
	cache    map[string]string
	loadedAt time.Time
}

func NewSettingsManager(db *gorm.DB) *SettingsManager {
	return &SettingsManager{db: db, cache: map[string]string{}}
}

func (m *SettingsManager) load() {
	var rows []domain.SysConfig
	if err := m.db.Find(&rows).Error; err != nil {
		zap.L().Error("failed to load sys_config", zap.Error(err))
		return
	}
	cache := make(map[string]string, len(rows))
	for _, row := range rows {
		cache[row.Type+"."+row.Name] = row.Value
	}
	m.cache = cache
	m.loadedAt = time.Now()
}

func (m *SettingsManager) get(category, name string) string {
	m.mu.RLock()
	fresh := time.Since(m.loadedAt) < settingsCacheTTL
	value, ok := m.cache[category+"."+name]
	m.mu.RUnlock()
	if fresh && ok {
		return value
	}

	m.mu.Lock()
	if time.Since(m.loadedAt) >= settingsCacheTTL {
		m.load()
	}
	value = m.cache[category+"."+name]
	m.mu.Unlock()
	return value
}

// Invalidate drops the cache so the next read hits the database.
func (m *SettingsManager) Invalidate() {
	m.mu.Lock()
	m.loadedAt = time.Time{}
	m.mu.Unlock()
}

func (m *SettingsManager) GetString(category, name string) string {
	return m.get(category, name)
}

func (m *SettingsManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.get(category, name))
}

func (m *SettingsManager) GetBool(category, name string) bool {
	return cast.ToBool(m.get(category, name))
}

// Set writes a setting, creating the row if missing, and refreshes the cache.
func (m *SettingsManager) Set(category, name, value string) error {
	var row domain.SysConfig
	err := m.db.Where("type = ? AND name = ?", category, name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = m.db.Create(&domain.SysConfig{
			Type:  category,
			Name:  name,
			Value: value,
		}).Error
	} else if err == nil {
		err = m.db.Model(&domain.SysConfig{}).Where("id = ?", row.ID).Update("value", value).Error
	}
	if err != nil {
		return err
	}
	m.Invalidate()
	return nil
}
