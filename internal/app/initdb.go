package app

import (
	"errors"
	"time"

	"github.com/vroomify/vroom/internal/domain"
	"github.com/vroomify/vroom/pkg/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// checkSuper seeds the default admin account on first start.
func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "vroom"

	var user domain.User
	err := a.gormDB.Where("username = ?", superUsername).First(&user).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		if err != nil {
			zap.L().Error("failed to query super admin", zap.Error(err))
		}
		return
	}

	hashed, err := common.HashPassword(defaultPassword)
	if err != nil {
		zap.L().Error("failed to hash default password", zap.Error(err))
		return
	}
	if err := a.gormDB.Create(&domain.User{
		ID:        common.UUIDint64(),
		Username:  superUsername,
		Email:     "admin@localhost",
		Password:  hashed,
		Realname:  "administrator",
		Status:    common.ENABLED,
		LastLogin: time.Now(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}).Error; err != nil {
		zap.L().Error("failed to create default super admin", zap.Error(err))
		return
	}
	zap.L().Info("initialized default super admin account", zap.String("username", superUsername))
}

type settingSchema struct {
	Key         string
	Default     string
	Description string
}

var defaultSettings = []settingSchema{
	{"site.name", "Vroom", "Site display name"},
	{"site.trending_limit", "10", "Default trending list size"},
	{"auth.session_ttl_hours", "168", "Login session lifetime in hours"},
	{"job.counter_audit_cron", "17 3 * * *", "Counter reconciliation schedule"},
	{"job.session_purge_cron", "@hourly", "Expired session purge schedule"},
}

// checkSettings initializes missing sys_config entries with their defaults.
func (a *Application) checkSettings() {
	for sortid, schema := range defaultSettings {
		category, name, ok := splitKey(schema.Key)
		if !ok {
			zap.L().Warn("invalid config key format", zap.String("key", schema.Key))
			continue
		}

		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				Sort:   sortid,
				Type:   category,
				Name:   name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.Key),
				zap.String("default", schema.Default))
		}
	}
}

func splitKey(key string) (category, name string, ok bool) {
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			return key[:i], key[i+1:], i > 0 && i < len(key)-1
		}
	}
	return "", "", false
}
