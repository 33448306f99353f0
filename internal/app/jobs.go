package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/vroomify/vroom/pkg/common"
	"go.uber.org/zap"
)

// initJob registers maintenance jobs: the counter reconciliation sweep and
// the expired-session purge. Schedules come from sys_config with sane
// fallbacks.
func (a *Application) initJob() {
	a.sched = cron.New()

	auditSpec := common.IfEmptyStr(a.GetSettingsStringValue("job", "counter_audit_cron"), "17 3 * * *")
	_, err := a.sched.AddFunc(auditSpec, a.runCounterAudit)
	if err != nil {
		zap.L().Error("failed to register counter audit job", zap.Error(err))
	}

	purgeSpec := common.IfEmptyStr(a.GetSettingsStringValue("job", "session_purge_cron"), "@hourly")
	_, err = a.sched.AddFunc(purgeSpec, a.runSessionPurge)
	if err != nil {
		zap.L().Error("failed to register session purge job", zap.Error(err))
	}
}

func (a *Application) runCounterAudit() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	fixedProducts, err := a.dataStore.ReconcileProductCounters(ctx)
	if err != nil {
		zap.L().Error("product counter audit failed", zap.Error(err))
		return
	}
	fixedVrooms, err := a.dataStore.ReconcileVroomCounters(ctx)
	if err != nil {
		zap.L().Error("vroom counter audit failed", zap.Error(err))
		return
	}
	zap.L().Info("counter audit finished",
		zap.Int64("products_fixed", fixedProducts),
		zap.Int64("vrooms_fixed", fixedVrooms),
		zap.Duration("elapsed", time.Since(start)))
}

func (a *Application) runSessionPurge() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	purged, err := a.dataStore.PurgeExpiredSessions(ctx)
	if err != nil {
		zap.L().Error("session purge failed", zap.Error(err))
		return
	}
	if purged > 0 {
		zap.L().Info("purged expired sessions", zap.Int64("count", purged))
	}
}
