package usecase

import (
	"context"
	"runtime"
	"time"

	"worklog-panel/internal/dto/response"
	"worklog-panel/pkg/database"

	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

type HealthService interface {
	// Check reports liveness; healthy is false when the store is unreachable.
	Check(ctx context.Context) (resp *response.HealthResponse, healthy bool)
}

type healthService struct {
	db      database.PgxIface
	started time.Time
	log     *zap.Logger
}

func NewHealthService(db database.PgxIface, log *zap.Logger) HealthService {
	return &healthService{
		db:      db,
		started: time.Now(),
		log:     log.With(zap.String("service", "health")),
	}
}

func (s *healthService) Check(ctx context.Context) (*response.HealthResponse, bool) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	resp := &response.HealthResponse{
		Status:   "ok",
		Database: "connected",
	}
	healthy := true
	if err := s.db.Ping(pingCtx); err != nil {
		s.log.Warn("Database ping failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Database = "disconnected"
		healthy = false
	}

	uptime := time.Since(s.started)
	resp.Uptime = uptime.Truncate(time.Second).String()
	resp.UptimeSeconds = int64(uptime.Seconds())

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	resp.Memory = response.MemoryUsage{
		AllocMB:     toMB(mem.Alloc),
		HeapAllocMB: toMB(mem.HeapAlloc),
		SysMB:       toMB(mem.Sys),
		NumGC:       mem.NumGC,
	}

	return resp, healthy
}

func toMB(b uint64) float64 {
	return float64(b) / 1024 / 1024
}
