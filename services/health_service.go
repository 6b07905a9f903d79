package services

import (
	"comandas_server/database"
	"context"
	"runtime"
	"time"

	"github.com/MonkyMars/gecho"
)

var uptimeStart time.Time

func init() {
	uptimeStart = time.Now()
}

type serverHealthStatus struct {
	Uptime       float64   `json:"uptime"`        // in seconds
	CurrentTime  time.Time `json:"current_time"`  // server current time
	ServiceAlive bool      `json:"service_alive"` // always true if service is running
	RamStats     *RamStats `json:"ram_stats"`
}

type RamStats struct {
	TotalMB     uint64 `json:"total_mb"`
	UsedMB      uint64 `json:"used_mb"`
	FreeMB      uint64 `json:"free_mb"`
	UsedPercent uint64 `json:"used_percent"`
}

type databaseHealthStatus struct {
	Backend        string    `json:"backend"`
	Connected      bool      `json:"connected"`
	CacheEnabled   bool      `json:"cache_enabled"`
	CacheConnected bool      `json:"cache_connected"`
	LastChecked    time.Time `json:"last_checked"`
	ResponseTimeMs int64     `json:"response_time_ms"`
}

type HealthService struct {
	logger *gecho.Logger
	db     *database.DB
	cache  *CacheService
}

// NewHealthService accepts a nil db when tickets are kept in memory.
func NewHealthService(logger *gecho.Logger, db *database.DB, cache *CacheService) *HealthService {
	return &HealthService{
		logger: logger,
		db:     db,
		cache:  cache,
	}
}

func getRamStats() *RamStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	totalMB := m.Sys / 1024 / 1024
	usedMB := m.Alloc / 1024 / 1024
	freeMB := totalMB - usedMB
	usedPercent := uint64(0)
	if totalMB > 0 {
		usedPercent = (usedMB * 100) / totalMB
	}

	return &RamStats{
		TotalMB:     totalMB,
		UsedMB:      usedMB,
		FreeMB:      freeMB,
		UsedPercent: usedPercent,
	}
}

func (hs *HealthService) GetServerHealthStatus() serverHealthStatus {
	return serverHealthStatus{
		Uptime:       time.Since(uptimeStart).Seconds(),
		CurrentTime:  time.Now(),
		ServiceAlive: true,
		RamStats:     getRamStats(),
	}
}

func (hs *HealthService) GetDatabaseHealthStatus(ctx context.Context) (databaseHealthStatus, error) {
	dbStatus := databaseHealthStatus{
		Backend:      "memory",
		Connected:    true,
		CacheEnabled: hs.cache != nil && hs.cache.Enabled(),
		LastChecked:  time.Now(),
	}

	var err error
	if hs.db != nil {
		start := time.Now()
		err = hs.db.Health(ctx)
		dbStatus.Backend = "postgres"
		dbStatus.Connected = err == nil
		dbStatus.ResponseTimeMs = time.Since(start).Milliseconds()
		if err != nil {
			hs.logger.Error("Database health check failed", gecho.Field("error", err))
		}
	}

	if dbStatus.CacheEnabled {
		if cacheErr := hs.cache.Ping(ctx); cacheErr != nil {
			hs.logger.Warn("Cache health check failed", gecho.Field("error", cacheErr))
		} else {
			dbStatus.CacheConnected = true
		}
	}

	return dbStatus, err
}
