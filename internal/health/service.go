package health

import (
	"context"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var startTime = time.Now()

// CollectResult is the /health/json payload.
type CollectResult struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Dependencies map[string]DepStatus `json:"dependencies"`
	Data         DataInfo             `json:"data"`
}

type RuntimeInfo struct {
	UptimeSeconds int64  `json:"uptimeSeconds"`
	GoVersion     string `json:"goVersion"`
	Platform      string `json:"platform"`
}

type DepStatus struct {
	Status string      `json:"status"`
	PingMs interface{} `json:"pingMs"`
}

// DataInfo reports how much resource data is loaded.
type DataInfo struct {
	ProjectResources  int64 `json:"projectResources"`
	ProjectTimeseries int64 `json:"projectTimeseries"`
}

// Collect gathers health data from the database and Redis. A nil Redis
// client reports the cache as disabled rather than down.
func Collect(ctx context.Context, db *gorm.DB, rdb *redis.Client) CollectResult {
	result := CollectResult{
		Status: "ok",
		Runtime: RuntimeInfo{
			UptimeSeconds: int64(time.Since(startTime).Seconds()),
			GoVersion:     runtime.Version(),
			Platform:      runtime.GOOS,
		},
		Dependencies: make(map[string]DepStatus),
	}

	dbStatus := "disconnected"
	var dbPingMs *int64
	if db != nil {
		start := time.Now()
		sqlDB, err := db.DB()
		if err == nil && sqlDB.PingContext(ctx) == nil {
			ms := time.Since(start).Milliseconds()
			dbPingMs = &ms
			dbStatus = "connected"
		} else {
			dbStatus = "error"
			result.Status = "degraded"
		}
	}
	result.Dependencies["database"] = DepStatus{Status: dbStatus, PingMs: dbPingMs}

	redisStatus := "disabled"
	var redisPingMs *int64
	if rdb != nil {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err == nil {
			ms := time.Since(start).Milliseconds()
			redisPingMs = &ms
			redisStatus = "connected"
		} else {
			redisStatus = "error"
			result.Status = "degraded"
		}
	}
	result.Dependencies["redis"] = DepStatus{Status: redisStatus, PingMs: redisPingMs}

	if db != nil && dbStatus == "connected" {
		// Counts ignore errors; a missing table just reads as zero rows.
		db.WithContext(ctx).Table("project_resources").Count(&result.Data.ProjectResources)
		db.WithContext(ctx).Table("project_timeseries").Count(&result.Data.ProjectTimeseries)
	}

	return result
}
