package response

type HealthResponse struct {
	Status        string      `json:"status"`
	Database      string      `json:"database"`
	Uptime        string      `json:"uptime"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	Memory        MemoryUsage `json:"memory"`
}

type MemoryUsage struct {
	AllocMB     float64 `json:"alloc_mb"`
	HeapAllocMB float64 `json:"heap_alloc_mb"`
	SysMB       float64 `json:"sys_mb"`
	NumGC       uint32  `json:"num_gc"`
}
