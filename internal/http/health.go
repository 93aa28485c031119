package http

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Uptime  string            `json:"uptime"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type healthCheck struct {
	name   string
	pinger Pinger
}

// HealthController reports the state of every registered dependency.
type HealthController struct {
	checks  []healthCheck
	version string
	started time.Time
}

func NewHealthController(version string) *HealthController {
	return &HealthController{
		version: version,
		started: time.Now(),
	}
}

// AddCheck registers a dependency probe; nil pingers are skipped.
func (h *HealthController) AddCheck(name string, pinger Pinger) *HealthController {
	if pinger != nil {
		h.checks = append(h.checks, healthCheck{name: name, pinger: pinger})
		sort.Slice(h.checks, func(i, j int) bool { return h.checks[i].name < h.checks[j].name })
	}
	return h
}

// Status answers 200 when every check passes and 503 otherwise.
// GET /health
func (h *HealthController) Status(c *gin.Context) {
	response := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Uptime:  time.Since(h.started).Round(time.Second).String(),
		Version: h.version,
		Checks:  make(map[string]string, len(h.checks)),
	}

	for _, check := range h.checks {
		if err := check.pinger.Ping(); err != nil {
			response.Checks[check.name] = "error: " + err.Error()
			response.Status = "unhealthy"
			continue
		}
		response.Checks[check.name] = "ok"
	}

	code := http.StatusOK
	if response.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, response)
}
