// Package handler provides HTTP handlers for the WanderWise API.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/akshita-as02/wanderwise/internal/api/models"
	"github.com/akshita-as02/wanderwise/internal/api/response"
	"github.com/akshita-as02/wanderwise/internal/provider/resilience"
)

// readinessTimeout bounds each dependency check in ReadinessCheck.
const readinessTimeout = 2 * time.Second

// Pinger checks that a backing store is reachable.
type Pinger func(ctx context.Context) error

// OpsConfig holds dependencies for the OpsHandler.
type OpsConfig struct {
	Version   string
	BuildTime string

	// Registry reports upstream provider health. Optional.
	Registry *resilience.Registry

	// StoreBackend names the itinerary store (memory, postgres or redis).
	StoreBackend string

	// StorePing is nil for the in-memory store.
	StorePing Pinger

	// GeneratorConfigured is false when no generation credential is set.
	GeneratorConfigured bool

	// QueueEnabled reports whether asynchronous jobs are available.
	QueueEnabled bool
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	cfg OpsConfig
	now func() time.Time
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(cfg OpsConfig) *OpsHandler {
	return &OpsHandler{cfg: cfg, now: time.Now}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(h.now()),
		Details: map[string]any{
			"version":   h.cfg.Version,
			"buildTime": h.cfg.BuildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready. It fails with 503 while the
// itinerary store is unreachable.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	store := h.storeStatus(r.Context())

	health := models.Health{
		Status: store.Status,
		Time:   models.Timestamp(h.now()),
		Details: map[string]any{
			"store": h.cfg.StoreBackend,
		},
	}
	if store.Detail != nil {
		health.Details["error"] = *store.Detail
	}

	status := http.StatusOK
	if store.Status == models.HealthStatusFail {
		status = http.StatusServiceUnavailable
	}
	response.JSON(w, r, status, health)
}

// SystemStatus handles GET /v1/ops/status - provider and subsystem status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	subsystems := []models.SubsystemStatus{
		h.storeStatus(r.Context()),
		h.generatorStatus(),
		h.queueStatus(),
	}
	providers := h.providerStatuses()

	overall := models.HealthStatusOK
	for _, s := range subsystems {
		overall = overall.Worse(s.Status)
	}
	for _, p := range providers {
		overall = overall.Worse(p.Status)
	}

	response.JSON(w, r, http.StatusOK, models.SystemStatus{
		Status:     overall,
		Time:       models.Timestamp(h.now()),
		Version:    h.cfg.Version,
		Subsystems: subsystems,
		Providers:  providers,
	})
}

func (h *OpsHandler) storeStatus(ctx context.Context) models.SubsystemStatus {
	status := models.SubsystemStatus{Name: "store:" + h.cfg.StoreBackend, Status: models.HealthStatusOK}
	if h.cfg.StorePing == nil {
		return status
	}

	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()
	if err := h.cfg.StorePing(ctx); err != nil {
		detail := err.Error()
		status.Status = models.HealthStatusFail
		status.Detail = &detail
	}
	return status
}

func (h *OpsHandler) generatorStatus() models.SubsystemStatus {
	status := models.SubsystemStatus{Name: "generation", Status: models.HealthStatusOK}
	if !h.cfg.GeneratorConfigured {
		detail := "generation credential is not configured"
		status.Status = models.HealthStatusDegraded
		status.Detail = &detail
	}
	return status
}

func (h *OpsHandler) queueStatus() models.SubsystemStatus {
	status := models.SubsystemStatus{Name: "job-queue", Status: models.HealthStatusOK}
	if !h.cfg.QueueEnabled {
		detail := "asynchronous jobs are disabled"
		status.Detail = &detail
	}
	return status
}

func (h *OpsHandler) providerStatuses() []models.ProviderStatus {
	if h.cfg.Registry == nil {
		return []models.ProviderStatus{}
	}

	all := h.cfg.Registry.GetAllHealth()
	out := make([]models.ProviderStatus, 0, len(all))
	for _, ph := range all {
		ps := models.ProviderStatus{
			Provider:     ph.Name,
			Status:       circuitHealth(ph.CircuitState),
			CircuitState: ph.CircuitState.String(),
		}
		if ph.LastSuccessAt != nil {
			ts := models.Timestamp(*ph.LastSuccessAt)
			ps.LastSuccessAt = &ts
		}
		if ph.LastFailureAt != nil {
			ts := models.Timestamp(*ph.LastFailureAt)
			ps.LastFailureAt = &ts
		}
		if ph.LastError != "" {
			msg := ph.LastError
			ps.Message = &msg
		}
		out = append(out, ps)
	}
	return out
}

func circuitHealth(state gobreaker.State) models.HealthStatus {
	switch state {
	case gobreaker.StateOpen:
		return models.HealthStatusFail
	case gobreaker.StateHalfOpen:
		return models.HealthStatusDegraded
	default:
		return models.HealthStatusOK
	}
}
