package usecase

import (
	"context"
	"time"

	"careerai-backend/internal/domain"
	"careerai-backend/pkg/logger"
)

const probeTimeout = 2 * time.Second

// HealthProbe checks one dependency. A failing critical probe makes the
// service unhealthy; a failing optional one only degrades it.
type HealthProbe struct {
	Name     string
	Critical bool
	Ping     func(ctx context.Context) error
}

type healthUsecase struct {
	probes []HealthProbe
}

func NewHealthUsecase(probes ...HealthProbe) domain.HealthUsecase {
	return &healthUsecase{probes: probes}
}

func (u *healthUsecase) Check(ctx context.Context) *domain.HealthStatus {
	status := &domain.HealthStatus{
		Status:  "ok",
		Checks:  make(map[string]string, len(u.probes)),
		Healthy: true,
	}
	for _, p := range u.probes {
		pctx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := p.Ping(pctx)
		cancel()

		if err == nil {
			status.Checks[p.Name] = "ok"
			continue
		}
		logger.Log.Warn("Health probe failed", "dependency", p.Name, "error", err)
		status.Checks[p.Name] = "unavailable"
		if p.Critical {
			status.Healthy = false
			status.Status = "unavailable"
		} else if status.Healthy {
			status.Status = "degraded"
		}
	}
	return status
}
