package webui

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const DefaultHealthSchedule = "@every 30s"

const healthProbeTimeout = 5 * time.Second

type Pinger interface {
	Health(ctx context.Context) error
}

type HealthStatus struct {
	Healthy   bool      `json:"healthy"`
	CheckedAt time.Time `json:"checkedAt"`
	Error     string    `json:"error,omitempty"`
}

// HealthMonitor polls the backend's /health on a schedule so that the page
// can show availability without issuing a probe per page load.
type HealthMonitor struct {
	pinger Pinger
	cron   *cron.Cron
	logger *logrus.Logger

	mu     sync.RWMutex
	status HealthStatus
}

func NewHealthMonitor(pinger Pinger, schedule string, logger *logrus.Logger) (*HealthMonitor, error) {
	if schedule == "" {
		schedule = DefaultHealthSchedule
	}

	m := &HealthMonitor{
		pinger: pinger,
		cron:   cron.New(),
		logger: logger,
	}

	if _, err := m.cron.AddFunc(schedule, m.Check); err != nil {
		return nil, err
	}

	return m, nil
}

// Start probes once immediately, then on the schedule.
func (m *HealthMonitor) Start() {
	m.Check()
	m.cron.Start()
}

func (m *HealthMonitor) Stop() {
	m.cron.Stop()
}

func (m *HealthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.status
}

func (m *HealthMonitor) Check() {
	ctx, cancel := context.WithTimeout(context.Background(), healthProbeTimeout)
	defer cancel()

	err := m.pinger.Health(ctx)

	m.mu.Lock()
	wasHealthy := m.status.Healthy
	m.status = HealthStatus{
		Healthy:   err == nil,
		CheckedAt: time.Now(),
	}
	if err != nil {
		m.status.Error = err.Error()
	}
	m.mu.Unlock()

	if err != nil && wasHealthy && m.logger != nil {
		m.logger.Errorf("backend became unhealthy: %v", err)
	}
}
