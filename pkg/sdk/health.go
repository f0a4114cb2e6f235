package recipedex

import (
	"context"
	"time"
)

// Health is the aggregated health report.
type Health struct {
	Status string
	Checks map[string]string
}

// Health runs health checks against all wired components.
func (c *Client) Health(ctx context.Context) Health {
	start := time.Now()
	defer func() { c.obs.observe("health", start, nil) }()

	report := c.healthSvc.Check(ctx)

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return Health{Status: string(report.Status), Checks: checks}
}
