package processor

import (
	"context"
	"fmt"
	"time"

	"campaign-engine/internal/store"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// nextOccurrence returns when a recurring campaign runs next, evaluated in
// the campaign's timezone. ok is false for one-shot campaigns and once the
// next occurrence falls on or after EndAt.
func nextOccurrence(campaign store.Campaign, after time.Time) (time.Time, bool) {
	if campaign.Recurrence == "" {
		return time.Time{}, false
	}
	schedule, err := cron.ParseStandard(campaign.Recurrence)
	if err != nil {
		return time.Time{}, false
	}
	loc, err := time.LoadLocation(campaign.Timezone)
	if err != nil {
		loc = time.UTC
	}
	next := schedule.Next(after.In(loc)).UTC()
	if next.IsZero() {
		return time.Time{}, false
	}
	if campaign.EndAt != nil && !next.Before(*campaign.EndAt) {
		return time.Time{}, false
	}
	return next, true
}

// GoalStatus is the progress of one campaign goal
type GoalStatus struct {
	Metric  string
	Target  int64
	Current int64
	Reached bool
}

// GoalProgress sums the campaign's daily rollups and compares them with its
// goal targets.
func (p *CampaignProcessor) GoalProgress(ctx context.Context, campaignID uuid.UUID) ([]GoalStatus, error) {
	campaign, err := p.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	rollups, err := p.store.GetMetricRollups(ctx, campaignID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load rollups: %w", err)
	}

	var total store.MetricRollup
	for _, r := range rollups {
		for _, m := range []store.Metric{
			store.MetricSent, store.MetricDelivered, store.MetricOpened,
			store.MetricClicked, store.MetricConverted, store.MetricBounced,
		} {
			total.Add(m, r.Get(m))
		}
	}

	out := make([]GoalStatus, 0, len(campaign.Goals.V))
	for _, g := range campaign.Goals.V {
		current := total.Get(store.Metric(g.Metric))
		out = append(out, GoalStatus{
			Metric:  g.Metric,
			Target:  g.Target,
			Current: current,
			Reached: current >= g.Target,
		})
	}
	return out, nil
}
