package job

import (
	"context"
	"testing"

	"github.com/ansh808s/cause-drop/internal/model"
)

type memCampaigns struct {
	rows map[string]*model.Campaign
	sets int
}

func (m *memCampaigns) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	for id := range m.rows {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memCampaigns) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	cp := *m.rows[id]
	return &cp, nil
}

func (m *memCampaigns) SetTotalRaised(ctx context.Context, id string, total int64, mtime int64) error {
	m.rows[id].TotalRaised = total
	m.sets++
	return nil
}

type memDonations struct {
	sums map[string]int64
}

func (m *memDonations) SumByCampaign(ctx context.Context, campaignID string) (int64, error) {
	return m.sums[campaignID], nil
}

type memCache struct {
	invalidated []string
}

func (m *memCache) Invalidate(slug string) {
	m.invalidated = append(m.invalidated, slug)
}

func TestDonationReconcileHealsDrift(t *testing.T) {
	campaigns := &memCampaigns{rows: map[string]*model.Campaign{
		"c1": {ID: "c1", Slug: "drifted", TotalRaised: 100},
		"c2": {ID: "c2", Slug: "in-sync", TotalRaised: 500},
	}}
	donations := &memDonations{sums: map[string]int64{"c1": 250, "c2": 500}}
	cache := &memCache{}

	job := NewDonationReconcileJob(campaigns, donations, cache)
	if job.Name() != "donation_reconcile" {
		t.Fatalf("unexpected job name: %s", job.Name())
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if campaigns.rows["c1"].TotalRaised != 250 {
		t.Fatalf("drifted campaign not fixed: %d", campaigns.rows["c1"].TotalRaised)
	}
	if campaigns.sets != 1 {
		t.Fatalf("in-sync campaign must not be rewritten, got %d writes", campaigns.sets)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "drifted" {
		t.Fatalf("unexpected cache invalidations: %v", cache.invalidated)
	}
}

func TestDonationReconcileEmpty(t *testing.T) {
	job := NewDonationReconcileJob(
		&memCampaigns{rows: map[string]*model.Campaign{}},
		&memDonations{sums: map[string]int64{}},
		nil,
	)
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
}
