package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/ansh808s/cause-drop/internal/model"
	"github.com/ansh808s/cause-drop/internal/pkg/timeutil"
)

type campaignStore interface {
	ListIDs(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id string) (*model.Campaign, error)
	SetTotalRaised(ctx context.Context, id string, total int64, mtime int64) error
}

type donationStore interface {
	SumByCampaign(ctx context.Context, campaignID string) (int64, error)
}

type campaignCache interface {
	Invalidate(slug string)
}

// DonationReconcileJob recomputes each campaign's raised total from the
// donations table. The request path bumps the aggregate in place; a
// crash between the donation insert and the bump leaves drift this job
// heals.
type DonationReconcileJob struct {
	campaigns campaignStore
	donations donationStore
	cache     campaignCache
}

func NewDonationReconcileJob(campaigns campaignStore, donations donationStore, cache campaignCache) *DonationReconcileJob {
	return &DonationReconcileJob{campaigns: campaigns, donations: donations, cache: cache}
}

func (j *DonationReconcileJob) Name() string {
	return "donation_reconcile"
}

func (j *DonationReconcileJob) Run(ctx context.Context) error {
	ids, err := j.campaigns.ListIDs(ctx)
	if err != nil {
		return err
	}
	var fixed int
	for _, id := range ids {
		cp, err := j.campaigns.GetByID(ctx, id)
		if err != nil {
			return err
		}
		total, err := j.donations.SumByCampaign(ctx, id)
		if err != nil {
			return err
		}
		if total == cp.TotalRaised {
			continue
		}
		if err := j.campaigns.SetTotalRaised(ctx, id, total, timeutil.NowUnix()); err != nil {
			return err
		}
		if j.cache != nil {
			j.cache.Invalidate(cp.Slug)
		}
		fixed++
	}
	if fixed > 0 {
		logutil.GetLogger(ctx).Info("campaign totals reconciled", zap.Int("fixed", fixed))
	}
	return nil
}
