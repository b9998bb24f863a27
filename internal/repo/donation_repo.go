package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/ansh808s/cause-drop/internal/model"
	"github.com/ansh808s/cause-drop/internal/pkg/dbutil"
	appErr "github.com/ansh808s/cause-drop/internal/pkg/errors"
)

type DonationRepo struct {
	db *sql.DB
}

func NewDonationRepo(db *sql.DB) *DonationRepo {
	return &DonationRepo{db: db}
}

var donationFields = []string{"id", "campaign_id", "donor", "lamports", "ctime"}

func (r *DonationRepo) Create(ctx context.Context, d *model.Donation) error {
	data := map[string]interface{}{
		"id":          d.ID,
		"campaign_id": d.CampaignID,
		"donor":       d.Donor,
		"lamports":    d.Lamports,
		"ctime":       d.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("donations", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *DonationRepo) ListByCampaign(ctx context.Context, campaignID string, limit uint) ([]*model.Donation, error) {
	where := map[string]interface{}{
		"campaign_id": campaignID,
		"_orderby":    "ctime desc",
	}
	if limit > 0 {
		where["_limit"] = []uint{0, limit}
	}
	sqlStr, args, err := builder.BuildSelect("donations", where, donationFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var list []*model.Donation
	for rows.Next() {
		var d model.Donation
		if err := rows.Scan(&d.ID, &d.CampaignID, &d.Donor, &d.Lamports, &d.Ctime); err != nil {
			return nil, err
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// SumByCampaign recomputes the raised total from individual donation rows.
func (r *DonationRepo) SumByCampaign(ctx context.Context, campaignID string) (int64, error) {
	sqlStr := "SELECT COALESCE(SUM(lamports), 0) FROM donations WHERE campaign_id = ?"
	args := []interface{}{campaignID}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	var total int64
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
