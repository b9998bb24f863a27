package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/ansh808s/cause-drop/internal/model"
	"github.com/ansh808s/cause-drop/internal/pkg/dbutil"
	appErr "github.com/ansh808s/cause-drop/internal/pkg/errors"
)

type CampaignRepo struct {
	db *sql.DB
}

func NewCampaignRepo(db *sql.DB) *CampaignRepo {
	return &CampaignRepo{db: db}
}

var campaignFields = []string{
	"id", "user_id", "title", "description", "recipient",
	"image_url", "goal_lamports", "slug", "total_raised", "active", "ctime", "mtime",
}

func scanCampaign(rows *sql.Rows) (*model.Campaign, error) {
	var cp model.Campaign
	err := rows.Scan(&cp.ID, &cp.UserID, &cp.Title, &cp.Description, &cp.Recipient,
		&cp.ImageURL, &cp.GoalLamports, &cp.Slug, &cp.TotalRaised, &cp.Active, &cp.Ctime, &cp.Mtime)
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *CampaignRepo) Create(ctx context.Context, cp *model.Campaign) error {
	data := map[string]interface{}{
		"id":            cp.ID,
		"user_id":       cp.UserID,
		"title":         cp.Title,
		"description":   cp.Description,
		"recipient":     cp.Recipient,
		"image_url":     cp.ImageURL,
		"goal_lamports": cp.GoalLamports,
		"slug":          cp.Slug,
		"total_raised":  cp.TotalRaised,
		"active":        cp.Active,
		"ctime":         cp.Ctime,
		"mtime":         cp.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("campaigns", []map[string]interface{}{data})
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

func (r *CampaignRepo) GetBySlug(ctx context.Context, slug string) (*model.Campaign, error) {
	return r.getOne(ctx, map[string]interface{}{"slug": slug})
}

func (r *CampaignRepo) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	return r.getOne(ctx, map[string]interface{}{"id": id})
}

func (r *CampaignRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.Campaign, error) {
	sqlStr, args, err := builder.BuildSelect("campaigns", where, campaignFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	return scanCampaign(rows)
}

func (r *CampaignRepo) ListByUser(ctx context.Context, userID string) ([]*model.Campaign, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "ctime desc",
	}
	sqlStr, args, err := builder.BuildSelect("campaigns", where, campaignFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var list []*model.Campaign
	for rows.Next() {
		cp, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, cp)
	}
	return list, rows.Err()
}

func (r *CampaignRepo) SetActive(ctx context.Context, id string, active int, mtime int64) error {
	where := map[string]interface{}{"id": id}
	update := map[string]interface{}{
		"active": active,
		"mtime":  mtime,
	}
	return r.update(ctx, where, update)
}

func (r *CampaignRepo) SetTotalRaised(ctx context.Context, id string, total int64, mtime int64) error {
	where := map[string]interface{}{"id": id}
	update := map[string]interface{}{
		"total_raised": total,
		"mtime":        mtime,
	}
	return r.update(ctx, where, update)
}

// AddToTotalRaised bumps the aggregate in place; the reconcile job
// recomputes it from the donations table to heal any drift.
func (r *CampaignRepo) AddToTotalRaised(ctx context.Context, id string, delta int64, mtime int64) error {
	sqlStr := "UPDATE campaigns SET total_raised = total_raised + ?, mtime = ? WHERE id = ?"
	args := []interface{}{delta, mtime, id}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *CampaignRepo) update(ctx context.Context, where, update map[string]interface{}) error {
	sqlStr, args, err := builder.BuildUpdate("campaigns", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

// ListIDs returns all campaign ids, used by the reconcile job.
func (r *CampaignRepo) ListIDs(ctx context.Context) ([]string, error) {
	sqlStr, args, err := builder.BuildSelect("campaigns", nil, []string{"id"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
