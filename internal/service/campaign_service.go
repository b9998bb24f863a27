package service

import (
	"bytes"
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/ansh808s/cause-drop/internal/cache"
	"github.com/ansh808s/cause-drop/internal/model"
	appErr "github.com/ansh808s/cause-drop/internal/pkg/errors"
	"github.com/ansh808s/cause-drop/internal/pkg/timeutil"
	"github.com/ansh808s/cause-drop/internal/wallet"
)

type CampaignStore interface {
	Create(ctx context.Context, cp *model.Campaign) error
	GetBySlug(ctx context.Context, slug string) (*model.Campaign, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Campaign, error)
	SetActive(ctx context.Context, id string, active int, mtime int64) error
}

type CampaignService struct {
	campaigns CampaignStore
	users     UserStore
	cache     *cache.CampaignCache
}

func NewCampaignService(campaigns CampaignStore, users UserStore, cpCache *cache.CampaignCache) *CampaignService {
	return &CampaignService{campaigns: campaigns, users: users, cache: cpCache}
}

type CampaignCreateInput struct {
	Title       string
	Description string
	Recipient   string
	ImageURL    string
	GoalSOL     float64
}

type CampaignOwner struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

type CampaignDetail struct {
	*model.Campaign
	GoalSOL         float64       `json:"goal_sol"`
	RaisedSOL       float64       `json:"raised_sol"`
	DescriptionHTML string        `json:"description_html"`
	Owner           CampaignOwner `json:"owner"`
}

var imageExtRegex = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)$`)

// validImageURL accepts an empty value: the image is uploaded separately
// and attached once the signed PUT completes.
func validImageURL(raw string) bool {
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return imageExtRegex.MatchString(u.Path)
}

func (s *CampaignService) Create(ctx context.Context, userID string, input CampaignCreateInput) (*model.Campaign, error) {
	title := strings.TrimSpace(input.Title)
	if len(title) < 2 {
		return nil, appErr.ErrInvalid
	}
	if !wallet.ValidAddress(input.Recipient) {
		return nil, appErr.ErrInvalid
	}
	if !validImageURL(input.ImageURL) {
		return nil, appErr.ErrInvalid
	}
	goal, err := solToLamports(input.GoalSOL)
	if err != nil || goal < minLamports {
		return nil, appErr.ErrInvalid
	}

	now := timeutil.NowUnix()
	cp := &model.Campaign{
		ID:           newID(),
		UserID:       userID,
		Title:        title,
		Description:  strings.TrimSpace(input.Description),
		Recipient:    input.Recipient,
		ImageURL:     input.ImageURL,
		GoalLamports: goal,
		Slug:         newSlug(title),
		Active:       1,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.campaigns.Create(ctx, cp); err != nil {
		// suffixed slugs make collisions rare; one retry covers them
		if appErr.IsConflict(err) {
			cp.Slug = newSlug(title)
			err = s.campaigns.Create(ctx, cp)
		}
		if err != nil {
			return nil, err
		}
	}
	return cp, nil
}

// getCached returns the campaign through the read cache.
func (s *CampaignService) getCached(ctx context.Context, slug string) (*model.Campaign, error) {
	if cached, ok := s.cache.Get(slug); ok {
		return cached, nil
	}
	cp, err := s.campaigns.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cp)
	return cp, nil
}

func (s *CampaignService) GetBySlug(ctx context.Context, slug string) (*CampaignDetail, error) {
	cp, err := s.getCached(ctx, slug)
	if err != nil {
		return nil, err
	}
	owner, err := s.users.GetByID(ctx, cp.UserID)
	if err != nil {
		return nil, err
	}
	var rendered bytes.Buffer
	if err := goldmark.Convert([]byte(cp.Description), &rendered); err != nil {
		return nil, err
	}
	return &CampaignDetail{
		Campaign:        cp,
		GoalSOL:         lamportsToSOL(cp.GoalLamports),
		RaisedSOL:       lamportsToSOL(cp.TotalRaised),
		DescriptionHTML: rendered.String(),
		Owner:           CampaignOwner{ID: owner.ID, Address: owner.Address},
	}, nil
}

func (s *CampaignService) ListByUser(ctx context.Context, userID string) ([]*model.Campaign, error) {
	return s.campaigns.ListByUser(ctx, userID)
}

// SetActive toggles a campaign; only the owner may do it.
func (s *CampaignService) SetActive(ctx context.Context, userID, slug string, active bool) error {
	cp, err := s.campaigns.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if cp.UserID != userID {
		return appErr.ErrForbidden
	}
	value := 0
	if active {
		value = 1
	}
	if err := s.campaigns.SetActive(ctx, cp.ID, value, timeutil.NowUnix()); err != nil {
		return err
	}
	s.cache.Invalidate(slug)
	return nil
}
