package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ansh808s/cause-drop/internal/cache"
	"github.com/ansh808s/cause-drop/internal/chain"
	"github.com/ansh808s/cause-drop/internal/model"
	appErr "github.com/ansh808s/cause-drop/internal/pkg/errors"
	"github.com/ansh808s/cause-drop/internal/pkg/timeutil"
	"github.com/ansh808s/cause-drop/internal/wallet"
)

type DonationStore interface {
	Create(ctx context.Context, d *model.Donation) error
	ListByCampaign(ctx context.Context, campaignID string, limit uint) ([]*model.Donation, error)
}

// DonationCampaignStore is the slice of campaign storage the donation
// flow touches.
type DonationCampaignStore interface {
	GetBySlug(ctx context.Context, slug string) (*model.Campaign, error)
	AddToTotalRaised(ctx context.Context, id string, delta int64, mtime int64) error
}

// ActionMetadata is the shareable action (blink) payload wallets render
// for a campaign link.
type ActionMetadata struct {
	Type        string       `json:"type"`
	Title       string       `json:"title"`
	Icon        string       `json:"icon"`
	Description string       `json:"description"`
	Label       string       `json:"label"`
	Links       *ActionLinks `json:"links,omitempty"`
}

type ActionLinks struct {
	Actions []ActionLink `json:"actions"`
}

type ActionLink struct {
	Type       string            `json:"type"`
	Label      string            `json:"label"`
	Href       string            `json:"href"`
	Parameters []ActionParameter `json:"parameters,omitempty"`
}

type ActionParameter struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

// DonationTransaction carries the unsigned transfer back to the wallet.
type DonationTransaction struct {
	Transaction string `json:"transaction"`
	Message     string `json:"message"`
}

var presetAmountsSOL = []float64{0.1, 0.25, 0.5}

type DonationService struct {
	campaigns  DonationCampaignStore
	donations  DonationStore
	cache      *cache.CampaignCache
	chain      chain.Chain
	actionBase string
}

func NewDonationService(campaigns DonationCampaignStore, donations DonationStore, cpCache *cache.CampaignCache, ch chain.Chain, actionBase string) *DonationService {
	return &DonationService{
		campaigns:  campaigns,
		donations:  donations,
		cache:      cpCache,
		chain:      ch,
		actionBase: actionBase,
	}
}

func (s *DonationService) getCampaign(ctx context.Context, slug string) (*model.Campaign, error) {
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

// ActionMetadata renders the donation action for a campaign. Deactivated
// campaigns stop resolving.
func (s *DonationService) ActionMetadata(ctx context.Context, slug string) (*ActionMetadata, error) {
	cp, err := s.getCampaign(ctx, slug)
	if err != nil {
		return nil, err
	}
	if cp.Active == 0 {
		return nil, appErr.ErrNotFound
	}

	baseHref := fmt.Sprintf("%s?slug=%s&to=%s", s.actionBase, cp.Slug, cp.Recipient)
	actions := make([]ActionLink, 0, len(presetAmountsSOL)+1)
	for _, amount := range presetAmountsSOL {
		value := strconv.FormatFloat(amount, 'f', -1, 64)
		actions = append(actions, ActionLink{
			Type:  "post",
			Label: fmt.Sprintf("Send %s SOL", value),
			Href:  fmt.Sprintf("%s&amount=%s", baseHref, value),
		})
	}
	actions = append(actions, ActionLink{
		Type:  "post",
		Label: "Send SOL",
		Href:  baseHref + "&amount={amount}",
		Parameters: []ActionParameter{
			{Name: "amount", Label: "Enter the amount of SOL to send", Required: true},
		},
	})

	return &ActionMetadata{
		Type:        "action",
		Title:       cp.Title,
		Icon:        cp.ImageURL,
		Description: cp.Description,
		Label:       "Transfer",
		Links:       &ActionLinks{Actions: actions},
	}, nil
}

// BuildDonation assembles the unsigned transfer for the donor and records
// the donation against the campaign. The transaction is signed and
// broadcast client-side; the recorded row is reconciled later.
func (s *DonationService) BuildDonation(ctx context.Context, slug, donor string, amountSOL float64) (*DonationTransaction, error) {
	if !wallet.ValidAddress(donor) {
		return nil, appErr.ErrInvalid
	}
	lamports, err := solToLamports(amountSOL)
	if err != nil || lamports < minLamports {
		return nil, appErr.ErrInvalid
	}
	cp, err := s.getCampaign(ctx, slug)
	if err != nil {
		return nil, err
	}
	if cp.Active == 0 {
		return nil, appErr.ErrNotFound
	}

	tx, err := s.chain.BuildTransfer(ctx, chain.TransferRequest{
		From:     donor,
		To:       cp.Recipient,
		Lamports: uint64(lamports),
	})
	if err != nil {
		return nil, err
	}

	donation := &model.Donation{
		ID:         newID(),
		CampaignID: cp.ID,
		Donor:      donor,
		Lamports:   lamports,
		Ctime:      timeutil.NowUnix(),
	}
	if err := s.donations.Create(ctx, donation); err != nil {
		return nil, err
	}
	if err := s.campaigns.AddToTotalRaised(ctx, cp.ID, lamports, timeutil.NowUnix()); err != nil {
		return nil, err
	}
	s.cache.Invalidate(cp.Slug)

	return &DonationTransaction{
		Transaction: tx,
		Message:     fmt.Sprintf("Donate %s SOL to %s", strconv.FormatFloat(amountSOL, 'f', -1, 64), cp.Title),
	}, nil
}

func (s *DonationService) ListByCampaign(ctx context.Context, slug string, limit uint) ([]*model.Donation, error) {
	cp, err := s.getCampaign(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.donations.ListByCampaign(ctx, cp.ID, limit)
}
