package service

import (
	"context"
	"sync"

	"github.com/ansh808s/cause-drop/internal/chain"
	"github.com/ansh808s/cause-drop/internal/model"
	appErr "github.com/ansh808s/cause-drop/internal/pkg/errors"
)

type fakeUserStore struct {
	mu      sync.Mutex
	byID    map[string]*model.User
	byAddr  map[string]*model.User
	creates int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:   make(map[string]*model.User),
		byAddr: make(map[string]*model.User),
	}
}

func (f *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if _, ok := f.byAddr[user.Address]; ok {
		return appErr.ErrConflict
	}
	clone := *user
	f.byID[user.ID] = &clone
	f.byAddr[user.Address] = &clone
	return nil
}

func (f *fakeUserStore) GetByAddress(ctx context.Context, address string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byAddr[address]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, userID string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[userID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) delete(userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.byID[userID]; ok {
		delete(f.byAddr, user.Address)
		delete(f.byID, userID)
	}
}

type fakeCampaignStore struct {
	mu     sync.Mutex
	byID   map[string]*model.Campaign
	bySlug map[string]*model.Campaign
	gets   int
}

func newFakeCampaignStore() *fakeCampaignStore {
	return &fakeCampaignStore{
		byID:   make(map[string]*model.Campaign),
		bySlug: make(map[string]*model.Campaign),
	}
}

func (f *fakeCampaignStore) Create(ctx context.Context, cp *model.Campaign) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bySlug[cp.Slug]; ok {
		return appErr.ErrConflict
	}
	clone := *cp
	f.byID[cp.ID] = &clone
	f.bySlug[cp.Slug] = &clone
	return nil
}

func (f *fakeCampaignStore) GetBySlug(ctx context.Context, slug string) (*model.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	cp, ok := f.bySlug[slug]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	clone := *cp
	return &clone, nil
}

func (f *fakeCampaignStore) ListByUser(ctx context.Context, userID string) ([]*model.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []*model.Campaign
	for _, cp := range f.byID {
		if cp.UserID == userID {
			clone := *cp
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (f *fakeCampaignStore) SetActive(ctx context.Context, id string, active int, mtime int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp, ok := f.byID[id]
	if !ok {
		return appErr.ErrNotFound
	}
	cp.Active = active
	cp.Mtime = mtime
	return nil
}

func (f *fakeCampaignStore) AddToTotalRaised(ctx context.Context, id string, delta int64, mtime int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp, ok := f.byID[id]
	if !ok {
		return appErr.ErrNotFound
	}
	cp.TotalRaised += delta
	cp.Mtime = mtime
	return nil
}

type fakeDonationStore struct {
	mu   sync.Mutex
	rows []*model.Donation
}

func (f *fakeDonationStore) Create(ctx context.Context, d *model.Donation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *d
	f.rows = append(f.rows, &clone)
	return nil
}

func (f *fakeDonationStore) ListByCampaign(ctx context.Context, campaignID string, limit uint) ([]*model.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []*model.Donation
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].CampaignID != campaignID {
			continue
		}
		clone := *f.rows[i]
		list = append(list, &clone)
		if limit > 0 && uint(len(list)) >= limit {
			break
		}
	}
	return list, nil
}

type fakeChain struct {
	mu       sync.Mutex
	requests []chain.TransferRequest
	err      error
}

func (f *fakeChain) BuildTransfer(ctx context.Context, req chain.TransferRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.requests = append(f.requests, req)
	return "ZmFrZS10cmFuc2FjdGlvbg==", nil
}
