package model

type Donation struct {
	ID         string `json:"id"`
	CampaignID string `json:"campaign_id"`
	Donor      string `json:"donor"`
	Lamports   int64  `json:"lamports"`
	Ctime      int64  `json:"ctime"`
}
