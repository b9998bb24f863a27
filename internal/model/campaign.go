package model

type Campaign struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Recipient    string `json:"recipient"`
	ImageURL     string `json:"image_url"`
	GoalLamports int64  `json:"goal_lamports"`
	Slug         string `json:"slug"`
	TotalRaised  int64  `json:"total_raised"`
	Active       int    `json:"active"`
	Ctime        int64  `json:"ctime"`
	Mtime        int64  `json:"mtime"`
}
