package model

type User struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Ctime   int64  `json:"ctime"`
}
