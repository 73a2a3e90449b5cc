package model

type AccessToken struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
