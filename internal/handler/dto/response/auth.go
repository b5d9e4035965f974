package response

import "time"

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	Username    string    `json:"username"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type AuthStatusResponse struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	Username   string `json:"username,omitempty"`
}
