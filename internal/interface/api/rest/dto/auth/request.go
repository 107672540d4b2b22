package auth

type LinkRequest struct {
	UserID string `json:"userId"`
}
