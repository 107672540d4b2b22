package session

type Response struct {
	IsValid bool    `json:"isValid"`
	Error   *string `json:"error"`
	HasUser bool    `json:"hasUser"`
	UserID  *string `json:"userId"`
}
