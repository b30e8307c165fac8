package dto

type LoginDto struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponseDto struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}
