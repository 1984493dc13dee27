package users

import "time"

// User is the stored account record, including the password hash.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicView is a User without its password hash.
type PublicView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Public strips the password hash.
func (u User) Public() PublicView {
	return PublicView{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// Credentials is the signup and login payload.
type Credentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Token is the login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
