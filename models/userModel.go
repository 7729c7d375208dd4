package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Fullname               string `json:"fullname" binding:"required"`
	Username               string `json:"username" binding:"required"`
	Email                  string `json:"email" binding:"required,email" gorm:"uniqueIndex;size:191"`
	Phone                  string `json:"phone"`
	Password               string `json:"password" binding:"required,min=8"`
	Role                   string `json:"role"`
	AcceptTerms            bool   `json:"acceptTerms"`
	SubscribeToNews        bool   `json:"subscribeToNews"`
	AccountActivated       bool   `json:"accountActivated"`
	AccountActivationToken string `json:"-"`
	PasswordResetToken     string `json:"-"`
}

type LoginData struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

func (u User) IsAdmin() bool {
	return u.Role == "admin"
}
