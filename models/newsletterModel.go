package models

import "gorm.io/gorm"

type NewsletterSubscriber struct {
	gorm.Model
	Email            string `json:"email" binding:"required,email" gorm:"uniqueIndex;size:191"`
	Name             string `json:"name"`
	Active           bool   `json:"active" gorm:"default:true"`
	UnsubscribeToken string `json:"-"`
}
