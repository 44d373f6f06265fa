package model

import "time"

type Chat struct {
	DTO
	PublicCode string     `gorm:"size:40;uniqueIndex" json:"publicCode"`
	UserId     uint       `gorm:"not null;index" json:"userId"`
	User       *User      `gorm:"foreignKey:UserId" json:"user,omitempty"`
	AgentId    *uint      `gorm:"index" json:"agentId,omitempty"`
	Agent      *User      `gorm:"foreignKey:AgentId" json:"agent,omitempty"`
	Subject    string     `gorm:"size:255" json:"subject"`
	Status     string     `gorm:"size:20;default:open;index" json:"status"`
	ClosedAt   *time.Time `json:"closedAt,omitempty"`
	Messages   []Message  `gorm:"foreignKey:ChatId" json:"messages,omitempty"`
}

type Message struct {
	DTO
	ChatId   uint       `gorm:"not null;index" json:"chatId"`
	SenderId uint       `gorm:"not null" json:"senderId"`
	Sender   *User      `gorm:"foreignKey:SenderId" json:"sender,omitempty"`
	Content  string     `gorm:"type:text;not null" json:"content"`
	IsRead   bool       `gorm:"default:false;index" json:"isRead"`
	ReadAt   *time.Time `json:"readAt,omitempty"`
}

type StartChatInput struct {
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required"`
}

type SendMessageInput struct {
	Content string `json:"content" validate:"required"`
}
