package models

import "time"

type SubscriberModel struct {
	ID        uint       `gorm:"primaryKey"`
	Name      string     `gorm:"size:255;not null"`
	Username  string     `gorm:"uniqueIndex;size:64;not null"`
	Secret    string     `gorm:"size:64;not null"`
	Phone     string     `gorm:"size:32"`
	Status    string     `gorm:"size:20;not null;index"`
	ExpiresAt *time.Time `gorm:"index"`
	StaticIP  *string    `gorm:"size:45"`
	ProfileID uint       `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SubscriberModel) TableName() string {
	return "subscribers"
}

type ProfileModel struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"uniqueIndex;size:100;not null"`
	ValidityValue int    `gorm:"not null"`
	ValidityUnit  string `gorm:"size:10;not null"`
	RadiusGroup   string `gorm:"size:64;not null"`
	Price         int64  `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ProfileModel) TableName() string {
	return "profiles"
}
