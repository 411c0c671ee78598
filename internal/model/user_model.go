package model

import "time"

type User struct {
	Id          string    `gorm:"type:text;primaryKey"`
	DisplayName string    `gorm:"type:text"`
	Level       string    `gorm:"type:text"`
	Target      string    `gorm:"type:text"`
	Hobby       string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
