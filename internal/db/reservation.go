package db

import "gorm.io/gorm"

// Reservation 表示一条订座记录，仅后台可以推进状态。
type Reservation struct {
	gorm.Model
	Name             string `gorm:"size:100;not null"`
	Email            string `gorm:"size:200;not null"`
	Date             string `gorm:"size:10;not null"`
	Time             string `gorm:"size:5;not null"`
	Guests           int    `gorm:"not null"`
	Status           string `gorm:"size:20;not null;index"`
	ConfirmationCode string `gorm:"size:36;uniqueIndex"`
}

// TableName 自定义表名以保持命名一致。
func (Reservation) TableName() string {
	return "reservations"
}

// 订座状态机：pending 为初始态，cancelled 为终态。
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)
