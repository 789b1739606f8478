package model

import "time"

type Customer struct {
	ID             string    `gorm:"size:128;primaryKey"`
	Name           string    `gorm:"size:255;not null"`
	FirstOrderTime time.Time `gorm:"not null"`
	StartRound     int       `gorm:"not null;default:1"`
	Songs          []Song    `gorm:"constraint:OnDelete:CASCADE"`
}

type Song struct {
	ID          string    `gorm:"size:64;primaryKey"`
	CustomerID  string    `gorm:"size:128;index;not null"`
	Position    int       `gorm:"not null"`
	IsPriority  bool      `gorm:"not null"`
	Status      string    `gorm:"size:16;not null"`
	AddedAt     time.Time `gorm:"not null"`
	VideoID     string    `gorm:"size:64"`
	Title       string    `gorm:"size:512"`
	CleanTitle  string    `gorm:"size:512"`
	Artist      string    `gorm:"size:255"`
	Thumbnail   string    `gorm:"size:512"`
	Source      string    `gorm:"size:32"`
	BeatOptions string    `gorm:"type:text"` // JSON-encoded, opaque to SQL
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NowPlaying is a singleton row; ID is always 1.
type NowPlaying struct {
	ID          uint `gorm:"primaryKey"`
	VideoID     string
	Title       string `gorm:"size:512"`
	CleanTitle  string `gorm:"size:512"`
	Artist      string `gorm:"size:255"`
	AddedBy     string `gorm:"size:255"`
	Duration    float64
	CurrentTime float64
	UpdatedAt   time.Time
	BeatOptions string `gorm:"type:text"`
}
