package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrApplicationNotFound = errors.New("application not found")

type DeliveryStatus string

const (
	DeliveryStatusSent   DeliveryStatus = "sent"
	DeliveryStatusFailed DeliveryStatus = "failed"
)

// Application holds the Push.co credentials of one registered app.
type Application struct {
	gorm.Model

	Name             string `gorm:"uniqueIndex;not null"`
	APIKey           string `gorm:"not null"`
	APISecret        string `gorm:"not null"`
	NotificationType string
}

// Delivery is one relayed send, successful or not. Credentials are never
// stored here.
type Delivery struct {
	gorm.Model

	ApplicationName  string `gorm:"index;not null"`
	ViewMode         string
	Message          string
	NotificationType string
	Status           DeliveryStatus
	ErrorKind        string
	ErrorMessage     string
	Duration         time.Duration
}
