// Package storage defines the persistence interface and its implementations.
package storage

import (
	"context"

	"github.com/inigomartinez/carcassonne-spain-telegram-bot/internal/model"
)

// Storage is the interface for the delivery journal.
type Storage interface {
	RecordDelivery(ctx context.Context, d *model.Delivery) error
	ListDeliveries(ctx context.Context, cycle string, limit int) ([]model.Delivery, error)

	Close() error
}
