package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TicketNumberSeries is the per-year ticket number counter. The row is
// updated under SELECT ... FOR UPDATE inside the create transaction so two
// concurrent creates can never be handed the same sequence.
type TicketNumberSeries struct {
	ID           int       `gorm:"primary_key" json:"id"`
	Year         int       `gorm:"uniqueIndex;not null" json:"year"`
	LastSequence int       `gorm:"not null" json:"last_sequence"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// FormatTicketNumber renders a ticket number, e.g. TKT-2025-001.
// Sequences beyond 999 keep their natural width rather than wrapping.
func FormatTicketNumber(year int, sequence int) string {
	return fmt.Sprintf("TKT-%d-%03d", year, sequence)
}

// nextTicketNumber reserves the next sequence for the year within tx.
// The first ticket of a year seeds the counter from the tickets already
// dated in that year so numbering stays continuous for imported data.
func nextTicketNumber(ctx context.Context, tx *gorm.DB, year int) (string, error) {
	var series TicketNumberSeries
	err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("year = ?", year).Take(&series).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var count int64
		if err := tx.WithContext(ctx).Model(&Ticket{}).
			Where("YEAR(date) = ?", year).Count(&count).Error; err != nil {
			return "", err
		}
		series = TicketNumberSeries{Year: year, LastSequence: int(count)}
		if err := tx.WithContext(ctx).Create(&series).Error; err != nil {
			// Two first-creates of a year can race here; the unique year
			// index rejects one and the caller retries.
			return "", err
		}
	} else if err != nil {
		return "", err
	}

	series.LastSequence++
	if err := tx.WithContext(ctx).Model(&series).
		Update("last_sequence", series.LastSequence).Error; err != nil {
		return "", err
	}
	return FormatTicketNumber(year, series.LastSequence), nil
}
