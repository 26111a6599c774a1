package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/monastery360/service-travel/internal/domain/festival"
	"gorm.io/gorm"
)

// FestivalModel is the GORM model for the festivals table.
type FestivalModel struct {
	ID          int       `gorm:"primaryKey;autoIncrement:false"`
	Name        string    `gorm:"not null;size:200"`
	StartDate   time.Time `gorm:"type:date;not null;index"`
	EndDate     time.Time `gorm:"type:date;not null"`
	Location    string    `gorm:"not null;size:200"`
	Type        string    `gorm:"not null;size:20"`
	Description string    `gorm:"type:text"`
	Img         string    `gorm:"size:500"`
	SyncedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (FestivalModel) TableName() string {
	return "festivals"
}

// GormFestivalRepository mirrors the festival sheet into Postgres.
type GormFestivalRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormFestivalRepository creates a new GormFestivalRepository.
func NewGormFestivalRepository(db *gorm.DB) *GormFestivalRepository {
	return &GormFestivalRepository{db: db, now: time.Now}
}

// ReplaceAll swaps the whole catalog in one transaction.
func (r *GormFestivalRepository) ReplaceAll(ctx context.Context, festivals []festival.Festival) error {
	syncedAt := r.now().UTC()
	models := make([]FestivalModel, 0, len(festivals))
	for _, f := range festivals {
		m, err := toFestivalModel(f, syncedAt)
		if err != nil {
			return err
		}
		models = append(models, m)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&FestivalModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear festivals: %w", err)
		}
		if len(models) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(models, 100).Error; err != nil {
			return fmt.Errorf("failed to save festivals: %w", err)
		}
		return nil
	})
}

// List returns the mirrored catalog ordered by start date.
func (r *GormFestivalRepository) List(ctx context.Context) ([]festival.Festival, error) {
	var models []FestivalModel
	if err := r.db.WithContext(ctx).Order("start_date ASC, id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list festivals: %w", err)
	}

	out := make([]festival.Festival, len(models))
	for i, m := range models {
		out[i] = toDomainFestival(m)
	}
	return out, nil
}

func toFestivalModel(f festival.Festival, syncedAt time.Time) (FestivalModel, error) {
	start, err := time.Parse(festival.DateLayout, f.StartDate)
	if err != nil {
		return FestivalModel{}, fmt.Errorf("festival %d start date: %w", f.ID, err)
	}
	end := start
	if f.EndDate != "" {
		if end, err = time.Parse(festival.DateLayout, f.EndDate); err != nil {
			return FestivalModel{}, fmt.Errorf("festival %d end date: %w", f.ID, err)
		}
	}
	return FestivalModel{
		ID:          f.ID,
		Name:        f.Name,
		StartDate:   start,
		EndDate:     end,
		Location:    f.Location,
		Type:        string(f.Type),
		Description: f.Description,
		Img:         f.Img,
		SyncedAt:    syncedAt,
	}, nil
}

func toDomainFestival(m FestivalModel) festival.Festival {
	return festival.Festival{
		ID:          m.ID,
		Name:        m.Name,
		StartDate:   m.StartDate.Format(festival.DateLayout),
		EndDate:     m.EndDate.Format(festival.DateLayout),
		Location:    m.Location,
		Type:        festival.NormalizeType(m.Type),
		Description: m.Description,
		Img:         m.Img,
	}
}
