package application

import (
	"context"
	"errors"

	"github.com/monastery360/service-travel/internal/domain/festival"
	"github.com/monastery360/service-travel/internal/export"
	"github.com/monastery360/service-travel/pkg/domain"
	"go.uber.org/zap"
)

const (
	MsgSheetNotFound   = "XLSX file not found"
	MsgSheetReadFailed = "Failed to read XLSX file"
)

// CalendarDTO is the merged festival calendar.
type CalendarDTO struct {
	Festivals []festival.Festival `json:"festivals"`
	LoadError string              `json:"loadError,omitempty"`
}

// FestivalService serves festivals from the spreadsheet, mirrored into
// Postgres when a repository is configured.
type FestivalService struct {
	sheet  festival.Source
	mirror festival.Repository
	clock  Clock
	logger *zap.Logger
}

// NewFestivalService creates a new FestivalService. mirror may be nil.
func NewFestivalService(sheet festival.Source, mirror festival.Repository, clock Clock, logger *zap.Logger) *FestivalService {
	if clock == nil {
		clock = SystemClock()
	}
	return &FestivalService{sheet: sheet, mirror: mirror, clock: clock, logger: logger}
}

// List returns the spreadsheet rows. When the sheet is missing the mirror
// serves its last synced copy.
func (s *FestivalService) List(ctx context.Context) ([]festival.Festival, error) {
	rows, err := s.sheet.Festivals(ctx)
	if err == nil {
		return rows, nil
	}
	if errors.Is(err, festival.ErrSourceNotFound) {
		if s.mirror != nil {
			mirrored, mErr := s.mirror.List(ctx)
			if mErr != nil {
				s.logger.Error("failed to read festival mirror", zap.Error(mErr))
				return nil, &domain.AppError{Code: domain.CodeInternal, Message: MsgSheetReadFailed, Err: mErr}
			}
			return mirrored, nil
		}
		return nil, &domain.AppError{Code: domain.CodeNotFound, Message: MsgSheetNotFound, Err: err}
	}
	s.logger.Error("failed to read festival sheet", zap.Error(err))
	return nil, &domain.AppError{Code: domain.CodeInternal, Message: MsgSheetReadFailed, Err: err}
}

// Calendar merges the built-in festivals with the sheet and applies filter.
// A sheet failure is reported in LoadError and the built-in list still serves.
func (s *FestivalService) Calendar(ctx context.Context, filter festival.Filter) CalendarDTO {
	var dto CalendarDTO
	rows, err := s.List(ctx)
	if err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			dto.LoadError = appErr.Message
		} else {
			dto.LoadError = MsgSheetReadFailed
		}
		rows = nil
	}
	dto.Festivals = filter.Apply(festival.Merge(festival.Seed(), festival.Schedulable(rows)))
	return dto
}

// ExportICS renders the filtered calendar as iCalendar text.
func (s *FestivalService) ExportICS(ctx context.Context, filter festival.Filter) (string, error) {
	cal := s.Calendar(ctx, filter)
	body, err := export.FestivalsICS(cal.Festivals, s.clock.Now().UTC())
	if err != nil {
		return "", domain.NewValidationError(err.Error())
	}
	return body, nil
}

// Sync copies the schedulable sheet rows into the mirror and returns their count.
func (s *FestivalService) Sync(ctx context.Context) (int, error) {
	if s.mirror == nil {
		return 0, domain.NewConfigurationError("festival mirror is not configured")
	}
	rows, err := s.sheet.Festivals(ctx)
	if err != nil {
		if errors.Is(err, festival.ErrSourceNotFound) {
			return 0, &domain.AppError{Code: domain.CodeNotFound, Message: MsgSheetNotFound, Err: err}
		}
		return 0, &domain.AppError{Code: domain.CodeInternal, Message: MsgSheetReadFailed, Err: err}
	}
	rows = festival.Schedulable(rows)
	if err := s.mirror.ReplaceAll(ctx, rows); err != nil {
		return 0, err
	}
	s.logger.Info("festival mirror synced", zap.Int("count", len(rows)))
	return len(rows), nil
}
