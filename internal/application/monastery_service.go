package application

import (
	"strconv"

	"github.com/monastery360/service-travel/internal/domain/monastery"
	"github.com/monastery360/service-travel/internal/export"
	"github.com/monastery360/service-travel/pkg/domain"
)

// MonasteryService exposes the monastery catalog.
type MonasteryService struct{}

// NewMonasteryService creates a new MonasteryService.
func NewMonasteryService() *MonasteryService {
	return &MonasteryService{}
}

// List returns every monastery.
func (s *MonasteryService) List() []monastery.Monastery {
	return monastery.All()
}

// Get returns one monastery.
func (s *MonasteryService) Get(id int) (*monastery.Monastery, error) {
	m, ok := monastery.FindByID(id)
	if !ok {
		return nil, domain.NewNotFoundError("Monastery", strconv.Itoa(id))
	}
	return &m, nil
}

// ExportGPX renders the catalog as a GPX document.
func (s *MonasteryService) ExportGPX() ([]byte, error) {
	return export.MonasteriesGPX(monastery.All())
}
