package postgres

import (
	"context"
	"errors"
	"fmt"

	domainCatalog "fleet-device-manager/internal/domain/catalog"
	"fleet-device-manager/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogRepository implements master data lookups
type CatalogRepository struct {
	db *DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *DB) domainCatalog.Repository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetModel(ctx context.Context, id uuid.UUID) (*domainCatalog.Model, error) {
	var dbModel models.ModelModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainCatalog.ErrModelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get model: %w", err)
	}
	return toModelEntity(&dbModel), nil
}

func (r *CatalogRepository) ListModels(ctx context.Context) ([]*domainCatalog.Model, error) {
	var dbModels []models.ModelModel
	if err := r.db.DB.WithContext(ctx).Order("manufacturer, name").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	out := make([]*domainCatalog.Model, len(dbModels))
	for i := range dbModels {
		out[i] = toModelEntity(&dbModels[i])
	}
	return out, nil
}

func (r *CatalogRepository) GetDistributor(ctx context.Context, id uuid.UUID) (*domainCatalog.Distributor, error) {
	var dbModel models.DistributorModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainCatalog.ErrDistributorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get distributor: %w", err)
	}
	return toDistributorEntity(&dbModel), nil
}

func (r *CatalogRepository) ListDistributors(ctx context.Context) ([]*domainCatalog.Distributor, error) {
	var dbModels []models.DistributorModel
	if err := r.db.DB.WithContext(ctx).Order("name").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list distributors: %w", err)
	}
	out := make([]*domainCatalog.Distributor, len(dbModels))
	for i := range dbModels {
		out[i] = toDistributorEntity(&dbModels[i])
	}
	return out, nil
}

func toModelEntity(m *models.ModelModel) *domainCatalog.Model {
	return &domainCatalog.Model{
		ID:           m.ID,
		Manufacturer: m.Manufacturer,
		Name:         m.Name,
		CreatedAt:    m.CreatedAt,
	}
}

func toDistributorEntity(m *models.DistributorModel) *domainCatalog.Distributor {
	return &domainCatalog.Distributor{
		ID:        m.ID,
		Name:      m.Name,
		Region:    m.Region,
		CreatedAt: m.CreatedAt,
	}
}
