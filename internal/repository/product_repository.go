package repository

import (
	"fmt"

	"github.com/dondigital/storefront/internal/models"
	"gorm.io/gorm"
)

// ProductRepository defines the data access methods for products.
type ProductRepository interface {
	GetAllByRobuxAsc() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(id uint, updates map[string]any) (int64, error)
	UpdateSales(id uint, totalSales int) (int64, error)
	DeleteByID(id uint) error
}

// GormProductRepository is the ProductRepository implementation using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates and returns a new GormProductRepository.
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// GetAllByRobuxAsc returns every product ordered by robux_amount ascending.
func (r *GormProductRepository) GetAllByRobuxAsc() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("robux_amount ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product.
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts a new product. No duplicate-tier check is performed.
func (r *GormProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update applies the given column updates to the product with the given id
// and returns the number of rows matched.
func (r *GormProductRepository) Update(id uint, updates map[string]any) (int64, error) {
	result := r.db.Model(&models.Product{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update product %d: %w", id, result.Error)
	}
	return result.RowsAffected, nil
}

// UpdateSales updates only the total_sales counter and the timestamp.
func (r *GormProductRepository) UpdateSales(id uint, totalSales int) (int64, error) {
	result := r.db.Model(&models.Product{}).Where("id = ?", id).Update("total_sales", totalSales)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update sales for product %d: %w", id, result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteByID removes a product. Unknown ids are a silent no-op.
func (r *GormProductRepository) DeleteByID(id uint) error {
	if err := r.db.Delete(&models.Product{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}
