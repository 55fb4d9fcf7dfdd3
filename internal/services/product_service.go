package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	customerrors "github.com/dondigital/storefront/internal/errors"
	"github.com/dondigital/storefront/internal/models"
	"github.com/dondigital/storefront/internal/repository"
)

// ProductService provides business logic for the product catalog.
type ProductService struct {
	productRepo repository.ProductRepository
	statsRepo   repository.StatisticsRepository
}

// NewProductService creates and returns a new ProductService.
func NewProductService(productRepo repository.ProductRepository, statsRepo repository.StatisticsRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		statsRepo:   statsRepo,
	}
}

// Catalog returns all products ordered by robux_amount ascending, each
// annotated with its derived stock state, together with the current Robux
// balance. A missing statistics row is fatal here: the catalog cannot be
// priced for stock without the balance.
func (s *ProductService) Catalog() ([]models.Product, int, error) {
	products, err := s.productRepo.GetAllByRobuxAsc()
	if err != nil {
		return nil, 0, err
	}

	stats, err := s.statsRepo.Get()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, customerrors.ErrStatisticsMissing
		}
		return nil, 0, err
	}

	for i := range products {
		products[i].InStock = products[i].RobuxAmount <= stats.CurrentRobux
	}
	return products, stats.CurrentRobux, nil
}

// CreateProduct inserts a new tier unconditionally, applying the icon and
// sales defaults.
func (s *ProductService) CreateProduct(tier string, robuxAmount int, price float64, priceLabel, icon string, totalSales int) (*models.Product, error) {
	if icon == "" {
		icon = models.DefaultProductIcon
	}
	product := &models.Product{
		Tier:        tier,
		RobuxAmount: robuxAmount,
		Price:       price,
		PriceLabel:  priceLabel,
		Icon:        icon,
		TotalSales:  totalSales,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct performs the full update by id. totalSales is written only
// when the caller provided it.
func (s *ProductService) UpdateProduct(id uint, tier string, robuxAmount int, price float64, priceLabel, icon string, totalSales *int) (*models.Product, error) {
	updates := map[string]any{
		"tier":         tier,
		"robux_amount": robuxAmount,
		"price":        price,
		"price_label":  priceLabel,
		"icon":         icon,
		"updated_at":   time.Now(),
	}
	if totalSales != nil {
		updates["total_sales"] = *totalSales
	}

	if _, err := s.productRepo.Update(id, updates); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(id)
}

// UpdateSales is the narrow-purpose alternative to UpdateProduct: it touches
// only the sales counter and the timestamp.
func (s *ProductService) UpdateSales(id uint, totalSales int) (*models.Product, error) {
	if _, err := s.productRepo.UpdateSales(id, totalSales); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(id)
}

// DeleteProduct removes a product; unknown ids succeed silently.
func (s *ProductService) DeleteProduct(id uint) error {
	return s.productRepo.DeleteByID(id)
}
