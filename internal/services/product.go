package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/D4V1DYL/HydroSenseAPI/internal/apierr"
	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/repos"
	"github.com/D4V1DYL/HydroSenseAPI/internal/types"
)

// ImageUploader is the slice of the bucket client the product paths need.
// Tests substitute a fake; production wires the GCS implementation.
type ImageUploader interface {
	UploadImage(ctx context.Context, key string, file io.Reader) (string, error)
}

type CreateProductInput struct {
	Name        string
	Description string
	CompanyID   uuid.UUID
	ImageName   string
	Image       io.Reader
}

type ProductService interface {
	CreateProduct(ctx context.Context, in CreateProductInput) (*types.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
}

type productService struct {
	db          *gorm.DB
	log         *logger.Logger
	uploader    ImageUploader
	companyRepo repos.CompanyRepo
	productRepo repos.ProductRepo
	sampleRepo  repos.WaterSampleRepo
	detailRepo  repos.WaterSampleDetailRepo
	predRepo    repos.WaterPredictionRepo
}

func NewProductService(
	db *gorm.DB,
	baseLog *logger.Logger,
	uploader ImageUploader,
	companyRepo repos.CompanyRepo,
	productRepo repos.ProductRepo,
	sampleRepo repos.WaterSampleRepo,
	detailRepo repos.WaterSampleDetailRepo,
	predRepo repos.WaterPredictionRepo,
) ProductService {
	return &productService{
		db:          db,
		log:         baseLog.With("service", "ProductService"),
		uploader:    uploader,
		companyRepo: companyRepo,
		productRepo: productRepo,
		sampleRepo:  sampleRepo,
		detailRepo:  detailRepo,
		predRepo:    predRepo,
	}
}

func (ps *productService) CreateProduct(ctx context.Context, in CreateProductInput) (*types.Product, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: product name is required", apierr.ErrInvalid)
	}
	company, err := ps.companyRepo.GetByID(ctx, nil, in.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	if company == nil {
		return nil, fmt.Errorf("%w: company %s", apierr.ErrNotFound, in.CompanyID)
	}
	exists, err := ps.productRepo.NameExistsForCompany(ctx, nil, in.CompanyID, in.Name)
	if err != nil {
		return nil, fmt.Errorf("check product name: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: product %q already exists for company", apierr.ErrInvalid, in.Name)
	}

	imageURL := ""
	if in.Image != nil {
		key := fmt.Sprintf("products/%s%s", uuid.New().String(), imageExt(in.ImageName))
		imageURL, err = ps.uploader.UploadImage(ctx, key, in.Image)
		if err != nil {
			return nil, fmt.Errorf("%w: image upload: %v", apierr.ErrUpstream, err)
		}
	}

	product := &types.Product{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		Image:       imageURL,
		CompanyID:   in.CompanyID,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if _, err := ps.productRepo.Create(ctx, nil, []*types.Product{product}); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	ps.log.Info("Created product", "product_id", product.ID, "company_id", in.CompanyID)
	return product, nil
}

// DeleteProduct removes a product and everything hanging off it. The delete
// order is a hard requirement of the schema's foreign keys: predictions,
// then details, then samples, then the product itself, all in one
// transaction.
func (ps *productService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := ps.productRepo.GetByID(ctx, tx, productID)
		if err != nil {
			return fmt.Errorf("get product: %w", err)
		}
		if product == nil {
			return fmt.Errorf("%w: product %s", apierr.ErrNotFound, productID)
		}
		if err := ps.predRepo.DeleteByProductID(ctx, tx, productID); err != nil {
			return fmt.Errorf("delete predictions: %w", err)
		}
		if err := ps.detailRepo.DeleteByProductID(ctx, tx, productID); err != nil {
			return fmt.Errorf("delete sample details: %w", err)
		}
		if err := ps.sampleRepo.DeleteByProductID(ctx, tx, productID); err != nil {
			return fmt.Errorf("delete samples: %w", err)
		}
		if err := ps.productRepo.Delete(ctx, tx, productID); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		ps.log.Info("Deleted product and its sample history", "product_id", productID)
		return nil
	})
}
