package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/D4V1DYL/HydroSenseAPI/internal/apierr"
	"github.com/D4V1DYL/HydroSenseAPI/internal/classifier"
	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/repos"
	"github.com/D4V1DYL/HydroSenseAPI/internal/types"
)

// IngestResult is what the caller gets back from a successful ingestion.
type IngestResult struct {
	SampleID   uuid.UUID `json:"sample_id"`
	ProductID  uuid.UUID `json:"product_id"`
	Prediction string    `json:"prediction"`
}

// NewProductSampleInput carries everything needed to create a product and
// ingest its first sample in one call.
type NewProductSampleInput struct {
	Name              string
	Description       string
	CompanyID         uuid.UUID
	ImageName         string
	Image             io.Reader
	SampleDescription string
	Vector            classifier.Vector
}

type PredictionService interface {
	IngestSample(ctx context.Context, productID uuid.UUID, description string, vector classifier.Vector) (*IngestResult, error)
	IngestSampleForNewProduct(ctx context.Context, in NewProductSampleInput) (*IngestResult, error)
}

type predictionService struct {
	db           *gorm.DB
	log          *logger.Logger
	cls          classifier.Classifier
	uploader     ImageUploader
	companyRepo  repos.CompanyRepo
	productRepo  repos.ProductRepo
	propertyRepo repos.WaterPropertyRepo
	qualityRepo  repos.WaterQualityRepo
	sampleRepo   repos.WaterSampleRepo
	detailRepo   repos.WaterSampleDetailRepo
	predRepo     repos.WaterPredictionRepo
}

func NewPredictionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cls classifier.Classifier,
	uploader ImageUploader,
	companyRepo repos.CompanyRepo,
	productRepo repos.ProductRepo,
	propertyRepo repos.WaterPropertyRepo,
	qualityRepo repos.WaterQualityRepo,
	sampleRepo repos.WaterSampleRepo,
	detailRepo repos.WaterSampleDetailRepo,
	predRepo repos.WaterPredictionRepo,
) PredictionService {
	return &predictionService{
		db:           db,
		log:          baseLog.With("service", "PredictionService"),
		cls:          cls,
		uploader:     uploader,
		companyRepo:  companyRepo,
		productRepo:  productRepo,
		propertyRepo: propertyRepo,
		qualityRepo:  qualityRepo,
		sampleRepo:   sampleRepo,
		detailRepo:   detailRepo,
		predRepo:     predRepo,
	}
}

// IngestSample classifies the vector, then writes the sample, its details and
// its prediction as one transaction. Nothing is committed unless all three
// writes succeed.
func (ps *predictionService) IngestSample(ctx context.Context, productID uuid.UUID, description string, vector classifier.Vector) (*IngestResult, error) {
	product, err := ps.productRepo.GetByID(ctx, nil, productID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %s", apierr.ErrNotFound, productID)
	}

	label, quality, properties, err := ps.classify(ctx, vector)
	if err != nil {
		return nil, err
	}

	var sample *types.WaterSample
	err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		sample, txErr = ps.writeSample(ctx, tx, product.ID, description, vector, quality, properties)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	ps.log.Info("Ingested water sample", "sample_id", sample.ID, "product_id", product.ID, "prediction", label)
	return &IngestResult{SampleID: sample.ID, ProductID: product.ID, Prediction: label}, nil
}

// IngestSampleForNewProduct uploads the product image first (a failed upload
// aborts before any row exists), then creates the product and the sample
// inside the same transaction.
func (ps *predictionService) IngestSampleForNewProduct(ctx context.Context, in NewProductSampleInput) (*IngestResult, error) {
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

	label, quality, properties, err := ps.classify(ctx, in.Vector)
	if err != nil {
		return nil, err
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

	var sample *types.WaterSample
	err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, txErr := ps.productRepo.Create(ctx, tx, []*types.Product{product}); txErr != nil {
			return fmt.Errorf("create product: %w", txErr)
		}
		var txErr error
		sample, txErr = ps.writeSample(ctx, tx, product.ID, in.SampleDescription, in.Vector, quality, properties)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	ps.log.Info("Created product and ingested first sample",
		"product_id", product.ID, "sample_id", sample.ID, "prediction", label)
	return &IngestResult{SampleID: sample.ID, ProductID: product.ID, Prediction: label}, nil
}

// classify runs the classifier and resolves its label plus the property
// catalog before any write begins, so a catalog gap can never leave partial
// rows behind.
func (ps *predictionService) classify(ctx context.Context, vector classifier.Vector) (string, *types.WaterQuality, map[string]uuid.UUID, error) {
	label, err := ps.cls.Predict(ctx, vector)
	if err != nil {
		if errors.Is(err, apierr.ErrInvalid) {
			return "", nil, nil, err
		}
		return "", nil, nil, fmt.Errorf("%w: classifier predict: %v", apierr.ErrUpstream, err)
	}

	quality, err := ps.qualityRepo.GetByName(ctx, nil, capitalize(label))
	if err != nil {
		return "", nil, nil, fmt.Errorf("resolve water quality: %w", err)
	}
	if quality == nil {
		return "", nil, nil, fmt.Errorf("%w: water quality label %q not in catalog", apierr.ErrNotFound, capitalize(label))
	}

	properties, err := ps.propertyRepo.GetAllByName(ctx, nil)
	if err != nil {
		return "", nil, nil, fmt.Errorf("fetch property catalog: %w", err)
	}
	return label, quality, properties, nil
}

// writeSample inserts the sample, one detail per vector entry whose
// normalized name matches a catalog property, and the prediction row.
// Unrecognized vector entries are skipped on purpose: the payload may carry
// fields the catalog does not track.
func (ps *predictionService) writeSample(
	ctx context.Context,
	tx *gorm.DB,
	productID uuid.UUID,
	description string,
	vector classifier.Vector,
	quality *types.WaterQuality,
	properties map[string]uuid.UUID,
) (*types.WaterSample, error) {
	sample := &types.WaterSample{
		ID:          uuid.New(),
		ProductID:   productID,
		Date:        time.Now().UTC(),
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := ps.sampleRepo.Create(ctx, tx, []*types.WaterSample{sample}); err != nil {
		return nil, fmt.Errorf("create water sample: %w", err)
	}

	details := make([]*types.WaterSampleDetail, 0, len(vector))
	for name, value := range classifier.Normalize(vector) {
		propertyID, ok := properties[name]
		if !ok {
			continue
		}
		details = append(details, &types.WaterSampleDetail{
			ID:              uuid.New(),
			WaterSampleID:   sample.ID,
			WaterPropertyID: propertyID,
			Value:           value,
		})
	}
	if _, err := ps.detailRepo.Create(ctx, tx, details); err != nil {
		return nil, fmt.Errorf("create sample details: %w", err)
	}

	prediction := &types.WaterPrediction{
		ID:             uuid.New(),
		WaterSampleID:  sample.ID,
		WaterQualityID: quality.ID,
	}
	if _, err := ps.predRepo.Create(ctx, tx, []*types.WaterPrediction{prediction}); err != nil {
		return nil, fmt.Errorf("create prediction: %w", err)
	}
	return sample, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func imageExt(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return strings.ToLower(name[i:])
	}
	return ""
}
