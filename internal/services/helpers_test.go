package services

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/D4V1DYL/HydroSenseAPI/internal/classifier"
	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/repos"
	"github.com/D4V1DYL/HydroSenseAPI/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = gdb.AutoMigrate(
		&types.Role{},
		&types.User{},
		&types.Company{},
		&types.UserCompanyMapping{},
		&types.Product{},
		&types.WaterProperty{},
		&types.WaterQuality{},
		&types.WaterSample{},
		&types.WaterSampleDetail{},
		&types.WaterPrediction{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

type catalog struct {
	properties map[string]uuid.UUID
	clean      *types.WaterQuality
	dirty      *types.WaterQuality
	roles      map[string]*types.Role
}

func seedCatalog(t *testing.T, gdb *gorm.DB) *catalog {
	t.Helper()
	c := &catalog{
		properties: map[string]uuid.UUID{},
		roles:      map[string]*types.Role{},
	}
	for _, name := range []string{"pH", "Iron", "Nitrate", "Total Dissolved Solids"} {
		property := &types.WaterProperty{ID: uuid.New(), Name: name}
		if err := gdb.Create(property).Error; err != nil {
			t.Fatalf("seed property %s: %v", name, err)
		}
		c.properties[name] = property.ID
	}
	c.clean = &types.WaterQuality{ID: uuid.New(), Name: "Clean", Description: "Clean water"}
	c.dirty = &types.WaterQuality{ID: uuid.New(), Name: "Dirty", Description: "Dirty water"}
	for _, q := range []*types.WaterQuality{c.clean, c.dirty} {
		if err := gdb.Create(q).Error; err != nil {
			t.Fatalf("seed quality %s: %v", q.Name, err)
		}
	}
	for _, name := range []string{types.RoleSuperadmin, types.RoleAdmin, types.RoleUser} {
		role := &types.Role{ID: uuid.New(), Name: name}
		if err := gdb.Create(role).Error; err != nil {
			t.Fatalf("seed role %s: %v", name, err)
		}
		c.roles[name] = role
	}
	return c
}

func createCompany(t *testing.T, gdb *gorm.DB, name string) *types.Company {
	t.Helper()
	company := &types.Company{
		ID: uuid.New(), Name: name,
		Address: "Somewhere 1", Email: name + "@example.com", PhoneNumber: "000",
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	if err := gdb.Create(company).Error; err != nil {
		t.Fatalf("create company: %v", err)
	}
	return company
}

func createProduct(t *testing.T, gdb *gorm.DB, companyID uuid.UUID, name string) *types.Product {
	t.Helper()
	product := &types.Product{
		ID: uuid.New(), Name: name, CompanyID: companyID,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	if err := gdb.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

// insertSample writes a pre-classified sample directly, bypassing the
// ingestion path, for read-side tests.
func insertSample(t *testing.T, gdb *gorm.DB, productID, qualityID uuid.UUID, date time.Time) *types.WaterSample {
	t.Helper()
	sample := &types.WaterSample{
		ID: uuid.New(), ProductID: productID, Date: date, CreatedAt: date,
	}
	if err := gdb.Create(sample).Error; err != nil {
		t.Fatalf("create sample: %v", err)
	}
	prediction := &types.WaterPrediction{
		ID: uuid.New(), WaterSampleID: sample.ID, WaterQualityID: qualityID,
	}
	if err := gdb.Create(prediction).Error; err != nil {
		t.Fatalf("create prediction: %v", err)
	}
	return sample
}

type fakeClassifier struct {
	label string
	err   error
	calls int
}

func (f *fakeClassifier) Predict(ctx context.Context, vector classifier.Vector) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.label, nil
}

type fakeUploader struct {
	url      string
	err      error
	uploaded []string
}

func (f *fakeUploader) UploadImage(ctx context.Context, key string, file io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploaded = append(f.uploaded, key)
	if f.url != "" {
		return f.url, nil
	}
	return "https://storage.example.com/" + key, nil
}

func newPredictionService(gdb *gorm.DB, cls classifier.Classifier, uploader ImageUploader) PredictionService {
	log := logger.Nop()
	return NewPredictionService(gdb, log, cls, uploader,
		repos.NewCompanyRepo(gdb, log),
		repos.NewProductRepo(gdb, log),
		repos.NewWaterPropertyRepo(gdb, log),
		repos.NewWaterQualityRepo(gdb, log),
		repos.NewWaterSampleRepo(gdb, log),
		repos.NewWaterSampleDetailRepo(gdb, log),
		repos.NewWaterPredictionRepo(gdb, log),
	)
}

func newDashboardService(gdb *gorm.DB) DashboardService {
	log := logger.Nop()
	return NewDashboardService(gdb, log,
		repos.NewDashboardRepo(gdb, log),
		repos.NewWaterQualityRepo(gdb, log),
	)
}

func newProductService(gdb *gorm.DB, uploader ImageUploader) ProductService {
	log := logger.Nop()
	return NewProductService(gdb, log, uploader,
		repos.NewCompanyRepo(gdb, log),
		repos.NewProductRepo(gdb, log),
		repos.NewWaterSampleRepo(gdb, log),
		repos.NewWaterSampleDetailRepo(gdb, log),
		repos.NewWaterPredictionRepo(gdb, log),
	)
}

func countRows(t *testing.T, gdb *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := gdb.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}
