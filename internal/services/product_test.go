package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/D4V1DYL/HydroSenseAPI/internal/apierr"
	"github.com/D4V1DYL/HydroSenseAPI/internal/types"
)

func TestCreateProductWithImage(t *testing.T) {
	gdb := newTestDB(t)
	seedCatalog(t, gdb)
	company := createCompany(t, gdb, "Aquaflow")

	uploader := &fakeUploader{url: "https://cdn.example.com/products/still.png"}
	svc := newProductService(gdb, uploader)

	product, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:        "Still 1L",
		Description: "Still water, one liter",
		CompanyID:   company.ID,
		ImageName:   "still.png",
		Image:       strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	require.Equal(t, uploader.url, product.Image)
	require.Len(t, uploader.uploaded, 1)
	require.True(t, strings.HasSuffix(uploader.uploaded[0], ".png"),
		"uploaded key %q should keep the image extension", uploader.uploaded[0])

	var stored types.Product
	require.NoError(t, gdb.First(&stored, "id = ?", product.ID).Error)
	require.Equal(t, company.ID, stored.CompanyID)
}

func TestCreateProductRejectsMissingCompany(t *testing.T) {
	gdb := newTestDB(t)
	seedCatalog(t, gdb)

	svc := newProductService(gdb, &fakeUploader{})
	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:      "Still 1L",
		CompanyID: uuid.New(),
	})
	require.ErrorIs(t, err, apierr.ErrNotFound)
}

func TestCreateProductRejectsDuplicateNameWithinCompany(t *testing.T) {
	gdb := newTestDB(t)
	seedCatalog(t, gdb)
	company := createCompany(t, gdb, "Aquaflow")
	createProduct(t, gdb, company.ID, "Still 1L")

	svc := newProductService(gdb, &fakeUploader{})
	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:      "Still 1L",
		CompanyID: company.ID,
	})
	require.ErrorIs(t, err, apierr.ErrInvalid)

	// The same name under a different company is fine.
	other := createCompany(t, gdb, "Beta Springs")
	_, err = svc.CreateProduct(context.Background(), CreateProductInput{
		Name:      "Still 1L",
		CompanyID: other.ID,
	})
	require.NoError(t, err)
}

func TestDeleteProductCascadesThroughSampleHistory(t *testing.T) {
	gdb := newTestDB(t)
	cat := seedCatalog(t, gdb)
	company := createCompany(t, gdb, "Aquaflow")

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	doomed := createProduct(t, gdb, company.ID, "Doomed 1L")
	for i := 0; i < 2; i++ {
		sample := insertSample(t, gdb, doomed.ID, cat.clean.ID, base.Add(time.Duration(i)*time.Hour))
		detail := &types.WaterSampleDetail{
			ID: uuid.New(), WaterSampleID: sample.ID,
			WaterPropertyID: cat.properties["pH"], Value: 7.0,
		}
		require.NoError(t, gdb.Create(detail).Error)
	}

	survivor := createProduct(t, gdb, company.ID, "Survivor 1L")
	survivorSample := insertSample(t, gdb, survivor.ID, cat.dirty.ID, base)

	svc := newProductService(gdb, &fakeUploader{})
	require.NoError(t, svc.DeleteProduct(context.Background(), doomed.ID))

	require.EqualValues(t, 1, countRows(t, gdb, &types.Product{}))
	require.EqualValues(t, 1, countRows(t, gdb, &types.WaterSample{}))
	require.EqualValues(t, 0, countRows(t, gdb, &types.WaterSampleDetail{}))
	require.EqualValues(t, 1, countRows(t, gdb, &types.WaterPrediction{}))

	// The survivor's rows are untouched.
	var remaining types.WaterSample
	require.NoError(t, gdb.First(&remaining).Error)
	require.Equal(t, survivorSample.ID, remaining.ID)

	// History no longer mentions the deleted product.
	dash := newDashboardService(gdb)
	entries, err := dash.CompanyHistory(context.Background(), company.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, survivor.ID, entries[0].ProductID)
}

func TestDeleteProductUnknownIDIsNotFound(t *testing.T) {
	gdb := newTestDB(t)
	seedCatalog(t, gdb)

	svc := newProductService(gdb, &fakeUploader{})
	err := svc.DeleteProduct(context.Background(), uuid.New())
	require.ErrorIs(t, err, apierr.ErrNotFound)
}
