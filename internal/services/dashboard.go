package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/D4V1DYL/HydroSenseAPI/internal/apierr"
	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/repos"
)

const cleanLabelName = "Clean"

type CompanyLeaderboardEntry struct {
	CompanyID   uuid.UUID `json:"company_id"`
	CompanyName string    `json:"company_name"`
	CleanCount  int64     `json:"clean_count"`
}

type ProductStatusEntry struct {
	ProductID          uuid.UUID `json:"product_id"`
	ProductName        string    `json:"product_name"`
	ProductDescription string    `json:"product_description"`
	Result             string    `json:"result"`
}

type ProductHistoryEntry struct {
	ProductID          uuid.UUID `json:"product_id"`
	ProductName        string    `json:"product_name"`
	ProductDescription string    `json:"product_description"`
	ProductImage       string    `json:"product_image"`
	Result             string    `json:"result"`
	Date               string    `json:"date"`
	Time               string    `json:"time"`
}

// DashboardService recomputes every rollup from the normalized tables on
// each call. A company that does not exist and a company with no qualifying
// rows are indistinguishable here; both come back as NotFound.
type DashboardService interface {
	Leaderboard(ctx context.Context) ([]CompanyLeaderboardEntry, error)
	CompanyProducts(ctx context.Context, companyID uuid.UUID) ([]ProductStatusEntry, error)
	CompanyHistory(ctx context.Context, companyID uuid.UUID) ([]ProductHistoryEntry, error)
}

type dashboardService struct {
	db            *gorm.DB
	log           *logger.Logger
	dashboardRepo repos.DashboardRepo
	qualityRepo   repos.WaterQualityRepo
}

func NewDashboardService(
	db *gorm.DB,
	baseLog *logger.Logger,
	dashboardRepo repos.DashboardRepo,
	qualityRepo repos.WaterQualityRepo,
) DashboardService {
	return &dashboardService{
		db:            db,
		log:           baseLog.With("service", "DashboardService"),
		dashboardRepo: dashboardRepo,
		qualityRepo:   qualityRepo,
	}
}

func (ds *dashboardService) Leaderboard(ctx context.Context) ([]CompanyLeaderboardEntry, error) {
	clean, err := ds.qualityRepo.GetByName(ctx, nil, cleanLabelName)
	if err != nil {
		return nil, fmt.Errorf("resolve clean label: %w", err)
	}
	if clean == nil {
		return nil, fmt.Errorf("%w: water quality label %q not in catalog", apierr.ErrNotFound, cleanLabelName)
	}
	rows, err := ds.dashboardRepo.Leaderboard(ctx, nil, clean.ID)
	if err != nil {
		return nil, fmt.Errorf("leaderboard query: %w", err)
	}
	entries := make([]CompanyLeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = CompanyLeaderboardEntry{
			CompanyID:   row.CompanyID,
			CompanyName: row.CompanyName,
			CleanCount:  row.CleanCount,
		}
	}
	return entries, nil
}

func (ds *dashboardService) CompanyProducts(ctx context.Context, companyID uuid.UUID) ([]ProductStatusEntry, error) {
	rows, err := ds.dashboardRepo.LatestProductsByCompany(ctx, nil, companyID)
	if err != nil {
		return nil, fmt.Errorf("latest products query: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: company not found or no products available", apierr.ErrNotFound)
	}
	entries := make([]ProductStatusEntry, len(rows))
	for i, row := range rows {
		entries[i] = ProductStatusEntry{
			ProductID:          row.ProductID,
			ProductName:        row.ProductName,
			ProductDescription: row.ProductDescription,
			Result:             row.Result,
		}
	}
	return entries, nil
}

func (ds *dashboardService) CompanyHistory(ctx context.Context, companyID uuid.UUID) ([]ProductHistoryEntry, error) {
	rows, err := ds.dashboardRepo.HistoryByCompany(ctx, nil, companyID)
	if err != nil {
		return nil, fmt.Errorf("history query: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: company not found or no history available", apierr.ErrNotFound)
	}
	entries := make([]ProductHistoryEntry, len(rows))
	for i, row := range rows {
		entries[i] = ProductHistoryEntry{
			ProductID:          row.ProductID,
			ProductName:        row.ProductName,
			ProductDescription: row.ProductDescription,
			ProductImage:       row.ProductImage,
			Result:             row.Result,
			Date:               row.Date.Format("2006-01-02"),
			Time:               row.Date.Format("03:04 PM"),
		}
	}
	return entries, nil
}
