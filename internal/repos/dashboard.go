package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
)

// LeaderboardRow is one company's clean-sample count.
type LeaderboardRow struct {
	CompanyID   uuid.UUID `gorm:"column:company_id"`
	CompanyName string    `gorm:"column:company_name"`
	CleanCount  int64     `gorm:"column:clean_count"`
}

// LatestProductRow is a product joined to its most recent sample's label.
type LatestProductRow struct {
	ProductID          uuid.UUID `gorm:"column:product_id"`
	ProductName        string    `gorm:"column:product_name"`
	ProductDescription string    `gorm:"column:product_description"`
	Result             string    `gorm:"column:result"`
}

// HistoryRow is one sample of a company's full history joined to its label.
type HistoryRow struct {
	ProductID          uuid.UUID `gorm:"column:product_id"`
	ProductName        string    `gorm:"column:product_name"`
	ProductDescription string    `gorm:"column:product_description"`
	ProductImage       string    `gorm:"column:product_image"`
	Result             string    `gorm:"column:result"`
	Date               time.Time `gorm:"column:date"`
}

// DashboardRepo holds the read-side rollup queries. Every call recomputes
// from the normalized tables; there is no materialized view to refresh.
type DashboardRepo interface {
	Leaderboard(ctx context.Context, tx *gorm.DB, cleanQualityID uuid.UUID) ([]LeaderboardRow, error)
	LatestProductsByCompany(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) ([]LatestProductRow, error)
	HistoryByCompany(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) ([]HistoryRow, error)
}

type dashboardRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDashboardRepo(db *gorm.DB, baseLog *logger.Logger) DashboardRepo {
	return &dashboardRepo{db: db, log: baseLog.With("repo", "DashboardRepo")}
}

// Leaderboard counts clean predictions per company. Inner joins mean a
// company with zero clean samples does not appear at all. Ties on the count
// are broken by company name, then id, so the ordering is reproducible
// across stores.
func (dr *dashboardRepo) Leaderboard(ctx context.Context, tx *gorm.DB, cleanQualityID uuid.UUID) ([]LeaderboardRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var rows []LeaderboardRow
	err := transaction.WithContext(ctx).
		Table("ms_company AS c").
		Select("c.id AS company_id, c.name AS company_name, COUNT(p.id) AS clean_count").
		Joins("JOIN ms_product AS pr ON pr.company_id = c.id").
		Joins("JOIN tr_water_sample AS s ON s.product_id = pr.id").
		Joins("JOIN tr_water_prediction AS p ON p.water_sample_id = s.id").
		Where("p.water_quality_id = ?", cleanQualityID).
		Group("c.id, c.name").
		Order("clean_count DESC, c.name ASC, c.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// LatestProductsByCompany returns, for each product of the company that has
// at least one sample, the label of its most recent sample. A timestamp tie
// is broken by sample id descending, so two samples sharing an instant still
// resolve to one deterministic row. Products without samples are omitted.
func (dr *dashboardRepo) LatestProductsByCompany(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) ([]LatestProductRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var rows []LatestProductRow
	err := transaction.WithContext(ctx).
		Table("ms_product AS pr").
		Select("pr.id AS product_id, pr.name AS product_name, pr.description AS product_description, q.name AS result").
		Joins("JOIN tr_water_sample AS s ON s.product_id = pr.id").
		Joins("JOIN tr_water_prediction AS p ON p.water_sample_id = s.id").
		Joins("JOIN lt_water_quality AS q ON q.id = p.water_quality_id").
		Where("pr.company_id = ?", companyID).
		Where(`s.id = (SELECT s2.id FROM tr_water_sample AS s2
		               WHERE s2.product_id = pr.id
		               ORDER BY s2.date DESC, s2.id DESC LIMIT 1)`).
		Order("pr.name ASC, pr.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// HistoryByCompany returns every sample of every product the company owns,
// most recent first (sample id descending on equal timestamps).
func (dr *dashboardRepo) HistoryByCompany(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) ([]HistoryRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var rows []HistoryRow
	err := transaction.WithContext(ctx).
		Table("ms_company AS c").
		Select(`pr.id AS product_id, pr.name AS product_name, pr.description AS product_description,
		        pr.image AS product_image, q.name AS result, s.date AS date`).
		Joins("JOIN ms_product AS pr ON pr.company_id = c.id").
		Joins("JOIN tr_water_sample AS s ON s.product_id = pr.id").
		Joins("JOIN tr_water_prediction AS p ON p.water_sample_id = s.id").
		Joins("JOIN lt_water_quality AS q ON q.id = p.water_quality_id").
		Where("c.id = ?", companyID).
		Order("s.date DESC, s.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
