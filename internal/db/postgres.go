package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/types"
	"github.com/D4V1DYL/HydroSenseAPI/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "hydrosense", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
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
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships for postgres tables...")
	// Ordered parent-first so each referenced table exists before its FK.
	constraints := []struct {
		name string
		ddl  string
	}{
		{"fk_ms_user_role_id", `ALTER TABLE "ms_user" ADD CONSTRAINT "fk_ms_user_role_id" FOREIGN KEY ("role_id") REFERENCES "lt_role"("id")`},
		{"fk_ms_user_company_mapping_user_id", `ALTER TABLE "ms_user_company_mapping" ADD CONSTRAINT "fk_ms_user_company_mapping_user_id" FOREIGN KEY ("user_id") REFERENCES "ms_user"("id") ON DELETE CASCADE`},
		{"fk_ms_user_company_mapping_company_id", `ALTER TABLE "ms_user_company_mapping" ADD CONSTRAINT "fk_ms_user_company_mapping_company_id" FOREIGN KEY ("company_id") REFERENCES "ms_company"("id") ON DELETE CASCADE`},
		{"fk_ms_product_company_id", `ALTER TABLE "ms_product" ADD CONSTRAINT "fk_ms_product_company_id" FOREIGN KEY ("company_id") REFERENCES "ms_company"("id")`},
		{"fk_tr_water_sample_product_id", `ALTER TABLE "tr_water_sample" ADD CONSTRAINT "fk_tr_water_sample_product_id" FOREIGN KEY ("product_id") REFERENCES "ms_product"("id")`},
		{"fk_tr_water_sample_detail_sample_id", `ALTER TABLE "tr_water_sample_detail" ADD CONSTRAINT "fk_tr_water_sample_detail_sample_id" FOREIGN KEY ("water_sample_id") REFERENCES "tr_water_sample"("id")`},
		{"fk_tr_water_sample_detail_property_id", `ALTER TABLE "tr_water_sample_detail" ADD CONSTRAINT "fk_tr_water_sample_detail_property_id" FOREIGN KEY ("water_property_id") REFERENCES "lt_water_property"("id")`},
		{"fk_tr_water_prediction_sample_id", `ALTER TABLE "tr_water_prediction" ADD CONSTRAINT "fk_tr_water_prediction_sample_id" FOREIGN KEY ("water_sample_id") REFERENCES "tr_water_sample"("id")`},
		{"fk_tr_water_prediction_quality_id", `ALTER TABLE "tr_water_prediction" ADD CONSTRAINT "fk_tr_water_prediction_quality_id" FOREIGN KEY ("water_quality_id") REFERENCES "lt_water_quality"("id")`},
	}
	for _, c := range constraints {
		ddl := fmt.Sprintf(`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN %s; END IF; END $$;`, c.name, c.ddl)
		if err := s.db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", c.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
