package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/D4V1DYL/HydroSenseAPI/internal/db"
	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/types"
)

// Seeds the catalog tables (roles, water properties, quality labels) and a
// small demo data set. Safe to run repeatedly: every insert is keyed on a
// natural identifier and skipped when the row already exists.
func main() {
	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	gdb := postgresService.DB()

	if err := seed(gdb); err != nil {
		log.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
	log.Info("Seeding complete")
}

func seed(gdb *gorm.DB) error {
	roles := map[string]*types.Role{}
	for _, r := range []struct{ name, description string }{
		{types.RoleSuperadmin, "Full administrative access"},
		{types.RoleAdmin, "Administrator role"},
		{types.RoleUser, "Regular user role"},
	} {
		role := &types.Role{ID: uuid.New(), Name: r.name, Description: r.description}
		if err := firstOrCreate(gdb, role, "name = ?", r.name); err != nil {
			return fmt.Errorf("seed role %s: %w", r.name, err)
		}
		roles[role.Name] = role
	}

	for _, p := range []struct{ name, description string }{
		{"pH", "pH level"},
		{"Iron", "Iron content"},
		{"Nitrate", "Nitrate content"},
		{"Chloride", "Chloride content"},
		{"Lead", "Lead content"},
		{"Turbidity", "Turbidity level"},
		{"Fluoride", "Fluoride content"},
		{"Copper", "Copper content"},
		{"Odor", "Odor level"},
		{"Sulfate", "Sulfate content"},
		{"Chlorine", "Chlorine content"},
		{"Manganese", "Manganese content"},
		{"Total Dissolved Solids", "Total dissolved solids content"},
	} {
		property := &types.WaterProperty{ID: uuid.New(), Name: p.name, Description: p.description}
		if err := firstOrCreate(gdb, property, "name = ?", p.name); err != nil {
			return fmt.Errorf("seed property %s: %w", p.name, err)
		}
	}

	for _, q := range []struct{ name, description string }{
		{"Clean", "Clean water"},
		{"Dirty", "Dirty water"},
	} {
		quality := &types.WaterQuality{ID: uuid.New(), Name: q.name, Description: q.description}
		if err := firstOrCreate(gdb, quality, "name = ?", q.name); err != nil {
			return fmt.Errorf("seed quality %s: %w", q.name, err)
		}
	}

	now := time.Now().UTC()
	companies := map[string]*types.Company{}
	for _, c := range []struct{ name, address, email, phone string }{
		{"Company A", "Address A", "emailA@example.com", "1234567890"},
		{"Company B", "Address B", "emailB@example.com", "0987654321"},
	} {
		company := &types.Company{
			ID: uuid.New(), Name: c.name, Address: c.address,
			Email: c.email, PhoneNumber: c.phone,
			CreatedAt: now, UpdatedAt: now,
		}
		if err := firstOrCreate(gdb, company, "email = ?", c.email); err != nil {
			return fmt.Errorf("seed company %s: %w", c.name, err)
		}
		companies[company.Name] = company
	}

	password, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}
	users := map[string]*types.User{}
	for _, u := range []struct{ first, last, email, role string }{
		{"John", "Doe", "john.doe@example.com", types.RoleAdmin},
		{"Jane", "Doe", "jane.doe@example.com", types.RoleUser},
	} {
		user := &types.User{
			ID: uuid.New(), FirstName: u.first, LastName: u.last,
			Email: u.email, Password: string(password), RoleID: roles[u.role].ID,
			CreatedAt: now, UpdatedAt: now,
		}
		if err := firstOrCreate(gdb, user, "email = ?", u.email); err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
		users[user.Email] = user
	}

	for userEmail, companyName := range map[string]string{
		"john.doe@example.com": "Company A",
		"jane.doe@example.com": "Company B",
	} {
		mapping := &types.UserCompanyMapping{
			ID:        uuid.New(),
			UserID:    users[userEmail].ID,
			CompanyID: companies[companyName].ID,
		}
		if err := firstOrCreate(gdb, mapping, "user_id = ?", users[userEmail].ID); err != nil {
			return fmt.Errorf("seed mapping for %s: %w", userEmail, err)
		}
	}

	for productName, companyName := range map[string]string{
		"Product A": "Company A",
		"Product B": "Company B",
	} {
		product := &types.Product{
			ID: uuid.New(), Name: productName,
			Description: fmt.Sprintf("Description for %s", productName),
			CompanyID:   companies[companyName].ID,
			CreatedAt:   now, UpdatedAt: now,
		}
		if err := firstOrCreate(gdb, product, "name = ? AND company_id = ?", productName, companies[companyName].ID); err != nil {
			return fmt.Errorf("seed product %s: %w", productName, err)
		}
	}

	return nil
}

func firstOrCreate(gdb *gorm.DB, dest interface{}, query string, args ...interface{}) error {
	return gdb.Where(query, args...).FirstOrCreate(dest).Error
}
