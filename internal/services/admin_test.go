package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/D4V1DYL/HydroSenseAPI/internal/apierr"
	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/repos"
	"github.com/D4V1DYL/HydroSenseAPI/internal/types"
)

func newAdminService(gdb *gorm.DB, uploader ImageUploader) AdminService {
	log := logger.Nop()
	return NewAdminService(gdb, log, uploader,
		repos.NewUserRepo(gdb, log),
		repos.NewRoleRepo(gdb, log),
		repos.NewCompanyRepo(gdb, log),
		repos.NewUserCompanyMappingRepo(gdb, log),
	)
}

func registerUser(t *testing.T, gdb *gorm.DB, email string) *types.User {
	t.Helper()
	svc := newAuthService(gdb, time.Hour)
	user, err := svc.RegisterUser(context.Background(), RegisterInput{
		FirstName: "Test", LastName: "User", Email: email, Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("register user %s: %v", email, err)
	}
	return user
}

func TestCreateCompanyValidatesRequiredFields(t *testing.T) {
	gdb := newTestDB(t)
	seedCatalog(t, gdb)
	svc := newAdminService(gdb, &fakeUploader{})

	_, err := svc.CreateCompany(context.Background(), CreateCompanyInput{})
	require.ErrorIs(t, err, apierr.ErrInvalid)

	_, err = svc.CreateCompany(context.Background(), CreateCompanyInput{Name: "Aquaflow"})
	require.ErrorIs(t, err, apierr.ErrInvalid)

	company, err := svc.CreateCompany(context.Background(), CreateCompanyInput{
		Name: "Aquaflow", Address: "Dock 4", Email: "ops@aquaflow.example", PhoneNumber: "555-0101",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, company.ID)

	companies, err := svc.ListCompanies(context.Background())
	require.NoError(t, err)
	require.Len(t, companies, 1)
}

func TestAssignRolePromotesUser(t *testing.T) {
	gdb := newTestDB(t)
	cat := seedCatalog(t, gdb)
	user := registerUser(t, gdb, "ada@example.com")

	svc := newAdminService(gdb, &fakeUploader{})
	require.NoError(t, svc.AssignRole(context.Background(), user.ID, cat.roles[types.RoleAdmin].ID))

	users, err := svc.ListUsersWithRoles(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, types.RoleAdmin, users[0].RoleName)

	require.ErrorIs(t, svc.AssignRole(context.Background(), uuid.New(), cat.roles[types.RoleAdmin].ID), apierr.ErrNotFound)
	require.ErrorIs(t, svc.AssignRole(context.Background(), user.ID, uuid.New()), apierr.ErrNotFound)
}

func TestAssignCompanyUpsertsMapping(t *testing.T) {
	gdb := newTestDB(t)
	seedCatalog(t, gdb)
	user := registerUser(t, gdb, "ada@example.com")
	first := createCompany(t, gdb, "First Water")
	second := createCompany(t, gdb, "Second Water")

	svc := newAdminService(gdb, &fakeUploader{})

	require.NoError(t, svc.AssignCompany(context.Background(), user.ID, first.ID))
	require.NoError(t, svc.AssignCompany(context.Background(), user.ID, second.ID))

	// Reassignment updates the one mapping row instead of adding another.
	require.EqualValues(t, 1, countRows(t, gdb, &types.UserCompanyMapping{}))

	assignments, err := svc.ListUserCompanyAssignments(context.Background())
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	require.Equal(t, second.ID, assignments[0].CompanyID)
	require.Equal(t, "Second Water", assignments[0].CompanyName)
}
