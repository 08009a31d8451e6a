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

type CreateCompanyInput struct {
	Name        string
	Description string
	Address     string
	Email       string
	PhoneNumber string
	Website     string
	ImageName   string
	Image       io.Reader
}

type UserWithRole struct {
	UserID    uuid.UUID `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	RoleName  string    `json:"role_name"`
}

type UserCompanyAssignment struct {
	UserID      uuid.UUID `json:"user_id"`
	UserName    string    `json:"user_name"`
	CompanyID   uuid.UUID `json:"company_id"`
	CompanyName string    `json:"company_name"`
}

// AdminService is the superadmin surface: company registry management and
// role/company assignment.
type AdminService interface {
	CreateCompany(ctx context.Context, in CreateCompanyInput) (*types.Company, error)
	AssignRole(ctx context.Context, userID, roleID uuid.UUID) error
	AssignCompany(ctx context.Context, userID, companyID uuid.UUID) error
	ListCompanies(ctx context.Context) ([]*types.Company, error)
	ListUsersWithRoles(ctx context.Context) ([]UserWithRole, error)
	ListUserCompanyAssignments(ctx context.Context) ([]UserCompanyAssignment, error)
}

type adminService struct {
	db          *gorm.DB
	log         *logger.Logger
	uploader    ImageUploader
	userRepo    repos.UserRepo
	roleRepo    repos.RoleRepo
	companyRepo repos.CompanyRepo
	mappingRepo repos.UserCompanyMappingRepo
}

func NewAdminService(
	db *gorm.DB,
	baseLog *logger.Logger,
	uploader ImageUploader,
	userRepo repos.UserRepo,
	roleRepo repos.RoleRepo,
	companyRepo repos.CompanyRepo,
	mappingRepo repos.UserCompanyMappingRepo,
) AdminService {
	return &adminService{
		db:          db,
		log:         baseLog.With("service", "AdminService"),
		uploader:    uploader,
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		companyRepo: companyRepo,
		mappingRepo: mappingRepo,
	}
}

func (s *adminService) CreateCompany(ctx context.Context, in CreateCompanyInput) (*types.Company, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: company name is required", apierr.ErrInvalid)
	}
	if in.Address == "" || in.Email == "" || in.PhoneNumber == "" {
		return nil, fmt.Errorf("%w: address, email and phone number are required", apierr.ErrInvalid)
	}

	imageURL := ""
	if in.Image != nil {
		key := fmt.Sprintf("companies/%s%s", uuid.New().String(), imageExt(in.ImageName))
		var err error
		imageURL, err = s.uploader.UploadImage(ctx, key, in.Image)
		if err != nil {
			return nil, fmt.Errorf("%w: image upload: %v", apierr.ErrUpstream, err)
		}
	}

	company := &types.Company{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Website:     in.Website,
		Image:       imageURL,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if _, err := s.companyRepo.Create(ctx, nil, []*types.Company{company}); err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}
	s.log.Info("Created company", "company_id", company.ID, "name", company.Name)
	return company, nil
}

func (s *adminService) AssignRole(ctx context.Context, userID, roleID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %s", apierr.ErrNotFound, userID)
	}
	role, err := s.roleRepo.GetByID(ctx, nil, roleID)
	if err != nil {
		return fmt.Errorf("get role: %w", err)
	}
	if role == nil {
		return fmt.Errorf("%w: role %s", apierr.ErrNotFound, roleID)
	}
	if err := s.userRepo.UpdateRole(ctx, nil, userID, roleID); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	s.log.Info("Assigned role", "user_id", userID, "role", role.Name)
	return nil
}

func (s *adminService) AssignCompany(ctx context.Context, userID, companyID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %s", apierr.ErrNotFound, userID)
	}
	company, err := s.companyRepo.GetByID(ctx, nil, companyID)
	if err != nil {
		return fmt.Errorf("get company: %w", err)
	}
	if company == nil {
		return fmt.Errorf("%w: company %s", apierr.ErrNotFound, companyID)
	}

	mapping, err := s.mappingRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return fmt.Errorf("get mapping: %w", err)
	}
	if mapping != nil {
		if err := s.mappingRepo.UpdateCompany(ctx, nil, mapping.ID, companyID); err != nil {
			return fmt.Errorf("update mapping: %w", err)
		}
	} else {
		newMapping := &types.UserCompanyMapping{
			ID:        uuid.New(),
			UserID:    userID,
			CompanyID: companyID,
		}
		if err := s.mappingRepo.Create(ctx, nil, newMapping); err != nil {
			return fmt.Errorf("create mapping: %w", err)
		}
	}
	s.log.Info("Assigned company", "user_id", userID, "company_id", companyID)
	return nil
}

func (s *adminService) ListCompanies(ctx context.Context) ([]*types.Company, error) {
	companies, err := s.companyRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

func (s *adminService) ListUsersWithRoles(ctx context.Context) ([]UserWithRole, error) {
	users, err := s.userRepo.GetAllWithRoles(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]UserWithRole, len(users))
	for i, u := range users {
		roleName := ""
		if u.Role != nil {
			roleName = u.Role.Name
		}
		out[i] = UserWithRole{
			UserID:    u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			RoleName:  roleName,
		}
	}
	return out, nil
}

func (s *adminService) ListUserCompanyAssignments(ctx context.Context) ([]UserCompanyAssignment, error) {
	mappings, err := s.mappingRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list mappings: %w", err)
	}
	out := make([]UserCompanyAssignment, len(mappings))
	for i, m := range mappings {
		userName := ""
		if m.User != nil {
			userName = fmt.Sprintf("%s %s", m.User.FirstName, m.User.LastName)
		}
		companyName := ""
		if m.Company != nil {
			companyName = m.Company.Name
		}
		out[i] = UserCompanyAssignment{
			UserID:      m.UserID,
			UserName:    userName,
			CompanyID:   m.CompanyID,
			CompanyName: companyName,
		}
	}
	return out, nil
}
