package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/D4V1DYL/HydroSenseAPI/internal/apierr"
	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/services"
)

type AdminHandler struct {
	log          *logger.Logger
	adminService services.AdminService
}

func NewAdminHandler(log *logger.Logger, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		log:          log.With("handler", "AdminHandler"),
		adminService: adminService,
	}
}

// POST /admin/companies
// Multipart form: name, description, address, email, phone_number, website,
// optional image.
func (h *AdminHandler) CreateCompany(c *gin.Context) {
	in := services.CreateCompanyInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Address:     c.PostForm("address"),
		Email:       c.PostForm("email"),
		PhoneNumber: c.PostForm("phone_number"),
		Website:     c.PostForm("website"),
	}
	if fileHeader, err := c.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, apierr.CodeFor(apierr.ErrInvalid), err)
			return
		}
		defer file.Close()
		in.Image = file
		in.ImageName = fileHeader.Filename
	}

	company, err := h.adminService.CreateCompany(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, gin.H{"message": "Company created successfully", "company": company})
}

type assignRoleRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	RoleID uuid.UUID `json:"role_id" binding:"required"`
}

// POST /admin/assign-role
func (h *AdminHandler) AssignRole(c *gin.Context) {
	var req assignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeFor(apierr.ErrInvalid), err)
		return
	}
	if err := h.adminService.AssignRole(c.Request.Context(), req.UserID, req.RoleID); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Role assigned successfully"})
}

type assignCompanyRequest struct {
	UserID    uuid.UUID `json:"user_id" binding:"required"`
	CompanyID uuid.UUID `json:"company_id" binding:"required"`
}

// POST /admin/assign-company
func (h *AdminHandler) AssignCompany(c *gin.Context) {
	var req assignCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeFor(apierr.ErrInvalid), err)
		return
	}
	if err := h.adminService.AssignCompany(c.Request.Context(), req.UserID, req.CompanyID); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Company assigned successfully"})
}

// GET /admin/companies
func (h *AdminHandler) ListCompanies(c *gin.Context) {
	companies, err := h.adminService.ListCompanies(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, companies)
}

// GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsersWithRoles(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, users)
}

// GET /admin/user-company-mappings
func (h *AdminHandler) ListUserCompanyMappings(c *gin.Context) {
	mappings, err := h.adminService.ListUserCompanyAssignments(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, mappings)
}
