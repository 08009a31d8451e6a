package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/D4V1DYL/HydroSenseAPI/internal/apierr"
	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/services"
)

type ProductHandler struct {
	log            *logger.Logger
	productService services.ProductService
}

func NewProductHandler(log *logger.Logger, productService services.ProductService) *ProductHandler {
	return &ProductHandler{
		log:            log.With("handler", "ProductHandler"),
		productService: productService,
	}
}

// POST /products
// Multipart form: name, description, company_id, image.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	companyID, err := uuid.Parse(c.PostForm("company_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeFor(apierr.ErrInvalid),
			fmt.Errorf("invalid company_id: %w", err))
		return
	}
	in := services.CreateProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		CompanyID:   companyID,
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

	product, err := h.productService.CreateProduct(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, gin.H{"message": "Product created successfully", "product": product})
}

// DELETE /products/:id
// Removes the product and its full sample history.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeFor(apierr.ErrInvalid),
			fmt.Errorf("invalid product id: %w", err))
		return
	}
	if err := h.productService.DeleteProduct(c.Request.Context(), productID); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Product deleted successfully"})
}
