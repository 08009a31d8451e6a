package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/D4V1DYL/HydroSenseAPI/internal/apierr"
	"github.com/D4V1DYL/HydroSenseAPI/internal/classifier"
	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/services"
)

type PredictionHandler struct {
	log               *logger.Logger
	predictionService services.PredictionService
}

func NewPredictionHandler(log *logger.Logger, predictionService services.PredictionService) *PredictionHandler {
	return &PredictionHandler{
		log:               log.With("handler", "PredictionHandler"),
		predictionService: predictionService,
	}
}

type ingestRequest struct {
	ProductID    uuid.UUID          `json:"product_id" binding:"required"`
	Description  string             `json:"description"`
	Measurements map[string]float64 `json:"measurements" binding:"required"`
}

// POST /predict/water
// Ingest one measurement vector for an existing product.
func (h *PredictionHandler) PredictWater(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeFor(apierr.ErrInvalid), err)
		return
	}
	result, err := h.predictionService.IngestSample(
		c.Request.Context(), req.ProductID, req.Description, classifier.Vector(req.Measurements))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"message":    "Successfully predicted",
		"prediction": result.Prediction,
		"sample_id":  result.SampleID,
		"product_id": result.ProductID,
	})
}

// POST /predict/product
// Multipart form: create the product (with image) and ingest its first
// sample in one call. The measurements field is a JSON object of
// property-name -> value.
func (h *PredictionHandler) PredictForNewProduct(c *gin.Context) {
	companyID, err := uuid.Parse(c.PostForm("company_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeFor(apierr.ErrInvalid),
			fmt.Errorf("invalid company_id: %w", err))
		return
	}
	name := c.PostForm("name")
	measurementsRaw := c.PostForm("measurements")
	var measurements map[string]float64
	if err := json.Unmarshal([]byte(measurementsRaw), &measurements); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeFor(apierr.ErrInvalid),
			fmt.Errorf("invalid measurements payload: %w", err))
		return
	}

	in := services.NewProductSampleInput{
		Name:              name,
		Description:       c.PostForm("description"),
		CompanyID:         companyID,
		SampleDescription: c.PostForm("sample_description"),
		Vector:            classifier.Vector(measurements),
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

	result, err := h.predictionService.IngestSampleForNewProduct(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, gin.H{
		"message":    "Product created and sample predicted",
		"prediction": result.Prediction,
		"sample_id":  result.SampleID,
		"product_id": result.ProductID,
	})
}
