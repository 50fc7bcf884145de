package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thermochef/backend/internal/domain"
	"github.com/thermochef/backend/internal/usecase"
)

const serviceVersion = "1.0.0"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recipes *usecase.RecipeService
}

// NewHandler creates a new HTTP handler. A nil service makes every API
// endpoint answer 501.
func NewHandler(recipes *usecase.RecipeService) *Handler {
	return &Handler{recipes: recipes}
}

// ConvertRequest is the body of POST /recipes/convert
type ConvertRequest struct {
	Recipe      *domain.RecipeData `json:"recipe" binding:"required"`
	DeviceModel domain.DeviceModel `json:"deviceModel" binding:"required"`
}

// ScaleRequest is the body of POST /recipes/scale
type ScaleRequest struct {
	Recipe   *domain.ConvertedRecipe `json:"recipe" binding:"required"`
	Servings int                     `json:"servings"`
}

// NutritionRequest is the body of POST /nutrition
type NutritionRequest struct {
	Ingredients []domain.Quantity `json:"ingredients"`
	Servings    int               `json:"servings"`
}

// ShoppingListRequest is the body of POST /shopping-list
type ShoppingListRequest struct {
	Name    string                  `json:"name"`
	Sources []domain.ShoppingSource `json:"sources" binding:"required"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "thermochef-backend",
		"version": serviceVersion,
	})
}

// ListDevices returns the supported device profiles
func (h *Handler) ListDevices(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"devices": h.recipes.Devices()})
}

// ParseRecipe structures a scraped recipe
func (h *Handler) ParseRecipe(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var raw domain.RawRecipe
	if !bindJSON(c, &raw) {
		return
	}

	recipe, err := h.recipes.ParseRecipe(&raw)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// ConvertRecipe converts a recipe into device steps
func (h *Handler) ConvertRecipe(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req ConvertRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.recipes.Process(c.Request.Context(), req.Recipe, req.DeviceModel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ScaleRecipe rescales a converted recipe to a new serving count
func (h *Handler) ScaleRecipe(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req ScaleRequest
	if !bindJSON(c, &req) {
		return
	}

	scaled, err := h.recipes.ScaleRecipe(req.Recipe, req.Servings)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scaled)
}

// EstimateNutrition aggregates nutrition for a list of ingredients
func (h *Handler) EstimateNutrition(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req NutritionRequest
	if !bindJSON(c, &req) {
		return
	}

	summary, err := h.recipes.EstimateNutrition(req.Ingredients, req.Servings)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// BuildShoppingList merges ingredients across recipes and renders them in
// the format named by the "format" query parameter (json, txt or csv).
func (h *Handler) BuildShoppingList(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req ShoppingListRequest
	if !bindJSON(c, &req) {
		return
	}

	entries, err := h.recipes.BuildShoppingList(req.Sources)
	if err != nil {
		respondError(c, err)
		return
	}

	export, err := usecase.ExportShoppingList(req.Name, entries, c.DefaultQuery("format", usecase.ExportJSON))
	if err != nil {
		respondError(c, err)
		return
	}

	if export.Extension != usecase.ExportJSON {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, exportFilename(req.Name), export.Extension))
	}
	c.Data(http.StatusOK, export.ContentType, export.Body)
}

// GetConversion returns a stored conversion by id
func (h *Handler) GetConversion(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	conversion, err := h.recipes.GetConversion(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversion)
}

func (h *Handler) ready(c *gin.Context) bool {
	if h.recipes == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Recipe service not configured"})
		return false
	}
	return true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return false
	}
	return true
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownDeviceModel),
		errors.Is(err, domain.ErrInvalidServings),
		errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConversionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrStoreNotConfigured):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// exportFilename keeps letters, digits and dashes from the list name
func exportFilename(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '_':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "shopping-list"
	}
	return b.String()
}
