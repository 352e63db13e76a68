package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/psomsri/taladsod-backend/internal/app/service"
	"github.com/psomsri/taladsod-backend/internal/middleware"
)

type SelectionController struct {
	selectionService service.SelectionService
}

func NewSelectionController(selectionService service.SelectionService) *SelectionController {
	return &SelectionController{
		selectionService: selectionService,
	}
}

type SetOptionRequest struct {
	OptionIndex *int `json:"option_index" binding:"required"`
}

type ToggleSelectionRequest struct {
	Checked *bool `json:"checked" binding:"required"`
}

// SetOption changes the chosen price option of one product
// PUT /api/v1/selection/:productId/option
func (ctrl *SelectionController) SetOption(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	profileID := middleware.GetProfileID(c)

	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	var req SetOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid option request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	listing := ctrl.selectionService.SetOption(profileID, productID, *req.OptionIndex)
	c.JSON(http.StatusOK, listing)
}

// ToggleSelection marks one product selected or deselected
// PUT /api/v1/selection/:productId
func (ctrl *SelectionController) ToggleSelection(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	profileID := middleware.GetProfileID(c)

	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	var req ToggleSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid selection request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	total, count := ctrl.selectionService.ToggleSelection(profileID, productID, *req.Checked)
	c.JSON(http.StatusOK, gin.H{
		"total":          total,
		"selected_count": count,
	})
}

// SelectAll flips every product between all-selected and none-selected
// POST /api/v1/selection/all
func (ctrl *SelectionController) SelectAll(c *gin.Context) {
	profileID := middleware.GetProfileID(c)
	c.JSON(http.StatusOK, ctrl.selectionService.SelectAll(profileID))
}

// GetTotal returns the running total of the current selection
// GET /api/v1/selection/total
func (ctrl *SelectionController) GetTotal(c *gin.Context) {
	profileID := middleware.GetProfileID(c)

	total, count := ctrl.selectionService.ComputeTotal(profileID)
	c.JSON(http.StatusOK, gin.H{
		"total":          total,
		"selected_count": count,
	})
}

func parseProductID(c *gin.Context) (uint, bool) {
	idStr := c.Param("productId")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return 0, false
	}
	return uint(id), true
}
