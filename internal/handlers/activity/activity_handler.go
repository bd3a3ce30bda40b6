package activity

import (
	"net/http"

	activitydom "agencyhub-service/internal/domain/activity"
	"agencyhub-service/internal/pkg/response"
	activitysvc "agencyhub-service/internal/service/activity"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activity *activitysvc.Service
}

func NewActivityHandler(activitySvc *activitysvc.Service) *ActivityHandler {
	return &ActivityHandler{activity: activitySvc}
}

// List returns a page of the agency activity log.
// GET /api/v1/agencies/:id/activity
func (h *ActivityHandler) List(c *gin.Context) {
	var filters activitydom.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.activity.List(c.Request.Context(), c.Param("id"), &filters)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list activity", err)
		return
	}

	response.Success(c, http.StatusOK, "activity log", result)
}
