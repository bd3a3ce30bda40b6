package agency

import (
	"errors"
	"net/http"

	agencydom "agencyhub-service/internal/domain/agency"
	"agencyhub-service/internal/domain/subaccount"
	"agencyhub-service/internal/middleware"
	xerrors "agencyhub-service/internal/pkg/errors"
	"agencyhub-service/internal/pkg/response"
	"agencyhub-service/internal/pkg/validate"
	agencysvc "agencyhub-service/internal/service/agency"
	"agencyhub-service/internal/service/onboarding"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AgencyHandler struct {
	onboarding *onboarding.Service
	agencies   *agencysvc.Service
	logger     *zap.Logger
}

func NewAgencyHandler(onboardingSvc *onboarding.Service, agencySvc *agencysvc.Service, logger *zap.Logger) *AgencyHandler {
	return &AgencyHandler{
		onboarding: onboardingSvc,
		agencies:   agencySvc,
		logger:     logger,
	}
}

type onboardRequest struct {
	// ID of an existing agency when re-submitting the details form.
	ID string `json:"id"`
	agencydom.DetailsInput
}

// Onboard validates the agency-details form and drives the onboarding
// sequence.
// POST /api/v1/agencies
func (h *AgencyHandler) Onboard(c *gin.Context) {
	var req onboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if fieldErrs := validate.Struct(&req.DetailsInput); fieldErrs != nil {
		response.ValidationError(c, "invalid agency details", fieldErrs)
		return
	}

	var existing *agencydom.Agency
	if req.ID != "" {
		a, err := h.agencies.Get(c.Request.Context(), req.ID)
		if err != nil {
			h.respondError(c, err, "failed to load agency")
			return
		}
		existing = a
	}

	ident := onboarding.Identity{
		ID:    middleware.MustGetIdentityID(c),
		Name:  c.GetString("name"),
		Email: c.GetString("email"),
	}

	a, err := h.onboarding.Onboard(c.Request.Context(), ident, &req.DetailsInput, existing)
	if err != nil {
		h.respondError(c, err, "failed to onboard agency")
		return
	}

	status := http.StatusCreated
	if existing != nil {
		status = http.StatusOK
	}
	response.Success(c, status, "agency saved", a)
}

// Get returns one agency.
// GET /api/v1/agencies/:id
func (h *AgencyHandler) Get(c *gin.Context) {
	a, err := h.agencies.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to load agency")
		return
	}

	response.Success(c, http.StatusOK, "agency", a)
}

// UpdateDetails applies an edited details form to an existing agency.
// PUT /api/v1/agencies/:id
func (h *AgencyHandler) UpdateDetails(c *gin.Context) {
	var input agencydom.DetailsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if fieldErrs := validate.Struct(&input); fieldErrs != nil {
		response.ValidationError(c, "invalid agency details", fieldErrs)
		return
	}

	a, err := h.agencies.UpdateDetails(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		h.respondError(c, err, "failed to update agency")
		return
	}

	response.Success(c, http.StatusOK, "agency updated", a)
}

// UpdateGoal sets the agency's sub-account goal.
// PUT /api/v1/agencies/:id/goal
func (h *AgencyHandler) UpdateGoal(c *gin.Context) {
	var req agencydom.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.agencies.UpdateGoal(c.Request.Context(), c.Param("id"), req.Goal); err != nil {
		h.respondError(c, err, "failed to update goal")
		return
	}

	response.Success(c, http.StatusOK, "goal updated", nil)
}

// Delete removes an agency and its sub-accounts.
// DELETE /api/v1/agencies/:id
func (h *AgencyHandler) Delete(c *gin.Context) {
	if err := h.agencies.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "could not delete agency")
		return
	}

	response.Success(c, http.StatusOK, "agency deleted", nil)
}

// CreateSubAccount adds a sub-account under the agency.
// POST /api/v1/agencies/:id/subaccounts
func (h *AgencyHandler) CreateSubAccount(c *gin.Context) {
	var req subaccount.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	sa, err := h.agencies.CreateSubAccount(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err, "failed to create sub-account")
		return
	}

	response.Success(c, http.StatusCreated, "sub-account created", sa)
}

// ListSubAccounts lists the agency's sub-accounts.
// GET /api/v1/agencies/:id/subaccounts
func (h *AgencyHandler) ListSubAccounts(c *gin.Context) {
	accounts, err := h.agencies.ListSubAccounts(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to list sub-accounts")
		return
	}

	response.Success(c, http.StatusOK, "sub-accounts", accounts)
}

func (h *AgencyHandler) respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, message)
	case errors.Is(err, xerrors.ErrMissingCustomer):
		response.Error(c, http.StatusUnprocessableEntity, message, err)
	case errors.Is(err, xerrors.ErrBillingFailed):
		response.Error(c, http.StatusBadGateway, message, xerrors.ErrBillingFailed)
	case errors.Is(err, xerrors.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, message, err)
	default:
		h.logger.Error(message, zap.Error(err))
		response.Error(c, http.StatusInternalServerError, message, xerrors.ErrInternal)
	}
}
