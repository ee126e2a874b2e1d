package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freelancebill/invoicing-system/internal/core/ports"
)

// ProfileHandler handles the one-per-user freelancer business profile.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type upsertProfileRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email"     validate:"required,email"`
	LogoURL  string `json:"logo_url"`
	Phone    string `json:"phone"`

	BusinessName string `json:"business_name" validate:"required"`
	BusinessType string `json:"business_type" validate:"required,oneof=freelancer agency consultant other"`
	Website      string `json:"website"`

	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`

	Profession        string  `json:"profession"`
	DefaultHourlyRate float64 `json:"default_hourly_rate" validate:"gte=0"`
	Currency          string  `json:"currency"`

	TimeZone              string `json:"time_zone"`
	PreferredPaymentTerms string `json:"preferred_payment_terms"`
}

// Get handles GET /v1/profile.
//
// @Summary      Read the caller's business profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.FreelancerProfile
// @Failure      404  {object}  errorResponse
// @Router       /v1/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Upsert handles PUT /v1/profile. First write creates the profile, later
// writes replace it.
//
// @Summary      Create or replace the caller's business profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      upsertProfileRequest  true  "Profile details"
// @Success      200   {object}  domain.FreelancerProfile
// @Failure      400   {object}  errorResponse
// @Router       /v1/profile [put]
func (h *ProfileHandler) Upsert(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req upsertProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.service.UpsertProfile(c.Request().Context(), ports.UpsertProfileInput{
		UserID:   userID,
		FullName: req.FullName,
		Email:    req.Email,
		LogoURL:  req.LogoURL,
		Phone:    req.Phone,

		BusinessName: req.BusinessName,
		BusinessType: req.BusinessType,
		Website:      req.Website,

		Address: req.Address,
		City:    req.City,
		State:   req.State,
		ZipCode: req.ZipCode,
		Country: req.Country,

		Profession:        req.Profession,
		DefaultHourlyRate: req.DefaultHourlyRate,
		Currency:          req.Currency,

		TimeZone:              req.TimeZone,
		PreferredPaymentTerms: req.PreferredPaymentTerms,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
