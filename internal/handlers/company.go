package handlers

import (
	"net/http"
	"strings"

	"csirt-registry/internal/models"

	"github.com/gin-gonic/gin"
)

func (a *API) ListCompanies(c *gin.Context) {
	_, _, decision := caller(c)

	companies, err := a.Store.ListCompanies(c.Request.Context(), decision.Scope())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

type designationForm struct {
	CompanyData     models.Company     `json:"companyData"`
	DesignationData models.Designation `json:"designationData"`
}

// UpsertDesignation пишет компанию (по vat_number), затем назначение
// (по company_id). Это две независимые записи: если вторая падает,
// первая остаётся.
func (a *API) UpsertDesignation(c *gin.Context) {
	var form designationForm
	if !bindJSON(c, &form) {
		return
	}

	company := form.CompanyData
	company.ID = ""
	company.VATNumber = strings.TrimSpace(company.VATNumber)
	if company.VATNumber == "" {
		respondMessage(c, http.StatusBadRequest, "vat_number is required")
		return
	}

	ctx := c.Request.Context()
	saved, err := a.Store.UpsertCompany(ctx, &company)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	designation := form.DesignationData
	designation.ID = ""
	designation.CompanyID = saved.ID
	if err := a.Store.UpsertDesignation(ctx, &designation); err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "company": saved})
}

func (a *API) UpsertConfiguration(c *gin.Context) {
	var cfg models.NetworkConfiguration
	if !bindJSON(c, &cfg) {
		return
	}

	_, _, decision := caller(c)
	if !decision.Permits(cfg.CompanyID) {
		respondMessage(c, http.StatusForbidden, "cannot modify another company")
		return
	}

	cfg.ID = ""
	if err := a.Store.UpsertConfiguration(c.Request.Context(), &cfg); err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	success(c)
}
