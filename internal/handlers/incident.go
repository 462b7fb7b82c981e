package handlers

import (
	"errors"
	"net/http"

	"csirt-registry/internal/models"

	"github.com/gin-gonic/gin"
)

func (a *API) CreateIncident(c *gin.Context) {
	var inc models.Incident
	if !bindJSON(c, &inc) {
		return
	}

	user, _, decision := caller(c)
	if !decision.Permits(inc.CompanyID) {
		respondMessage(c, http.StatusForbidden, "cannot register incidents for another company")
		return
	}

	inc.ID = ""
	inc.Company = nil
	inc.CreatedBy = user.ID
	if err := a.Store.CreateIncident(c.Request.Context(), &inc); err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	success(c)
}

func (a *API) ListIncidents(c *gin.Context) {
	_, _, decision := caller(c)

	incidents, err := a.Store.ListIncidents(c.Request.Context(), decision.Scope())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, incidents)
}

// CreateNotification всегда берёт компанию из родительского инцидента;
// company_id из тела запроса игнорируется.
func (a *API) CreateNotification(c *gin.Context) {
	var n models.Notification
	if !bindJSON(c, &n) {
		return
	}
	if n.IncidentID == "" {
		respondMessage(c, http.StatusBadRequest, "incident_id is required")
		return
	}

	ctx := c.Request.Context()
	_, _, decision := caller(c)

	incident, err := a.Store.GetIncident(ctx, n.IncidentID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, errors.New("incident lookup failed: "+err.Error()))
		return
	}
	if !decision.Permits(incident.CompanyID) {
		respondMessage(c, http.StatusForbidden, "cannot notify incidents of another company")
		return
	}
	n.CompanyID = incident.CompanyID

	n.ID = ""
	n.Incident = nil
	if err := a.Store.CreateNotification(ctx, &n); err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	success(c)
}

func (a *API) ListNotifications(c *gin.Context) {
	_, _, decision := caller(c)

	notifications, err := a.Store.ListNotifications(c.Request.Context(), decision.Scope())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}
