package handlers

import (
	"net/http"
	"strings"

	"csirt-registry/internal/identity"
	"csirt-registry/internal/models"

	"github.com/gin-gonic/gin"
)

func (a *API) ListUsers(c *gin.Context) {
	profiles, err := a.Store.ListProfiles(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

type createUserForm struct {
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	Name      string          `json:"name"`
	Role      models.UserRole `json:"role"`
	CompanyID *string         `json:"company_id"`
}

// CreateUser создаёт идентичность у провайдера, затем профиль.
// Если профиль не записался, идентичность остаётся.
func (a *API) CreateUser(c *gin.Context) {
	var form createUserForm
	if !bindJSON(c, &form) {
		return
	}

	form.Email = strings.TrimSpace(form.Email)
	if form.Email == "" || form.Password == "" {
		respondMessage(c, http.StatusBadRequest, "email and password are required")
		return
	}
	if !form.Role.Valid() {
		respondMessage(c, http.StatusBadRequest, "invalid role")
		return
	}

	var companyID *string
	if form.CompanyID != nil && strings.TrimSpace(*form.CompanyID) != "" {
		id := strings.TrimSpace(*form.CompanyID)
		companyID = &id
	}

	ctx := c.Request.Context()
	user, err := a.Identity.CreateUser(ctx, identity.NewUser{
		Email:    form.Email,
		Password: form.Password,
		Name:     form.Name,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	profile := models.Profile{
		ID:        user.ID,
		Name:      form.Name,
		Role:      form.Role,
		CompanyID: companyID,
	}
	if err := a.Store.CreateProfile(ctx, &profile); err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	success(c)
}
