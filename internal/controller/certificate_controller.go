package controller

import (
	"madrasa_backend/internal/service"
	"madrasa_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	Certificates *service.CertificateService
}

func NewCertificateController(certificates *service.CertificateService) *CertificateController {
	return &CertificateController{Certificates: certificates}
}

// List godoc
// @Summary My certificates
// @Tags certificates
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Certificate}
// @Router /api/certificates [get]
func (c *CertificateController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	certs, err := c.Certificates.ListByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, certs)
}

// Get godoc
// @Summary Certificate detail
// @Tags certificates
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Certificate id"
// @Success 200 {object} util.Response{data=model.Certificate}
// @Failure 403 {object} util.Response "Not the owner"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/certificates/{id} [get]
func (c *CertificateController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	cert, err := c.Certificates.Get(util.ParseUint(ctx.Param("id")), claims.UserID, claims.Role)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, cert)
}
