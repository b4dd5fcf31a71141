package handler

import (
	"net/http"

	"hackfest_backend/internal/api/middleware"
	"hackfest_backend/internal/app/service"
	"hackfest_backend/internal/common"

	"github.com/go-chi/chi/v5"
)

type CertificateHandler struct {
	certificateService *service.CertificateService
}

func NewCertificateHandler(certificateService *service.CertificateService) *CertificateHandler {
	return &CertificateHandler{certificateService: certificateService}
}

func (h *CertificateHandler) RegisterRoutes(r chi.Router) {
	r.Get("/certificate", h.getCertificate)
}

func (h *CertificateHandler) getCertificate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Could not identify user")
		return
	}
	cert, err := h.certificateService.GetForUser(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, cert)
}
