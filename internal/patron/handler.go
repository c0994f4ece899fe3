package patron

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"biblio-backend/internal/platform/apierr"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.GET("/patrons/:patron_id/status", h.StatusReport)
}

// GET /patrons/:patron_id/status
func (h *Handler) StatusReport(c *gin.Context) {
	res, err := h.svc.StatusReport(c.Request.Context(), c.Param("patron_id"))
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.FromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}
