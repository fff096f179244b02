package gateway

import (
	"net/http"

	"github.com/example/marketplace/pkg/apperrors"
	"github.com/example/marketplace/pkg/reporting"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// vendorStats godoc
// @Summary      Sales dashboard
// @Description  Superusers see the whole marketplace, staff see their own products.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  DashboardDTO
// @Failure      403  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /orders/vendor-stats [get]
func (g *Gateway) vendorStats(c *gin.Context) {
	d, err := g.reports.Dashboard(c.Request.Context(), currentIdentity(c))
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toDashboardDTO(d))
}

// exportVendorStats godoc
// @Summary   Sales dashboard as a spreadsheet
// @Tags      reports
// @Produce   application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success   200  {file}    binary
// @Failure   403  {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /orders/vendor-stats/export [get]
func (g *Gateway) exportVendorStats(c *gin.Context) {
	d, err := g.reports.Dashboard(c.Request.Context(), currentIdentity(c))
	if err != nil {
		g.fail(c, err)
		return
	}
	data, err := reporting.ExportXLSX(d)
	if err != nil {
		g.fail(c, apperrors.Internal("failed to export dashboard", err))
		return
	}

	c.Header("Content-Disposition", "attachment; filename=vendor_stats.xlsx")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Data(http.StatusOK, xlsxContentType, data)
}
