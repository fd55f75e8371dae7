package server

import (
	"github.com/gin-gonic/gin"
	overviewdomain "github.com/smallbiznis/ratebook/internal/overview/domain"
)

func (s *Server) OverviewSummary(c *gin.Context) {
	summary, err := s.overviewSvc.Summary(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, summary)
}

func (s *Server) VarianceReport(c *gin.Context) {
	rows, err := s.overviewSvc.VarianceReport(c.Request.Context(), overviewdomain.VarianceReportRequest{
		SupplierID: c.Query("supplier_id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, rows)
}

func (s *Server) RateTrends(c *gin.Context) {
	trends, err := s.overviewSvc.Trends(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, trends)
}
