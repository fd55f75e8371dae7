package server

import (
	"github.com/gin-gonic/gin"
	billdomain "github.com/smallbiznis/ratebook/internal/bill/domain"
)

type billGridQuery struct {
	SupplierID string `form:"supplier_id"`
	Date       string `form:"date"`
}

func (s *Server) BuildBillGrid(c *gin.Context) {
	var q billGridQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	grid, err := s.billSvc.BuildGrid(c.Request.Context(), billdomain.BuildGridRequest{
		SupplierID: q.SupplierID,
		Date:       q.Date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, grid)
}

func (s *Server) ReconcileBill(c *gin.Context) {
	var req billdomain.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.billSvc.Reconcile(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

func (s *Server) SaveBill(c *gin.Context) {
	var req billdomain.SaveBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.billSvc.Save(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	billsSavedTotal.Inc()
	respondData(c, resp)
}
