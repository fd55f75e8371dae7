package server

import (
	"github.com/gin-gonic/gin"
	ledgerdomain "github.com/smallbiznis/ratebook/internal/ledger/domain"
)

func (s *Server) SupplierStatement(c *gin.Context) {
	statement, err := s.ledgerSvc.Statement(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, statement)
}

func (s *Server) SupplierNetDue(c *gin.Context) {
	due, err := s.ledgerSvc.NetDue(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, due)
}

func (s *Server) RecordPayment(c *gin.Context) {
	var req ledgerdomain.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	tx, err := s.ledgerSvc.RecordPayment(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, tx)
}
