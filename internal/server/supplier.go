package server

import (
	"github.com/gin-gonic/gin"
	supplierdomain "github.com/smallbiznis/ratebook/internal/supplier/domain"
)

func (s *Server) CreateSupplier(c *gin.Context) {
	var req supplierdomain.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	supplier, err := s.supplierSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, supplier)
}

func (s *Server) ListSuppliers(c *gin.Context) {
	suppliers, err := s.supplierSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, suppliers)
}

func (s *Server) GetSupplier(c *gin.Context) {
	supplier, err := s.supplierSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, supplier)
}

func (s *Server) UpdateSupplier(c *gin.Context) {
	var req supplierdomain.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	supplier, err := s.supplierSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, supplier)
}

func (s *Server) DeleteSupplier(c *gin.Context) {
	if err := s.supplierSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"deleted": true})
}
