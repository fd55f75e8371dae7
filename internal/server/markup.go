package server

import (
	"github.com/gin-gonic/gin"
	markupdomain "github.com/smallbiznis/ratebook/internal/markup/domain"
)

func (s *Server) ListMarkups(c *gin.Context) {
	rules, err := s.markupSvc.List(c.Request.Context(), markupdomain.ListRulesRequest{
		SupplierID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, rules)
}

func (s *Server) UpsertMarkup(c *gin.Context) {
	var req markupdomain.UpsertRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.SupplierID = c.Param("id")

	rule, err := s.markupSvc.Upsert(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, rule)
}

func (s *Server) DeleteMarkup(c *gin.Context) {
	if err := s.markupSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"deleted": true})
}
