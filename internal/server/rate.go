package server

import (
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	ratedomain "github.com/smallbiznis/ratebook/internal/rate/domain"
)

type listRatesQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

func (s *Server) ListRates(c *gin.Context) {
	var q listRatesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	rates, err := s.rateSvc.List(c.Request.Context(), ratedomain.ListRatesRequest{
		From: q.From,
		To:   q.To,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, rates)
}

func (s *Server) UpsertRate(c *gin.Context) {
	var req ratedomain.UpsertRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.rateSvc.Upsert(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// ImportRates accepts a multipart "file" field plus optional column mapping
// overrides in the form values. The format comes from the file extension.
func (s *Server) ImportRates(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	defer file.Close()

	mapping := ratedomain.ColumnMapping{
		Date:    c.DefaultPostForm("date_column", "Date"),
		Tandoor: c.DefaultPostForm("tandoor_column", "Tandoor"),
		Boiler:  c.DefaultPostForm("boiler_column", "Boiler"),
		Egg:     c.DefaultPostForm("egg_column", "Egg"),
	}

	resp, err := s.rateSvc.Import(c.Request.Context(), ratedomain.ImportRequest{
		Format:  strings.TrimPrefix(filepath.Ext(fileHeader.Filename), "."),
		Mapping: mapping,
		Reader:  file,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

type replaceHistoryRequest struct {
	Rates []ratedomain.DailyRate `json:"rates"`
}

func (s *Server) ReplaceRateHistory(c *gin.Context) {
	var req replaceHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.rateSvc.ReplaceHistory(c.Request.Context(), req.Rates); err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"replaced": len(req.Rates)})
}
