package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	billdomain "github.com/smallbiznis/ratebook/internal/bill/domain"
	ledgerdomain "github.com/smallbiznis/ratebook/internal/ledger/domain"
	markupdomain "github.com/smallbiznis/ratebook/internal/markup/domain"
	overviewdomain "github.com/smallbiznis/ratebook/internal/overview/domain"
	ratedomain "github.com/smallbiznis/ratebook/internal/rate/domain"
	supplierdomain "github.com/smallbiznis/ratebook/internal/supplier/domain"
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string { return e.Message }

var (
	ErrInvalidRequest = &apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "request body or parameters are invalid"}
	ErrInternal       = &apiError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "internal server error"}
)

func invalidRequestError() error { return ErrInvalidRequest }

// AbortWithError translates domain sentinel errors into HTTP responses.
// Unknown errors become a generic 500 so internals never leak.
func AbortWithError(c *gin.Context, err error) {
	var api *apiError
	if errors.As(err, &api) {
		c.AbortWithStatusJSON(api.Status, gin.H{"error": api})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case isBadRequest(err):
		status = http.StatusBadRequest
	case isNotFound(err):
		status = http.StatusNotFound
	case isConflict(err):
		status = http.StatusConflict
	default:
		c.AbortWithStatusJSON(status, gin.H{"error": ErrInternal})
		return
	}

	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{
		"code":    err.Error(),
		"message": err.Error(),
	}})
}

func isBadRequest(err error) bool {
	for _, target := range []error{
		supplierdomain.ErrInvalidSupplierID,
		supplierdomain.ErrInvalidName,
		markupdomain.ErrInvalidSupplier,
		markupdomain.ErrInvalidItemName,
		markupdomain.ErrInvalidBaseRate,
		markupdomain.ErrInvalidOperator,
		markupdomain.ErrInvalidRuleID,
		ratedomain.ErrInvalidDate,
		ratedomain.ErrNegativeRate,
		ratedomain.ErrInvalidMapping,
		ratedomain.ErrInvalidFormat,
		ratedomain.ErrEmptyImportFile,
		billdomain.ErrInvalidSupplier,
		billdomain.ErrInvalidDate,
		billdomain.ErrInvalidItemName,
		billdomain.ErrNegativeQuantity,
		billdomain.ErrNegativeRate,
		billdomain.ErrNoPositiveLines,
		ledgerdomain.ErrInvalidSupplier,
		ledgerdomain.ErrInvalidDate,
		ledgerdomain.ErrInvalidAmount,
		overviewdomain.ErrInvalidSupplier,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isNotFound(err error) bool {
	for _, target := range []error{
		supplierdomain.ErrSupplierNotFound,
		markupdomain.ErrRuleNotFound,
		ratedomain.ErrRateNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isConflict(err error) bool {
	for _, target := range []error{
		supplierdomain.ErrSupplierExists,
		markupdomain.ErrRuleExists,
		billdomain.ErrBillExists,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
