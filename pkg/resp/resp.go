package resp

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mohammedmirzada/order-tracking/pkg/apperr"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
}

func ServerError(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}

// Error writes err as {message[, errors]} with the status of its kind.
// Anything that is not an *apperr.Error is logged and hidden behind a 500.
func Error(c *gin.Context, err error) {
	e, ok := apperr.As(err)
	if !ok || e.Kind == apperr.KindInternal {
		ServerError(c, err)
		return
	}
	body := gin.H{"message": e.Message}
	if e.Details != nil {
		body["errors"] = e.Details
	}
	c.JSON(e.Status(), body)
}
