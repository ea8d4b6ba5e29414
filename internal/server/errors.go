package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrNoNewsFile is returned when the data directory has no news for a ticker.
var ErrNoNewsFile = errors.New("no news file")

// ErrNoSeries is returned when the data directory has no intraday points for a
// ticker.
var ErrNoSeries = errors.New("no series file")

// HTTPError carries the status a handler wants written.
type HTTPError struct {
	StatusCode int
	Detail     string
}

func (e HTTPError) Error() string {
	return e.Detail
}

func badQuery(detail string) HTTPError {
	return HTTPError{StatusCode: http.StatusUnprocessableEntity, Detail: detail}
}

// errorMiddleware renders the first error attached to the context as
// {"detail": "..."}.
func errorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors[0].Err

		var he HTTPError
		if errors.As(err, &he) {
			c.AbortWithStatusJSON(he.StatusCode, gin.H{"detail": he.Detail})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	}
}
