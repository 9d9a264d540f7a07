package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
)

// RespondDomainError translates the aggregate error taxonomy into
// HTTP statuses. Anything without a recognizable code is a 500 with a
// generic body so internals do not leak.
func RespondDomainError(c *gin.Context, err error) {
	code := domainagg.CodeOf(err)
	switch code {
	case domainagg.CodeValidation:
		RespondError(c, http.StatusBadRequest, string(code), err)
	case domainagg.CodeInvariantViolation, domainagg.CodePreconditionFailed:
		RespondError(c, http.StatusUnprocessableEntity, string(code), err)
	case domainagg.CodeConflict:
		RespondError(c, http.StatusConflict, string(code), err)
	case domainagg.CodeNotFound:
		RespondError(c, http.StatusNotFound, string(code), err)
	case domainagg.CodeRetryable:
		RespondError(c, http.StatusServiceUnavailable, string(code), err)
	default:
		RespondError(c, http.StatusInternalServerError, string(domainagg.CodeInternal), errInternal)
	}
}

var errInternal = internalError{}

type internalError struct{}

func (internalError) Error() string { return "internal server error" }
