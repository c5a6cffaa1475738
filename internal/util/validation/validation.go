package validation_utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RespondFieldErrors writes a 422 response with a field-keyed error map when
// err carries per-field validation failures. Returns false when err is not a
// validation error so the caller can fall through to its own mapping.
func RespondFieldErrors(ctx *gin.Context, err error) bool {
	var fieldErrors validation.Errors
	if !errors.As(err, &fieldErrors) {
		return false
	}

	ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors})
	return true
}
