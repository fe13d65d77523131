package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guber-mobility/service-trips/internal/domain/errs"
)

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// Error maps a domain error to its HTTP status. Validation failures are
// 400, expected misses 404, caller cancellation 499, upstream trouble
// (exhausted retries or a provider contract violation) 502, anything
// else 500.
func Error(c *gin.Context, err error) {
	var ve *errs.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})
		return
	}

	var nfe *errs.NotFoundError
	if errors.As(err, &nfe) {
		c.JSON(http.StatusNotFound, gin.H{"error": nfe.Error()})
		return
	}

	// Checked before the unavailable branch: a cancelled provider call comes
	// back wrapped in an UnavailableError, and that is the caller's doing,
	// not upstream trouble.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		// Client went away; 499 in the access log, nothing to send.
		c.Status(499)
		return
	}

	if errs.IsUnavailable(err) || errs.IsDecoding(err) {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
