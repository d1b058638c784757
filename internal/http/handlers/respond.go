package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every failure on this API is the same shape: {success:false, message}.
// The message strings are part of the contract and asserted verbatim by
// external callers, so they must never be reworded.
func Fail(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

func OK(ctx *gin.Context, payload gin.H) {
	OKWithStatus(ctx, http.StatusOK, payload)
}

func OKWithStatus(ctx *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}

	for k, v := range payload {
		body[k] = v
	}

	ctx.JSON(status, body)
}

func RespondInternal(ctx *gin.Context) {
	Fail(ctx, http.StatusInternalServerError, "Internal Server Error")
}
