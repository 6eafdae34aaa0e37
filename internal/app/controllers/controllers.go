package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/middleware"
	"github.com/tinkerlab/labtrack/internal/pkg/apperrors"
)

// principalOrAbort returns the authenticated caller or writes a 401
func principalOrAbort(ctx *gin.Context) (models.Principal, bool) {
	principal, ok := middleware.PrincipalFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return models.Principal{}, false
	}
	return principal, true
}

// pathID parses a positive int64 path parameter or writes a 400
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(name, name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}
