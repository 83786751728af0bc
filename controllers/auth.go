package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"cratedig/utils"
)

// authUserKey is where the middleware stashes the authenticated user id
const authUserKey = "auth_user"

// AuthRequired reads the identity established by the upstream identity
// provider (X-Auth-User header). Requests without one are rejected before any
// handler runs; every owner check downstream compares against this value.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user := strings.TrimSpace(ctx.GetHeader("X-Auth-User"))
		if user == "" {
			utils.Unauthorized(ctx, "Missing authenticated user identity")
			ctx.Abort()
			return
		}
		ctx.Set(authUserKey, user)
		ctx.Next()
	}
}

// AuthUser returns the authenticated user id for the request, or "" when the
// middleware did not run
func AuthUser(ctx *gin.Context) string {
	return ctx.GetString(authUserKey)
}
