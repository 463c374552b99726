// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"member/internal/delivery/http/middleware"
	"member/internal/delivery/http/router/handler"
	"member/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	MemberHandler       *handler.MemberHandler
	VerificationHandler *handler.VerificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
	LoggerMiddleware    *middleware.LoggerMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	memberHandler       *handler.MemberHandler
	verificationHandler *handler.VerificationHandler
	authMiddleware      *middleware.AuthMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
	loggerMiddleware    *middleware.LoggerMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		memberHandler:       params.MemberHandler,
		verificationHandler: params.VerificationHandler,
		authMiddleware:      params.AuthMiddleware,
		requestIDMiddleware: params.RequestIDMiddleware,
		loggerMiddleware:    params.LoggerMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Process)
	e.Use(r.loggerMiddleware.Handle)
	e.Use(r.authMiddleware.Authenticate)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Registration and session routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	// Email verification routes
	emailGroup := e.Group("/emails")
	{
		emailGroup.POST("/send-authcode", r.verificationHandler.SendCode)
		emailGroup.POST("/verifications", r.verificationHandler.VerifyCode)
		emailGroup.POST("/send-recovery-authcode", r.verificationHandler.SendRecoveryCode)
		emailGroup.POST("/recovery-verifications", r.verificationHandler.VerifyRecoveryCode)
	}

	// Account recovery routes, reachable without a session
	e.POST("/find-email", r.memberHandler.FindEmail)
	e.POST("/find-pwd", r.memberHandler.FindPassword)

	// Member routes that require authentication
	memberGroup := e.Group("/member")
	memberGroup.Use(r.authMiddleware.RequireAuthenticated)
	{
		memberGroup.GET("/me", r.memberHandler.GetMe)
		memberGroup.PUT("/modify-info", r.memberHandler.ModifyInfo)
		memberGroup.PUT("/modify-pwd", r.memberHandler.ModifyPassword)
		memberGroup.DELETE("/withdraw", r.memberHandler.Withdraw)
	}

	// Administrative routes gated on the admin role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/members/:email", r.memberHandler.GetByEmail)
	}
}
