package main

import (
	"net/http"

	"DripmenStore/internal/middleware"
	"DripmenStore/internal/services"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func registerHandler(authSvc *services.AuthService, r responder) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(registerRequest)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}
		user, err := authSvc.Register(c.Request().Context(), req.Email, req.Password, req.ConfirmPassword)
		if err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusCreated, user)
	}
}

func loginHandler(authSvc *services.AuthService, ttlHours int, r responder) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}

		user, err := authSvc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return r.fail(c, err)
		}

		token, err := middleware.GenerateToken(user.Email, ttlHours)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "could not create token",
			})
		}

		return r.ok(c, http.StatusOK, echo.Map{
			"token":      token,
			"expires_in": ttlHours * 3600,
			"user":       user,
		})
	}
}

func logoutHandler(authSvc *services.AuthService, r responder) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := authSvc.Logout(c.Request().Context()); err != nil {
			return r.fail(c, err)
		}
		return r.ok(c, http.StatusOK, map[string]string{"message": "logged out"})
	}
}

// meHandler returns the authenticated user's info
func meHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"email": claims.Email,
			"exp":   claims.ExpiresAt,
		})
	}
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService, ttlHours int, r responder) {
	auth := g.Group("/auth")

	// public
	auth.POST("/register", registerHandler(authSvc, r))
	auth.POST("/login", loginHandler(authSvc, ttlHours, r))
	auth.POST("/logout", logoutHandler(authSvc, r))

	// authenticated
	protected := auth.Group("")
	protected.Use(middleware.JWTMiddleware())
	protected.GET("/me", meHandler())
}
