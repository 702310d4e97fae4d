package auth

import (
	"auth/handlers"
	"auth/middleware"

	coreServices "core/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	Handler *handlers.AuthHandler
}

func NewModule(db *gorm.DB) *Module {
	userService := coreServices.NewUserService(db)
	return &Module{
		Handler: handlers.NewAuthHandler(userService),
	}
}

func (m *Module) SetupRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/telegram", m.Handler.TelegramLogin)
	}
}

func JWTMiddleware() gin.HandlerFunc {
	return middleware.JWTMiddleware()
}

func RequireAdmin() gin.HandlerFunc {
	return middleware.RequireAdmin()
}

func GetUserID(c *gin.Context) (int64, bool) {
	return middleware.GetUserID(c)
}
