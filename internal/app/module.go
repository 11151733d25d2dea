package app

import "github.com/gin-gonic/gin"

// Module defines the contract for a self-registering business module.
type Module interface {
	RegisterRoutes(r gin.IRouter)
}
