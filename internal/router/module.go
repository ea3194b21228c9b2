package router

import "github.com/gin-gonic/gin"

// Module registers a feature's routes on the root group. Access control is part of
// the module: each one attaches its own middleware.Gate.
type Module interface {
	Register(rg *gin.RouterGroup)
}
