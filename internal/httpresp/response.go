package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const contentTypeJSON = "application/json; charset=utf-8"

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Raw writes an already encoded JSON body, e.g. one served from the cache.
func Raw(c *gin.Context, payload []byte) {
	c.Data(http.StatusOK, contentTypeJSON, payload)
}

// Redirect answers a form POST with 302 Found.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}
