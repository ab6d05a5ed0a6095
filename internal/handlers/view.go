package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/flash"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
)

// View renders pages through the "base" layout and owns the flash store.
type View struct {
	flash *flash.Store
}

func NewView(store *flash.Store) *View {
	return &View{flash: store}
}

func (v *View) Render(c *gin.Context, status int, page, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Page"] = page
	data["Title"] = title
	data["Flashes"] = v.flash.Pop(c)

	c.HTML(status, "base", data)
}

func (v *View) Flash(c *gin.Context, category, text string) {
	v.flash.Add(c, category, text)
}

func (v *View) NotFound(c *gin.Context) {
	v.Render(c, http.StatusNotFound, "error", "Not found", gin.H{
		"Status":  http.StatusNotFound,
		"Message": "The page or record you asked for does not exist.",
	})
	c.Abort()
}

func (v *View) ServerError(c *gin.Context, err error) {
	log.Printf("request %s failed: %v", c.GetString(middleware.ContextRequestID), err)
	v.Render(c, http.StatusInternalServerError, "error", "Error", gin.H{
		"Status":  http.StatusInternalServerError,
		"Message": "Something went wrong. Please try again.",
	})
	c.Abort()
}

// Fail maps a use case error: validation failures go back to the form with a
// message, missing records become 404, anything else 500.
func (v *View) Fail(c *gin.Context, err error, formPath string) {
	if ve, ok := httperr.AsValidation(err); ok {
		v.Flash(c, flash.Danger, ve.Message)
		httpresp.Redirect(c, formPath)
		return
	}
	if httperr.IsNotFound(err) {
		v.NotFound(c)
		return
	}
	v.ServerError(c, err)
}

// idParam reads :id. A malformed id is answered with 404 like a missing one.
func (v *View) idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		v.NotFound(c)
		return 0, false
	}
	return uint(id), true
}

// formValue is nil when the field was not submitted at all.
func formValue(c *gin.Context, key string) *string {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &v
}
