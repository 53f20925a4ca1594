package admin

import (
	"errors"
	"net/http"

	"cloyt/bizerror"
	"cloyt/domain"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type projectsHandler struct {
	validator *validator.Validate
}

func RegisterProjectsHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	handler := &projectsHandler{validator: validator.New()}

	g := r.Group("/v1/projects", middleWares...)
	g.GET("", handler.handleQuery)
	g.PUT(":id", handler.handleUpdate)
	g.GET(":id/work-item-types", handler.handleQueryWorkItemTypes)
}

func (h *projectsHandler) handleQuery(c *gin.Context) {
	projects, err := QueryProjectsFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, projects)
}

func (h *projectsHandler) handleUpdate(c *gin.Context) {
	parsedId, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}
	updating := domain.ProjectUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := h.validator.Struct(updating); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	if err := UpdateProjectFunc(c.Request.Context(), parsedId, &updating); err != nil {
		panic(err)
	}
	c.AbortWithStatus(http.StatusNoContent)
}

func (h *projectsHandler) handleQueryWorkItemTypes(c *gin.Context) {
	parsedId, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}
	workItemTypes, err := QueryWorkItemTypesFunc(c.Request.Context(), parsedId)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, workItemTypes)
}
