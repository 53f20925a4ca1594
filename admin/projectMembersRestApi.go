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

type projectMembersHandler struct {
	validator *validator.Validate
}

func RegisterProjectMembersHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	handler := &projectMembersHandler{validator: validator.New()}

	g := r.Group("/v1/project-members", middleWares...)
	g.GET("", handler.handleQuery)
	g.POST("", handler.handleCreate)
	g.PUT(":id", handler.handleUpdate)
}

func (h *projectMembersHandler) handleQuery(c *gin.Context) {
	query := ProjectMemberQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	members, err := QueryProjectMembersFunc(c.Request.Context(), &query)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, members)
}

func (h *projectMembersHandler) handleCreate(c *gin.Context) {
	creation := domain.ProjectMemberCreation{}
	err := c.ShouldBindBodyWith(&creation, binding.JSON)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := h.validator.Struct(creation); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	member, err := CreateProjectMemberFunc(c.Request.Context(), &creation)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, member)
}

func (h *projectMembersHandler) handleUpdate(c *gin.Context) {
	parsedId, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}
	updating := domain.ProjectMemberUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := h.validator.Struct(updating); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	if err := UpdateProjectMemberFunc(c.Request.Context(), parsedId, &updating); err != nil {
		panic(err)
	}
	c.AbortWithStatus(http.StatusNoContent)
}
