package session

import (
	"net/http"
	"time"

	"cloyt/bizerror"
	"cloyt/common"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

func RegisterSessionsHandler(r *gin.Engine, account *AdminAccount) {
	g := r.Group("/v1/sessions")

	handler := &sessionsHandler{account: account}
	g.POST("", handler.handleLogin)
	g.DELETE("", handler.handleLogout)
}

type sessionsHandler struct {
	account *AdminAccount
}

func (h *sessionsHandler) handleLogin(c *gin.Context) {
	login := LoginRequest{}
	if err := c.ShouldBindBodyWith(&login, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, &common.ErrorBody{Code: "common.bad_param", Message: err.Error()})
		return
	}

	if !h.account.Matches(login.Name, login.Password) {
		panic(bizerror.ErrUnauthenticated)
	}

	token := uuid.New().String()
	s := Session{Token: token, Identity: Identity{Name: login.Name}, SigningTime: time.Now()}
	TokenCache.Set(token, &s, cache.DefaultExpiration)

	c.SetCookie(KeySecToken, token, int(TokenExpiration/time.Second), "/", "", false, false)
	c.JSON(http.StatusOK, &s)
}

func (h *sessionsHandler) handleLogout(c *gin.Context) {
	token, _ := c.Cookie(KeySecToken) // ErrNoCookie
	if token != "" {
		TokenCache.Delete(token)
	}
	c.SetCookie(KeySecToken, "", -1, "/", "", false, false)
	c.AbortWithStatus(http.StatusNoContent)
}
