package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/courseauth/internal/server/metrics"
	"github.com/dmitrijs2005/courseauth/internal/server/models"
	"github.com/dmitrijs2005/courseauth/internal/server/validation"
	"github.com/gin-gonic/gin"
)

// userView is the sanitized user sent to clients: no password hash, no id,
// no token.
type userView struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarURL,omitempty"`
	RoleID    string `json:"roleId"`
}

func newUserView(u *models.User) userView {
	return userView{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		RoleID:    u.RoleID,
	}
}

type signUpResponse struct {
	Message string   `json:"message"`
	User    userView `json:"user"`
	Auth    string   `json:"auth"`
}

type signInResponse struct {
	Message string   `json:"message"`
	User    userView `json:"user"`
	Token   string   `json:"token"`
}

func (s *Server) signUp(c *gin.Context) {
	var req validation.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, metrics.OperationRegister, errMalformedBody)
		return
	}

	res, err := s.users.Register(c.Request.Context(), req)
	if err != nil {
		s.fail(c, metrics.OperationRegister, err)
		return
	}

	s.metrics.RecordAuthAttempt(metrics.OperationRegister, metrics.OutcomeSuccess)
	c.JSON(http.StatusCreated, signUpResponse{
		Message: msgUserCreated,
		User:    newUserView(res.User),
		Auth:    res.Token,
	})
}

func (s *Server) signIn(c *gin.Context) {
	var req validation.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, metrics.OperationLogin, errMalformedBody)
		return
	}

	res, err := s.users.Login(c.Request.Context(), req)
	if err != nil {
		s.fail(c, metrics.OperationLogin, err)
		return
	}

	s.metrics.RecordAuthAttempt(metrics.OperationLogin, metrics.OutcomeSuccess)
	c.JSON(http.StatusOK, signInResponse{
		Message: msgUserLoggedIn,
		User:    newUserView(res.User),
		Token:   res.Token,
	})
}

func (s *Server) liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": msgProcessAlive})
}

func (s *Server) readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn(ctx, "readiness check failed", "error", err)
		s.metrics.SetStoreUp(false)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": msgStoreNotReady})
		return
	}
	s.metrics.SetStoreUp(true)
	c.JSON(http.StatusOK, gin.H{"status": msgStoreReady})
}
