package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	. "taskapp/internal/adapter/http/helper"
	. "taskapp/internal/adapter/http/validation"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
	"taskapp/internal/core/util"
)

type AuthHandler struct {
	svc port.AuthService
}

func NewAuthHandler(svc port.AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

func (a *AuthHandler) Signup(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.SignUpRequest](c)

	if err != nil {
		SendBadRequestError(c, "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendBadRequestError(c, FormatValidationErrors(err))
		return
	}

	user, accessToken, err := a.svc.Signup(ctx, &params)

	if err != nil {
		slog.Error("Auth#Signup", "error", err)
		SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Token: accessToken,
	})
}

func (a *AuthHandler) Signin(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.SignInRequest](c)

	if err != nil {
		SendBadRequestError(c, "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendBadRequestError(c, FormatValidationErrors(err))
		return
	}

	user, accessToken, err := a.svc.Signin(ctx, &params)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Token: accessToken,
	})
}
