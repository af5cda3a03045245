package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/pkg/ctx"
	"github.com/shashiranjanraj/bookstore/pkg/resource"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,alpha_dash,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register handles POST /register.
func (h *AuthController) Register(c *ctx.Context) {
	var in registerRequest
	if !c.BindJSON(&in) {
		return
	}
	user, err := h.auth.Register(c.Context(), services.Registration{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resource.Item(user, userResource))
}

type tokenRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// Token handles POST /token, the OAuth2 password grant. The body is the bare
// {access_token, token_type} object OAuth2 clients expect.
func (h *AuthController) Token(c *ctx.Context) {
	var in tokenRequest
	if !c.Bind(&in) {
		return
	}
	tok, err := h.auth.Login(c.Context(), in.Username, in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tok)
}

// Me handles GET /users/me.
func (h *AuthController) Me(c *ctx.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	user, err := h.auth.Me(c.Context(), p)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.Item(user, userResource))
}

// MakeAdmin handles PUT /users/{username}/make-admin.
func (h *AuthController) MakeAdmin(c *ctx.Context) {
	user, err := h.auth.MakeAdmin(c.Context(), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.Item(user, userResource))
}
