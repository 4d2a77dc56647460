package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/docqa-be/types"
	"github.com/tieubaoca/docqa-be/utils"
)

// LoginHandler authenticates the single operator account configured for the
// deployment and hands out an admin token.
type LoginHandler struct {
	username string
	password string
}

func NewLoginHandler(username, password string) *LoginHandler {
	return &LoginHandler{
		username: username,
		password: password,
	}
}

func (h *LoginHandler) HandleLogin(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) == 1
	if h.username == "" || h.password == "" || !userOK || !passOK {
		c.JSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Invalid credentials",
		})
		return
	}

	token, err := utils.GenerateOperatorToken(req.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, types.LoginResponse{Token: token})
}
