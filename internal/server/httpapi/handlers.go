package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/services"
	"github.com/gin-gonic/gin"
)

type accountResponse struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type publicUserResponse struct {
	FirstName string `json:"first_name"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

var statusOK = gin.H{"status": "OK"}

func toAccountResponse(a *models.Account) accountResponse {
	return accountResponse{Email: a.Email, FirstName: a.FirstName, LastName: a.LastName}
}

func authHeader(c *gin.Context) string {
	return c.GetHeader(common.AuthorizationHeaderName)
}

// bind reads the body and hands it to fill. It writes the error response
// itself and reports whether the handler may continue.
func (s *HTTPServer) bind(c *gin.Context, fill func(p payload, verr *common.ValidationError)) bool {
	p, err := readPayload(c)
	if err != nil {
		s.badPayload(c, err)
		return false
	}

	verr := &common.ValidationError{}
	fill(p, verr)
	if !verr.Empty() {
		c.JSON(http.StatusBadRequest, verr.Fields)
		return false
	}
	return true
}

func (s *HTTPServer) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, statusOK)
}

func (s *HTTPServer) register(c *gin.Context) {
	var in services.RegisterInput
	ok := s.bind(c, func(p payload, verr *common.ValidationError) {
		in = services.RegisterInput{
			Email:     p.str("email", verr),
			Password:  p.str("password", verr),
			FirstName: p.str("first_name", verr),
			LastName:  p.str("last_name", verr),
		}
	})
	if !ok {
		return
	}

	acc, err := s.accounts.Register(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAccountResponse(acc))
}

func (s *HTTPServer) verifyEmail(c *gin.Context) {
	var key *string
	if !s.bind(c, func(p payload, verr *common.ValidationError) { key = p.str("key", verr) }) {
		return
	}

	acc, err := s.accounts.VerifyEmail(c.Request.Context(), key)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountResponse(acc))
}

// confirmEmail consumes the key carried by the link in the verification mail.
func (s *HTTPServer) confirmEmail(c *gin.Context) {
	key := c.Param("key")

	acc, err := s.accounts.VerifyEmail(c.Request.Context(), &key)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountResponse(acc))
}

func (s *HTTPServer) resendVerification(c *gin.Context) {
	var email *string
	if !s.bind(c, func(p payload, verr *common.ValidationError) { email = p.str("email", verr) }) {
		return
	}

	if err := s.accounts.ResendVerification(c.Request.Context(), email); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, statusOK)
}

func (s *HTTPServer) login(c *gin.Context) {
	var in services.LoginInput
	ok := s.bind(c, func(p payload, verr *common.ValidationError) {
		in = services.LoginInput{
			Username:  p.str("username", verr),
			Password:  p.str("password", verr),
			GrantType: p.plain("grant_type", verr),
			ClientID:  p.plain("client_id", verr),
		}
	})
	if !ok {
		return
	}

	tok, err := s.accounts.Login(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{AccessToken: tok.AccessToken, TokenType: tok.TokenType, ExpiresIn: tok.ExpiresIn})
}

func (s *HTTPServer) changePassword(c *gin.Context) {
	var in services.ChangePasswordInput
	ok := s.bind(c, func(p payload, verr *common.ValidationError) {
		in = services.ChangePasswordInput{
			OldPassword: p.str("old_password", verr),
			NewPassword: p.str("new_password", verr),
		}
	})
	if !ok {
		return
	}

	if err := s.accounts.ChangePassword(c.Request.Context(), authHeader(c), in); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, statusOK)
}

func (s *HTTPServer) listUsers(c *gin.Context) {
	list, err := s.accounts.ListUsers(c.Request.Context(), authHeader(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	if list.Full {
		out := make([]accountResponse, 0, len(list.Accounts))
		for i := range list.Accounts {
			out = append(out, toAccountResponse(&list.Accounts[i]))
		}
		c.JSON(http.StatusOK, out)
		return
	}

	out := make([]publicUserResponse, 0, len(list.Accounts))
	for _, a := range list.Accounts {
		out = append(out, publicUserResponse{FirstName: a.FirstName})
	}
	c.JSON(http.StatusOK, out)
}

func (s *HTTPServer) getProfile(c *gin.Context) {
	acc, err := s.accounts.GetProfile(c.Request.Context(), authHeader(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountResponse(acc))
}

func (s *HTTPServer) updateProfile(partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.ProfileInput
		ok := s.bind(c, func(p payload, verr *common.ValidationError) {
			in = services.ProfileInput{
				Email:     p.str("email", verr),
				FirstName: p.str("first_name", verr),
				LastName:  p.str("last_name", verr),
			}
		})
		if !ok {
			return
		}

		acc, err := s.accounts.UpdateProfile(c.Request.Context(), authHeader(c), in, partial)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toAccountResponse(acc))
	}
}
