package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	msgNotAString = "Not a valid string."
	maxFormMemory = 1 << 20
)

// payload is a decoded request body. Values come from a JSON object or from
// form fields.
type payload map[string]any

func readPayload(c *gin.Context) (payload, error) {
	p := payload{}

	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		err := c.Request.ParseMultipartForm(maxFormMemory)
		if err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, err
		}
		for k, v := range c.Request.PostForm {
			if len(v) > 0 {
				p[k] = v[0]
			}
		}
		return p, nil
	}

	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return p, nil
	}
	if err := c.ShouldBindJSON(&p); err != nil {
		return nil, err
	}
	return p, nil
}

// str returns the named field. Absent and null fields are nil; non-string
// values are recorded in verr.
func (p payload) str(name string, verr *common.ValidationError) *string {
	v, ok := p[name]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		verr.Add(name, msgNotAString)
		return nil
	}
	return &s
}

func (p payload) plain(name string, verr *common.ValidationError) string {
	if s := p.str(name, verr); s != nil {
		return *s
	}
	return ""
}
