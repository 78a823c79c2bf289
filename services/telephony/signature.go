package telephony

import (
	"net/http"
	"strings"

	"github.com/twilio/twilio-go/client"
)

// SignatureHeader carries Twilio's request signature.
const SignatureHeader = "X-Twilio-Signature"

// SignatureValidator checks that a webhook was sent by Twilio. Signatures
// cover the public URL Twilio called, so baseURL must be the externally
// reachable origin rather than the local listen address.
type SignatureValidator struct {
	validator client.RequestValidator
	baseURL   string
}

func NewSignatureValidator(authToken, baseURL string) *SignatureValidator {
	return &SignatureValidator{
		validator: client.NewRequestValidator(authToken),
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// Valid reports whether r carries a correct signature. The form must be parsed.
func (v *SignatureValidator) Valid(r *http.Request) bool {
	signature := r.Header.Get(SignatureHeader)
	if signature == "" {
		return false
	}

	params := make(map[string]string, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return v.validator.Validate(v.baseURL+r.URL.RequestURI(), params, signature)
}
