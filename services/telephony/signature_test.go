package telephony

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sign reproduces Twilio's webhook signature scheme.
func sign(token, fullURL string, form url.Values) string {
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(fullURL)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(form.Get(k))
	}
	mac := hmac.New(sha1.New, []byte(token))
	mac.Write([]byte(b.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func signedRequest(t *testing.T, signature string, form url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}
	require.NoError(t, req.ParseForm())
	return req
}

func TestSignatureValidator(t *testing.T) {
	form := url.Values{"CallSid": {"CA1"}, "SpeechResult": {"hello"}}
	v := NewSignatureValidator("secret", "https://bot.example.com/")

	good := sign("secret", "https://bot.example.com/process", form)
	assert.True(t, v.Valid(signedRequest(t, good, form)))

	bad := sign("other", "https://bot.example.com/process", form)
	assert.False(t, v.Valid(signedRequest(t, bad, form)))
	assert.False(t, v.Valid(signedRequest(t, "", form)))
}
