package httpapi

import (
	"io"
	"net/http"
	"net/url"
	"strings"
)

const maxConfirmBody = 1 << 12

// Confirmed reports whether the request carries confirm=true. ParseForm only
// reads the body for POST, PUT and PATCH, so for DELETE the urlencoded body
// is read explicitly; the query string works for every method. A malformed
// body counts as unconfirmed.
func Confirmed(r *http.Request) bool {
	if err := r.ParseForm(); err == nil && r.FormValue("confirm") == "true" {
		return true
	}
	if r.Method != http.MethodDelete || r.Body == nil {
		return false
	}
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		return false
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxConfirmBody))
	if err != nil {
		return false
	}
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return false
	}
	return values.Get("confirm") == "true"
}
