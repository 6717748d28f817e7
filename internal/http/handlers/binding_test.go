package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/medrec/go-medrec-backend/internal/apperr"
	"github.com/medrec/go-medrec-backend/internal/services"
)

func jsonContext(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func lastAppError(t *testing.T, c *gin.Context) *apperr.Error {
	t.Helper()
	if len(c.Errors) == 0 {
		t.Fatalf("no error attached")
	}
	var ae *apperr.Error
	if !errors.As(c.Errors.Last().Err, &ae) {
		t.Fatalf("attached error is %T", c.Errors.Last().Err)
	}
	return ae
}

func TestBindJSON_ValidationErrorsUseJSONFieldNames(t *testing.T) {
	c, _ := jsonContext(t, `{"email":"nope","password":"short","role_id":1,"person":{"dni":"20111222","first_name":"Ana","last_name":"Gomez"}}`)

	var in services.RegisterUserInput
	if bindJSON(c, &in) {
		t.Fatalf("expected bind failure")
	}
	ae := lastAppError(t, c)
	if ae.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", ae.StatusCode)
	}
	paths := map[string]string{}
	for _, fe := range ae.FieldErrors {
		paths[fe.Path] = fe.Message
	}
	if paths["email"] != "must be a valid email address" {
		t.Fatalf("email message: %q", paths["email"])
	}
	if !strings.Contains(paths["password"], "at least 8 characters") {
		t.Fatalf("password message: %q", paths["password"])
	}
}

func TestBindJSON_NestedFieldPath(t *testing.T) {
	c, _ := jsonContext(t, `{"email":"a@b.com","password":"longenough","role_id":1,"person":{"first_name":"Ana","last_name":"Gomez"}}`)

	var in services.RegisterUserInput
	if bindJSON(c, &in) {
		t.Fatalf("expected bind failure")
	}
	ae := lastAppError(t, c)
	found := false
	for _, fe := range ae.FieldErrors {
		if fe.Path == "person.dni" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing person.dni in %+v", ae.FieldErrors)
	}
}

func TestBindJSON_MalformedBody(t *testing.T) {
	c, _ := jsonContext(t, `{not json`)

	var in services.LoginInput
	if bindJSON(c, &in) {
		t.Fatalf("expected bind failure")
	}
	ae := lastAppError(t, c)
	if ae.StatusCode != http.StatusBadRequest || ae.Message != "invalid JSON body" {
		t.Fatalf("got %d %q", ae.StatusCode, ae.Message)
	}
}

func TestPathID(t *testing.T) {
	cases := []struct {
		raw   string
		valid bool
	}{
		{"7", true},
		{"0", false},
		{"-3", false},
		{"abc", false},
		{"", false},
	}
	for _, tc := range cases {
		c, _ := jsonContext(t, "")
		c.Params = gin.Params{{Key: "id", Value: tc.raw}}
		id, valid := pathID(c, "id")
		if valid != tc.valid {
			t.Fatalf("pathID(%q) valid = %v; want %v", tc.raw, valid, tc.valid)
		}
		if valid && id != 7 {
			t.Fatalf("pathID(%q) = %d", tc.raw, id)
		}
		if !valid {
			ae := lastAppError(t, c)
			if ae.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d", ae.StatusCode)
			}
		}
	}
}

func TestBindImages_SingleAndArray(t *testing.T) {
	c, _ := jsonContext(t, `{"url":"https://img.example.com/1.png"}`)
	imgs, valid := bindImages(c)
	if !valid || len(imgs) != 1 {
		t.Fatalf("single object: valid=%v n=%d", valid, len(imgs))
	}

	c, _ = jsonContext(t, `[{"url":"https://img.example.com/1.png"},{"url":"https://img.example.com/2.png"}]`)
	imgs, valid = bindImages(c)
	if !valid || len(imgs) != 2 {
		t.Fatalf("array: valid=%v n=%d", valid, len(imgs))
	}
}

func TestBindImages_InvalidElement(t *testing.T) {
	c, _ := jsonContext(t, `[{"url":"https://img.example.com/1.png"},{"url":"not a url"}]`)
	if _, valid := bindImages(c); valid {
		t.Fatalf("expected validation failure")
	}
	ae := lastAppError(t, c)
	if ae.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", ae.StatusCode)
	}
}
