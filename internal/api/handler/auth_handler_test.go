package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/punchline/punchline-api/internal/core/domain"
	"github.com/punchline/punchline-api/internal/core/ports"
)

type stubRegistration struct {
	id     int
	issues *domain.RegistrationIssues
	err    error
	input  ports.RegisterInput
}

func (s *stubRegistration) Register(_ context.Context, input ports.RegisterInput) (int, *domain.RegistrationIssues, error) {
	s.input = input
	return s.id, s.issues, s.err
}

type stubLogin struct {
	token string
	err   error
}

func (s *stubLogin) Login(context.Context, string, string) (string, error) {
	return s.token, s.err
}

func postJSON(t *testing.T, h echo.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestAuthHandler_RegisterSuccess(t *testing.T) {
	reg := &stubRegistration{id: 42}
	h := NewAuthHandler(reg, &stubLogin{})

	rec := postJSON(t, h.Register, "/auth/register",
		`{"username":"anicet","email":"anicet@gmail.com","password":"superPass2021'-"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got, want := strings.TrimSpace(rec.Body.String()), `{"registered":true,"id":42}`; got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
	if reg.input.Username != "anicet" || reg.input.Password != "superPass2021'-" {
		t.Errorf("input not forwarded: %+v", reg.input)
	}
}

func TestAuthHandler_RegisterRejected(t *testing.T) {
	// Clean fields show up as explicit nulls so the caller can tell "no
	// issues" apart from "not validated".
	reg := &stubRegistration{issues: &domain.RegistrationIssues{
		Email: []domain.EmailIssue{domain.EmailNotUnique},
	}}
	h := NewAuthHandler(reg, &stubLogin{})

	rec := postJSON(t, h.Register, "/auth/register",
		`{"username":"anicet","email":"taken@gmail.com","password":"superPass2021'-"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := `{"registered":false,"issues":{"username":null,"email":["NotUnique"],"password":null}}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestAuthHandler_RegisterFailure(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{domain.ErrPasswordHashing, "PasswordHashing"},
		{domain.ErrDatabaseInsertion, "DatabaseInsertion"},
	}
	for _, tt := range tests {
		h := NewAuthHandler(&stubRegistration{err: tt.err}, &stubLogin{})
		rec := postJSON(t, h.Register, "/auth/register",
			`{"username":"anicet","email":"anicet@gmail.com","password":"superPass2021'-"}`)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body["error"] != tt.want {
			t.Errorf("error = %q, want %q", body["error"], tt.want)
		}
	}
}

func TestAuthHandler_RegisterBadPayload(t *testing.T) {
	h := NewAuthHandler(&stubRegistration{}, &stubLogin{})
	rec := postJSON(t, h.Register, "/auth/register", `{"username":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	h := NewAuthHandler(&stubRegistration{}, &stubLogin{token: "signed.jwt.token"})

	rec := postJSON(t, h.Login, "/auth/login", `{"login":"anicet","password":"pw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["token"] != "signed.jwt.token" {
		t.Errorf("token = %q", body["token"])
	}
}

func TestAuthHandler_LoginDenied(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{domain.ErrUnknownLogin, "UnknownLogin"},
		{domain.ErrInvalidPassword, "InvalidPassword"},
		{domain.ErrInvalidCredentials, "InvalidCredentials"},
	}
	for _, tt := range tests {
		h := NewAuthHandler(&stubRegistration{}, &stubLogin{err: tt.err})
		rec := postJSON(t, h.Login, "/auth/login", `{"login":"anicet","password":"pw"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%v: expected 401, got %d", tt.err, rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body["reason"] != tt.want {
			t.Errorf("reason = %q, want %q", body["reason"], tt.want)
		}
	}
}

func TestAuthHandler_LoginFailure(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{domain.ErrDatabase, "Database"},
		{domain.ErrTokenCreation, "TokenCreation"},
	}
	for _, tt := range tests {
		h := NewAuthHandler(&stubRegistration{}, &stubLogin{err: tt.err})
		rec := postJSON(t, h.Login, "/auth/login", `{"login":"anicet","password":"pw"}`)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%v: expected 500, got %d", tt.err, rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body["error"] != tt.want {
			t.Errorf("error = %q, want %q", body["error"], tt.want)
		}
	}
}
