// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"

	"inkpress/internal/models"
	"inkpress/internal/session"
)

// makeUser creates a test account and registers cleanup.
func makeUser(t *testing.T, env *testEnv, role models.Role) (*models.User, string) {
	t.Helper()
	password := "correct-horse-battery"
	email := "flow-" + uuid.New().String()[:8] + "@example.com"
	user, err := env.Users.Create(email, password, "Flow Test", role)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM users WHERE id = $1", user.ID) })
	return user, password
}

func postLogin(env *testEnv, email, password string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.Auth.LoginSubmit(rec, req)
	return rec
}

func TestLoginPage_Returns200(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	rec := httptest.NewRecorder()
	env.Auth.LoginPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("LoginPage: got status %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "csrf_token") {
		t.Error("login form is missing the CSRF field")
	}
}

func TestLogin_WrongPasswordReturns401(t *testing.T) {
	env := newTestEnv(t)
	user, _ := makeUser(t, env, models.RoleEditor)

	rec := postLogin(env, user.Email, "wrong-password")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: got status %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), "Invalid email or password") {
		t.Error("login error message missing")
	}
}

func TestLogin_UnknownEmailReturns401(t *testing.T) {
	env := newTestEnv(t)

	rec := postLogin(env, "nobody-"+uuid.New().String()[:8]+"@example.com", "whatever")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown email: got status %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestLogin_EditorRoutedTo2FASetup(t *testing.T) {
	env := newTestEnv(t)
	user, password := makeUser(t, env, models.RoleEditor)

	rec := postLogin(env, user.Email, password)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login: got status %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/2fa/setup" {
		t.Errorf("Location = %q, want /admin/2fa/setup", loc)
	}

	// The session exists but is not yet 2FA-complete.
	sess := sessionFromRecorder(t, env, rec)
	if sess.TwoFADone {
		t.Error("editor session marked 2FA-complete before verification")
	}
}

func TestLogin_ViewerSkips2FA(t *testing.T) {
	env := newTestEnv(t)
	user, password := makeUser(t, env, models.RoleViewer)

	rec := postLogin(env, user.Email, password)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login: got status %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}

	sess := sessionFromRecorder(t, env, rec)
	if !sess.TwoFADone {
		t.Error("viewer session should complete at login without TOTP")
	}
	if sess.Role != string(models.RoleViewer) {
		t.Errorf("session role = %q, want viewer", sess.Role)
	}
}

func TestTwoFAQR_NotExposedAfterEnrollment(t *testing.T) {
	env := newTestEnv(t)
	user, _ := makeUser(t, env, models.RoleEditor)

	if err := env.Users.SetTOTPSecret(user.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("set totp secret: %v", err)
	}

	sess := testSession(user.ID, user.Email, string(models.RoleEditor), false)

	// Pending enrollment serves the PNG.
	req := httptest.NewRequest(http.MethodGet, "/admin/2fa/qr", nil)
	req = withSession(req, sess)
	rec := httptest.NewRecorder()
	env.Auth.TwoFAQR(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("pending enrollment QR: got status %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}

	// Once enabled, the secret is never re-exposed.
	if err := env.Users.EnableTOTP(user.ID); err != nil {
		t.Fatalf("enable totp: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/admin/2fa/qr", nil)
	req = withSession(req, sess)
	rec = httptest.NewRecorder()
	env.Auth.TwoFAQR(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("enrolled QR: got status %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestTwoFAVerify_BadCodeReturns401(t *testing.T) {
	env := newTestEnv(t)
	user, _ := makeUser(t, env, models.RoleEditor)

	if err := env.Users.SetTOTPSecret(user.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("set totp secret: %v", err)
	}

	form := url.Values{}
	form.Set("code", "000000")
	req := httptest.NewRequest(http.MethodPost, "/admin/2fa/verify", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = withSession(req, testSession(user.ID, user.Email, string(models.RoleEditor), false))
	rec := httptest.NewRecorder()
	env.Auth.TwoFAVerifySubmit(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad code: got status %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestLogout_DestroysSession(t *testing.T) {
	env := newTestEnv(t)
	user, password := makeUser(t, env, models.RoleViewer)

	loginRec := postLogin(env, user.Email, password)
	cookie := sessionCookie(t, loginRec)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	env.Auth.Logout(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("logout: got status %d, want %d", rec.Code, http.StatusSeeOther)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/", nil)
	getReq.AddCookie(cookie)
	if data, _ := env.Sessions.Get(getReq.Context(), getReq); data != nil {
		t.Error("session survived logout")
	}
}

// sessionCookie extracts the session cookie from a login response.
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

// sessionFromRecorder loads the session the login response just created.
func sessionFromRecorder(t *testing.T, env *testEnv, rec *httptest.ResponseRecorder) *session.Data {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, rec))
	data, err := env.Sessions.Get(req.Context(), req)
	if err != nil || data == nil {
		t.Fatalf("load session: %v", err)
	}
	return data
}
