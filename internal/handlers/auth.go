package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"inkpress/internal/middleware"
	"inkpress/internal/render"
	"inkpress/internal/session"
	"inkpress/internal/store"
)

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	renderer  *render.Renderer
	sessions  *session.Store
	userStore *store.UserStore
	siteName  string
}

// NewAuth creates a new Auth handler group. siteName doubles as the TOTP
// issuer shown in authenticator apps.
func NewAuth(renderer *render.Renderer, sessions *session.Store, userStore *store.UserStore, siteName string) *Auth {
	return &Auth{
		renderer:  renderer,
		sessions:  sessions,
		userStore: userStore,
		siteName:  siteName,
	}
}

func (a *Auth) loginPage(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	data := map[string]any{}
	if errMsg != "" {
		data["error"] = errMsg
	}
	a.renderer.Render(w, status, "login", &render.PageData{
		Title:     "Sign In",
		SiteName:  a.siteName,
		CSRFToken: middleware.GetCSRFToken(r),
		Data:      data,
	})
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Already fully signed in — nothing to do here.
	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.TwoFADone {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	a.loginPage(w, r, http.StatusOK, "")
}

// LoginSubmit processes the login form.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := a.userStore.FindByEmail(email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		a.loginPage(w, r, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	if user == nil || !a.userStore.CheckPassword(user, password) {
		a.loginPage(w, r, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	// Viewers have no TOTP enrollment; their session completes at login.
	// Content managers must pass the 2FA gate first.
	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		TwoFADone:   !user.CanManageContent(),
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	switch {
	case !user.CanManageContent():
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case user.Needs2FASetup():
		http.Redirect(w, r, "/admin/2fa/setup", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/admin/2fa/verify", http.StatusSeeOther)
	}
}

// TwoFASetupPage generates a TOTP secret and renders the enrollment page.
// The QR image itself is served by TwoFAQR.
func (a *Auth) TwoFASetupPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      a.siteName,
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := a.userStore.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Render(w, http.StatusOK, "2fa_setup", &render.PageData{
		Title:     "Set Up Two-Factor Authentication",
		SiteName:  a.siteName,
		CSRFToken: middleware.GetCSRFToken(r),
	})
}

// TwoFAQR serves the enrollment QR code as a PNG for the pending secret.
func (a *Auth) TwoFAQR(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.NotFound(w, r)
		return
	}

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil || user.TOTPSecret == nil {
		http.NotFound(w, r)
		return
	}
	if user.TOTPEnabled {
		// Enrollment finished; never re-expose the secret.
		http.NotFound(w, r)
		return
	}

	uri := fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s",
		a.siteName, user.Email, *user.TOTPSecret, a.siteName)
	png, err := qrcode.Encode(uri, qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

// TwoFAVerifyPage renders the code entry form for users with 2FA set up.
func (a *Auth) TwoFAVerifyPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	a.renderer.Render(w, http.StatusOK, "2fa_verify", &render.PageData{
		Title:     "Two-Factor Authentication",
		SiteName:  a.siteName,
		CSRFToken: middleware.GetCSRFToken(r),
	})
}

// TwoFAVerifySubmit validates the TOTP code and completes authentication.
// Handles both first-time enrollment (enables TOTP) and routine logins.
func (a *Auth) TwoFAVerifySubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	code := r.FormValue("code")

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if user.TOTPSecret == nil {
		http.Redirect(w, r, "/admin/2fa/setup", http.StatusSeeOther)
		return
	}

	if !totp.Validate(code, *user.TOTPSecret) {
		tmpl := "2fa_verify"
		title := "Two-Factor Authentication"
		if !user.TOTPEnabled {
			tmpl = "2fa_setup"
			title = "Set Up Two-Factor Authentication"
		}
		a.renderer.Render(w, http.StatusUnauthorized, tmpl, &render.PageData{
			Title:     title,
			SiteName:  a.siteName,
			CSRFToken: middleware.GetCSRFToken(r),
			Data:      map[string]any{"error": "Invalid code. Please try again."},
		})
		return
	}

	// First successful code completes enrollment.
	if !user.TOTPEnabled {
		if err := a.userStore.EnableTOTP(user.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the session and redirects to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
