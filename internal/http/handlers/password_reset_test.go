package handlers_test

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
)

var resetCodeRE = regexp.MustCompile(`"code":"([0-9a-f-]+)"`)

// lastResetCode digs the most recent reset code out of the captured log
// stream, standing in for the mail the hosted service would send.
func lastResetCode(t *testing.T, app *testApp) string {
	t.Helper()

	matches := resetCodeRE.FindAllStringSubmatch(app.logs.String(), -1)

	if len(matches) == 0 {
		t.Fatal("no reset code was logged")
	}

	return matches[len(matches)-1][1]
}

func TestPasswordResetFlow(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "forgetful@example.com", "old-password-123", "Forgetful")

	status, body := app.do(t, http.MethodPost, "/api/password-reset", gin.H{
		"email": "forgetful@example.com",
	}, "")

	if status != http.StatusOK {
		t.Fatalf("request: status = %d, body = %v", status, body)
	}

	if body["message"] != "Reset email sent" {
		t.Errorf("message = %v", body["message"])
	}

	code := lastResetCode(t, app)

	status, body = app.do(t, http.MethodPost, "/api/password-reset/reset", gin.H{
		"password": "new-password-456",
		"token":    code,
	}, "")

	if status != http.StatusOK {
		t.Fatalf("confirm: status = %d, body = %v", status, body)
	}

	if body["message"] != "Password successfully reset" {
		t.Errorf("message = %v", body["message"])
	}

	status, _ = app.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "forgetful@example.com",
		"password": "new-password-456",
	}, "")

	if status != http.StatusOK {
		t.Errorf("login with new password: status = %d", status)
	}

	status, _ = app.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "forgetful@example.com",
		"password": "old-password-123",
	}, "")

	if status != http.StatusUnauthorized {
		t.Errorf("login with old password: status = %d, want 401", status)
	}

	t.Run("code is single use", func(t *testing.T) {
		status, body := app.do(t, http.MethodPost, "/api/password-reset/reset", gin.H{
			"password": "another-password-789",
			"token":    code,
		}, "")

		if status != http.StatusNotFound {
			t.Errorf("status = %d, want 404", status)
		}

		wantMessage(t, body, "Invalid reset token")
	})
}

func TestPasswordResetRequestDoesNotLeakAccounts(t *testing.T) {
	app := newTestApp(t)

	status, body := app.do(t, http.MethodPost, "/api/password-reset", gin.H{
		"email": "nobody@example.com",
	}, "")

	if status != http.StatusOK {
		t.Fatalf("status = %d, body = %v", status, body)
	}

	if body["message"] != "Reset email sent" {
		t.Errorf("message = %v", body["message"])
	}

	if resetCodeRE.MatchString(app.logs.String()) {
		t.Error("a reset code was issued for an unknown account")
	}
}

func TestPasswordResetConfirmValidation(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{name: "unknown token", body: gin.H{"password": "whatever-123", "token": "bogus"}},
		{name: "missing token", body: gin.H{"password": "whatever-123"}},
		{name: "missing password", body: gin.H{"token": "bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := app.do(t, http.MethodPost, "/api/password-reset/reset", tt.body, "")

			if status != http.StatusNotFound {
				t.Errorf("status = %d, want 404", status)
			}

			wantMessage(t, body, "Invalid reset token")
		})
	}
}
