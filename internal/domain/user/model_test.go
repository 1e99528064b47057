package user_test

import (
	"strings"
	"testing"

	"teamroster/internal/domain/user"
)

// TestUser_Validate tests validation of User.
func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    user.User
		wantErr error
	}{
		{
			name:    "valid user",
			user:    user.User{Name: "Ann Smith", Username: "ann"},
			wantErr: nil,
		},
		{
			name:    "empty name",
			user:    user.User{Name: "", Username: "ann"},
			wantErr: user.ErrEmptyName,
		},
		{
			name:    "whitespace name",
			user:    user.User{Name: "   ", Username: "ann"},
			wantErr: user.ErrEmptyName,
		},
		{
			name:    "name too long",
			user:    user.User{Name: strings.Repeat("a", 101), Username: "ann"},
			wantErr: user.ErrNameTooLong,
		},
		{
			name:    "empty username",
			user:    user.User{Name: "Ann", Username: ""},
			wantErr: user.ErrEmptyUsername,
		},
		{
			name:    "username too long",
			user:    user.User{Name: "Ann", Username: strings.Repeat("a", 51)},
			wantErr: user.ErrUsernameTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestUser_SetPassword tests password hashing.
func TestUser_SetPassword(t *testing.T) {
	u := user.User{Name: "Ann", Username: "ann"}

	if err := u.SetPassword(""); err != user.ErrEmptyPassword {
		t.Errorf("SetPassword(\"\") = %v, want ErrEmptyPassword", err)
	}

	if err := u.SetPassword("pw1"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	if u.PasswordHash == "" {
		t.Error("PasswordHash not set")
	}
	if u.PasswordHash == "pw1" {
		t.Error("password stored in plaintext")
	}

	// Salted: hashing the same password twice yields different hashes
	other := user.User{Name: "Bob", Username: "bob"}
	if err := other.SetPassword("pw1"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	if other.PasswordHash == u.PasswordHash {
		t.Error("equal passwords produced identical hashes (missing salt)")
	}
}

// TestUser_CheckPassword tests password verification.
func TestUser_CheckPassword(t *testing.T) {
	u := user.User{Name: "Ann", Username: "ann"}
	if err := u.SetPassword("correct horse"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}

	if err := u.CheckPassword("correct horse"); err != nil {
		t.Errorf("CheckPassword(correct) = %v, want nil", err)
	}
	if err := u.CheckPassword("wrong"); err != user.ErrWrongPassword {
		t.Errorf("CheckPassword(wrong) = %v, want ErrWrongPassword", err)
	}

	// Malformed hash is indistinguishable from wrong password
	u.PasswordHash = "not-a-bcrypt-hash"
	if err := u.CheckPassword("correct horse"); err != user.ErrWrongPassword {
		t.Errorf("CheckPassword(malformed hash) = %v, want ErrWrongPassword", err)
	}

	u.PasswordHash = ""
	if err := u.CheckPassword("anything"); err != user.ErrWrongPassword {
		t.Errorf("CheckPassword(empty hash) = %v, want ErrWrongPassword", err)
	}
}

// TestUser_SanitizeName tests HTML escaping of the display name.
func TestUser_SanitizeName(t *testing.T) {
	u := user.User{Name: "<script>alert(1)</script>", Username: "ann"}
	u.SanitizeName()
	if strings.Contains(u.Name, "<script>") {
		t.Errorf("SanitizeName left live markup: %q", u.Name)
	}
	if !strings.Contains(u.Name, "&lt;script&gt;") {
		t.Errorf("SanitizeName did not escape entities: %q", u.Name)
	}
}
