package user

import (
	"strings"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/elimuhq/elimu/core"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	return validate
}

func fieldTags(err error) map[string]string {
	tags := make(map[string]string)
	if vErrs, ok := err.(validator.ValidationErrors); ok {
		for _, vErr := range vErrs {
			tags[vErr.Field()] = vErr.Tag()
		}
	}
	return tags
}

func TestNewUserValidation(t *testing.T) {
	validate := newValidator(t)

	valid := NewUser{
		Name:            "Jane Doe",
		Username:        "janedoe",
		Email:           "jane@test.ug",
		Password:        "s3cr3tpwd",
		PasswordConfirm: "s3cr3tpwd",
		Roles:           []string{RoleStudent},
	}

	tests := []struct {
		name     string
		mutate   func(nu *NewUser)
		wantTags map[string]string
	}{
		{name: "valid", mutate: func(nu *NewUser) {}},
		{
			name:     "name required",
			mutate:   func(nu *NewUser) { nu.Name = "" },
			wantTags: map[string]string{"name": "required"},
		},
		{
			name:     "username or email required",
			mutate:   func(nu *NewUser) { nu.Username = ""; nu.Email = "" },
			wantTags: map[string]string{"username": "username_or_email", "email": "username_or_email"},
		},
		{
			name:     "username too short",
			mutate:   func(nu *NewUser) { nu.Username = "jane" },
			wantTags: map[string]string{"username": "min"},
		},
		{
			name:     "username with punctuation",
			mutate:   func(nu *NewUser) { nu.Username = "jane.doe!" },
			wantTags: map[string]string{"username": "alphanum_"},
		},
		{
			name:     "bad email",
			mutate:   func(nu *NewUser) { nu.Email = "lol" },
			wantTags: map[string]string{"email": "email"},
		},
		{
			name:     "unknown role",
			mutate:   func(nu *NewUser) { nu.Roles = []string{"overlord:"} },
			wantTags: map[string]string{"roles": "allroles"},
		},
		{
			name: "password mismatch",
			mutate: func(nu *NewUser) {
				nu.PasswordConfirm = "different1"
			},
			wantTags: map[string]string{"password_confirm": "eqfield"},
		},
		{
			name: "password too short",
			mutate: func(nu *NewUser) {
				nu.Password, nu.PasswordConfirm = "shortie", "shortie"
			},
			wantTags: map[string]string{"password": "pwdminlen"},
		},
		{
			name: "password with whitespace",
			mutate: func(nu *NewUser) {
				nu.Password, nu.PasswordConfirm = "pass word1", "pass word1"
			},
			wantTags: map[string]string{"password": "pwdnospace"},
		},
		{
			name: "all-numeric password",
			mutate: func(nu *NewUser) {
				nu.Password, nu.PasswordConfirm = "12345678", "12345678"
			},
			wantTags: map[string]string{"password": "pwdnotallnum"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu := valid
			tt.mutate(&nu)

			err := validate.Struct(nu)
			if tt.wantTags == nil {
				if err != nil {
					t.Fatalf("Struct() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Struct() expected an error")
			}
			got := fieldTags(err)
			for field, tag := range tt.wantTags {
				if got[field] != tag {
					t.Errorf("field %q tag = %q, want %q (all: %v)", field, got[field], tag, got)
				}
			}
		})
	}
}

func TestMaxRolePriority(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  int
	}{
		{name: "empty", want: 0},
		{name: "student", roles: []string{RoleStudent}, want: 1},
		{name: "lecturer beats student", roles: []string{RoleStudent, RoleLecturer}, want: 11},
		{name: "registrar tops", roles: AllRoles, want: 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxRolePriority(tt.roles); got != tt.want {
				t.Errorf("MaxRolePriority() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUserRoleChecks(t *testing.T) {
	usr := User{Roles: []string{RoleAdminBursar}}
	if !usr.IsAdmin() {
		t.Error("IsAdmin() = false, want true") // sub-roles share the admin prefix
	}
	if usr.IsStudent() || usr.IsLecturer() {
		t.Error("bursar should be neither student nor lecturer")
	}

	multi := User{Roles: []string{RoleStudent, RoleLecturer}}
	if !multi.IsStudent() || !multi.IsLecturer() {
		t.Error("multi-role user should match both portals")
	}
}

func TestSetAndCheckPassword(t *testing.T) {
	var usr User
	if err := usr.SetPassword("s3cr3tpwd"); err != nil {
		t.Fatalf("SetPassword() failed: %v", err)
	}
	if strings.Contains(string(usr.PasswordHash), "s3cr3tpwd") {
		t.Error("password stored in clear")
	}
	if err := usr.CheckPassword("s3cr3tpwd"); err != nil {
		t.Errorf("CheckPassword() failed: %v", err)
	}
	if err := usr.CheckPassword("wrong"); err == nil {
		t.Error("CheckPassword() accepted a wrong password")
	}
}
