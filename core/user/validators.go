package user

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/elimuhq/elimu/core"
)

var (
	allRolesTag  = "allroles"
	allRolesText = "invalid roles"

	usernameOrEmailTag  = "username_or_email"
	usernameOrEmailText = "one of username or email is required"

	// password policy
	pwdMinLen     = 8
	pwdMinLenTag  = "pwdminlen"
	pwdMinLenText = fmt.Sprintf("password must contain at least %d characters", pwdMinLen)

	pwdNoSpaceTag  = "pwdnospace"
	pwdNoSpaceText = "password must not contain whitespace"

	pwdNotAllNumTag  = "pwdnotallnum"
	pwdNotAllNumText = "password cannot be entirely numeric"
)

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(allRolesTag, allRolesValidation)
	core.RegisterCustomTranslation(validate, translator, allRolesTag, allRolesText)

	validate.RegisterStructValidation(userStructValidation, NewUser{})
	validate.RegisterStructValidation(userStructValidation, UpdateUser{})
	core.RegisterCustomTranslation(validate, translator, usernameOrEmailTag, usernameOrEmailText)
	core.RegisterCustomTranslation(validate, translator, pwdMinLenTag, pwdMinLenText)
	core.RegisterCustomTranslation(validate, translator, pwdNoSpaceTag, pwdNoSpaceText)
	core.RegisterCustomTranslation(validate, translator, pwdNotAllNumTag, pwdNotAllNumText)
}

// allRolesValidation checks that all provided roles exist.
func allRolesValidation(fl validator.FieldLevel) bool {
	if roles, ok := fl.Field().Interface().([]string); ok {
		all := append([]string(nil), AllRoles...)
		sort.Strings(all)
		for _, role := range roles {
			i := sort.SearchStrings(all, role)
			if i >= len(all) || all[i] != role {
				return false
			}
		}
		return true
	}
	return false
}

// userStructValidation enforces cross-field rules on NewUser and UpdateUser:
// at least one of username/email must be set, and passwords must satisfy
// the password policy.
func userStructValidation(sl validator.StructLevel) {
	var uname, email, pwd string
	switch data := sl.Current().Interface().(type) {
	case NewUser:
		uname, email, pwd = data.Username, data.Email, data.Password
	case UpdateUser:
		uname, email, pwd = data.Username, data.Email, data.Password
	default:
		return
	}

	if uname == "" && email == "" {
		sl.ReportError(uname, "username", "Username", usernameOrEmailTag, "")
		sl.ReportError(email, "email", "Email", usernameOrEmailTag, "")
	}
	if pwd != "" {
		validatePassword(sl, pwd)
	}
}

func validatePassword(sl validator.StructLevel, pwd string) {
	if len(pwd) < pwdMinLen {
		sl.ReportError(pwd, "password", "Password", pwdMinLenTag, "")
	}
	if strings.ContainsAny(pwd, " \t\n") {
		sl.ReportError(pwd, "password", "Password", pwdNoSpaceTag, "")
	}
	allNum := true
	for _, r := range pwd {
		if !unicode.IsDigit(r) {
			allNum = false
			break
		}
	}
	if allNum && pwd != "" {
		sl.ReportError(pwd, "password", "Password", pwdNotAllNumTag, "")
	}
}
