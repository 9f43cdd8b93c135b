package validation

// SignupForm is the account registration form.
type SignupForm struct {
	Username        string `validate:"min=2"`
	Email           string `validate:"required,email"`
	Password        string `validate:"min=6"`
	ConfirmPassword string `validate:"min=6,eqfield=Password"`
}

// LoginForm is the sign-in form.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// SiteForm is the add-site form. Domain shape is left to the backend.
type SiteForm struct {
	SiteURL string `validate:"notblank"`
}

// VerifyForm is the email verification form.
type VerifyForm struct {
	Code string `validate:"notblank,max=6"`
}

// messages maps "Struct.Field.tag" to the message shown for that failure.
var messages = map[string]string{
	"SignupForm.Username.min":            "Username must be at least 2 characters",
	"SignupForm.Email.required":          "Invalid email address",
	"SignupForm.Email.email":             "Invalid email address",
	"SignupForm.Password.min":            "Password must be at least 6 characters",
	"SignupForm.ConfirmPassword.min":     "Confirm password must be at least 6 characters",
	"SignupForm.ConfirmPassword.eqfield": "Passwords do not match",

	"LoginForm.Email.required":    "Invalid email address",
	"LoginForm.Email.email":       "Invalid email address",
	"LoginForm.Password.required": "Please enter your password",

	"SiteForm.SiteURL.notblank": "Please enter a domain name",

	"VerifyForm.Code.notblank": "Please enter the verification code",
	"VerifyForm.Code.max":      "Verification code must be at most 6 characters",
}
