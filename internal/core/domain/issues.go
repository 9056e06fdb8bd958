package domain

// Issue kinds are client-correctable validation outcomes, as opposed to the
// operational failures in errors.go. They marshal as bare strings so the
// registration response can list them per field.

// UsernameIssue is a reason a submitted username was rejected.
type UsernameIssue string

const (
	UsernameTooShort            UsernameIssue = "TooShort"
	UsernameTooLong             UsernameIssue = "TooLong"
	UsernameEmailLike           UsernameIssue = "EmailLike"
	UsernameNotUnique           UsernameIssue = "NotUnique"
	UsernameCouldNotBeProcessed UsernameIssue = "CouldNotBeProcessed"
)

// EmailIssue is a reason a submitted email was rejected.
type EmailIssue string

const (
	EmailMalformed           EmailIssue = "Malformed"
	EmailNotUnique           EmailIssue = "NotUnique"
	EmailCouldNotBeProcessed EmailIssue = "CouldNotBeProcessed"
)

// RegistrationIssues groups the per-field issue lists of a rejected
// registration. A nil slice means the field is clean and marshals to JSON
// null, which callers rely on.
type RegistrationIssues struct {
	Username []UsernameIssue `json:"username"`
	Email    []EmailIssue    `json:"email"`
	Password []Weakness      `json:"password"`
}

// Empty reports whether every field came through clean.
func (ri *RegistrationIssues) Empty() bool {
	return len(ri.Username) == 0 && len(ri.Email) == 0 && len(ri.Password) == 0
}
