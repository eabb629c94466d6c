package service

import (
	"fmt"

	"github.com/sefazor/ourquotes-backend/internal/models"
	"github.com/sefazor/ourquotes-backend/pkg/bcrypt"
	"github.com/sefazor/ourquotes-backend/pkg/utils"
)

const (
	MsgFirstNameLength   = "First name must be at least three letters"
	MsgFirstNameLetters  = "First name must contain letters only"
	MsgLastNameLength    = "Last name must be at least three letters"
	MsgLastNameLetters   = "Last name must contain letters only"
	MsgEmailFormat       = "Email must be in correct format"
	MsgEmailInUse        = "Email already in use"
	MsgPasswordLength    = "Password must be at least 8 characters long"
	MsgPasswordTooLong   = "Password must be at most 72 characters long"
	MsgPasswordsMismatch = "Passwords must match"
	MsgAuthorLength      = "Author must be at least three characters"
	MsgQuoteLength       = "Quote must be at least ten characters"
)

func nameChecks(firstName, lastName string) []utils.Check {
	return []utils.Check{
		{Value: firstName, Tag: "min=3", Message: MsgFirstNameLength},
		{Value: firstName, Tag: "person_name", Message: MsgFirstNameLetters},
		{Value: lastName, Tag: "min=3", Message: MsgLastNameLength},
		{Value: lastName, Tag: "person_name", Message: MsgLastNameLetters},
	}
}

func emailCheck(email string) utils.Check {
	return utils.Check{Value: email, Tag: "email_address", Message: MsgEmailFormat}
}

func passwordChecks(password, confirmation string) []utils.Check {
	return []utils.Check{
		{Value: password, Tag: "min=8", Message: MsgPasswordLength},
		{Value: len(password), Tag: fmt.Sprintf("lte=%d", bcrypt.MaxPasswordBytes), Message: MsgPasswordTooLong},
		{Value: password, Other: confirmation, Tag: "eqfield", Message: MsgPasswordsMismatch},
	}
}

// ValidateQuote checks a new quote submission.
func ValidateQuote(v *utils.Validator, req models.QuoteRequest) []string {
	return v.Collect(
		utils.Check{Value: req.Author, Tag: "min=3", Message: MsgAuthorLength},
		utils.Check{Value: req.Content, Tag: "min=10", Message: MsgQuoteLength},
	)
}
