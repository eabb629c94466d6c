package service

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MsgInvalidCredentials = "Email or password invalid"
	MsgAlreadyLiked       = "You already liked this quote"
	MsgNotOwner           = "You are not allowed to modify this resource"
	MsgQuoteNotFound      = "Quote not found"
	MsgUserNotFound       = "User not found"
	MsgUnexpected         = "Something went wrong, please try again"
)

var (
	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike.
	ErrInvalidCredentials = errors.New(MsgInvalidCredentials)
	ErrQuoteNotFound      = errors.New(MsgQuoteNotFound)
	ErrUserNotFound       = errors.New(MsgUserNotFound)
)

// ValidationError carries every rule violation found in a submission, in
// rule order.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// OwnershipError is returned when the acting user does not own the target.
type OwnershipError struct {
	Resource string
	ID       uint
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("%s %d is not owned by the acting user", e.Resource, e.ID)
}

// FlashMessages turns a service error into the messages shown to the user.
// ok is false for errors that are not meant for the user.
func FlashMessages(err error) (messages []string, ok bool) {
	var validationErr *ValidationError
	var ownershipErr *OwnershipError

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Messages, true
	case errors.As(err, &ownershipErr):
		return []string{MsgNotOwner}, true
	case errors.Is(err, ErrInvalidCredentials):
		return []string{MsgInvalidCredentials}, true
	case errors.Is(err, ErrQuoteNotFound):
		return []string{MsgQuoteNotFound}, true
	case errors.Is(err, ErrUserNotFound):
		return []string{MsgUserNotFound}, true
	}
	return []string{MsgUnexpected}, false
}
