package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Assignment errors
var (
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrAlreadyAssigned = errors.New("member already assigned to this trainer")
)

// Social graph errors
var (
	ErrSelfRequest    = errors.New("cannot send a friend request to yourself")
	ErrRequestPending = errors.New("a friend request is already pending for this pair")
	ErrAlreadyFriends = errors.New("members are already friends")
	ErrRequestClosed  = errors.New("friend request already answered")
	ErrNotRecipient   = errors.New("only the recipient can answer a friend request")
)
