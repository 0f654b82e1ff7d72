package service

import "errors"

var (
	// ErrNotFound is returned when a row does not exist or belongs to
	// another owner. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken is returned when registering with an email that is
	// already in use.
	ErrEmailTaken = errors.New("a user with this email already exists")

	// ErrInvalidCredentials is returned for any authentication failure at
	// token issuance. The message never hints at which field was wrong.
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")

	// ErrNameTaken is returned when renaming a tag or ingredient to a name
	// the owner already uses.
	ErrNameTaken = errors.New("name already in use")

	// ErrNotAnImage is returned when an uploaded payload does not decode
	// as a supported image format.
	ErrNotAnImage = errors.New("uploaded file is not a valid image")
)
