package model

// GenerateRequest represents one password derivation request.
// Pointer strings distinguish "not given on the command line" (nil) from an explicit value.
type GenerateRequest struct {
	Site    *string
	Login   *string
	Profile string
}

// GenerateResponse carries the derived password.
type GenerateResponse struct {
	Password string
}
