package handler

import (
	"errors"
	"fmt"

	"github.com/lesspass/lesspass-go/internal/prompt"
	"github.com/lesspass/lesspass-go/internal/repository"
	"github.com/lesspass/lesspass-go/internal/service"
)

const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitIncomplete = 2
)

// Kind identifies which terminal failure an invocation ended in.
type Kind int

const (
	KindUsage Kind = iota + 1
	KindProfileNotFound
	KindProfileCorrupt
	KindIncompleteProfile
	KindMissingLoginField
	KindUserInterrupt
	KindUnclassified
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindProfileNotFound:
		return "profile-not-found"
	case KindProfileCorrupt:
		return "profile-corrupt"
	case KindIncompleteProfile:
		return "incomplete-profile"
	case KindMissingLoginField:
		return "missing-login-field"
	case KindUserInterrupt:
		return "user-interrupt"
	case KindUnclassified:
		return "unclassified"
	}
	return "unknown"
}

// Mode is the entry behavior an error came from. Not-found is worded differently per mode.
type Mode int

const (
	ModeGenerate Mode = iota
	ModeLogin
)

// UsageError marks a malformed invocation.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string { return "usage: " + e.Reason }

// Failure is what the user sees for a failed invocation.
type Failure struct {
	Kind    Kind
	Message string
	Code    int
}

func (f *Failure) Error() string { return f.Message }

// ExitCode lets the entry point pick the process status without knowing the taxonomy.
func (f *Failure) ExitCode() int { return f.Code }

// Usage returns the usage text for the given program name.
func Usage(prog string) string {
	return fmt.Sprintf("Usage: %s [profile] [website login]\n"+
		"       %s --login profile\n"+
		"Put -- before arguments that start with a dash, e.g. %s -- example.com -bob", prog, prog, prog)
}

// Classify maps an error from either entry behavior to its message and exit code.
// Details of unexpected errors are not part of the message.
func Classify(err error, mode Mode, prog, profile string) *Failure {
	var (
		usage      *UsageError
		incomplete *service.IncompleteProfileError
	)

	switch {
	case errors.As(err, &usage):
		return &Failure{Kind: KindUsage, Message: Usage(prog), Code: ExitFailure}
	case errors.Is(err, prompt.ErrInterrupted):
		return &Failure{Kind: KindUserInterrupt, Message: "Program stopped by user!", Code: ExitFailure}
	case errors.Is(err, repository.ErrProfileNotFound):
		if mode == ModeLogin {
			return &Failure{Kind: KindProfileNotFound, Message: fmt.Sprintf("No such profile %s!", profile), Code: ExitFailure}
		}
		return &Failure{Kind: KindProfileNotFound, Message: fmt.Sprintf("Profile %s not found!", profile), Code: ExitFailure}
	case errors.As(err, &incomplete):
		return &Failure{
			Kind:    KindIncompleteProfile,
			Message: fmt.Sprintf("You should set %s in your profile file or set it in command line!", incomplete.Field),
			Code:    ExitIncomplete,
		}
	case errors.Is(err, service.ErrMissingLogin):
		return &Failure{Kind: KindMissingLoginField, Message: fmt.Sprintf("Profile %s has no login!", profile), Code: ExitIncomplete}
	case errors.Is(err, service.ErrInvalidField):
		return &Failure{Kind: KindUnclassified, Message: "An error occurred!", Code: ExitFailure}
	case errors.Is(err, repository.ErrProfileCorrupt):
		return &Failure{Kind: KindProfileCorrupt, Message: "An error occurred!", Code: ExitFailure}
	}
	return &Failure{Kind: KindUnclassified, Message: "An error occurred!", Code: ExitFailure}
}
