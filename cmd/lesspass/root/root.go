package root

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lesspass/lesspass-go/internal/handler"
	"github.com/lesspass/lesspass-go/internal/model"
	"github.com/lesspass/lesspass-go/internal/service"
)

// invocation records what was asked for so failures can be worded for it.
type invocation struct {
	mode    handler.Mode
	profile string
}

// newRootCmd creates the root command for lesspass.
func newRootCmd(svc *service.GeneratorService, version string, inv *invocation) *cobra.Command {
	var loginOnly bool

	cmd := &cobra.Command{
		Use:     "lesspass [profile] [website login]",
		Short:   "Derive site passwords from a master password and stored profiles",
		Version: version,
		Args: func(cmd *cobra.Command, args []string) error {
			if loginOnly {
				if len(args) != 1 {
					return &handler.UsageError{Reason: "--login takes exactly one profile"}
				}
				return nil
			}
			if len(args) < 1 || len(args) > 3 {
				return &handler.UsageError{Reason: fmt.Sprintf("unexpected argument count %d", len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if loginOnly {
				inv.mode, inv.profile = handler.ModeLogin, args[0]
				login, err := svc.Login(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), login)
				return nil
			}

			req := requestFromArgs(args)
			inv.mode, inv.profile = handler.ModeGenerate, req.Profile
			resp, err := svc.Generate(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Password)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolVar(&loginOnly, "login", false, "print the login stored in the profile instead of a password")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &handler.UsageError{Reason: err.Error()}
	})

	return cmd
}

// requestFromArgs maps the positional forms: profile | site login | profile site login.
func requestFromArgs(args []string) model.GenerateRequest {
	switch len(args) {
	case 1:
		return model.GenerateRequest{Profile: args[0]}
	case 2:
		return model.GenerateRequest{Site: &args[0], Login: &args[1]}
	default:
		return model.GenerateRequest{Profile: args[0], Site: &args[1], Login: &args[2]}
	}
}

// Options wires the command to its dependencies and streams.
type Options struct {
	Service *service.GeneratorService
	Version string
	Prog    string
	Stdout  io.Writer
}

// Execute runs the command with the provided args. Any failure comes back as a *handler.Failure.
func Execute(ctx context.Context, opts Options, args []string) error {
	inv := &invocation{}
	cmd := newRootCmd(opts.Service, opts.Version, inv)
	cmd.SetArgs(args)
	if opts.Stdout != nil {
		cmd.SetOut(opts.Stdout)
	}

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	failure := handler.Classify(err, inv.mode, opts.Prog, inv.profile)
	slog.DebugContext(ctx, "invocation failed", "kind", failure.Kind.String(), "error", err)
	return failure
}
