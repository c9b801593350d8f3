package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRegisterCmd(a *app) *cobra.Command {
	var nombre, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in when the backend returns a token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd)
			defer cancel()

			user, err := a.session.Register(ctx, nombre, email, password)
			if err != nil {
				return err
			}
			log.Debug().Str("email", email).Bool("signed_in", a.session.IsAuthenticated(ctx)).Msg("account created")
			if user == nil {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "account created")
				return err
			}
			return a.print(cmd.OutOrStdout(), user)
		},
	}

	cmd.Flags().StringVar(&nombre, "nombre", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd)
			defer cancel()

			user, err := a.session.Login(ctx, email, password)
			if err != nil {
				return err
			}
			log.Debug().Str("user_id", user.ID).Str("rol", user.Rol).Msg("signed in")
			return a.print(cmd.OutOrStdout(), user)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Logout(); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return err
		},
	}
}

func newProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd)
			defer cancel()

			user, err := a.session.Restore(ctx)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), user)
		},
	}
}
