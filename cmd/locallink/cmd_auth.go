package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/locallink/locallink-go/pkg/gateway"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		role, _ := cmd.Flags().GetString("role")

		if role != gateway.RoleBuyer && role != gateway.RoleProducer {
			return fmt.Errorf("role must be %q or %q", gateway.RoleBuyer, gateway.RoleProducer)
		}

		user, err := cli.api.Register(cmd.Context(), gateway.RegisterInput{
			Name:     name,
			Email:    email,
			Password: password,
			Role:     role,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Registered %s (%s) as %s. You can now log in.\n", user.Name, user.Email, user.Role)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and start a session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		token, err := cli.api.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		if err := cli.sessions.Login(cmd.Context(), token); err != nil {
			return err
		}

		if id, ok := cli.sessions.Identity(); ok {
			fmt.Printf("Logged in as user %s (token valid until %s).\n",
				id.SubjectID, id.ExpiresAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cli.sessions.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !cli.sessions.IsAuthenticated() {
			fmt.Println("Not logged in.")
			return nil
		}

		user, err := cli.api.Me(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s> — %s\n", user.Name, user.Email, user.Role)
		return nil
	},
}

func init() {
	registerCmd.Flags().String("name", "", "display name")
	registerCmd.Flags().String("email", "", "email address")
	registerCmd.Flags().String("password", "", "password")
	registerCmd.Flags().String("role", gateway.RoleBuyer, "account role: buyer or producer")
	registerCmd.MarkFlagRequired("name")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().String("email", "", "email address")
	loginCmd.Flags().String("password", "", "password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")
}
