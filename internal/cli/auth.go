package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thinkfirst/tutorsync/internal/models"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with a parent account",
	Long: `Log in with a parent account.

Credentials are stored on device so later commands (and the child's
offline work) keep functioning without re-authentication.

Examples:
  tutorsync login --username parent@example.com --password secret`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var childLoginCmd = &cobra.Command{
	Use:   "child-login",
	Short: "Log in with a child username and PIN",
	Args:  cobra.NoArgs,
	RunE:  runChildLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a parent account",
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear stored credentials",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var (
	loginUsername string
	loginPassword string
	loginPIN      string
	registerEmail string
	registerName  string
)

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "account username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")

	childLoginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "child username")
	childLoginCmd.Flags().StringVar(&loginPIN, "pin", "", "child PIN")
	_ = childLoginCmd.MarkFlagRequired("username")
	_ = childLoginCmd.MarkFlagRequired("pin")

	registerCmd.Flags().StringVar(&registerEmail, "email", "", "parent email")
	registerCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password")
	registerCmd.Flags().StringVar(&registerName, "name", "", "full name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("name")
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	resp, err := a.sessions.Login(ctx, models.LoginRequest{
		Username: loginUsername,
		Password: loginPassword,
	})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	fmt.Printf("Logged in as %s (%s)\n", resp.FullName, resp.Role)
	return nil
}

func runChildLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	resp, err := a.sessions.ChildLogin(ctx, models.ChildLoginRequest{
		Username: loginUsername,
		PIN:      loginPIN,
	})
	if err != nil {
		return fmt.Errorf("child login: %w", err)
	}

	fmt.Printf("Logged in as %s\n", resp.FullName)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	resp, err := a.sessions.Register(ctx, models.RegisterRequest{
		Email:    registerEmail,
		Password: loginPassword,
		FullName: registerName,
	})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	fmt.Printf("Account created for %s\n", resp.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.sessions.Logout(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	fmt.Println("Logged out.")
	return nil
}
