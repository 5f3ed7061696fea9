package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/felwick/taskboard/internal/api"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Manage authentication with the taskboard server.`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the taskboard server",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runRegister,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE:  runWhoami,
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(whoamiCmd)
}

func promptLine(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptPassword(prompt string) string {
	fmt.Print(prompt)
	password, _ := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	return string(password)
}

func runLogin(cmd *cobra.Command, args []string) error {
	client, err := api.NewClient()
	if err != nil {
		return err
	}

	email := promptLine("Email: ")
	password := promptPassword("Password: ")

	fmt.Println("Logging in...")
	if err := client.Login(context.Background(), email, password); err != nil {
		return err
	}

	fmt.Printf("✅ Logged in as %s.\n", client.CurrentUser().Name)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	client, err := api.NewClient()
	if err != nil {
		return err
	}

	if !client.IsLoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	if err := client.Logout(); err != nil {
		return err
	}

	fmt.Println("✅ Logged out.")
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	client, err := api.NewClient()
	if err != nil {
		return err
	}

	name := promptLine("Name: ")
	email := promptLine("Email: ")
	password := promptPassword("Password: ")
	confirmPw := promptPassword("Confirm password: ")

	if password != confirmPw {
		return fmt.Errorf("passwords do not match")
	}

	fmt.Println("Creating account...")
	if err := client.Register(context.Background(), name, email, password); err != nil {
		return err
	}

	fmt.Printf("✅ Account created. Welcome, %s!\n", client.CurrentUser().Name)
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	client, err := api.NewClient()
	if err != nil {
		return err
	}

	if !client.IsLoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	user := client.CurrentUser()
	fmt.Printf("%s <%s> @ %s\n", user.Name, user.Email, client.ServerURL())
	return nil
}
