package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"vigi-cli/internal/client"
	"vigi-cli/internal/config"
)

// Variables to hold flag values
var (
	host string
	user string
	pass string
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the camera",
	Long: `Performs the camera's two-phase login (nonce + RSA-encrypted password
hash) and saves the session token locally for future commands.

The camera must be on the same network segment and serve its control API on
port 443.

Example:
  vigi-cli login --host 192.168.0.60 --username admin --password 123456`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := client.Config{
			Host:     host,
			Username: user,
			Password: pass,
		}

		fmt.Printf("Authenticating against %s as user '%s'...\n", host, user)

		api := client.New(cfg)
		if err := api.Authenticate(); err != nil {
			log.Fatalf("Fatal: Login failed: %v", err)
		}

		fmt.Println("Login successful. Saving configuration...")

		if err := config.SaveSession(host, user, pass, api.SessionToken()); err != nil {
			log.Fatalf("Failed to save configuration file: %v", err)
		}

		fmt.Println("Session saved. You can now run commands like 'vigi-cli audio list'.")
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVar(&host, "host", "", "Camera IP address (e.g. 192.168.0.60)")
	loginCmd.Flags().StringVarP(&user, "username", "u", "admin", "Camera username")
	loginCmd.Flags().StringVarP(&pass, "password", "p", "", "Camera password")

	_ = loginCmd.MarkFlagRequired("host")
	_ = loginCmd.MarkFlagRequired("password")
}
