package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vigi-cli/internal/client"
	"vigi-cli/internal/config"
)

var cfgFile string
var jsonOutput bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vigi-cli",
	Short: "A CLI for operating a TP-Link VIGI C440 camera",
	Long: `Trigger alarms, manage custom alarm sounds, watch the live RTSP
stream and discover ONVIF devices on a VIGI C440 camera.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() { config.InitConfig(cfgFile) })

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.vigi-cli.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
}

// clientFromConfig rebuilds an authenticated client from the saved session.
// Commands that talk to the camera all go through here.
func clientFromConfig() *client.VigiClient {
	host := viper.GetString(config.KeyHost)
	stok := viper.GetString(config.KeySessionToken)

	if host == "" || stok == "" {
		fmt.Println("Error: Not logged in. Please run 'vigi-cli login' first.")
		os.Exit(1)
	}

	api := client.New(client.Config{
		Host:     host,
		Username: viper.GetString(config.KeyUsername),
		Password: viper.GetString(config.KeyPassword),
	})
	api.RestoreSession(stok)
	return api
}
