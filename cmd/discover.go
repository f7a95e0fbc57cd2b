package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/SridarDhandapani/onvif"
	"github.com/spf13/cobra"
)

// Variables to hold flag values
var (
	discUser     string
	discPass     string
	discDetailed bool
	discTimeout  time.Duration
)

// discoverCmd probes the local network segment for ONVIF devices. Independent
// of the VIGI session; no login is required for plain discovery.
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover ONVIF cameras on the network",
	Long: `Sends a WS-Discovery probe and lists responding devices. With
credentials and --detailed, device information and stream profiles are
fetched over ONVIF as well.`,
	Example: `  vigi-cli discover --detailed -u admin -p 123456`,
	Run: func(cmd *cobra.Command, args []string) {
		cameras, err := onvif.DiscoverCameras(&onvif.DiscoveryOptions{Timeout: discTimeout})
		if err != nil {
			fmt.Printf("Error discovering cameras: %v\n", err)
			os.Exit(1)
		}

		if len(cameras) == 0 {
			fmt.Println("No ONVIF cameras found.")
			return
		}

		var client *onvif.Client
		if discUser != "" && discPass != "" {
			client = onvif.NewClient(discUser, discPass)
			client.InsecureTLS = true // cameras ship self-signed certs
		}

		if discDetailed && client != nil {
			for i := range cameras {
				if err := client.GetDeviceInformation(&cameras[i]); err != nil {
					fmt.Printf("Warning: details for %s: %v\n", cameras[i].Address, err)
				}
			}
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(cameras); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}
		// -------------------

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tADDRESS\tMANUFACTURER\tMODEL\tFIRMWARE")
		fmt.Fprintln(w, "----\t-------\t------------\t-----\t--------")
		for _, cam := range cameras {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cam.GetDisplayName(),
				cam.Address,
				orDash(cam.Manufacturer),
				orDash(cam.DeviceModel),
				orDash(cam.FirmwareVersion),
			)
		}
		w.Flush()

		if discDetailed && client != nil {
			for i := range cameras {
				streams, err := client.GetStreamProfiles(&cameras[i])
				if err != nil || len(streams) == 0 {
					continue
				}
				fmt.Printf("\nStream profiles for %s:\n", cameras[i].GetDisplayName())
				for _, s := range streams {
					fmt.Printf("  %s (%s): %s @ %dfps, %s\n",
						s.ProfileName, s.Quality, s.Resolution, s.Framerate, s.Encoding)
				}
			}
		}
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().StringVarP(&discUser, "username", "u", "", "ONVIF username")
	discoverCmd.Flags().StringVarP(&discPass, "password", "p", "", "ONVIF password")
	discoverCmd.Flags().BoolVar(&discDetailed, "detailed", false, "Fetch device information and stream profiles")
	discoverCmd.Flags().DurationVar(&discTimeout, "timeout", 5*time.Second, "Discovery probe timeout")
}
