package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"vigi-cli/internal/convert"
)

// Variables to hold flag values
var (
	audioSlot    int
	audioName    string
	audioOutFile string
)

// Parent Command
var audioCmd = &cobra.Command{
	Use:   "audio",
	Short: "Manage custom alarm sounds",
	Long: `List, upload, rename and delete the camera's custom audio slots
(101-103), and convert files into the accepted G.711 format.`,
}

// List Command
var audioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom audio slots",
	Run: func(cmd *cobra.Command, args []string) {
		api := clientFromConfig()

		audios, err := api.GetCustomAudioList()
		if err != nil {
			fmt.Printf("Error fetching audio list: %v\n", err)
			os.Exit(1)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(audios); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}
		// -------------------

		if len(audios) == 0 {
			fmt.Println("No custom audio on the camera.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "SLOT\tNAME")
		fmt.Fprintln(w, "----\t----")
		for _, a := range audios {
			name := a.Name
			if name == "" {
				name = "[No Name]"
			}
			fmt.Fprintf(w, "%d\t%s\n", a.ID, name)
		}
		w.Flush()
	},
}

// Sync Command
var audioSyncCmd = &cobra.Command{
	Use:   "sync <file> [file...]",
	Short: "Upload files into slots 101-103 in order",
	Long: `Uploads each file into the next slot: the first file goes to 101,
the second to 102, the third to 103. Occupied slots are overwritten. Files
must already be in G.711 format; run 'vigi-cli audio convert' first.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		api := clientFromConfig()

		results := api.SyncCustomAudios(args)

		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
				fmt.Printf("FAIL  %s: %v\n", filepath.Base(r.Path), r.Err)
				continue
			}
			fmt.Printf("OK    %s -> slot %d\n", filepath.Base(r.Path), r.Slot)
		}

		if failed > 0 {
			fmt.Printf("%d of %d files failed.\n", failed, len(results))
			os.Exit(1)
		}
		fmt.Println("All files uploaded.")
	},
}

// Rename Command
var audioRenameCmd = &cobra.Command{
	Use:     "rename",
	Short:   "Rename a custom audio slot",
	Example: `  vigi-cli audio rename --slot 101 --name "door chime"`,
	Run: func(cmd *cobra.Command, args []string) {
		api := clientFromConfig()

		if err := api.RenameCustomAudio(audioSlot, audioName); err != nil {
			fmt.Printf("Error renaming slot %d: %v\n", audioSlot, err)
			os.Exit(1)
		}
		fmt.Printf("Slot %d renamed to '%s'.\n", audioSlot, audioName)
	},
}

// Delete Command
var audioDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a custom audio slot",
	Run: func(cmd *cobra.Command, args []string) {
		api := clientFromConfig()

		if err := api.DeleteCustomAudio(audioSlot); err != nil {
			fmt.Printf("Error deleting slot %d: %v\n", audioSlot, err)
			os.Exit(1)
		}
		fmt.Printf("Slot %d deleted.\n", audioSlot)
	},
}

// Convert Command
var audioConvertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert an audio file to the camera's G.711 format",
	Long: `Transcodes WAV/MP3 input to G.711 A-law (8 kHz, mono) via ffmpeg,
capped at the camera's 128 KiB slot size. Requires ffmpeg on the PATH.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := args[0]

		data, err := convert.New().Convert(cmd.Context(), input)
		if err != nil {
			fmt.Printf("Error converting %s: %v\n", input, err)
			os.Exit(1)
		}

		out := audioOutFile
		if out == "" {
			base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
			out = fmt.Sprintf("%s_%s.g711", base, time.Now().Format("20060102_150405"))
		}

		if err := os.WriteFile(out, data, 0o644); err != nil {
			fmt.Printf("Error writing %s: %v\n", out, err)
			os.Exit(1)
		}
		fmt.Printf("Converted %s -> %s (%d bytes).\n", input, out, len(data))
	},
}

func init() {
	rootCmd.AddCommand(audioCmd)

	audioCmd.AddCommand(audioListCmd)
	audioCmd.AddCommand(audioSyncCmd)

	audioCmd.AddCommand(audioRenameCmd)
	audioRenameCmd.Flags().IntVar(&audioSlot, "slot", 0, "Slot ID (101-103)")
	audioRenameCmd.Flags().StringVar(&audioName, "name", "", "New display name")
	_ = audioRenameCmd.MarkFlagRequired("slot")
	_ = audioRenameCmd.MarkFlagRequired("name")

	audioCmd.AddCommand(audioDeleteCmd)
	audioDeleteCmd.Flags().IntVar(&audioSlot, "slot", 0, "Slot ID (101-103)")
	_ = audioDeleteCmd.MarkFlagRequired("slot")

	audioCmd.AddCommand(audioConvertCmd)
	audioConvertCmd.Flags().StringVarP(&audioOutFile, "out", "o", "", "Output file (default <input>_<timestamp>.g711)")
}
