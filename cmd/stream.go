package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"vigi-cli/internal/stream"
	"vigi-cli/pkg/models"
)

// Variables to hold flag values
var (
	streamPort      int
	streamPath      string
	streamTitle     string
	streamWithAlarm bool
	streamSoundID   int
	streamVolume    int
)

// Parent Command
var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Work with the camera's RTSP stream",
}

// URL Command
var streamURLCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the RTSP URL for the camera",
	Long: `Builds the RTSP URL from the saved credentials. No connection is
opened; paste the URL into any media player.`,
	Run: func(cmd *cobra.Command, args []string) {
		api := clientFromConfig()

		handle := api.CreateCameraStream(streamPort, streamPath)
		fmt.Println(handle.URL())
	},
}

// Watch Command
var streamWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Consume the live stream until interrupted",
	Long: `Connects to the camera over RTSP and reads the stream, printing
throughput, until Ctrl-C. With --with-alarm the manual alarm is triggered a
couple of seconds after playback starts and stopped again, while the stream
keeps running.`,
	Run: func(cmd *cobra.Command, args []string) {
		api := clientFromConfig()
		handle := api.CreateCameraStream(streamPort, streamPath)

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		if streamWithAlarm {
			// alarm and viewer share nothing but the session token, so the
			// alarm runs on its own goroutine while the view loop blocks
			go func() {
				time.Sleep(2 * time.Second)
				fmt.Println("Triggering alarm while streaming...")
				if err := api.TriggerManualAlarm(models.AlarmActionStart, streamSoundID, streamVolume); err != nil {
					fmt.Printf("Error triggering alarm: %v\n", err)
					return
				}
				time.Sleep(5 * time.Second)
				if err := api.TriggerManualAlarm(models.AlarmActionStop, 0, 0); err != nil {
					fmt.Printf("Error stopping alarm: %v\n", err)
				}
			}()
		}

		fmt.Printf("Opening %s (Ctrl-C to stop)...\n", handle.Redacted())
		if err := stream.View(ctx, handle, streamTitle); err != nil {
			if ctx.Err() == context.Canceled {
				return
			}
			fmt.Printf("Error streaming: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(streamCmd)

	streamCmd.PersistentFlags().IntVar(&streamPort, "port", 554, "RTSP port")
	streamCmd.PersistentFlags().StringVar(&streamPath, "path", "stream1", "Stream path (stream1 = main, stream2 = sub)")

	streamCmd.AddCommand(streamURLCmd)

	streamCmd.AddCommand(streamWatchCmd)
	streamWatchCmd.Flags().StringVar(&streamTitle, "title", "VIGI Camera Live Stream", "Label for log output")
	streamWatchCmd.Flags().BoolVar(&streamWithAlarm, "with-alarm", false, "Trigger the alarm while streaming")
	streamWatchCmd.Flags().IntVar(&streamSoundID, "sound", 1, "Alarm sound ID for --with-alarm")
	streamWatchCmd.Flags().IntVar(&streamVolume, "volume", 10, "Alarm volume for --with-alarm")
}
