package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"vigi-cli/pkg/models"
)

// Variables to hold flag values
var (
	alarmSoundID  int
	alarmVolume   int
	alarmDuration int
)

// Parent Command
var alarmCmd = &cobra.Command{
	Use:   "alarm",
	Short: "Control the sound-and-light alarm",
	Long:  `Trigger, stop or test the camera's manual alarm.`,
}

// Trigger Command
var alarmTriggerCmd = &cobra.Command{
	Use:     "trigger",
	Short:   "Start the manual alarm",
	Example: `  vigi-cli alarm trigger --sound 1 --volume 30 --duration 5`,
	Run: func(cmd *cobra.Command, args []string) {
		api := clientFromConfig()

		fmt.Printf("Triggering alarm (sound %d, volume %d)...\n", alarmSoundID, alarmVolume)
		if err := api.TriggerManualAlarm(models.AlarmActionStart, alarmSoundID, alarmVolume); err != nil {
			fmt.Printf("Error triggering alarm: %v\n", err)
			os.Exit(1)
		}

		if alarmDuration <= 0 {
			fmt.Println("Alarm started. Run 'vigi-cli alarm stop' to silence it.")
			return
		}

		fmt.Printf("Alarm started, stopping in %d seconds...\n", alarmDuration)
		time.Sleep(time.Duration(alarmDuration) * time.Second)

		if err := api.TriggerManualAlarm(models.AlarmActionStop, 0, 0); err != nil {
			fmt.Printf("Error stopping alarm: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Alarm stopped.")
	},
}

// Stop Command
var alarmStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the manual alarm",
	Run: func(cmd *cobra.Command, args []string) {
		api := clientFromConfig()

		if err := api.TriggerManualAlarm(models.AlarmActionStop, 0, 0); err != nil {
			fmt.Printf("Error stopping alarm: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Alarm stopped.")
	},
}

// Test Command
var alarmTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Play a sound once without the light alarm",
	Long: `Sends a one-shot sound test to the speaker. The command returns as
soon as the camera accepts it; playback happens on the device.`,
	Example: `  vigi-cli alarm test --sound 101`,
	Run: func(cmd *cobra.Command, args []string) {
		api := clientFromConfig()

		if err := api.TestAudioAlarm(alarmSoundID); err != nil {
			fmt.Printf("Error testing sound: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Sound test for ID %d sent.\n", alarmSoundID)
	},
}

// Volume Command
var alarmVolumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Set the speaker volume",
	Run: func(cmd *cobra.Command, args []string) {
		api := clientFromConfig()

		if err := api.SetVolume(alarmVolume); err != nil {
			fmt.Printf("Error setting volume: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Volume set to %d.\n", alarmVolume)
	},
}

func init() {
	rootCmd.AddCommand(alarmCmd)

	alarmCmd.AddCommand(alarmTriggerCmd)
	alarmTriggerCmd.Flags().IntVar(&alarmSoundID, "sound", 1, "Sound ID (0-9 built-in, 101-103 custom)")
	alarmTriggerCmd.Flags().IntVar(&alarmVolume, "volume", 30, "Speaker volume (1-100)")
	alarmTriggerCmd.Flags().IntVar(&alarmDuration, "duration", 0, "Seconds until automatic stop (0 = stay on)")

	alarmCmd.AddCommand(alarmStopCmd)

	alarmCmd.AddCommand(alarmTestCmd)
	alarmTestCmd.Flags().IntVar(&alarmSoundID, "sound", 1, "Sound ID to test")

	alarmCmd.AddCommand(alarmVolumeCmd)
	alarmVolumeCmd.Flags().IntVar(&alarmVolume, "volume", 30, "Speaker volume (1-100)")
	_ = alarmVolumeCmd.MarkFlagRequired("volume")
}
