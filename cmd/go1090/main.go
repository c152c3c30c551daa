package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go1090/internal/app"
)

func main() {
	config := app.NewDefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "go1090",
		Short: "ADS-B Decoder",
		Long: `ADS-B Decoder using RTL-SDR.

Captures I/Q samples from RTL-SDR at 2Msps, demodulates Mode S/ADS-B
frames, validates and repairs CRC, resolves aircraft position via
paired CPR decoding, and outputs in BaseStation (SBS) format.

Example usage:
  go1090 --frequency 1090000000 --sample-rate 2000000 --gain 40 --device 0
  go1090 --ifile capture.bin --loop`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ShowVersion {
				app.ShowVersion()
				return nil
			}

			application := app.NewApplication(*config)
			return application.Start()
		},
	}

	rootCmd.Flags().Uint32VarP(&config.Frequency, "frequency", "f", config.Frequency, "Frequency to tune to (Hz)")
	rootCmd.Flags().Uint32VarP(&config.SampleRate, "sample-rate", "s", config.SampleRate, "Sample rate (Hz)")
	rootCmd.Flags().IntVarP(&config.Gain, "gain", "g", config.Gain, "Gain setting (0 for auto)")
	rootCmd.Flags().IntVarP(&config.DeviceIndex, "device", "d", 0, "RTL-SDR device index")
	rootCmd.Flags().StringVarP(&config.LogDir, "log-dir", "l", "./logs", "Log directory")
	rootCmd.Flags().BoolVarP(&config.LogRotateUTC, "utc", "u", true, "Use UTC for log rotation")
	rootCmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Flags().BoolVar(&config.ShowVersion, "version", false, "Show version information")

	rootCmd.Flags().StringVar(&config.InputFile, "ifile", "", "Replay I/Q samples from a recorded capture file instead of a live device")
	rootCmd.Flags().BoolVar(&config.LoopFile, "loop", false, "Loop the input file indefinitely (requires --ifile)")
	rootCmd.Flags().DurationVar(&config.TTL, "ttl", config.TTL, "How long an aircraft may go unseen before it is pruned")
	rootCmd.Flags().Uint64Var(&config.MinMessages, "min-messages", config.MinMessages, "Minimum messages before an aircraft appears in output")
	rootCmd.Flags().BoolVar(&config.Aggressive, "aggressive", false, "Enable two-bit CRC repair for extended squitter frames")
	rootCmd.Flags().IntVar(&config.ChannelCapacity, "channel-capacity", config.ChannelCapacity, "Capacity of the buffered channel between demodulator and tracker")
	rootCmd.Flags().StringVar(&config.BeastListenAddr, "beast-listen", "", "Listen address (host:port) for Beast-format input from a third-party receiver, e.g. :30001")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
