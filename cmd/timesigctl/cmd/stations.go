package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/equivtech/timesig/config"
	"github.com/equivtech/timesig/station"
	"github.com/equivtech/timesig/waveform"
)

var stationsConfigFlag string

func init() {
	RootCmd.AddCommand(stationsCmd)
	stationsCmd.Flags().StringVarP(&stationsConfigFlag, "config", "c", "", "path to a dynamic config to highlight the default station from")
}

func gainToDB(gain float32) string {
	if gain <= 0 {
		return "on/off keying"
	}
	return fmt.Sprintf("%.1f dB", 20*math.Log10(float64(gain)))
}

func stationsRun() error {
	defaultStation := station.BPC
	haveDefault := false
	if stationsConfigFlag != "" {
		dc, err := config.ReadDynamic(stationsConfigFlag)
		if err != nil {
			return err
		}
		defaultStation = dc.DefaultStation
		haveDefault = true
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 30
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetColWidth(width / 6)
	table.SetHeader([]string{"station", "carrier", "subharmonic", "playback", "xmit low"})

	highlight := color.New(color.FgGreen, color.Bold).SprintFunc()

	for s := station.BPC; s <= station.WWVB; s++ {
		profile := station.Profiles[s]
		divisor, playback := waveform.Subharmonic(profile.TargetHz)

		name := s.String()
		if haveDefault && s == defaultStation {
			name = highlight(name + " (default)")
		}

		table.Append([]string{
			name,
			fmt.Sprintf("%d Hz", profile.TargetHz),
			fmt.Sprintf("1/%d", divisor),
			fmt.Sprintf("%d Hz", playback),
			gainToDB(profile.XmitLow),
		})
	}

	table.Render()
	return nil
}

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "list the five time stations and their synthesis parameters",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		if err := stationsRun(); err != nil {
			cobra.CheckErr(err)
		}
	},
}
