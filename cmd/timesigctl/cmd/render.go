package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/equivtech/timesig/station"
)

var (
	renderStationFlag    string
	renderDurationFlag   time.Duration
	renderSampleRateFlag int
	renderDUT1MsFlag     int
	renderJJYKHzFlag     string
	renderNoClipFlag     bool
	renderOutFlag        string
)

func init() {
	RootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderStationFlag, "station", "s", "WWVB", "station to render: BPC, DCF77, JJY, MSF, WWVB")
	renderCmd.Flags().DurationVarP(&renderDurationFlag, "duration", "d", 10*time.Second, "duration to stay in the running state")
	renderCmd.Flags().IntVar(&renderSampleRateFlag, "sample-rate", 48000, "output sample rate, Hz")
	renderCmd.Flags().IntVar(&renderDUT1MsFlag, "dut1-ms", 0, "DUT1 (UT1 - UTC) to encode, milliseconds")
	renderCmd.Flags().StringVar(&renderJJYKHzFlag, "jjy-khz", "40", "JJY carrier to emulate: 40 or 60 (ignored for other stations)")
	renderCmd.Flags().BoolVar(&renderNoClipFlag, "no-clip", false, "LERP gain changes instead of stepping")
	renderCmd.Flags().StringVarP(&renderOutFlag, "out", "o", "out.wav", "output WAV file path")
}

func parseStation(s string) (station.Station, error) {
	switch s {
	case "BPC":
		return station.BPC, nil
	case "DCF77":
		return station.DCF77, nil
	case "JJY":
		return station.JJY, nil
	case "MSF":
		return station.MSF, nil
	case "WWVB":
		return station.WWVB, nil
	default:
		return 0, fmt.Errorf("unrecognized station %q", s)
	}
}

func parseJJYKHz(s string) (station.JJYFreq, error) {
	switch s {
	case "40":
		return station.JJY40kHz, nil
	case "60":
		return station.JJY60kHz, nil
	default:
		return 0, fmt.Errorf("unrecognized JJY carrier %q, must be 40 or 60", s)
	}
}

func renderRun() error {
	st, err := parseStation(renderStationFlag)
	if err != nil {
		return err
	}
	jjyKHz, err := parseJJYKHz(renderJJYKHzFlag)
	if err != nil {
		return err
	}

	params := station.UserParams{
		Station: st,
		JJYKHz:  jjyKHz,
		DUT1Ms:  int16(renderDUT1MsFlag),
		NoClip:  renderNoClipFlag,
	}

	sink := newWAVSink(uint32(renderSampleRateFlag))
	if err := renderLifecycle(uint32(renderSampleRateFlag), params, renderDurationFlag, sink); err != nil {
		return err
	}

	logrus.Infof("rendered %s to %s", st, renderOutFlag)
	return sink.Close(renderOutFlag)
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "render one station to a 16-bit PCM WAV file",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		if err := renderRun(); err != nil {
			cobra.CheckErr(err)
		}
	},
}
