package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/equivtech/timesig/station"
)

var (
	renderAllDurationFlag   time.Duration
	renderAllSampleRateFlag int
	renderAllOutDirFlag     string
)

func init() {
	RootCmd.AddCommand(renderAllCmd)
	renderAllCmd.Flags().DurationVarP(&renderAllDurationFlag, "duration", "d", 10*time.Second, "duration to stay in the running state")
	renderAllCmd.Flags().IntVar(&renderAllSampleRateFlag, "sample-rate", 48000, "output sample rate, Hz")
	renderAllCmd.Flags().StringVarP(&renderAllOutDirFlag, "out-dir", "o", ".", "directory to write one WAV file per station into")
}

func renderAllRun() error {
	var g errgroup.Group

	for s := station.BPC; s <= station.WWVB; s++ {
		s := s
		g.Go(func() error {
			// Each goroutine owns an independent generator.Coordinator
			// instance; per spec.md's single-generator-per-process
			// non-goal, they share no state.
			params := station.UserParams{Station: s}
			sink := newWAVSink(uint32(renderAllSampleRateFlag))
			if err := renderLifecycle(uint32(renderAllSampleRateFlag), params, renderAllDurationFlag, sink); err != nil {
				return fmt.Errorf("rendering %s: %w", s, err)
			}
			path := fmt.Sprintf("%s/%s.wav", renderAllOutDirFlag, s)
			return sink.Close(path)
		})
	}

	return g.Wait()
}

var renderAllCmd = &cobra.Command{
	Use:   "render-all",
	Short: "render all five stations concurrently to WAV files",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		if err := renderAllRun(); err != nil {
			cobra.CheckErr(err)
		}
	},
}
