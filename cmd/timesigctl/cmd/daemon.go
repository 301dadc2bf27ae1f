package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/daemon"
	"github.com/shirou/gopsutil/mem"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/equivtech/timesig/generator"
	"github.com/equivtech/timesig/stats"
	"github.com/equivtech/timesig/station"
	"github.com/equivtech/timesig/waveform"
)

var (
	daemonStationFlag        string
	daemonSampleRateFlag     int
	daemonMonitoringPortFlag int
)

func init() {
	RootCmd.AddCommand(daemonCmd)
	daemonCmd.Flags().StringVarP(&daemonStationFlag, "station", "s", "WWVB", "station to run")
	daemonCmd.Flags().IntVar(&daemonSampleRateFlag, "sample-rate", 48000, "sample rate, Hz")
	daemonCmd.Flags().IntVar(&daemonMonitoringPortFlag, "monitoringport", 8888, "port to serve stats JSON on")
}

// sdNotify notifies systemd the service is ready, logging (not failing)
// when no notify socket is configured — the common case outside a
// systemd unit.
func sdNotify() {
	supported, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if !supported && err != nil {
		logrus.Warningf("sd_notify failed: %v", err)
	} else if !supported {
		logrus.Debug("sd_notify not supported: NOTIFY_SOCKET unset")
	} else {
		logrus.Info("sent sd_notify ready")
	}
}

func logStartupBanner() {
	vm, err := mem.VirtualMemory()
	if err != nil {
		logrus.Warningf("failed to read host memory stats: %v", err)
		return
	}
	logrus.Infof("starting timesigctl daemon: %d CPUs, %d MB total memory", runtime.NumCPU(), vm.Total/1024/1024)
}

// daemonController bridges generator state transitions to the stats
// counters and the systemd ready notification.
type daemonController struct {
	coordinator *generator.Coordinator
	params      station.UserParams
	counters    *stats.Counters
	notifiedRdy bool
}

func (d *daemonController) NotifyState(state generator.State) {
	d.counters.IncStateTransition(state)

	switch state {
	case generator.StateReqParams:
		d.coordinator.LoadParams(d.params)
	case generator.StateRunning:
		if !d.notifiedRdy {
			sdNotify()
			d.notifiedRdy = true
		}
	}
}

func daemonRun() error {
	st, err := parseStation(daemonStationFlag)
	if err != nil {
		return err
	}

	logStartupBanner()

	counters := stats.NewCounters()
	go counters.Start(daemonMonitoringPortFlag)

	params := station.UserParams{Station: st}
	ctrl := &daemonController{params: params, counters: counters}
	c := generator.NewCoordinator(uint32(daemonSampleRateFlag), ctrl, logrus.StandardLogger())
	ctrl.coordinator = c

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	c.Start()
	buf := make([]float32, waveform.RenderQuantum)
	quantumMs := 1000.0 * float64(waveform.RenderQuantum) / float64(daemonSampleRateFlag)
	nowMs := 0.0
	stopping := false

	// Unlike render/render-all, which synthesize as fast as possible into a
	// file, the daemon emulates a live audio callback: it paces itself to
	// wall-clock time and tracks how far Process actually runs from when it
	// was scheduled, the same tick-boundary jitter a real audio host would
	// see from OS scheduling.
	ticker := time.NewTicker(time.Duration(quantumMs * float64(time.Millisecond)))
	defer ticker.Stop()
	startWall := time.Now()
	startMs := float64(startWall.UnixMilli())
	jitter := stats.NewJitterStats()
	quantumsPerJitterLog := int(1000.0/quantumMs) + 1

	for {
		select {
		case sig := <-sigCh:
			if !stopping {
				logrus.Infof("received %v, stopping", sig)
				c.Stop()
				stopping = true
			}
		case <-ticker.C:
		}

		c.Process(startMs+nowMs, buf)
		counters.IncRenderQuantum()

		errorMs := float64(time.Since(startWall).Milliseconds()) - nowMs
		jitter.Observe(errorMs * float64(daemonSampleRateFlag) / 1000.0)
		if jitter.Count()%int64(quantumsPerJitterLog) == 0 {
			logrus.Debugf("tick jitter: mean=%.2f stddev=%.2f samples over %d quantums",
				jitter.Mean(), jitter.StdDev(), jitter.Count())
		}

		for {
			select {
			case s := <-c.Notifications():
				ctrl.NotifyState(s)
			default:
				goto drained
			}
		}
	drained:
		nowMs += quantumMs

		if stopping && c.State() == generator.StateIdle {
			logrus.Info("stopped cleanly")
			return nil
		}
	}
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "run a long-lived process rendering one station and serving stats",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		if err := daemonRun(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}
