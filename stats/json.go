package stats

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Start runs an HTTP server that serves the most recent Snapshot as JSON
// on every request, the way the teacher's JSONStats.Start does.
func (c *Counters) Start(monitoringPort int) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", c.handleRequest)
	addr := fmt.Sprintf(":%d", monitoringPort)
	logrus.Infof("starting stats json server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logrus.Fatalf("failed to start stats listener: %v", err)
	}
}

func (c *Counters) handleRequest(w http.ResponseWriter, _ *http.Request) {
	c.Snapshot()
	js, err := json.Marshal(c.toMap())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(js); err != nil {
		logrus.Errorf("failed to reply to stats request: %v", err)
	}
}

// FetchCounters fetches and decodes the JSON counter map served at url.
func FetchCounters(url string) (map[string]int64, error) {
	c := http.Client{}
	resp, err := c.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var counters map[string]int64
	if err := json.NewDecoder(resp.Body).Decode(&counters); err != nil {
		return nil, err
	}
	return counters, nil
}
