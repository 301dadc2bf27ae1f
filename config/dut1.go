package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-ini/ini"

	"github.com/equivtech/timesig/calendar"
)

// bulletinDateLayout matches the one-effective-date-per-section format
// real DUT1 bulletins (e.g. IERS Bulletin D) announce values in: "DUT1 =
// -0.3s as from 1996 July 1" becomes a section named "1996-07-01".
const bulletinDateLayout = "2006-01-02"

// dut1Entry is one announced DUT1 value and the UTC date it took effect.
type dut1Entry struct {
	effectiveMs float64
	dut1Ms      int16
}

// DUT1Bulletin resolves the DUT1 (UT1 - UTC) value in effect for a given
// date from a schedule of announced values, the way a real low-frequency
// time broadcaster sources the figure it transmits.
type DUT1Bulletin struct {
	entries []dut1Entry
}

// LoadDUT1Bulletin reads a DUT1 bulletin from an INI file at path. Each
// section is named by the UTC date (YYYY-MM-DD) the announced value took
// effect and must contain a dut1_ms key, e.g.:
//
//	[1996-07-01]
//	dut1_ms = -300
//
//	[1997-01-01]
//	dut1_ms = -700
func LoadDUT1Bulletin(path string) (*DUT1Bulletin, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}

	b := &DUT1Bulletin{}
	for _, sec := range cfg.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}

		t, err := time.Parse(bulletinDateLayout, sec.Name())
		if err != nil {
			return nil, fmt.Errorf("config: bulletin section %q is not a date: %w", sec.Name(), err)
		}

		key := sec.Key("dut1_ms")
		dut1, err := key.Int()
		if err != nil {
			return nil, fmt.Errorf("config: bulletin section %q: %w", sec.Name(), err)
		}

		b.entries = append(b.entries, dut1Entry{
			effectiveMs: float64(t.UnixMilli()),
			dut1Ms:      int16(dut1),
		})
	}

	sort.Slice(b.entries, func(i, j int) bool {
		return b.entries[i].effectiveMs < b.entries[j].effectiveMs
	})

	return b, nil
}

// Resolve returns the DUT1 value (milliseconds) in effect for dt, i.e.
// the most recently announced value whose effective date is not after
// dt. Returns 0 if dt predates every entry (or the bulletin is empty).
func (b *DUT1Bulletin) Resolve(dt calendar.Datetime) int16 {
	var dut1 int16
	for _, e := range b.entries {
		if e.effectiveMs > dt.Timestamp {
			break
		}
		dut1 = e.dut1Ms
	}
	return dut1
}
