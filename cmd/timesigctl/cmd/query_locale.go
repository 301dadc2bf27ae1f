package cmd

import (
	"encoding/binary"
	"fmt"
	"os"
	"sort"
	"unicode/utf16"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/equivtech/timesig/editdistance"
)

// builtinLocales is a small demonstration table; a real host would load
// this from its own locale list.
var builtinLocales = []struct {
	tag  string
	name string
}{
	{"en-US", "English (United States)"},
	{"en-GB", "English (United Kingdom)"},
	{"fr-FR", "French (France)"},
	{"de-DE", "German (Germany)"},
	{"ja-JP", "Japanese (Japan)"},
	{"zh-Hans-CN", "Chinese (Simplified, China)"},
	{"az-AZ", "Azerbaijani (Azerbaijan)"},
	{"az-Cyrl-AZ", "Azerbaijani (Cyrillic, Azerbaijan)"},
}

var queryLocaleQueryFlag string

func init() {
	RootCmd.AddCommand(queryLocaleCmd)
	queryLocaleCmd.Flags().StringVarP(&queryLocaleQueryFlag, "query", "q", "en-US", "locale tag or name fragment to score against")
}

// packUTF16 writes s as UTF-16LE code units into buf and returns the
// code-unit count.
func packUTF16(buf []byte, s string) uint8 {
	units := utf16.Encode([]rune(s))
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[2*i:], u)
	}
	return uint8(len(units))
}

func queryLocaleRun() error {
	h := editdistance.NewHarness()

	for _, l := range builtinLocales {
		buf := h.GetBufPtr()
		tagLen := packUTF16(buf, l.tag)
		nameLen := packUTF16(buf[int(tagLen)*2:], l.name)
		h.LoadLocale(tagLen, nameLen)
	}

	buf := h.GetBufPtr()
	queryLen := packUTF16(buf, queryLocaleQueryFlag)
	scores := h.RunQuery(queryLen)

	type ranked struct {
		tag, name string
		score     uint8
	}
	results := make([]ranked, len(builtinLocales))
	for i, l := range builtinLocales {
		results[i] = ranked{l.tag, l.name, scores[i]}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].score < results[j].score })

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"tag", "name", "edit distance"})
	for _, r := range results {
		table.Append([]string{r.tag, r.name, fmt.Sprint(r.score)})
	}
	table.Render()

	return nil
}

var queryLocaleCmd = &cobra.Command{
	Use:   "query-locale",
	Short: "score a built-in locale table against a query using the edit-distance harness",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		if err := queryLocaleRun(); err != nil {
			cobra.CheckErr(err)
		}
	},
}
