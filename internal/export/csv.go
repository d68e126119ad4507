package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// WriteCSV writes the daily aggregates of c as CSV with a header row.
func WriteCSV(w io.Writer, c Chart) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"day", "incidents", "killed", "injured"}); err != nil {
		return err
	}
	for _, a := range c.Aggregates {
		err := cw.Write([]string{
			a.Day.Format(time.DateOnly),
			strconv.Itoa(a.Incidents),
			strconv.Itoa(a.Killed),
			strconv.Itoa(a.Injured),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
