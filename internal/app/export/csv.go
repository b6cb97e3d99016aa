package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"orslog/internal/app/logs"
)

// Header is the first line of every export file
const Header = "Timestamp,Type,Message"

// Row renders a single entry; commas inside the message become semicolons
func Row(entry logs.Entry) string {
	return fmt.Sprintf("%s,%s,%s", entry.Timestamp, entry.Severity, strings.ReplaceAll(entry.Message, ",", ";"))
}

// Write streams the header and one row per entry to w
func Write(w io.Writer, entries []logs.Entry) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return err
	}

	for _, entry := range entries {
		if _, err := bw.WriteString(Row(entry) + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}
