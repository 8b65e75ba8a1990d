package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
)

// Fields is extra context appended to a log line as key=value pairs.
type Fields map[string]interface{}

var (
	InfoLogger  *log.Logger
	WarnLogger  *log.Logger
	ErrorLogger *log.Logger
)

func init() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarnLogger = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// SetOutput redirects all levels to w.
func SetOutput(w io.Writer) {
	InfoLogger.SetOutput(w)
	WarnLogger.SetOutput(w)
	ErrorLogger.SetOutput(w)
}

func Info(msg string, fields ...Fields) {
	InfoLogger.Output(2, msg+formatFields(fields))
}

func Warn(msg string, fields ...Fields) {
	WarnLogger.Output(2, msg+formatFields(fields))
}

func Error(msg string, err error, fields ...Fields) {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	ErrorLogger.Output(2, msg+formatFields(fields))
}

func formatFields(fields []Fields) string {
	var b strings.Builder
	for _, f := range fields {
		keys := make([]string, 0, len(f))
		for k := range f {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, f[k])
		}
	}
	return b.String()
}
