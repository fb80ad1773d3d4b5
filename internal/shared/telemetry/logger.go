package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// serviceName tags every log line so aggregated streams can be filtered per
// service.
const serviceName = "journal-backend"

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	write("info", msg, fields)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	write("error", msg, fields)
}

func write(level, msg string, fields map[string]any) {
	entry := make(map[string]any, len(fields)+4)
	entry["ts"] = time.Now().UTC().Format(time.RFC3339)
	entry["level"] = level
	entry["service"] = serviceName
	entry["msg"] = msg
	for k, v := range fields {
		entry[k] = v
	}
	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stdout, `{"ts":"%s","level":"error","service":%q,"msg":"logger marshal failed","err":%q}`+"\n",
			time.Now().UTC().Format(time.RFC3339), serviceName, err.Error())
		return
	}
	fmt.Fprintln(os.Stdout, string(data))
}
