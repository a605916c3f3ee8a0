package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Structured JSON logging to stdout, one object per line. Field maps are
// merged over the ts/level/msg base keys.

func Info(msg string, fields map[string]any)  { emit("info", msg, fields) }
func Warn(msg string, fields map[string]any)  { emit("warn", msg, fields) }
func Error(msg string, fields map[string]any) { emit("error", msg, fields) }

func emit(level, msg string, fields map[string]any) {
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339),
		"level": level,
		"msg":   msg,
	}
	for k, v := range fields {
		entry[k] = v
	}

	line, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stdout, `{"ts":%q,"level":"error","msg":"logger marshal failed","err":%q}`+"\n",
			time.Now().UTC().Format(time.RFC3339), err.Error())
		return
	}
	fmt.Fprintln(os.Stdout, string(line))
}
