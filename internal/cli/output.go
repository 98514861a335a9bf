package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// isValidFormat checks the --output value.
func isValidFormat(f string) bool {
	switch f {
	case formatText, formatJSON, formatYAML:
		return true
	default:
		return false
	}
}

// printPlan writes p to w in the requested format.
func printPlan(w io.Writer, format string, p plan) error {
	switch format {
	case formatJSON:
		// MarshalIndent produces human-readable JSON with 2-space indentation.
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode plan as JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case formatYAML:
		data, err := yaml.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to encode plan as YAML: %w", err)
		}
		_, err = w.Write(data)
		return err

	default:
		printPlanText(w, p)
		return nil
	}
}

// printPlanText outputs the plan as aligned key/value rows.
//
// The format is:
//
//	MODE         udp-server
//	PROTOCOL     udp
//	ENDPOINT     :54321
//	KEEP-ACCEPT  false
//	ACTION       receive datagrams on :54321 from the first peer
func printPlanText(w io.Writer, p plan) {
	row := func(key, value string) {
		fmt.Fprintf(w, "%-12s %s\n", key, value)
	}
	row("MODE", p.Mode)
	row("PROTOCOL", p.Protocol)
	row("ENDPOINT", p.Endpoint)
	row("KEEP-ACCEPT", fmt.Sprintf("%t", p.KeepAccept))
	row("ACTION", p.Action)
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on --output.
func printError(w io.Writer, message string, underlying error) {
	if IsJSONOutput() {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}
