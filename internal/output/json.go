package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONTo writes data as indented JSON to the given writer
func JSONTo(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// OutputTo writes data to w in the specified format
func OutputTo(w io.Writer, format string, data interface{}) error {
	switch format {
	case "json":
		return JSONTo(w, data)
	case "table", "":
		return TableTo(w, data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
