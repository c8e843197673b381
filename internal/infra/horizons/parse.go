package horizons

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	json "github.com/goccy/go-json"
)

const (
	startMarker = "$$SOE"
	endMarker   = "$$EOE"
)

// resultText extracts the plain-text ephemeris from the JSON envelope.
func resultText(body []byte) (string, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("horizons: invalid json: %w", err)
	}

	if msg, err := jsonpath.Get("$.error", doc); err == nil {
		if s, ok := msg.(string); ok && s != "" {
			return "", fmt.Errorf("horizons: %s", strings.TrimSpace(s))
		}
	}

	val, err := jsonpath.Get("$.result", doc)
	if err != nil {
		return "", fmt.Errorf("horizons: missing result: %w", err)
	}
	s, ok := val.(string)
	if !ok {
		return "", errors.New("horizons: result is not a string")
	}
	return s, nil
}

// parseLongitudes reads ObsEcLon from each CSV row between the markers.
// Rows look like "2460310.500000000, , , 280.0512345, -0.0001234,".
func parseLongitudes(result string) ([]float64, error) {
	start := strings.Index(result, startMarker)
	end := strings.Index(result, endMarker)
	if start < 0 || end < 0 || end < start {
		return nil, errors.New("horizons: ephemeris markers not found")
	}

	block := result[start+len(startMarker) : end]
	var out []float64
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var fields []string
		for _, f := range strings.Split(line, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("horizons: short row %q", line)
		}

		lon, err := strconv.ParseFloat(fields[len(fields)-2], 64)
		if err != nil {
			return nil, fmt.Errorf("horizons: bad longitude in %q: %w", line, err)
		}
		if math.IsNaN(lon) || math.IsInf(lon, 0) {
			return nil, fmt.Errorf("horizons: non-finite longitude in %q", line)
		}
		out = append(out, lon)
	}
	return out, nil
}
