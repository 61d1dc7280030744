package vrp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadFile reads an instance from path. The instance is named after the file
// name without its extension.
func LoadFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vrp: open instance: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return Load(f, name)
}

// Load parses an instance from r (see package doc for the format).
//
// Errors wrap ErrMalformedInstance with the offending 1-based line number for
// a wrong field count, an unparsable number, a negative demand, or a client
// count that disagrees with the header.
func Load(r io.Reader, name string) (*Instance, error) {
	sc := bufio.NewScanner(r)

	var (
		lineNo   int
		header   bool
		declared int
		vehicles int
		capacity int
		clients  []Client
	)
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, malformed(lineNo, "want 3 fields, got %d", len(fields))
		}

		if !header {
			vals, err := atoi3(fields)
			if err != nil {
				return nil, malformed(lineNo, "%v", err)
			}
			declared, vehicles, capacity = vals[0], vals[1], vals[2]
			if declared < 1 {
				return nil, malformed(lineNo, "client count %d must include the depot", declared)
			}
			if vehicles < 1 || capacity < 0 {
				return nil, malformed(lineNo, "vehicles %d, capacity %d", vehicles, capacity)
			}
			header = true
			continue
		}

		demand, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, malformed(lineNo, "demand: %v", err)
		}
		if demand < 0 {
			return nil, malformed(lineNo, "negative demand %d", demand)
		}
		x, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, malformed(lineNo, "x: %v", err)
		}
		y, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, malformed(lineNo, "y: %v", err)
		}
		clients = append(clients, Client{ID: len(clients), X: x, Y: y, Demand: demand})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("vrp: read instance: %w", err)
	}
	if !header {
		return nil, malformed(lineNo, "missing header")
	}
	if len(clients) != declared {
		return nil, malformed(lineNo, "header declares %d clients, found %d", declared, len(clients))
	}

	return NewInstance(name, vehicles, capacity, clients)
}

func atoi3(fields []string) ([3]int, error) {
	var out [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return out, err
		}
		out[i] = v
	}

	return out, nil
}

func malformed(line int, format string, args ...interface{}) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformedInstance, line, fmt.Sprintf(format, args...))
}
