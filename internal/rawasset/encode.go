package rawasset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	modulePrefix = `export default {"type":"Buffer","data":[`
	moduleSuffix = `]}`
)

// Encode renders data as a module whose default export is the JSON form of a
// byte buffer. Output is deterministic: decimal byte values, comma separated,
// no whitespace.
func Encode(data []byte) string {
	// Up to three digits and a comma per byte.
	buf := make([]byte, 0, len(modulePrefix)+len(moduleSuffix)+len(data)*4)
	buf = append(buf, modulePrefix...)
	for i, b := range data {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendUint(buf, uint64(b), 10)
	}
	buf = append(buf, moduleSuffix...)
	return string(buf)
}

// Decode parses a module produced by Encode back into its bytes.
func Decode(code string) ([]byte, error) {
	literal, ok := strings.CutPrefix(code, "export default ")
	if !ok {
		return nil, fmt.Errorf("module has no default export")
	}

	var payload struct {
		Type string `json:"type"`
		Data []int  `json:"data"`
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(literal)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode buffer literal: %w", err)
	}
	if payload.Type != "Buffer" {
		return nil, fmt.Errorf("unexpected export type %q", payload.Type)
	}

	out := make([]byte, len(payload.Data))
	for i, v := range payload.Data {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("byte %d out of range: %d", i, v)
		}
		out[i] = byte(v)
	}
	return out, nil
}
