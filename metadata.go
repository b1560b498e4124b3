package tsdf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// headerEndMarker terminates the JSON metadata header at the start of a
// TSDF file. Everything after it is free space the core's objects are
// written into at offsets the caller chooses.
const headerEndMarker = "\n<<<TSDF:END>>>\n"

// Metadata is the container header's JSON body: {version, file_format}.
// Building, writing and parsing the surrounding file — the Dir/Array tree,
// the CLI, path handling — is out of scope for this package; Metadata
// exists only so the core can validate the format byte of a header an
// external caller already wrote, so a DistDict can be embedded inside a
// larger container alongside other objects.
type Metadata struct {
	Version    string     `json:"version"`
	FileFormat FileFormat `json:"file_format"`
}

// MarshalJSON renders FileFormat as "binary"/"text" rather than a bare
// integer, so a Text-format header stays human-readable end to end.
func (f FileFormat) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON parses "binary"/"text" back into a FileFormat.
func (f *FileFormat) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return err
	}
	switch s {
	case "binary":
		*f = Binary
	case "text":
		*f = Text
	default:
		return fmt.Errorf("tsdf: unknown file format %q", s)
	}
	return nil
}

// WriteHeader writes meta's JSON encoding followed by the header-end
// marker to w, and returns the number of bytes written — the offset at
// which the caller may place its first object (e.g. a top-level DistDict).
func WriteHeader(w io.Writer, meta Metadata) (int64, error) {
	body, err := json.Marshal(meta)
	if err != nil {
		return 0, fmt.Errorf("tsdf: encode header: %w", err)
	}
	body = append(body, []byte(headerEndMarker)...)
	n, err := w.Write(body)
	if err != nil {
		return int64(n), wrapIO("write header", err)
	}
	return int64(n), nil
}

// ReadHeader reads and parses the JSON metadata header from the start of
// r, returning the parsed Metadata and the total number of header bytes
// consumed (including the marker).
func ReadHeader(r io.Reader) (Metadata, int64, error) {
	var meta Metadata

	// Headers are small; read in growing chunks until the marker shows up
	// rather than assuming a fixed maximum size.
	buf := make([]byte, 0, 256)
	chunk := make([]byte, 256)
	for {
		n, err := r.Read(chunk)
		buf = append(buf, chunk[:n]...)
		if idx := bytes.Index(buf, []byte(headerEndMarker)); idx >= 0 {
			if jsonErr := json.Unmarshal(buf[:idx], &meta); jsonErr != nil {
				return Metadata{}, 0, wrapCorrupt("decode header", jsonErr)
			}
			return meta, int64(idx + len(headerEndMarker)), nil
		}
		if err != nil {
			if err == io.EOF {
				return Metadata{}, 0, wrapCorrupt("decode header", fmt.Errorf("header end marker not found"))
			}
			return Metadata{}, 0, wrapIO("read header", err)
		}
	}
}

// CheckFormat returns a *Error with KindFormatMismatch if got does not
// match want, nil otherwise. Every DistDict operation is called with a
// caller-supplied FileFormat; this is the check the (out-of-scope)
// file-open shell is expected to run once, at open time, before handing a
// DistDict its File and FileFormat.
func CheckFormat(got, want FileFormat) error {
	if got != want {
		return wrapFormatMismatch("check format", got, want)
	}
	return nil
}
