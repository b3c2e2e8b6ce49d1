// Package artifact implements the serialized predictor file format and the
// in-memory predictor loaded from it. A file is a fixed header (8-byte magic
// plus a big-endian uint16 format version) followed by a gob payload. The
// decoded Artifact is immutable and safe for concurrent Predict calls.
package artifact

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
)

// Version is the current artifact format version. There is no migration
// path: artifacts written by an older exporter must be re-exported.
const Version uint16 = 1

// Predictor kinds supported by this format.
const (
	KindLinear   = "linear"
	KindLogistic = "logistic"
)

var magic = [8]byte{'P', 'R', 'E', 'D', 'I', 'C', 'T', 'D'}

// ErrNotArtifact indicates the file is too short or does not start with the
// artifact magic.
var ErrNotArtifact = errors.New("not a predictd artifact")

// VersionError indicates the artifact was written by an incompatible format
// version.
type VersionError struct{ Found uint16 }

func (e *VersionError) Error() string {
	return fmt.Sprintf("incompatible artifact version %d (want %d)", e.Found, Version)
}

// WidthError indicates a feature row of the wrong width was passed to Predict.
type WidthError struct{ Got, Want int }

func (e *WidthError) Error() string {
	return fmt.Sprintf("expected %d features, got %d", e.Want, e.Got)
}

// Meta describes an artifact without its coefficients.
type Meta struct {
	ID          string
	Name        string
	Kind        string
	CreatedUnix int64
	Features    []string
	Classes     []string
}

// Artifact is a deserialized predictor.
type Artifact struct {
	Meta      Meta
	Coef      [][]float64
	Intercept []float64
}

// NumFeatures returns the expected width of a feature row.
func (a *Artifact) NumFeatures() int {
	if len(a.Coef) == 0 {
		return 0
	}
	return len(a.Coef[0])
}

func (a *Artifact) validate() error {
	switch a.Meta.Kind {
	case KindLinear:
		if len(a.Coef) != 1 {
			return fmt.Errorf("linear artifact must have exactly one coefficient row, got %d", len(a.Coef))
		}
	case KindLogistic:
		if len(a.Meta.Classes) < 2 {
			return fmt.Errorf("logistic artifact needs at least 2 classes, got %d", len(a.Meta.Classes))
		}
		if len(a.Coef) != len(a.Meta.Classes) {
			return fmt.Errorf("coefficient rows (%d) do not match classes (%d)", len(a.Coef), len(a.Meta.Classes))
		}
	default:
		return fmt.Errorf("unknown predictor kind %q", a.Meta.Kind)
	}
	if len(a.Intercept) != len(a.Coef) {
		return fmt.Errorf("intercepts (%d) do not match coefficient rows (%d)", len(a.Intercept), len(a.Coef))
	}
	width := len(a.Coef[0])
	if width == 0 {
		return errors.New("empty coefficient row")
	}
	for i, row := range a.Coef {
		if len(row) != width {
			return fmt.Errorf("ragged coefficient row %d: %d != %d", i, len(row), width)
		}
	}
	if len(a.Meta.Features) > 0 && len(a.Meta.Features) != width {
		return fmt.Errorf("feature names (%d) do not match coefficient width (%d)", len(a.Meta.Features), width)
	}
	return nil
}

// readHeader consumes and checks the magic and format version.
func readHeader(r io.Reader) error {
	var hdr [10]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrNotArtifact
		}
		return fmt.Errorf("read header: %w", err)
	}
	if !bytes.Equal(hdr[:8], magic[:]) {
		return ErrNotArtifact
	}
	if v := binary.BigEndian.Uint16(hdr[8:]); v != Version {
		return &VersionError{Found: v}
	}
	return nil
}

// Decode reads an artifact from r, validating the header before touching
// the payload.
func Decode(r io.Reader) (*Artifact, error) {
	if err := readHeader(r); err != nil {
		return nil, err
	}
	var a Artifact
	if err := gob.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// DecodeFile opens and decodes an artifact file.
func DecodeFile(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	a, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}
	return a, nil
}

// ReadMeta returns an artifact file's metadata without materializing the
// coefficients: gob skips stream fields the destination type does not have,
// so directory scans stay cheap even for wide models.
func ReadMeta(path string) (Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return Meta{}, err
	}
	defer f.Close()
	if err := readHeader(f); err != nil {
		return Meta{}, fmt.Errorf("artifact %s: %w", path, err)
	}
	var head struct{ Meta Meta }
	if err := gob.NewDecoder(f).Decode(&head); err != nil {
		return Meta{}, fmt.Errorf("artifact %s: decode metadata: %w", path, err)
	}
	return head.Meta, nil
}

// Encode writes the artifact in the current format version. Used by export
// tooling and tests; the daemon itself only reads.
func (a *Artifact) Encode(w io.Writer) error {
	if err := a.validate(); err != nil {
		return err
	}
	var hdr [10]byte
	copy(hdr[:8], magic[:])
	binary.BigEndian.PutUint16(hdr[8:], Version)
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := gob.NewEncoder(w).Encode(a); err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	return nil
}

// EncodeFile writes the artifact to path, creating or truncating it.
func (a *Artifact) EncodeFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := a.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
