package artifact

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// helper: a valid two-class logistic artifact over two features
func logisticFixture() *Artifact {
	return &Artifact{
		Meta: Meta{
			ID:       "spam.model",
			Name:     "Spam filter",
			Kind:     KindLogistic,
			Features: []string{"len", "links"},
			Classes:  []string{"ham", "spam"},
		},
		Coef:      [][]float64{{0.1, -0.5}, {-0.1, 0.5}},
		Intercept: []float64{0.2, -0.2},
	}
}

func linearFixture() *Artifact {
	return &Artifact{
		Meta:      Meta{ID: "price.model", Kind: KindLinear, Features: []string{"sqm", "rooms"}},
		Coef:      [][]float64{{2.0, 10.0}},
		Intercept: []float64{5.0},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := logisticFixture()
	if err := in.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Meta.ID != in.Meta.ID || out.Meta.Kind != in.Meta.Kind {
		t.Fatalf("meta mismatch: %+v", out.Meta)
	}
	if len(out.Coef) != 2 || out.Coef[1][1] != 0.5 {
		t.Fatalf("coef mismatch: %+v", out.Coef)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	cases := map[string][]byte{
		"empty":       {},
		"short":       []byte("PRE"),
		"wrong magic": []byte("NOTAMODELxxxxxxxx"),
	}
	for name, b := range cases {
		if _, err := Decode(bytes.NewReader(b)); !errors.Is(err, ErrNotArtifact) {
			t.Fatalf("%s: expected ErrNotArtifact, got %v", name, err)
		}
	}
}

func TestDecodeRejectsVersionMismatch(t *testing.T) {
	var buf bytes.Buffer
	if err := logisticFixture().Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	b := buf.Bytes()
	binary.BigEndian.PutUint16(b[8:], 7)
	_, err := Decode(bytes.NewReader(b))
	var ve *VersionError
	if !errors.As(err, &ve) {
		t.Fatalf("expected VersionError, got %v", err)
	}
	if ve.Found != 7 {
		t.Fatalf("found=%d", ve.Found)
	}
}

func TestDecodeRejectsTruncatedPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := logisticFixture().Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	b := buf.Bytes()
	if _, err := Decode(bytes.NewReader(b[:len(b)-10])); err == nil {
		t.Fatal("expected error on truncated payload")
	}
}

func TestValidateShapes(t *testing.T) {
	bad := logisticFixture()
	bad.Coef = bad.Coef[:1] // one row, two classes
	var buf bytes.Buffer
	if err := bad.Encode(&buf); err == nil {
		t.Fatal("expected encode to reject mismatched rows")
	}

	ragged := logisticFixture()
	ragged.Coef[1] = []float64{1}
	if err := ragged.Encode(&buf); err == nil {
		t.Fatal("expected encode to reject ragged rows")
	}

	unknown := linearFixture()
	unknown.Meta.Kind = "forest"
	if err := unknown.Encode(&buf); err == nil {
		t.Fatal("expected encode to reject unknown kind")
	}
}

func TestPredictLinear(t *testing.T) {
	p, err := linearFixture().Predict([]float64{50, 3})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if want := 2.0*50 + 10.0*3 + 5.0; p.Value != want {
		t.Fatalf("value=%v want %v", p.Value, want)
	}
	if p.Label != "" || p.Probabilities != nil {
		t.Fatalf("linear prediction carries classification fields: %+v", p)
	}
}

func TestPredictLogistic(t *testing.T) {
	a := logisticFixture()
	p, err := a.Predict([]float64{1, 10}) // strongly "spam"
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if p.Label != "spam" {
		t.Fatalf("label=%q", p.Label)
	}
	var sum float64
	for _, v := range p.Probabilities {
		sum += v
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("probabilities sum to %v", sum)
	}
	if p.Value != p.Probabilities["spam"] {
		t.Fatalf("value=%v want probability of predicted label", p.Value)
	}
}

func TestPredictWidthMismatch(t *testing.T) {
	_, err := linearFixture().Predict([]float64{1})
	var we *WidthError
	if !errors.As(err, &we) {
		t.Fatalf("expected WidthError, got %v", err)
	}
	if we.Got != 1 || we.Want != 2 {
		t.Fatalf("unexpected widths: %+v", we)
	}
}

func TestSoftmaxLargeScores(t *testing.T) {
	probs := softmax([]float64{1000, 1001})
	for _, v := range probs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("softmax not stable: %v", probs)
		}
	}
	if probs[1] <= probs[0] {
		t.Fatalf("ordering lost: %v", probs)
	}
}

func TestEncodeDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.model")
	if err := linearFixture().EncodeFile(path); err != nil {
		t.Fatalf("encode file: %v", err)
	}
	a, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("decode file: %v", err)
	}
	if a.Meta.ID != "price.model" {
		t.Fatalf("meta: %+v", a.Meta)
	}

	meta, err := ReadMeta(path)
	if err != nil {
		t.Fatalf("read meta: %v", err)
	}
	if meta.Kind != KindLinear {
		t.Fatalf("kind=%q", meta.Kind)
	}

	if _, err := DecodeFile(filepath.Join(dir, "absent.model")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestReadMeta(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spam.model")
	if err := logisticFixture().EncodeFile(path); err != nil {
		t.Fatalf("encode file: %v", err)
	}
	meta, err := ReadMeta(path)
	if err != nil {
		t.Fatalf("read meta: %v", err)
	}
	if meta.ID != "spam.model" || meta.Kind != KindLogistic {
		t.Fatalf("meta: %+v", meta)
	}
	if len(meta.Features) != 2 || len(meta.Classes) != 2 {
		t.Fatalf("meta shape: %+v", meta)
	}

	junk := filepath.Join(dir, "junk.model")
	if err := os.WriteFile(junk, []byte("garbage"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadMeta(junk); !errors.Is(err, ErrNotArtifact) {
		t.Fatalf("expected ErrNotArtifact, got %v", err)
	}

	// version mismatch surfaces from the header check, untouched payload
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	binary.BigEndian.PutUint16(b[8:], 9)
	stale := filepath.Join(dir, "stale.model")
	if err := os.WriteFile(stale, b, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var ve *VersionError
	if _, err := ReadMeta(stale); !errors.As(err, &ve) || ve.Found != 9 {
		t.Fatalf("expected VersionError{9}, got %v", err)
	}
}
