// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package asm

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Fantom-foundation/svm/go/svm"
)

func TestSidecarPath(t *testing.T) {
	if want, got := "prog.bin.labels.json", SidecarPath("prog.bin", LabelsJSON); want != got {
		t.Errorf("unexpected path, wanted %v, got %v", want, got)
	}
	if want, got := "dir/prog.labels.cbor", SidecarPath("dir/prog", LabelsCBOR); want != got {
		t.Errorf("unexpected path, wanted %v, got %v", want, got)
	}
}

func TestParseLabelFormat(t *testing.T) {
	tests := map[string]LabelFormat{
		"json": LabelsJSON,
		"JSON": LabelsJSON,
		"cbor": LabelsCBOR,
	}
	for name, want := range tests {
		got, err := ParseLabelFormat(name)
		if err != nil || got != want {
			t.Errorf("unexpected result for %v: %v, %v", name, got, err)
		}
	}
	if _, err := ParseLabelFormat("yaml"); err == nil {
		t.Errorf("expected error for unsupported format")
	}
}

func TestEncodeLabels_JsonIsIndentedAndSorted(t *testing.T) {
	data, err := EncodeLabels(svm.Labels{"loop": 5, "end": 14, "start": 0}, LabelsJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "{\n  \"end\": 14,\n  \"loop\": 5,\n  \"start\": 0\n}\n"
	if got := string(data); want != got {
		t.Errorf("unexpected encoding, wanted %q, got %q", want, got)
	}
}

func TestEncodeLabels_CborIsDeterministic(t *testing.T) {
	labels := svm.Labels{"loop": 5, "end": 14, "start": 0, "x": 70000}
	first, err := EncodeLabels(labels, LabelsCBOR)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := EncodeLabels(labels.Clone(), LabelsCBOR)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("encoding is not deterministic: %x vs %x", first, again)
		}
	}
}

func TestLabels_EncodingRoundTrip(t *testing.T) {
	tests := map[string]svm.Labels{
		"empty":  {},
		"nil":    nil,
		"single": {"main": 0},
		"many":   {"loop": 5, "end": 14, "start": 0, "far": 65535},
	}
	for name, labels := range tests {
		for _, format := range LabelFormats {
			t.Run(name+"/"+string(format), func(t *testing.T) {
				data, err := EncodeLabels(labels, format)
				if err != nil {
					t.Fatalf("failed to encode: %v", err)
				}
				got, err := DecodeLabels(data, format)
				if err != nil {
					t.Fatalf("failed to decode: %v", err)
				}
				if want := labels.Clone(); !reflect.DeepEqual(want, got) {
					t.Errorf("unexpected labels, wanted %v, got %v", want, got)
				}
			})
		}
	}
}

func TestDecodeLabels_InvalidInputIsRejected(t *testing.T) {
	tests := map[string]struct {
		data   string
		format LabelFormat
	}{
		"malformed json":  {data: "{", format: LabelsJSON},
		"wrong json type": {data: "[1, 2]", format: LabelsJSON},
		"fractional":      {data: "{\"a\": 1.5}", format: LabelsJSON},
		"negative offset": {data: "{\"a\": -1}", format: LabelsJSON},
		"malformed cbor":  {data: "\xff\xff", format: LabelsCBOR},
		"unknown format":  {data: "{}", format: LabelFormat("xml")},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeLabels([]byte(test.data), test.format); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestDecodeLabels_NullIsAnEmptyTable(t *testing.T) {
	labels, err := DecodeLabels([]byte("null"), LabelsJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if labels == nil || len(labels) != 0 {
		t.Errorf("unexpected labels: %v", labels)
	}
}

func TestWriteAndReadLabels(t *testing.T) {
	labels := svm.Labels{"loop": 5, "end": 14}
	for _, format := range LabelFormats {
		t.Run(string(format), func(t *testing.T) {
			path := SidecarPath(filepath.Join(t.TempDir(), "prog.bin"), format)
			if err := WriteLabels(path, labels, format); err != nil {
				t.Fatalf("failed to write labels: %v", err)
			}
			got, err := ReadLabels(path)
			if err != nil {
				t.Fatalf("failed to read labels: %v", err)
			}
			if !reflect.DeepEqual(labels, got) {
				t.Errorf("unexpected labels, wanted %v, got %v", labels, got)
			}
		})
	}
}

func TestReadLabels_UnknownExtensionIsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.txt")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := ReadLabels(path); err == nil {
		t.Errorf("expected error for unknown extension")
	}
}

func TestLoadLabelsFor(t *testing.T) {
	dir := t.TempDir()
	program := filepath.Join(dir, "prog.bin")

	// no sidecar
	labels, err := LoadLabelsFor(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if labels == nil || len(labels) != 0 {
		t.Errorf("expected empty labels, got %v", labels)
	}

	// cbor sidecar only
	if err := WriteLabels(SidecarPath(program, LabelsCBOR), svm.Labels{"cbor": 1}, LabelsCBOR); err != nil {
		t.Fatalf("failed to write labels: %v", err)
	}
	labels, err = LoadLabelsFor(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := (svm.Labels{"cbor": 1}); !reflect.DeepEqual(want, labels) {
		t.Errorf("unexpected labels, wanted %v, got %v", want, labels)
	}

	// json takes precedence
	if err := WriteLabels(SidecarPath(program, LabelsJSON), svm.Labels{"json": 2}, LabelsJSON); err != nil {
		t.Fatalf("failed to write labels: %v", err)
	}
	labels, err = LoadLabelsFor(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := (svm.Labels{"json": 2}); !reflect.DeepEqual(want, labels) {
		t.Errorf("unexpected labels, wanted %v, got %v", want, labels)
	}

	// broken sidecars are reported
	if err := os.WriteFile(SidecarPath(program, LabelsJSON), []byte("{"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := LoadLabelsFor(program); err == nil {
		t.Errorf("expected error for broken sidecar")
	}
}
