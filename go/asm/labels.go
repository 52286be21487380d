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
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Fantom-foundation/svm/go/svm"
	"github.com/fxamacker/cbor/v2"
)

// LabelFormat is the encoding of a label table sidecar file.
type LabelFormat string

const (
	LabelsJSON LabelFormat = "json"
	LabelsCBOR LabelFormat = "cbor"
)

// LabelFormats lists the supported sidecar formats, in the order they are
// probed by LoadLabelsFor.
var LabelFormats = []LabelFormat{LabelsJSON, LabelsCBOR}

// ParseLabelFormat parses the name of a sidecar format (case-insensitive).
func ParseLabelFormat(name string) (LabelFormat, error) {
	format := LabelFormat(strings.ToLower(name))
	for _, f := range LabelFormats {
		if f == format {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported label format %q, supported are %v", name, LabelFormats)
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("asm: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// SidecarPath returns the path of the label table kept next to the given
// bytecode file.
func SidecarPath(bytecodePath string, format LabelFormat) string {
	return bytecodePath + ".labels." + string(format)
}

// EncodeLabels serializes a label table. Both formats are deterministic.
func EncodeLabels(labels svm.Labels, format LabelFormat) ([]byte, error) {
	if labels == nil {
		labels = svm.Labels{}
	}
	switch format {
	case LabelsJSON:
		data, err := json.MarshalIndent(labels, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case LabelsCBOR:
		return cborEncMode.Marshal(labels)
	}
	return nil, fmt.Errorf("unsupported label format %q", format)
}

// DecodeLabels deserializes a label table.
func DecodeLabels(data []byte, format LabelFormat) (svm.Labels, error) {
	labels := svm.Labels{}
	var err error
	switch format {
	case LabelsJSON:
		err = json.Unmarshal(data, &labels)
	case LabelsCBOR:
		err = cbor.Unmarshal(data, &labels)
	default:
		return nil, fmt.Errorf("unsupported label format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %s label table: %w", format, err)
	}
	if labels == nil {
		labels = svm.Labels{}
	}
	for name, offset := range labels {
		if offset < 0 {
			return nil, fmt.Errorf("invalid %s label table: label %s has negative offset %d", format, name, offset)
		}
	}
	return labels, nil
}

// WriteLabels writes the label table to the given file.
func WriteLabels(path string, labels svm.Labels, format LabelFormat) error {
	data, err := EncodeLabels(labels, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write labels: %w", err)
	}
	return nil
}

// ReadLabels reads a label table from the given file. The format is derived
// from the file extension.
func ReadLabels(path string) (svm.Labels, error) {
	format, err := ParseLabelFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}
	return DecodeLabels(data, format)
}

// LoadLabelsFor reads the label table kept next to the given bytecode file,
// probing the formats in the order of LabelFormats. If there is no sidecar
// file, an empty table is returned.
func LoadLabelsFor(bytecodePath string) (svm.Labels, error) {
	for _, format := range LabelFormats {
		labels, err := ReadLabels(SidecarPath(bytecodePath, format))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return labels, err
	}
	return svm.Labels{}, nil
}
