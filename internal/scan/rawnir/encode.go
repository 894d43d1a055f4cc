package rawnir

import (
	"encoding/binary"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/optode-data/scanmerge/internal/scan"
)

// Encode writes rec as a raw container. The pair list is written
// row-wise when the record carries a table-shaped list, column-wise
// otherwise.
func Encode(w io.Writer, rec *scan.SystemRecord) error {
	if rec.Data == nil {
		return fmt.Errorf("record has no data")
	}
	channels, frames := rec.Data.Dims()

	layout := uint16(PairLayoutColumns)
	pairs := rec.Meta.Pairs.Len()
	if len(rec.Meta.PairRows) > 0 {
		layout = PairLayoutRows
		pairs = len(rec.Meta.PairRows)
	}

	auxChannels := 0
	if rec.Aux != nil {
		auxChannels, _ = rec.Aux.Dims()
	}
	if len(rec.Timestamps) != frames {
		return fmt.Errorf("have %d timestamps for %d frames", len(rec.Timestamps), frames)
	}

	hdr := header{
		Magic:       magic,
		Version:     Version,
		PairLayout:  layout,
		Channels:    uint32(channels),
		Frames:      uint32(frames),
		Wavelengths: uint32(rec.Meta.Wavelengths),
		Sources:     uint32(rec.Meta.Optodes.SourceCount()),
		Detectors:   uint32(rec.Meta.Optodes.DetectorCount()),
		Pairs:       uint32(pairs),
		SyncEvents:  uint32(len(rec.Sync.Frames)),
		AuxChannels: uint32(auxChannels),
	}
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if layout == PairLayoutRows {
		for _, row := range rec.Meta.PairRows {
			if err := writeUint32s(w, row.Source, row.Detector); err != nil {
				return fmt.Errorf("write pair rows: %w", err)
			}
		}
	} else {
		if err := writeUint32s(w, rec.Meta.Pairs.Sources...); err != nil {
			return fmt.Errorf("write pair sources: %w", err)
		}
		if err := writeUint32s(w, rec.Meta.Pairs.Detectors...); err != nil {
			return fmt.Errorf("write pair detectors: %w", err)
		}
	}

	if err := binary.Write(w, binary.LittleEndian, rec.Meta.Optodes.SourcePos); err != nil {
		return fmt.Errorf("write source positions: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, rec.Meta.Optodes.DetectorPos); err != nil {
		return fmt.Errorf("write detector positions: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, rec.Timestamps); err != nil {
		return fmt.Errorf("write timestamps: %w", err)
	}
	if err := writeUint32s(w, rec.Sync.Frames...); err != nil {
		return fmt.Errorf("write sync pulses: %w", err)
	}

	if err := writeMatrix(w, rec.Data, channels); err != nil {
		return fmt.Errorf("write data: %w", err)
	}
	if rec.Aux != nil {
		if err := writeMatrix(w, rec.Aux, auxChannels); err != nil {
			return fmt.Errorf("write aux: %w", err)
		}
	}
	return nil
}

func writeUint32s(w io.Writer, values ...int) error {
	raw := make([]uint32, len(values))
	for i, v := range values {
		raw[i] = uint32(v)
	}
	return binary.Write(w, binary.LittleEndian, raw)
}

func writeMatrix(w io.Writer, m *mat.Dense, rows int) error {
	for i := 0; i < rows; i++ {
		if err := binary.Write(w, binary.LittleEndian, m.RawRowView(i)); err != nil {
			return err
		}
	}
	return nil
}
