package rawnir

import (
	"encoding/binary"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/optode-data/scanmerge/internal/scan"
)

// maxDimension bounds every header count to keep a corrupt header from
// driving huge allocations.
const maxDimension = 1 << 24

// Decode reads one raw container and returns the decoded system record.
// The record's frame axis is uncropped; sync cropping is the pipeline's
// job.
func Decode(r io.Reader) (*scan.SystemRecord, error) {
	var hdr header
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := validateHeader(&hdr); err != nil {
		return nil, err
	}

	rec := &scan.SystemRecord{
		Meta: scan.Metadata{
			Wavelengths: int(hdr.Wavelengths),
		},
		RawFrames: int(hdr.Frames),
	}

	switch hdr.PairLayout {
	case PairLayoutColumns:
		sources, err := readUint32s(r, int(hdr.Pairs))
		if err != nil {
			return nil, fmt.Errorf("read pair sources: %w", err)
		}
		detectors, err := readUint32s(r, int(hdr.Pairs))
		if err != nil {
			return nil, fmt.Errorf("read pair detectors: %w", err)
		}
		rec.Meta.Pairs = scan.Pairs{Sources: sources, Detectors: detectors}
	case PairLayoutRows:
		rows := make([]scan.PairRow, hdr.Pairs)
		for i := range rows {
			pair, err := readUint32s(r, 2)
			if err != nil {
				return nil, fmt.Errorf("read pair row %d: %w", i, err)
			}
			rows[i] = scan.PairRow{Source: pair[0], Detector: pair[1]}
		}
		rec.Meta.PairRows = rows
	default:
		return nil, fmt.Errorf("unknown pair layout %d", hdr.PairLayout)
	}

	var err error
	if rec.Meta.Optodes.SourcePos, err = readPositions(r, int(hdr.Sources)); err != nil {
		return nil, fmt.Errorf("read source positions: %w", err)
	}
	if rec.Meta.Optodes.DetectorPos, err = readPositions(r, int(hdr.Detectors)); err != nil {
		return nil, fmt.Errorf("read detector positions: %w", err)
	}

	rec.Timestamps = make([]float64, hdr.Frames)
	if err := binary.Read(r, binary.LittleEndian, rec.Timestamps); err != nil {
		return nil, fmt.Errorf("read timestamps: %w", err)
	}

	syncFrames, err := readUint32s(r, int(hdr.SyncEvents))
	if err != nil {
		return nil, fmt.Errorf("read sync pulses: %w", err)
	}
	for i, f := range syncFrames {
		if f >= int(hdr.Frames) {
			return nil, fmt.Errorf("sync pulse %d at frame %d beyond %d frames", i, f, hdr.Frames)
		}
		if i > 0 && f < syncFrames[i-1] {
			return nil, fmt.Errorf("sync pulses out of order at index %d", i)
		}
	}
	rec.Sync = scan.SyncEvents{Frames: syncFrames}

	if rec.Data, err = readMatrix(r, int(hdr.Channels), int(hdr.Frames)); err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	if hdr.AuxChannels > 0 {
		if rec.Aux, err = readMatrix(r, int(hdr.AuxChannels), int(hdr.Frames)); err != nil {
			return nil, fmt.Errorf("read aux: %w", err)
		}
	}

	return rec, nil
}

func validateHeader(hdr *header) error {
	if hdr.Magic != magic {
		return fmt.Errorf("bad magic %q, not a raw container", string(hdr.Magic[:]))
	}
	if hdr.Version != Version {
		return fmt.Errorf("unsupported container version %d (want %d)", hdr.Version, Version)
	}
	if hdr.Channels == 0 || hdr.Frames == 0 {
		return fmt.Errorf("empty container: %d channels, %d frames", hdr.Channels, hdr.Frames)
	}
	if hdr.Wavelengths == 0 || hdr.Channels%hdr.Wavelengths != 0 {
		return fmt.Errorf("channel count %d not divisible by wavelength count %d", hdr.Channels, hdr.Wavelengths)
	}
	for name, v := range map[string]uint32{
		"channels": hdr.Channels, "frames": hdr.Frames, "pairs": hdr.Pairs,
		"sources": hdr.Sources, "detectors": hdr.Detectors,
		"sync events": hdr.SyncEvents, "aux channels": hdr.AuxChannels,
	} {
		if v > maxDimension {
			return fmt.Errorf("%s count %d exceeds limit", name, v)
		}
	}
	return nil
}

func readUint32s(r io.Reader, n int) ([]int, error) {
	raw := make([]uint32, n)
	if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
		return nil, err
	}
	out := make([]int, n)
	for i, v := range raw {
		out[i] = int(v)
	}
	return out, nil
}

func readPositions(r io.Reader, n int) ([][3]float64, error) {
	out := make([][3]float64, n)
	if err := binary.Read(r, binary.LittleEndian, out); err != nil {
		return nil, err
	}
	return out, nil
}

func readMatrix(r io.Reader, rows, cols int) (*mat.Dense, error) {
	buf := make([]float64, rows*cols)
	if err := binary.Read(r, binary.LittleEndian, buf); err != nil {
		return nil, err
	}
	return mat.NewDense(rows, cols, buf), nil
}
