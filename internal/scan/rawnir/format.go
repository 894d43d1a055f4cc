package rawnir

/*
Raw container structure (all integers and floats little-endian):

├── Header (40 bytes)
│   ├── Magic       [4]byte  "NIRB"
│   ├── Version     uint16   format version, currently 1
│   ├── PairLayout  uint16   0 = column-wise pair list, 1 = row-wise
│   ├── Channels    uint32   measurement channel count
│   ├── Frames      uint32   frame count
│   ├── Wavelengths uint32   multiplexed wavelength count (Nwl)
│   ├── Sources     uint32   source optode count (Ns)
│   ├── Detectors   uint32   detector optode count (Nd)
│   ├── Pairs       uint32   canonical pair list length
│   ├── SyncEvents  uint32   synchronization pulse count
│   └── AuxChannels uint32   auxiliary channel count
├── Pair list
│   ├── column-wise: Pairs × uint32 sources, then Pairs × uint32 detectors
│   └── row-wise:    Pairs × (uint32 source, uint32 detector)
├── Source positions    Sources × 3 float64
├── Detector positions  Detectors × 3 float64
├── Frame timestamps    Frames × float64 (seconds)
├── Sync pulses         SyncEvents × uint32 frame indices, ascending
├── Data                Channels × Frames float64, row-major
└── Aux                 AuxChannels × Frames float64, row-major

The channel axis enumerates (source, detector, wavelength) combinations
in the subsystem's own layout, wavelength-major: all pair channels of
the first wavelength, then all of the second.
*/

// Extension is the file extension of the primary raw format.
const Extension = ".nirb"

// Version is the current container format version.
const Version = 1

// Pair list layouts. The column-wise layout maps directly onto the
// struct-of-arrays pair representation; the row-wise layout is the
// table shape some acquisition firmware writes, normalized during
// metadata aggregation.
const (
	PairLayoutColumns = 0
	PairLayoutRows    = 1
)

// magic identifies a raw container file.
var magic = [4]byte{'N', 'I', 'R', 'B'}

// header is the fixed-size container preamble.
type header struct {
	Magic       [4]byte
	Version     uint16
	PairLayout  uint16
	Channels    uint32
	Frames      uint32
	Wavelengths uint32
	Sources     uint32
	Detectors   uint32
	Pairs       uint32
	SyncEvents  uint32
	AuxChannels uint32
}
