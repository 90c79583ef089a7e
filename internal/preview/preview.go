// Package preview stores sampled terrain regions as zstd-compressed dumps:
// a JSON header line followed by the gob-encoded region.
package preview

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// Version is the dump format version.
const Version = 1

// ErrVersion is returned when a dump has an unsupported version.
var ErrVersion = errors.New("unsupported preview version")

// Header describes a sampled region.
type Header struct {
	Version  int   `json:"version"`
	Seed     int64 `json:"seed"`
	X        int   `json:"x"` // world block x of the first column
	Z        int   `json:"z"`
	Width    int   `json:"width"`
	Depth    int   `json:"depth"`
	Step     int   `json:"step"` // blocks between sampled columns
	SeaLevel int   `json:"sea_level"`
}

// Column is one sampled terrain column. Water is -1 for dry columns.
type Column struct {
	Height int16
	Water  int16
	Biome  uint8
}

// Region is a Width x Depth grid of columns, row-major by z.
type Region struct {
	Header  Header
	Columns []Column
}

// NewRegion allocates a region for h.
func NewRegion(h Header) *Region {
	h.Version = Version
	if h.Step <= 0 {
		h.Step = 1
	}
	return &Region{Header: h, Columns: make([]Column, h.Width*h.Depth)}
}

// Set stores the column at grid offset (i, j). Distinct offsets may be set
// concurrently.
func (r *Region) Set(i, j int, c Column) {
	r.Columns[j*r.Header.Width+i] = c
}

// At returns the column at grid offset (i, j).
func (r *Region) At(i, j int) Column {
	return r.Columns[j*r.Header.Width+i]
}

// World returns the world block coordinates of grid offset (i, j).
func (r *Region) World(i, j int) (x, z int) {
	return r.Header.X + i*r.Header.Step, r.Header.Z + j*r.Header.Step
}

// Summary aggregates a region.
type Summary struct {
	MinHeight, MaxHeight int
	WaterColumns         int
	Biomes               map[uint8]int
}

// Summary returns height range, water coverage and biome counts.
func (r *Region) Summary() Summary {
	s := Summary{Biomes: make(map[uint8]int)}
	for i, c := range r.Columns {
		h := int(c.Height)
		if i == 0 || h < s.MinHeight {
			s.MinHeight = h
		}
		if i == 0 || h > s.MaxHeight {
			s.MaxHeight = h
		}
		if c.Water >= 0 {
			s.WaterColumns++
		}
		s.Biomes[c.Biome]++
	}
	return s
}

// Write encodes r to w.
func Write(w io.Writer, r *Region) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 64*1024)

	hb, err := json.Marshal(r.Header)
	if err != nil {
		enc.Close()
		return err
	}
	if _, err := bw.Write(append(hb, '\n')); err != nil {
		enc.Close()
		return err
	}
	if err := gob.NewEncoder(bw).Encode(r); err != nil {
		enc.Close()
		return fmt.Errorf("gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Read decodes a region written by Write.
func Read(rd io.Reader) (*Region, error) {
	dec, err := zstd.NewReader(rd)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(line, &h); err != nil {
		return nil, fmt.Errorf("decode header: %w", err)
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}

	var r Region
	if err := gob.NewDecoder(br).Decode(&r); err != nil {
		return nil, fmt.Errorf("gob decode: %w", err)
	}
	if len(r.Columns) != r.Header.Width*r.Header.Depth {
		return nil, fmt.Errorf("region has %d columns, header says %dx%d", len(r.Columns), r.Header.Width, r.Header.Depth)
	}
	return &r, nil
}

// WriteFile writes r to path.
func WriteFile(path string, r *Region) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads a region from path.
func ReadFile(path string) (*Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
