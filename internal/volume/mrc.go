package volume

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/ironsheep/masks/internal/mask"
)

const (
	headerSize = 1024

	modeInt8    = 0
	modeInt16   = 1
	modeFloat32 = 2
	modeUint16  = 6

	// nversion written to new files (MRC2014, revision 0).
	mrcVersion = 20140
)

var (
	stampLittle = [4]byte{0x44, 0x44, 0x00, 0x00}
	stampBig    = [4]byte{0x11, 0x11, 0x00, 0x00}
	mapTag      = [4]byte{'M', 'A', 'P', ' '}
)

// Header is the fixed 1024-byte MRC2014 header. Field order and sizes match
// the file layout exactly, so the struct can be read and written with
// encoding/binary.
type Header struct {
	NX, NY, NZ                int32
	Mode                      int32
	NXStart, NYStart, NZStart int32
	MX, MY, MZ                int32
	CellA                     [3]float32
	CellB                     [3]float32
	MapC, MapR, MapS          int32
	DMin, DMax, DMean         float32
	ISPG                      int32
	NSymBT                    int32
	Extra1                    [8]byte
	ExtType                   [4]byte
	NVersion                  int32
	Extra2                    [84]byte
	Origin                    [3]float32
	Map                       [4]byte
	MachSt                    [4]byte
	RMS                       float32
	NLabl                     int32
	Labels                    [10][80]byte
}

// Shape returns the grid shape stored in the header: (NZ, NY, NX), or
// (NY, NX) for a single image section.
func (h *Header) Shape() []int {
	if h.NZ == 1 && h.ISPG == 0 {
		return []int{int(h.NY), int(h.NX)}
	}
	return []int{int(h.NZ), int(h.NY), int(h.NX)}
}

// Calibration derives voxel size from the cell dimensions and sampling.
func (h *Header) Calibration() Calibration {
	var cal Calibration
	samples := [3]int32{h.MX, h.MY, h.MZ}
	for i := 0; i < 3; i++ {
		if samples[i] != 0 {
			cal.VoxelSize[i] = float64(h.CellA[i]) / float64(samples[i])
		}
	}
	cal.Origin = [3]int{int(h.NXStart), int(h.NYStart), int(h.NZStart)}
	return cal
}

// Label returns the first non-empty text label, if any.
func (h *Header) Label() string {
	for i := 0; i < int(h.NLabl) && i < len(h.Labels); i++ {
		if s := string(bytes.TrimRight(h.Labels[i][:], "\x00 ")); s != "" {
			return s
		}
	}
	return ""
}

func modeSize(mode int32) (int, error) {
	switch mode {
	case modeInt8:
		return 1, nil
	case modeInt16, modeUint16:
		return 2, nil
	case modeFloat32:
		return 4, nil
	}
	return 0, fmt.Errorf("unsupported MRC mode %d", mode)
}

// byteOrder inspects the machine stamp. Files with a zeroed stamp (older
// writers) are treated as little endian.
func byteOrder(raw []byte) binary.ByteOrder {
	if raw[212] == stampBig[0] {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// readAll returns the file contents, inflating gzip files.
func readAll(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	var r io.Reader = f
	if isCompressed(path) {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, &IOError{Op: "decode", Path: path, Err: err}
		}
		defer zr.Close()
		r = zr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

func decodeHeader(raw []byte) (*Header, binary.ByteOrder, error) {
	if len(raw) < headerSize {
		return nil, nil, fmt.Errorf("file is %d bytes, shorter than an MRC header", len(raw))
	}
	order := byteOrder(raw)
	var h Header
	if err := binary.Read(bytes.NewReader(raw[:headerSize]), order, &h); err != nil {
		return nil, nil, err
	}
	if h.NX < 0 || h.NY < 0 || h.NZ < 0 {
		return nil, nil, fmt.Errorf("negative dimensions %dx%dx%d", h.NX, h.NY, h.NZ)
	}
	if _, err := modeSize(h.Mode); err != nil {
		return nil, nil, err
	}
	return &h, order, nil
}

// ReadHeader reads only the header of an MRC file.
func ReadHeader(path string) (*Header, error) {
	raw, err := readAll(path)
	if err != nil {
		return nil, err
	}
	h, _, err := decodeHeader(raw)
	if err != nil {
		return nil, &IOError{Op: "decode", Path: path, Err: err}
	}
	return h, nil
}

// LoadMRC reads an MRC volume. Values are converted to float64 whatever
// the storage mode.
func LoadMRC(path string) (*mask.Grid, Calibration, error) {
	raw, err := readAll(path)
	if err != nil {
		return nil, Calibration{}, err
	}
	g, h, err := decodeMRC(raw)
	if err != nil {
		return nil, Calibration{}, &IOError{Op: "decode", Path: path, Err: err}
	}
	return g, h.Calibration(), nil
}

func decodeMRC(raw []byte) (*mask.Grid, *Header, error) {
	h, order, err := decodeHeader(raw)
	if err != nil {
		return nil, nil, err
	}
	elem, _ := modeSize(h.Mode)
	start := headerSize + int(h.NSymBT)
	if h.NSymBT < 0 || start > len(raw) {
		return nil, nil, errors.New("file is truncated")
	}
	// Dimensions are checked one at a time against the bytes present so
	// the cell count cannot overflow.
	avail := (len(raw) - start) / elem
	n := 1
	for _, d := range [3]int32{h.NX, h.NY, h.NZ} {
		if d != 0 && n > avail/int(d) {
			return nil, nil, fmt.Errorf("file is truncated: %dx%dx%d voxels do not fit in %d bytes",
				h.NX, h.NY, h.NZ, len(raw)-start)
		}
		n *= int(d)
	}
	body := bytes.NewReader(raw[start : start+n*elem])

	values := make([]float64, n)
	switch h.Mode {
	case modeInt8:
		buf := make([]int8, n)
		if err := binary.Read(body, order, buf); err != nil {
			return nil, nil, err
		}
		for i, v := range buf {
			values[i] = float64(v)
		}
	case modeInt16:
		buf := make([]int16, n)
		if err := binary.Read(body, order, buf); err != nil {
			return nil, nil, err
		}
		for i, v := range buf {
			values[i] = float64(v)
		}
	case modeUint16:
		buf := make([]uint16, n)
		if err := binary.Read(body, order, buf); err != nil {
			return nil, nil, err
		}
		for i, v := range buf {
			values[i] = float64(v)
		}
	case modeFloat32:
		buf := make([]float32, n)
		if err := binary.Read(body, order, buf); err != nil {
			return nil, nil, err
		}
		for i, v := range buf {
			values[i] = float64(v)
		}
	}

	g, err := mask.NewGridFromData(h.Shape(), values)
	if err != nil {
		return nil, nil, err
	}
	return g, h, nil
}

// newHeader describes g as a little-endian float32 MRC2014 file.
func newHeader(g *mask.Grid, cal Calibration) (*Header, error) {
	shape := g.Shape()
	var nx, ny, nz int
	var ispg int32
	switch len(shape) {
	case 2:
		nz, ny, nx = 1, shape[0], shape[1]
	case 3:
		nz, ny, nx = shape[0], shape[1], shape[2]
		ispg = 1
	default:
		return nil, fmt.Errorf("cannot store a %dD grid as MRC", len(shape))
	}

	h := &Header{
		NX:       int32(nx),
		NY:       int32(ny),
		NZ:       int32(nz),
		Mode:     modeFloat32,
		NXStart:  int32(cal.Origin[0]),
		NYStart:  int32(cal.Origin[1]),
		NZStart:  int32(cal.Origin[2]),
		MX:       int32(nx),
		MY:       int32(ny),
		MZ:       int32(nz),
		CellB:    [3]float32{90, 90, 90},
		MapC:     1,
		MapR:     2,
		MapS:     3,
		ISPG:     ispg,
		NVersion: mrcVersion,
		Map:      mapTag,
		MachSt:   stampLittle,
		NLabl:    1,
	}
	extents := [3]int{nx, ny, nz}
	for i := 0; i < 3; i++ {
		h.CellA[i] = float32(cal.VoxelSize[i] * float64(extents[i]))
	}
	copy(h.Labels[0][:], "Created by masks")

	// Statistics are taken over the stored (float32) values.
	data := g.Data()
	if len(data) > 0 {
		lo, hi := float64(float32(data[0])), float64(float32(data[0]))
		var sum float64
		for _, v := range data {
			f := float64(float32(v))
			sum += f
			lo = math.Min(lo, f)
			hi = math.Max(hi, f)
		}
		mean := sum / float64(len(data))
		var ss float64
		for _, v := range data {
			d := float64(float32(v)) - mean
			ss += d * d
		}
		h.DMin, h.DMax, h.DMean = float32(lo), float32(hi), float32(mean)
		h.RMS = float32(math.Sqrt(ss / float64(len(data))))
	}
	return h, nil
}

func encodeMRC(w io.Writer, g *mask.Grid, cal Calibration) error {
	h, err := newHeader(g, cal)
	if err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return err
	}
	buf := make([]float32, g.Len())
	for i, v := range g.Data() {
		buf[i] = float32(v)
	}
	return binary.Write(w, binary.LittleEndian, buf)
}

// SaveMRC writes g as an MRC2014 float32 volume, gzip-compressed when path
// ends in ".gz". An existing file is overwritten.
func SaveMRC(path string, g *mask.Grid, cal Calibration) error {
	var buf bytes.Buffer
	if err := encodeMRC(&buf, g, cal); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	defer f.Close()

	var w io.Writer = f
	var zw *gzip.Writer
	if isCompressed(path) {
		zw = gzip.NewWriter(f)
		w = zw
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return &IOError{Op: "write", Path: path, Err: err}
		}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
