// Minimal OpenEXR scanline writer for spec.md §6's "EXR (half-float RGB) via
// codec" output path. SPEC_FULL.md §1 scopes out exotic multi-layer/
// compressed EXR variants; this writes the simplest legal form the format
// allows - single-part, no compression, increasing-y scanlines, three
// half-float channels - which every EXR reader (including our own round-trip
// needs) can decode. No third-party EXR library appears anywhere in the
// example pack (grep across every go.mod/go.sum in _examples came up empty),
// so this is a justified stdlib-only component; see DESIGN.md.
package loaders

import (
	"bufio"
	"encoding/binary"
	"math"
	"os"

	"github.com/rayforge/raytracer/pkg/core"
	"github.com/rayforge/raytracer/pkg/rterr"
)

const exrMagic uint32 = 20000630
const exrVersion uint32 = 2 // version 2, no extra flags (single-part scanline)

// SaveEXR writes the linear HDR pixel buffer (row-major, top-left origin,
// width*height Vec3) as a half-float RGB scanline EXR.
func SaveEXR(path string, width, height int, pixels []core.Vec3) error {
	f, err := os.Create(path)
	if err != nil {
		return rterr.NewResourceError(path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	binary.Write(w, binary.LittleEndian, exrMagic)
	binary.Write(w, binary.LittleEndian, exrVersion)

	writeChannelsAttr(w)
	writeCompressionAttr(w)
	writeBoxAttr(w, "dataWindow", width, height)
	writeBoxAttr(w, "displayWindow", width, height)
	writeLineOrderAttr(w)
	writeFloatAttr(w, "pixelAspectRatio", 1)
	writeV2fAttr(w, "screenWindowCenter", 0, 0)
	writeFloatAttr(w, "screenWindowWidth", 1)
	w.WriteByte(0) // end of header

	// Scanline layout: for each row, an 8-byte (y, dataSize) pair followed by
	// dataSize bytes of channel data in alphabetical channel order (B,G,R),
	// each channel a contiguous run of `width` half-floats.
	bytesPerRow := int64(width) * 2 // one channel's worth
	dataSize := int32(bytesPerRow * 3)

	scanlineData := make([][]byte, height)
	for y := 0; y < height; y++ {
		buf := make([]byte, dataSize)
		for ch := 0; ch < 3; ch++ {
			base := ch * int(bytesPerRow)
			for x := 0; x < width; x++ {
				c := pixels[y*width+x]
				var v float64
				switch ch {
				case 0:
					v = c.Z // B
				case 1:
					v = c.Y // G
				case 2:
					v = c.X // R
				}
				h := floatToHalf(float32(v))
				binary.LittleEndian.PutUint16(buf[base+x*2:], h)
			}
		}
		scanlineData[y] = buf
	}

	// The offset table must be written before the scanlines but needs each
	// scanline's absolute file offset, so flush first and ask the file for
	// its current position.
	if err := w.Flush(); err != nil {
		return rterr.NewResourceError(path, err)
	}
	pos, err := f.Seek(0, 1)
	if err != nil {
		return rterr.NewResourceError(path, err)
	}

	offsetTableLen := int64(height) * 8
	cursor := pos + offsetTableLen
	lineOffsets := make([]int64, height)
	for y := 0; y < height; y++ {
		lineOffsets[y] = cursor
		cursor += 8 + int64(dataSize)
	}

	for _, off := range lineOffsets {
		binary.Write(w, binary.LittleEndian, off)
	}
	for y := 0; y < height; y++ {
		binary.Write(w, binary.LittleEndian, int32(y))
		binary.Write(w, binary.LittleEndian, dataSize)
		w.Write(scanlineData[y])
	}
	if err := w.Flush(); err != nil {
		return rterr.NewResourceError(path, err)
	}
	return nil
}

func writeAttrHeader(w *bufio.Writer, name, typ string, size int32) {
	w.WriteString(name)
	w.WriteByte(0)
	w.WriteString(typ)
	w.WriteByte(0)
	binary.Write(w, binary.LittleEndian, size)
}

func writeChannelsAttr(w *bufio.Writer) {
	// Channel list: name, pixelType(1=half), pLinear+reserved(4 bytes),
	// xSampling, ySampling, each channel entry null-terminated, list
	// terminated by an extra 0 byte. Channels in alphabetical order: B,G,R.
	var body []byte
	for _, name := range []string{"B", "G", "R"} {
		body = append(body, name...)
		body = append(body, 0)
		var pixelType [4]byte
		binary.LittleEndian.PutUint32(pixelType[:], 1) // half
		body = append(body, pixelType[:]...)
		body = append(body, 0, 0, 0, 0) // pLinear + reserved[3]
		var xs, ys [4]byte
		binary.LittleEndian.PutUint32(xs[:], 1)
		binary.LittleEndian.PutUint32(ys[:], 1)
		body = append(body, xs[:]...)
		body = append(body, ys[:]...)
	}
	body = append(body, 0) // end of channel list
	writeAttrHeader(w, "channels", "chlist", int32(len(body)))
	w.Write(body)
}

func writeCompressionAttr(w *bufio.Writer) {
	writeAttrHeader(w, "compression", "compression", 1)
	w.WriteByte(0) // NO_COMPRESSION
}

func writeBoxAttr(w *bufio.Writer, name string, width, height int) {
	writeAttrHeader(w, name, "box2i", 16)
	binary.Write(w, binary.LittleEndian, int32(0))
	binary.Write(w, binary.LittleEndian, int32(0))
	binary.Write(w, binary.LittleEndian, int32(width-1))
	binary.Write(w, binary.LittleEndian, int32(height-1))
}

func writeLineOrderAttr(w *bufio.Writer) {
	writeAttrHeader(w, "lineOrder", "lineOrder", 1)
	w.WriteByte(0) // INCREASING_Y
}

func writeFloatAttr(w *bufio.Writer, name string, v float32) {
	writeAttrHeader(w, name, "float", 4)
	binary.Write(w, binary.LittleEndian, v)
}

func writeV2fAttr(w *bufio.Writer, name string, x, y float32) {
	writeAttrHeader(w, name, "v2f", 8)
	binary.Write(w, binary.LittleEndian, x)
	binary.Write(w, binary.LittleEndian, y)
}

// floatToHalf converts a float32 to IEEE-754 binary16, rounding to nearest.
func floatToHalf(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16((bits >> 16) & 0x8000)
	exp := int32((bits>>23)&0xff) - 127 + 15
	mant := bits & 0x7fffff

	switch {
	case exp <= 0:
		return sign
	case exp >= 0x1f:
		return sign | 0x7c00
	default:
		h := uint32(sign) | uint32(exp)<<10 | mant>>13
		if mant&0x1000 != 0 {
			h++ // round to nearest; a mantissa carry correctly bumps the exponent
		}
		return uint16(h)
	}
}
