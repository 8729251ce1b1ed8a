package rigid

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// Checksum digests the canonical state of every body, in insertion order.
// Identifiers are left out, so two worlds built the same way and stepped the
// same way share a checksum.
func (w *World) Checksum() uint64 {
	digest := xxhash.New()
	buf := make([]byte, 0, 13*8)

	for _, body := range w.order {
		buf = buf[:0]
		buf = appendVec3(buf, body.Origin())
		buf = appendFloat(buf, body.Rotation().W)
		buf = appendVec3(buf, body.Rotation().V)
		buf = appendVec3(buf, body.LinearMomentum())
		buf = appendVec3(buf, body.AngularMomentum())

		_, _ = digest.Write(buf)
	}

	return digest.Sum64()
}

func appendVec3(buf []byte, v mgl64.Vec3) []byte {
	for _, f := range v {
		buf = appendFloat(buf, f)
	}

	return buf
}

func appendFloat(buf []byte, f float64) []byte {
	return binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
}
