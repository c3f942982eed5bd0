package flat

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// On-disk layout: magic, version, dimension (uint32), count (uint64),
// then count*dimension little-endian float32 values.
const (
	magic          = "LORE"
	codecVersion   = 1
	maxIndexVector = 1 << 28 // sanity bound on count*dimension
)

// WriteTo serialises the index.
func (idx *Index) WriteTo(w io.Writer) (int64, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	bw := bufio.NewWriter(w)
	var written int64

	if _, err := bw.WriteString(magic); err != nil {
		return written, err
	}
	header := []uint32{codecVersion, uint32(idx.dimension)}
	for _, h := range header {
		if err := binary.Write(bw, binary.LittleEndian, h); err != nil {
			return written, err
		}
	}
	count := uint64(len(idx.data) / idx.dimension)
	if err := binary.Write(bw, binary.LittleEndian, count); err != nil {
		return written, err
	}

	buf := make([]byte, 4)
	for _, v := range idx.data {
		binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
		if _, err := bw.Write(buf); err != nil {
			return written, err
		}
	}
	if err := bw.Flush(); err != nil {
		return written, err
	}
	written = int64(len(magic)) + 4 + 4 + 8 + int64(len(idx.data))*4
	return written, nil
}

// Read deserialises an index previously written with WriteTo.
func Read(r io.Reader) (*Index, error) {
	br := bufio.NewReader(r)

	head := make([]byte, len(magic))
	if _, err := io.ReadFull(br, head); err != nil {
		return nil, fmt.Errorf("flat: read header: %w", err)
	}
	if string(head) != magic {
		return nil, fmt.Errorf("flat: bad magic %q", head)
	}

	var version, dimension uint32
	if err := binary.Read(br, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("flat: read version: %w", err)
	}
	if version != codecVersion {
		return nil, fmt.Errorf("flat: unsupported codec version %d", version)
	}
	if err := binary.Read(br, binary.LittleEndian, &dimension); err != nil {
		return nil, fmt.Errorf("flat: read dimension: %w", err)
	}

	var count uint64
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("flat: read count: %w", err)
	}

	total := count * uint64(dimension)
	if dimension == 0 || total > maxIndexVector {
		return nil, fmt.Errorf("flat: implausible index size (%d vectors x %d dims)", count, dimension)
	}

	idx, err := New(int(dimension))
	if err != nil {
		return nil, err
	}

	idx.data = make([]float32, total)
	buf := make([]byte, 4)
	for i := range idx.data {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("flat: read vector data: %w", err)
		}
		idx.data[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf))
	}
	return idx, nil
}
