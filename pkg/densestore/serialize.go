package densestore

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/arnebakke/wordspace/pkg/config"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Serialize writes s as the single binary blob spec.md §6 describes: a
// word-bytes buffer with little-endian 16-bit length prefixes, the word
// frequency array, the float matrix, optional n-gram matrix, optional
// neighbor-ID/similarity matrices, and the config record. This mirrors
// the teacher's own little-endian float encoding idiom
// (serializeEmbedding/deserializeEmbedding) applied to the whole object
// graph instead of a single vector.
func (s *Store) Serialize(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if err := writeUint32(bw, uint32(len(s.words))); err != nil {
		return err
	}
	for _, word := range s.words {
		if err := writeString(bw, word); err != nil {
			return err
		}
	}

	for _, f := range s.freq {
		if err := writeInt32(bw, f); err != nil {
			return err
		}
	}

	if err := writeUint32(bw, uint32(s.dim)); err != nil {
		return err
	}
	for _, v := range s.matrix {
		if err := writeFloat32(bw, v); err != nil {
			return err
		}
	}

	if err := writeUint32(bw, uint32(len(s.ngramVecs))); err != nil {
		return err
	}
	if err := writeUint32(bw, uint32(s.minN)); err != nil {
		return err
	}
	if err := writeUint32(bw, uint32(s.maxN)); err != nil {
		return err
	}
	for g, v := range s.ngramVecs {
		if err := writeString(bw, g); err != nil {
			return err
		}
		for _, x := range v {
			if err := writeFloat32(bw, x); err != nil {
				return err
			}
		}
	}

	if err := writeUint32(bw, uint32(s.nSim)); err != nil {
		return err
	}
	for _, id := range s.neighborIDs {
		if err := writeInt32(bw, id); err != nil {
			return err
		}
	}
	for _, sim := range s.neighborSims {
		if err := writeFloat32(bw, sim); err != nil {
			return err
		}
	}

	var cfgBuf bytes.Buffer
	if err := s.cfg.WriteTo(&cfgBuf); err != nil {
		return err
	}
	if err := writeUint32(bw, uint32(cfgBuf.Len())); err != nil {
		return err
	}
	if _, err := bw.Write(cfgBuf.Bytes()); err != nil {
		return err
	}

	return bw.Flush()
}

// Deserialize reconstructs a Store from a blob written by Serialize.
// Failure is fatal for the open attempt, per spec.md §4.4: no partial
// store is returned.
func Deserialize(r io.Reader) (*Store, error) {
	br := bufio.NewReader(r)

	wordCount, err := readUint32(br)
	if err != nil {
		return nil, err
	}
	words := make([]string, wordCount)
	ids := make(map[string]int, wordCount)
	for i := range words {
		w, err := readString(br)
		if err != nil {
			return nil, err
		}
		words[i] = w
		ids[w] = i
	}

	freq := make([]int32, wordCount)
	for i := range freq {
		f, err := readInt32(br)
		if err != nil {
			return nil, err
		}
		freq[i] = f
	}

	dim, err := readUint32(br)
	if err != nil {
		return nil, err
	}
	matrix := make([]float32, uint64(wordCount)*uint64(dim))
	for i := range matrix {
		v, err := readFloat32(br)
		if err != nil {
			return nil, err
		}
		matrix[i] = v
	}

	ngramCount, err := readUint32(br)
	if err != nil {
		return nil, err
	}
	minN, err := readUint32(br)
	if err != nil {
		return nil, err
	}
	maxN, err := readUint32(br)
	if err != nil {
		return nil, err
	}
	ngramVecs := make(map[string][]float32, ngramCount)
	for i := uint32(0); i < ngramCount; i++ {
		g, err := readString(br)
		if err != nil {
			return nil, err
		}
		row := make([]float32, dim)
		for j := range row {
			v, err := readFloat32(br)
			if err != nil {
				return nil, err
			}
			row[j] = v
		}
		ngramVecs[g] = row
	}

	nSim, err := readUint32(br)
	if err != nil {
		return nil, err
	}
	neighborIDs := make([]int32, uint64(wordCount)*uint64(nSim))
	for i := range neighborIDs {
		v, err := readInt32(br)
		if err != nil {
			return nil, err
		}
		neighborIDs[i] = v
	}
	neighborSims := make([]float32, uint64(wordCount)*uint64(nSim))
	for i := range neighborSims {
		v, err := readFloat32(br)
		if err != nil {
			return nil, err
		}
		neighborSims[i] = v
	}

	cfgLen, err := readUint32(br)
	if err != nil {
		return nil, err
	}
	cfgBytes := make([]byte, cfgLen)
	if _, err := io.ReadFull(br, cfgBytes); err != nil {
		return nil, err
	}
	cfg, err := config.ReadFrom(bytes.NewReader(cfgBytes))
	if err != nil {
		return nil, err
	}

	cache, _ := lru.New[string, []float32](4096)

	return &Store{
		cfg:          cfg,
		words:        words,
		ids:          ids,
		freq:         freq,
		matrix:       matrix,
		dim:          int(dim),
		ngramVecs:    ngramVecs,
		minN:         int(minN),
		maxN:         int(maxN),
		neighborIDs:  neighborIDs,
		neighborSims: neighborSims,
		nSim:         int(nSim),
		oovCache:     cache,
	}, nil
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func writeInt32(w io.Writer, v int32) error { return writeUint32(w, uint32(v)) }

func readInt32(r io.Reader) (int32, error) {
	v, err := readUint32(r)
	return int32(v), err
}

func writeFloat32(w io.Writer, v float32) error {
	return writeUint32(w, math.Float32bits(v))
}

func readFloat32(r io.Reader) (float32, error) {
	v, err := readUint32(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// writeString writes s preceded by a little-endian 16-bit length, per
// spec.md §6's word-bytes buffer format.
func writeString(w io.Writer, s string) error {
	var lenBuf [2]byte
	binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(s)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return "", err
	}
	n := binary.LittleEndian.Uint16(lenBuf[:])
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
