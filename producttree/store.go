package producttree

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ncw/gmp"
)

// DefaultExt is the file extension used for persisted level elements when
// the caller doesn't pick one; ".gmp" is the name the reference C++ source
// uses for its mpz_out_raw files. The bytes inside are writeRaw's format,
// not GMP's own mpz_out_raw layout.
const DefaultExt = "gmp"

// LevelStore persists and retrieves product-tree levels under a root
// directory, one file per element: <root>/level<N>/<i>.<ext>. It keeps no
// mutable state, so concurrent ReadOne calls are safe (ComputeRemaindersFast
// reads a level from several goroutines at once); it does not coordinate a
// write with concurrent reads of the same level.
type LevelStore struct {
	root string
	ext  string
}

// NewLevelStore returns a store rooted at dir, using ext (without a leading
// dot) as the file extension. An empty ext falls back to DefaultExt.
func NewLevelStore(dir, ext string) *LevelStore {
	if ext == "" {
		ext = DefaultExt
	}
	return &LevelStore{root: dir, ext: ext}
}

func (s *LevelStore) levelDir(level int) string {
	return filepath.Join(s.root, "level"+strconv.Itoa(level))
}

func (s *LevelStore) path(level, index int) string {
	return filepath.Join(s.levelDir(level), strconv.Itoa(index)+"."+s.ext)
}

// WriteLevel persists values as level `level`, one file per element,
// overwriting whatever was there before. The directory is created if
// absent.
func (s *LevelStore) WriteLevel(level int, values []*gmp.Int) error {
	dir := s.levelDir(level)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating level directory %s: %w", dir, ErrStorage)
	}
	for i, v := range values {
		if err := s.writeOne(level, i, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *LevelStore) writeOne(level, index int, v *gmp.Int) error {
	path := s.path(level, index)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, ErrStorage)
	}
	defer f.Close()
	if err := writeRaw(f, v); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadLevel returns the first `count` elements persisted for `level`, in
// order.
func (s *LevelStore) ReadLevel(level, count int) ([]*gmp.Int, error) {
	values := make([]*gmp.Int, count)
	for i := 0; i < count; i++ {
		v, err := s.ReadOne(level, i)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// ReadOne returns a single element of a persisted level.
func (s *LevelStore) ReadOne(level, index int) (*gmp.Int, error) {
	path := s.path(level, index)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, ErrStorage)
	}
	defer f.Close()
	v, err := readRaw(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return v, nil
}

// writeRaw writes x in the portable raw form: a sign byte, an 8-byte
// big-endian magnitude length, then the magnitude bytes. The length prefix
// is the same scheme smoothparts_lowmem.go uses for its scratch files; the
// sign byte is added so the round-trip is faithful even though every value
// this package ever persists is non-negative.
func writeRaw(w io.Writer, x *gmp.Int) error {
	var hdr [9]byte
	if x.Sign() < 0 {
		hdr[0] = 1
	}
	mag := x.Bytes()
	putUint64(hdr[1:], uint64(len(mag)))
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("%w", ErrStorage)
	}
	if len(mag) > 0 {
		if _, err := w.Write(mag); err != nil {
			return fmt.Errorf("%w", ErrStorage)
		}
	}
	return nil
}

// readRaw is writeRaw's inverse. A short read anywhere is a StorageError:
// the file is truncated.
func readRaw(r io.Reader) (*gmp.Int, error) {
	var hdr [9]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("truncated header: %w", ErrStorage)
	}
	length := getUint64(hdr[1:])
	mag := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, mag); err != nil {
			return nil, fmt.Errorf("truncated record: %w", ErrStorage)
		}
	}
	v := new(gmp.Int).SetBytes(mag)
	if hdr[0] == 1 {
		v.Neg(v)
	}
	return v, nil
}

func putUint64(buf []byte, v uint64) {
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> uint(56-8*i))
	}
}

func getUint64(buf []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(buf[i]) << uint(56-8*i)
	}
	return v
}
