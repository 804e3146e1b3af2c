package savedata

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/nbt"
)

var gzipMagic = []byte{0x1f, 0x8b}

type fileRepository struct{}

// NewFileRepository creates a repository reading and writing local files
func NewFileRepository() Repository {
	return &fileRepository{}
}

// Ensure fileRepository implements Repository
var _ Repository = (*fileRepository)(nil)

func (r *fileRepository) Load(ctx context.Context, path string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "load canceled")
	}

	f, err := os.Open(path) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("save file %s not found", path)
		}
		return nil, errors.Wrap(err, "failed to open save file").WithMeta("path", path)
	}
	defer func() { _ = f.Close() }()

	br := bufio.NewReader(f)
	magic, _ := br.Peek(len(gzipMagic))
	doc := &Document{Compressed: bytes.Equal(magic, gzipMagic)}

	var src io.Reader = br
	if doc.Compressed {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "malformed gzip stream").WithMeta("path", path)
		}
		defer func() { _ = zr.Close() }()
		src = zr
	}

	doc.Name, doc.Root, err = nbt.Decode(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode save file").WithMeta("path", path)
	}
	return doc, nil
}

func (r *fileRepository) Save(ctx context.Context, doc *Document, path string) error {
	if doc == nil || doc.Root == nil {
		return errors.InvalidArgument("document is required")
	}
	if err := ctx.Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeCanceled, "save canceled")
	}

	var buf bytes.Buffer
	if doc.Compressed {
		zw := gzip.NewWriter(&buf)
		if err := nbt.Encode(zw, doc.Name, doc.Root); err != nil {
			return err
		}
		if err := zw.Close(); err != nil {
			return errors.Wrap(err, "failed to compress save file")
		}
	} else if err := nbt.Encode(&buf, doc.Name, doc.Root); err != nil {
		return err
	}

	mode := os.FileMode(0o600)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file").WithMeta("dir", dir)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "failed to write save file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "failed to flush save file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to write save file")
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return errors.Wrap(err, "failed to set save file mode")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "failed to replace save file").WithMeta("path", path)
	}
	return nil
}
