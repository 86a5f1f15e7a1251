package staticfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"
)

var ErrAssetNotFound = errors.New("asset not found")

type Asset struct {
	Name    string
	ModTime time.Time
	Content io.ReadSeekCloser
}

type AssetStore interface {
	Open(ctx context.Context, name string) (*Asset, error)
}

// DirStore отдает файлы из локального каталога; выход за корень невозможен
type DirStore struct {
	root  http.Dir
	index string
}

func NewDirStore(root, index string) *DirStore {
	if index == "" {
		index = "index.html"
	}
	return &DirStore{root: http.Dir(root), index: index}
}

func (s *DirStore) Open(_ context.Context, name string) (*Asset, error) {
	name = cleanName(name)

	asset, dir, err := s.open(name)
	if err != nil {
		return nil, err
	}
	if !dir {
		return asset, nil
	}

	asset, dir, err = s.open(path.Join(name, s.index))
	if err != nil {
		return nil, err
	}
	if dir {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}
	return asset, nil
}

func (s *DirStore) open(name string) (*Asset, bool, error) {
	f, err := s.root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, false, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
		}
		return nil, false, fmt.Errorf("failed to open %s: %w", name, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, false, fmt.Errorf("failed to stat %s: %w", name, err)
	}

	if info.IsDir() {
		f.Close()
		return nil, true, nil
	}

	return &Asset{Name: info.Name(), ModTime: info.ModTime(), Content: f}, false, nil
}

func cleanName(name string) string {
	return path.Clean("/" + strings.TrimSpace(name))
}
