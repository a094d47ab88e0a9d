package slides3d

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// AssetType is the kind of file an asset is decoded as.
type AssetType int

const (
	AssetTexture AssetType = iota // A .png, .jpg or .webp image
	AssetGLTF                     // A .gltf or .glb model
)

// Descriptor describes an asset to load.
type Descriptor struct {
	URL  string
	Type AssetType
}

// NewDescriptor returns a Descriptor for the given URL, guessing its type from the extension.
func NewDescriptor(url string) Descriptor {
	switch strings.ToLower(filepath.Ext(url)) {
	case ".gltf", ".glb":
		return Descriptor{URL: url, Type: AssetGLTF}
	}
	return Descriptor{URL: url, Type: AssetTexture}
}

// Key returns the key the asset is stored under in a Library.
func (d Descriptor) Key() string {
	return d.URL
}

// Asset is a loaded asset; Image is set for textures and Mesh for models.
type Asset struct {
	Descriptor
	Image image.Image
	Mesh  *Mesh
}

// LoadResult is the outcome of a single asynchronous load.
type LoadResult struct {
	Key   string
	Asset Asset
	Err   error
}

// libraryLoadLimit is the number of assets decoded at the same time by Load.
const libraryLoadLimit = 4

// Library represents a collection of images and models, loaded up front in bulk or one at a time on demand.
// It's safe for concurrent use.
type Library struct {
	// Open opens the asset at the URL given. Defaults to opening local files.
	Open    func(url string) (io.ReadCloser, error)
	Runtime RuntimeConfig

	mu     sync.Mutex
	queue  []Descriptor
	assets map[string]Asset
}

// NewLibrary creates a new, empty Library.
func NewLibrary(runtime RuntimeConfig) *Library {
	return &Library{
		Open: func(url string) (io.ReadCloser, error) {
			return os.Open(url)
		},
		Runtime: runtime,
		queue:   []Descriptor{},
		assets:  map[string]Asset{},
	}
}

// Queue adds an asset to be loaded by the next Load, returning the key to Get it with afterwards. Queueing the same asset twice
// loads it once.
func (lib *Library) Queue(desc Descriptor) string {

	lib.mu.Lock()
	defer lib.mu.Unlock()

	for _, q := range lib.queue {
		if q.Key() == desc.Key() {
			return desc.Key()
		}
	}

	lib.queue = append(lib.queue, desc)
	return desc.Key()

}

// Load loads every queued asset concurrently, returning the first error encountered. Assets loaded successfully are kept
// even if others fail.
func (lib *Library) Load(ctx context.Context) error {

	lib.mu.Lock()
	queue := lib.queue
	lib.queue = []Descriptor{}
	lib.mu.Unlock()

	start := time.Now()

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(libraryLoadLimit)

	for _, desc := range queue {
		desc := desc
		group.Go(func() error {
			_, err := lib.load(ctx, desc)
			return err
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	if lib.Runtime.Debug {
		lib.Runtime.logger().Debug("assets loaded", "count", len(queue), "took", time.Since(start))
	}

	return nil

}

// LoadSingle loads one asset in the background. The returned channel receives the result and is then closed.
func (lib *Library) LoadSingle(ctx context.Context, desc Descriptor) <-chan LoadResult {

	results := make(chan LoadResult, 1)

	go func() {
		defer close(results)
		asset, err := lib.load(ctx, desc)
		results <- LoadResult{Key: desc.Key(), Asset: asset, Err: err}
	}()

	return results

}

// Get returns the loaded asset under the key given, or an *AssetNotReadyError if it's unknown or still loading.
func (lib *Library) Get(key string) (Asset, error) {

	lib.mu.Lock()
	defer lib.mu.Unlock()

	asset, ok := lib.assets[key]
	if !ok {
		return Asset{}, &AssetNotReadyError{Key: key}
	}
	return asset, nil

}

func (lib *Library) load(ctx context.Context, desc Descriptor) (Asset, error) {

	if err := ctx.Err(); err != nil {
		return Asset{}, err
	}

	lib.mu.Lock()
	asset, loaded := lib.assets[desc.Key()]
	lib.mu.Unlock()

	if loaded {
		return asset, nil
	}

	file, err := lib.Open(desc.URL)
	if err != nil {
		return Asset{}, fmt.Errorf("loading %s: %w", desc.URL, err)
	}
	defer file.Close()

	asset = Asset{Descriptor: desc}

	switch desc.Type {

	case AssetGLTF:
		asset.Mesh, err = LoadGLTFData(file)

	default:
		asset.Image, _, err = image.Decode(file)

	}

	if err != nil {
		return Asset{}, fmt.Errorf("loading %s: %w", desc.URL, err)
	}

	lib.mu.Lock()
	lib.assets[desc.Key()] = asset
	lib.mu.Unlock()

	return asset, nil

}
