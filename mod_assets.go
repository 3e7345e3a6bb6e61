package particlefx

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

type AssetId string

// MaxTextureSide bounds background textures; larger images are scaled down.
const MaxTextureSide = 2048

type AssetServer struct {
	textures map[AssetId]*image.RGBA
	byPath   map[string]AssetId
}

type AssetServerModule struct{}

func NewAssetServer() *AssetServer {
	return &AssetServer{
		textures: make(map[AssetId]*image.RGBA),
		byPath:   make(map[string]AssetId),
	}
}

// LoadTexture decodes a PNG, JPEG, GIF, BMP or WebP file into RGBA texels.
// A path that was loaded before returns the cached asset.
func (server *AssetServer) LoadTexture(filename string) (AssetId, error) {
	if id, ok := server.byPath[filename]; ok {
		return id, nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("load texture: %w", err)
	}
	defer file.Close()

	img, err := DecodeTexture(file, MaxTextureSide)
	if err != nil {
		return "", fmt.Errorf("load texture %s: %w", filename, err)
	}

	id := makeAssetId()
	server.textures[id] = img
	server.byPath[filename] = id
	return id, nil
}

func (server *AssetServer) Texture(id AssetId) (*image.RGBA, bool) {
	img, ok := server.textures[id]
	return img, ok
}

// DecodeTexture decodes any registered image format into an RGBA image whose
// origin is (0,0), scaling it down so neither side exceeds maxSide.
func DecodeTexture(r io.Reader, maxSide int) (*image.RGBA, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("empty image %dx%d", w, h)
	}

	if maxSide > 0 && (w > maxSide || h > maxSide) {
		if w >= h {
			h = max(1, h*maxSide/w)
			w = maxSide
		} else {
			w = max(1, w*maxSide/h)
			h = maxSide
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
		return dst, nil
	}

	if rgba, ok := src.(*image.RGBA); ok && bounds.Min == (image.Point{}) {
		return rgba, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return dst, nil
}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	ensureResource(app, NewAssetServer)
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
