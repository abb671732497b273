package md2docx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/imageinfo"
)

// MaxImageSize is the largest image the default fetcher accepts.
const MaxImageSize = 64 << 20

// defaultImageTimeout bounds a single remote image download.
const defaultImageTimeout = 15 * time.Second

// ImageFetcher loads image bytes by reference: a file path, or a URL.
type ImageFetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// ImageFetcherFunc adapts a function to ImageFetcher.
type ImageFetcherFunc func(ctx context.Context, ref string) ([]byte, error)

// Fetch calls f.
func (f ImageFetcherFunc) Fetch(ctx context.Context, ref string) ([]byte, error) {
	return f(ctx, ref)
}

// NewImageFetcher returns a fetcher that reads local files. If client is
// non-nil, http and https references are downloaded with it; otherwise they
// fail with ErrRemoteImageDisabled.
func NewImageFetcher(client *http.Client) ImageFetcher {
	return &imageFetcher{client: client}
}

type imageFetcher struct {
	client *http.Client
}

func (f *imageFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if fileutil.IsURL(ref) {
		if f.client == nil {
			return nil, fmt.Errorf("%w: %s", ErrRemoteImageDisabled, ref)
		}
		return f.fetchRemote(ctx, ref)
	}
	return f.readLocal(ref)
}

func (f *imageFetcher) readLocal(path string) ([]byte, error) {
	file, err := os.Open(path) // #nosec G304 -- image paths come from the document being converted
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	defer func() { _ = file.Close() }()

	return readImage(path, file)
}

func (f *imageFetcher) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: HTTP %d", ErrImageLoad, url, resp.StatusCode)
	}
	return readImage(url, resp.Body)
}

func readImage(ref string, r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageLoad, ref, err)
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrImageLoad, ref, MaxImageSize)
	}
	return data, nil
}

// loadImage fetches the image at path and identifies it.
func loadImage(ctx context.Context, fetcher ImageFetcher, path string, defaultDPI float64) ([]byte, *imageinfo.Info, error) {
	data, err := fetcher.Fetch(ctx, path)
	if err != nil {
		if errors.Is(err, ErrRemoteImageDisabled) || errors.Is(err, ErrImageLoad) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrImageLoad, path, err)
	}

	info, err := imageinfo.Probe(path, data, defaultDPI)
	if err != nil {
		if errors.Is(err, imageinfo.ErrUnrecognizedFormat) {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnrecognizedResourceType, path)
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	return data, info, nil
}

func imageResource(path string, info *imageinfo.Info) ImageResource {
	return ImageResource{
		Ref:         path,
		Format:      info.Format.Name,
		PixelWidth:  info.Width,
		PixelHeight: info.Height,
		DPIX:        info.DPIX,
		DPIY:        info.DPIY,
	}
}

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultImageTimeout}
}
