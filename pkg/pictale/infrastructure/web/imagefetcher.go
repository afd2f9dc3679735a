package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"kgeyst.com/pictale/pkg/common"
	"kgeyst.com/pictale/pkg/pictale/domain"
)

const (
	// ConfigKeyMaxDownloadSize the biggest image or page we agree to download, in bytes
	ConfigKeyMaxDownloadSize = "maxDownloadSize"
	// ConfigKeyDownloadTimeout in milliseconds
	ConfigKeyDownloadTimeout = "downloadTimeout"
)

var errNoImageFound = errors.New("no image found on the page")

var pageExtensions = []string{"", "html", "htm", "shtml", "php", "asp", "aspx"}

// ImageFetcher turns a URL posted by a user into an upload: either the URL points to a picture directly, or to a
// web page whose preview picture (og:image) or first <img> is used.
type ImageFetcher struct {
	client  *http.Client
	maxSize int64
}

func NewImageFetcher(config *common.Config) *ImageFetcher {
	return &ImageFetcher{
		client:  &http.Client{Timeout: config.GetDurationOrDefault(ConfigKeyDownloadTimeout, 30*time.Second)},
		maxSize: int64(config.GetIntOrDefault(ConfigKeyMaxDownloadSize, 10<<20)),
	}
}

// Fetch downloads the picture behind `rawURL`. The upload is named after the last path segment of the picture's URL.
// If that name has an extension which the upload gate would reject anyway, nothing is downloaded and the upload is
// returned without data.
func (f *ImageFetcher) Fetch(ctx context.Context, rawURL string) (domain.UploadedImage, error) {
	imageURL := rawURL
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return domain.UploadedImage{}, err
	}
	if common.IsStringInSlice(common.FileExtension(path.Base(parsedURL.Path)), pageExtensions) {
		imageURL, err = f.FindImageURL(ctx, rawURL)
		if err != nil {
			return domain.UploadedImage{}, err
		}
		parsedURL, err = url.Parse(imageURL)
		if err != nil {
			return domain.UploadedImage{}, err
		}
	}
	name := path.Base(parsedURL.Path)
	if !common.IsImageFormat(name, domain.AllowedImageExtensions) {
		return domain.UploadedImage{Name: name}, nil
	}
	data, err := common.ReadAllFromURL(ctx, f.client, imageURL, f.maxSize)
	if err != nil {
		return domain.UploadedImage{}, fmt.Errorf("download image: %w", err)
	}
	return domain.UploadedImage{Name: name, Data: data}, nil
}

// FindImageURL returns the absolute URL of the preview picture of the page.
func (f *ImageFetcher) FindImageURL(ctx context.Context, pageURL string) (string, error) {
	page, err := common.ReadAllFromURL(ctx, f.client, pageURL, f.maxSize)
	if err != nil {
		return "", fmt.Errorf("download page: %w", err)
	}
	document, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", err
	}
	candidate, ok := document.Find(`meta[property="og:image"]`).First().Attr("content")
	if !ok || strings.TrimSpace(candidate) == "" {
		candidate, ok = document.Find("img[src]").First().Attr("src")
	}
	candidate = strings.TrimSpace(candidate)
	if !ok || candidate == "" {
		return "", errNoImageFound
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	reference, err := url.Parse(candidate)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(reference).String(), nil
}
