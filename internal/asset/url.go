package asset

import (
	"fmt"

	"github.com/whitesgr03/local-inventory/internal/model"
)

// Variants are the transform sizes offered on product detail views.
var Variants = []int{300, 400, 600}

// Resolver builds public URLs for product images. Pending assets are
// served straight from the storage host with a cache-busting version
// parameter; confirmed assets go through the CDN bucket path with a
// fixed extension.
type Resolver struct {
	StorageBaseURL string
	CDNBaseURL     string
	PendingBucket  string
	ConfirmedPath  string
}

// ImageURLs is the resolved set of image URLs for one product.
type ImageURLs struct {
	Default string `json:"default"`
	Size300 string `json:"300"`
	Size400 string `json:"400"`
	Size600 string `json:"600"`
}

// URL resolves the image URL for a product at the given variant size.
// size 0 means the canonical image. The host follows the lifecycle
// phase: pending assets are served from the storage host, confirmed
// ones through the CDN. The query-separator rule differs by phase
// too: pending URLs already carry "?v=<modified>" so the transform
// joins with "&"; confirmed URLs start their query with "?".
func (r Resolver) URL(p *model.Product, size int) string {
	key := DeriveKey(p.Name)

	if p.Expired.IsInfinite() {
		url := fmt.Sprintf("%s/%s/%s.jpg", r.CDNBaseURL, r.ConfirmedPath, key)
		if size > 0 {
			url += fmt.Sprintf("?transform=%dx%d", size, size)
		}
		return url
	}

	url := fmt.Sprintf("%s/%s/%s?v=%d", r.StorageBaseURL, r.PendingBucket, key, p.Modified.UnixMilli())
	if size > 0 {
		url += fmt.Sprintf("&transform=%dx%d", size, size)
	}
	return url
}

// URLs resolves the canonical URL plus every transform variant.
func (r Resolver) URLs(p *model.Product) ImageURLs {
	return ImageURLs{
		Default: r.URL(p, 0),
		Size300: r.URL(p, 300),
		Size400: r.URL(p, 400),
		Size600: r.URL(p, 600),
	}
}
