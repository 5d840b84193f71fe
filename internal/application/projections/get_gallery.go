package projections

import (
	"context"

	"trust/internal/adapters/storage/gallery"
	domainGallery "trust/internal/domain/gallery"
)

// GalleryCategory is one filter tab on the gallery page.
type GalleryCategory struct {
	Value  string
	Label  string
	Active bool
}

// GalleryResult carries the output of the gallery projection.
type GalleryResult struct {
	Category   string
	Categories []GalleryCategory
	Images     []domainGallery.Image
}

// QueryGetGallery lists gallery images, newest first, optionally narrowed
// to one category. An unknown category shows everything.
func QueryGetGallery(ctx context.Context, category string, store GalleryStore) (GalleryResult, error) {
	if !domainGallery.IsValidCategory(category) {
		category = ""
	}
	images, err := store.List(ctx, gallery.ListFilter{Category: category})
	if err != nil {
		return GalleryResult{}, err
	}
	result := GalleryResult{Category: category, Images: images}
	for _, c := range domainGallery.ValidCategories {
		result.Categories = append(result.Categories, GalleryCategory{
			Value:  c,
			Label:  domainGallery.CategoryLabel(c),
			Active: c == category,
		})
	}
	return result, nil
}
