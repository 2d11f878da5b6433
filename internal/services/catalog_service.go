package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shoecrew/internal/domain"
	applog "shoecrew/internal/log"
)

type CatalogService struct {
	Products ProductStore
	Blobs    BlobStore
}

type ProductInput struct {
	Title       string
	Price       float64
	Stock       int
	Sizes       []string
	Description string
	Category    string
	Brand       string
}

// ImageUpload is one multipart image destined for blob storage.
type ImageUpload struct {
	Name        string
	ContentType string
	Body        io.Reader
}

func (s *CatalogService) All(ctx context.Context) ([]domain.Product, error) {
	return s.Products.All(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.Products.ByID(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create uploads each image first; a failed upload aborts the product.
// Keys are timestamp-qualified so repeated filenames never collide.
func (s *CatalogService) Create(ctx context.Context, owner primitive.ObjectID, in ProductInput, images []ImageUpload) (*domain.Product, error) {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		key := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), img.Name)
		url, err := s.Blobs.Put(ctx, key, img.ContentType, img.Body)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	p := &domain.Product{
		OwnerID:     owner,
		Title:       in.Title,
		Price:       in.Price,
		Stock:       in.Stock,
		Sizes:       in.Sizes,
		Description: in.Description,
		Images:      urls,
		Category:    in.Category,
		Brand:       in.Brand,
	}
	if _, err := s.Products.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) Update(ctx context.Context, admin primitive.ObjectID, id string, patch domain.ProductPatch) (*domain.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != admin {
		return nil, ErrNotOwner
	}
	updated, err := s.Products.Update(ctx, id, patch)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes the image blobs best-effort before dropping the
// document; a blob failure is logged and skipped.
func (s *CatalogService) Delete(ctx context.Context, admin primitive.ObjectID, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.OwnerID != admin {
		return ErrNotOwner
	}
	for _, url := range p.Images {
		key := s.Blobs.KeyFromURL(url)
		if key == "" {
			continue
		}
		if err := s.Blobs.Delete(ctx, key); err != nil {
			applog.System("products.blob.delete", err, map[string]any{"key": key})
		}
	}
	if err := s.Products.Delete(ctx, id); err != nil {
		if notFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
