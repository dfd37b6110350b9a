package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/agrilink/internal/client/models"
	"github.com/dmitrijs2005/agrilink/internal/client/state"
	"github.com/dmitrijs2005/agrilink/internal/common"
	"github.com/dmitrijs2005/agrilink/internal/logging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// NewProduct is the input of ProductService.Add. Image holds raw image bytes
// and may be empty.
type NewProduct struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"desc"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       []byte  `json:"-"`
}

type ProductService interface {
	ListOwned(ctx context.Context, session *models.Session) ([]models.Product, error)
	Add(ctx context.Context, session *models.Session, p NewProduct) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type productService struct {
	store    state.Products
	validate *validator.Validate
	newID    func() (string, error)
	logger   logging.Logger

	mu sync.Mutex
}

func NewProductService(store state.Products, logger logging.Logger) ProductService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &productService{
		store:    store,
		validate: newValidator(),
		newID:    newProductID,
		logger:   logger,
	}
}

// newProductID returns a time-ordered UUIDv7.
func newProductID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ListOwned returns the products whose owner is the session's email, in
// stored order. A nil session owns nothing.
func (s *productService) ListOwned(ctx context.Context, session *models.Session) ([]models.Product, error) {
	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	owned := make([]models.Product, 0, len(products))
	if session == nil {
		return owned, nil
	}
	for _, p := range products {
		if p.Owner == session.Email {
			owned = append(owned, p)
		}
	}
	return owned, nil
}

// Add stores a new product owned by session at the front of the table.
func (s *productService) Add(ctx context.Context, session *models.Session, p NewProduct) (*models.Product, error) {
	if session == nil {
		return nil, common.ErrAuthRequired
	}

	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	if err := validateStruct(s.validate, p); err != nil {
		return nil, err
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}

	product := models.Product{
		ID:          id,
		Owner:       session.Email,
		Name:        p.Name,
		Description: p.Description,
		Price:       models.Price(p.Price),
		Image:       imageDataURL(p.Image),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	products = append([]models.Product{product}, products...)
	if err := s.store.SaveProducts(ctx, products); err != nil {
		return nil, fmt.Errorf("save products: %w", err)
	}

	s.logger.Info(ctx, "product added", "id", product.ID, "owner", product.Owner)
	return &product, nil
}

// Delete removes every product with id. Deleting a missing id succeeds.
// Ownership is not checked here; callers only offer ids from ListOwned.
func (s *productService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}

	kept := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}

	if err := s.store.SaveProducts(ctx, kept); err != nil {
		return fmt.Errorf("save products: %w", err)
	}
	return nil
}

// imageDataURL encodes img as a base64 data URL of its detected media type.
func imageDataURL(img []byte) string {
	if len(img) == 0 {
		return ""
	}
	mediaType, _, _ := strings.Cut(mimetype.Detect(img).String(), ";")
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(img)
}
