// Package state is the local state store: the Users, Session (auth),
// Products and locale tables, each kept as one JSON document under a fixed
// key of a kv.Repository.
//
// # Fallback policy
//
// A missing key or a document that does not decode reads as the table's
// default: an empty list, no session, the default locale. Corrupted data is
// logged at warn level and otherwise ignored; the next write replaces it.
// Only backend failures are returned as errors.
//
// # Concurrency
//
// Every write replaces the whole document. Two processes doing
// read-modify-write on the same table race and the last write wins.
package state

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/agrilink/internal/client/models"
	"github.com/dmitrijs2005/agrilink/internal/client/repositories/kv"
	"github.com/dmitrijs2005/agrilink/internal/common"
	"github.com/dmitrijs2005/agrilink/internal/logging"
)

// DefaultLang is returned by GetLang when nothing valid is stored.
const DefaultLang = "en"

type Users interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	SaveUsers(ctx context.Context, users []models.User) error
}

type Auth interface {
	GetAuth(ctx context.Context) (*models.Session, error)
	SetAuth(ctx context.Context, s models.Session) error
	ClearAuth(ctx context.Context) error
}

type Products interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	SaveProducts(ctx context.Context, products []models.Product) error
}

type Locale interface {
	GetLang(ctx context.Context) (string, error)
	SetLang(ctx context.Context, tag string) error
}

// Store implements Users, Auth, Products and Locale over one repository.
type Store struct {
	repo   kv.Repository
	logger logging.Logger
}

func NewStore(repo kv.Repository, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{repo: repo, logger: logger}
}

// decode unmarshals a stored document. A nil raw value or JSON null means
// absent; anything that fails to decode is ErrStorageCorruption.
func decode[T any](raw []byte) (T, bool, error) {
	var v T
	if raw == nil {
		return v, false, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("%w: %v", common.ErrStorageCorruption, err)
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return v, false, nil
	}
	return v, true, nil
}

// read loads key and applies the fallback policy.
func read[T any](ctx context.Context, s *Store, key string) (T, bool, error) {
	var zero T
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		return zero, false, fmt.Errorf("read %s: %w", key, err)
	}

	v, ok, err := decode[T](raw)
	if err != nil {
		s.logger.Warn(ctx, "stored table is corrupted, reading it as empty", "key", key, "error", err)
		return zero, false, nil
	}
	return v, ok, nil
}

func write(ctx context.Context, s *Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.repo.Set(ctx, key, b); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) GetUsers(ctx context.Context) ([]models.User, error) {
	users, _, err := read[[]models.User](ctx, s, common.KeyUsers)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (s *Store) SaveUsers(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	return write(ctx, s, common.KeyUsers, users)
}

func (s *Store) GetAuth(ctx context.Context) (*models.Session, error) {
	session, ok, err := read[models.Session](ctx, s, common.KeyAuth)
	if err != nil || !ok {
		return nil, err
	}
	return &session, nil
}

func (s *Store) SetAuth(ctx context.Context, session models.Session) error {
	return write(ctx, s, common.KeyAuth, session)
}

// ClearAuth removes the session key entirely.
func (s *Store) ClearAuth(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.KeyAuth); err != nil {
		return fmt.Errorf("clear %s: %w", common.KeyAuth, err)
	}
	return nil
}

func (s *Store) GetProducts(ctx context.Context) ([]models.Product, error) {
	products, _, err := read[[]models.Product](ctx, s, common.KeyProducts)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (s *Store) SaveProducts(ctx context.Context, products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	return write(ctx, s, common.KeyProducts, products)
}

// GetLang returns the stored locale tag. The tag is stored as a bare string,
// not as JSON.
func (s *Store) GetLang(ctx context.Context) (string, error) {
	raw, err := s.repo.Get(ctx, common.KeyLang)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", common.KeyLang, err)
	}
	if len(raw) == 0 {
		return DefaultLang, nil
	}
	return string(raw), nil
}

func (s *Store) SetLang(ctx context.Context, tag string) error {
	if err := s.repo.Set(ctx, common.KeyLang, []byte(tag)); err != nil {
		return fmt.Errorf("write %s: %w", common.KeyLang, err)
	}
	return nil
}
