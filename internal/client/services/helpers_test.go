package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/agrilink/internal/client/models"
	"github.com/dmitrijs2005/agrilink/internal/client/repositories/kv"
	"github.com/dmitrijs2005/agrilink/internal/client/state"
)

func newStore(t *testing.T) *state.Store {
	t.Helper()
	return state.NewStore(kv.NewMemoryRepository(), nil)
}

// fakeStore lets tests inject backend failures per table.
type fakeStore struct {
	users    []models.User
	session  *models.Session
	products []models.Product
	lang     string

	getUsersErr    error
	saveUsersErr   error
	setAuthErr     error
	clearAuthErr   error
	getProductsErr error
	saveProductErr error
	setLangErr     error

	saveUsersCalls int
}

func (f *fakeStore) GetUsers(context.Context) ([]models.User, error) {
	return append([]models.User(nil), f.users...), f.getUsersErr
}

func (f *fakeStore) SaveUsers(_ context.Context, users []models.User) error {
	f.saveUsersCalls++
	if f.saveUsersErr != nil {
		return f.saveUsersErr
	}
	f.users = users
	return nil
}

func (f *fakeStore) GetAuth(context.Context) (*models.Session, error) { return f.session, nil }

func (f *fakeStore) SetAuth(_ context.Context, s models.Session) error {
	if f.setAuthErr != nil {
		return f.setAuthErr
	}
	f.session = &s
	return nil
}

func (f *fakeStore) ClearAuth(context.Context) error {
	if f.clearAuthErr != nil {
		return f.clearAuthErr
	}
	f.session = nil
	return nil
}

func (f *fakeStore) GetProducts(context.Context) ([]models.Product, error) {
	return append([]models.Product(nil), f.products...), f.getProductsErr
}

func (f *fakeStore) SaveProducts(_ context.Context, products []models.Product) error {
	if f.saveProductErr != nil {
		return f.saveProductErr
	}
	f.products = products
	return nil
}

func (f *fakeStore) GetLang(context.Context) (string, error) {
	if f.lang == "" {
		return state.DefaultLang, nil
	}
	return f.lang, nil
}

func (f *fakeStore) SetLang(_ context.Context, tag string) error {
	if f.setLangErr != nil {
		return f.setLangErr
	}
	f.lang = tag
	return nil
}
