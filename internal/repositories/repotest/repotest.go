// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	apperrors "interview-booking-api/internal/errors"
	"interview-booking-api/internal/models"
	"interview-booking-api/internal/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ repositories.UserRepository    = (*Users)(nil)
	_ repositories.CompanyRepository = (*Companies)(nil)
	_ repositories.BookingRepository = (*Bookings)(nil)
	_ repositories.CompanyCache      = (*CompanyCache)(nil)
)

type Users struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func NewUsers() *Users {
	return &Users{users: map[primitive.ObjectID]*models.User{}}
}

func (f *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *Users) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *Users) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return fmt.Errorf("email %s: %w", user.Email, apperrors.ErrDuplicate)
		}
	}
	f.users[user.ID] = user
	return nil
}

type Companies struct {
	mu        sync.Mutex
	companies map[primitive.ObjectID]*models.Company
	LastQuery *models.CompanyQuery
	Finds     int
}

func NewCompanies(seed ...*models.Company) *Companies {
	f := &Companies{companies: map[primitive.ObjectID]*models.Company{}}
	for _, c := range seed {
		f.companies[c.ID] = c
	}
	return f
}

func (f *Companies) Find(_ context.Context, q *models.CompanyQuery) ([]models.Company, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Finds++
	f.LastQuery = q
	out := []models.Company{}
	for _, c := range f.companies {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (f *Companies) FindByID(_ context.Context, id primitive.ObjectID) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.companies[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *Companies) Create(_ context.Context, company *models.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.companies {
		if c.Name == company.Name {
			return fmt.Errorf("company name %q: %w", company.Name, apperrors.ErrDuplicate)
		}
	}
	f.companies[company.ID] = company
	return nil
}

func (f *Companies) Update(_ context.Context, id primitive.ObjectID, input *models.CompanyInput) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.companies[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if input.Name != "" {
		c.Name = input.Name
	}
	if input.Address != "" {
		c.Address = input.Address
	}
	copied := *c
	return &copied, nil
}

func (f *Companies) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.companies[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.companies, id)
	return nil
}

type Bookings struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]*models.Booking
}

func NewBookings() *Bookings {
	return &Bookings{bookings: map[primitive.ObjectID]*models.Booking{}}
}

func (f *Bookings) Find(_ context.Context, filter repositories.BookingFilter) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Booking{}
	for _, b := range f.bookings {
		if filter.User != nil && b.User != *filter.User {
			continue
		}
		if filter.Company != nil && b.Company != *filter.Company {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (f *Bookings) FindByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.bookings[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *Bookings) CountByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, b := range f.bookings {
		if b.User == userID {
			n++
		}
	}
	return n, nil
}

func (f *Bookings) Create(_ context.Context, booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[booking.ID] = booking
	return nil
}

func (f *Bookings) Update(_ context.Context, id primitive.ObjectID, input *models.BookingInput) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	b.BookingDate = input.BookingDate
	copied := *b
	return &copied, nil
}

func (f *Bookings) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bookings[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.bookings, id)
	return nil
}

func (f *Bookings) DeleteByCompany(_ context.Context, companyID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, b := range f.bookings {
		if b.Company == companyID {
			delete(f.bookings, id)
			n++
		}
	}
	return n, nil
}

// CompanyCache is an in-process repositories.CompanyCache.
type CompanyCache struct {
	mu        sync.Mutex
	Companies map[string]*models.Company
	Lists     map[string]*models.CompanyList
}

func NewCompanyCache() *CompanyCache {
	return &CompanyCache{Companies: map[string]*models.Company{}, Lists: map[string]*models.CompanyList{}}
}

func (m *CompanyCache) GetCompany(_ context.Context, id string) (*models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Companies[id], nil
}

func (m *CompanyCache) SetCompany(_ context.Context, company *models.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Companies[company.ID.Hex()] = company
	return nil
}

func (m *CompanyCache) GetList(_ context.Context, query url.Values) (*models.CompanyList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Lists[query.Encode()], nil
}

func (m *CompanyCache) SetList(_ context.Context, query url.Values, list *models.CompanyList) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lists[query.Encode()] = list
	return nil
}

func (m *CompanyCache) Invalidate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Companies, id)
	m.Lists = map[string]*models.CompanyList{}
	return nil
}
