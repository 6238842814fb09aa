package service

import (
	"context"
	"sync"

	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/repository"
)

func remoteErr(status int, msg string) error {
	return &repository.APIError{StatusCode: status, Message: msg}
}

// fakeCartRepo is an in-memory remote cart.
type fakeCartRepo struct {
	mu       sync.Mutex
	lines    []domain.CartLine
	products map[int64]domain.Product
	fail     error
	calls    []string
	during   func()
}

func (f *fakeCartRepo) enter(call string) error {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	during, fail := f.during, f.fail
	f.mu.Unlock()

	if during != nil && call != "lines" {
		during()
	}
	return fail
}

func (f *fakeCartRepo) Lines(ctx context.Context) ([]domain.CartLine, error) {
	if err := f.enter("lines"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.CartLine(nil), f.lines...), nil
}

func (f *fakeCartRepo) Add(ctx context.Context, productID int64, quantity int) (domain.CartLine, error) {
	if err := f.enter("add"); err != nil {
		return domain.CartLine{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.lines {
		if f.lines[i].ProductID == productID {
			f.lines[i].Quantity += quantity
			return f.lines[i], nil
		}
	}
	line := domain.CartLine{ID: int64(len(f.lines) + 1), ProductID: productID, Quantity: quantity}
	if p, ok := f.products[productID]; ok {
		line.Product = &p
	}
	f.lines = append(f.lines, line)
	return line, nil
}

func (f *fakeCartRepo) SetQuantity(ctx context.Context, productID int64, quantity int) (domain.CartLine, error) {
	if err := f.enter("set"); err != nil {
		return domain.CartLine{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.lines {
		if f.lines[i].ProductID == productID {
			f.lines[i].Quantity = quantity
			return f.lines[i], nil
		}
	}
	return domain.CartLine{}, remoteErr(404, "Not in cart")
}

func (f *fakeCartRepo) Remove(ctx context.Context, productID int64) error {
	if err := f.enter("remove"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.lines[:0]
	for _, l := range f.lines {
		if l.ProductID != productID {
			out = append(out, l)
		}
	}
	f.lines = out
	return nil
}

func (f *fakeCartRepo) Clear(ctx context.Context) error {
	if err := f.enter("clear"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = nil
	return nil
}

type fakeProductRepo struct {
	products []domain.Product
	nextID   int64
	fail     error
	uploaded []domain.CoverImage
}

func (f *fakeProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return append([]domain.Product(nil), f.products...), nil
}

func (f *fakeProductRepo) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	if f.fail != nil {
		return domain.Product{}, f.fail
	}
	f.nextID++
	return domain.Product{ID: f.nextID, Title: in.Title, Price: in.Price, Status: in.Status}, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, id int64, in domain.ProductInput) (domain.Product, error) {
	if f.fail != nil {
		return domain.Product{}, f.fail
	}
	return domain.Product{ID: id, Title: in.Title, Price: in.Price, Status: in.Status}, nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id int64) error {
	return f.fail
}

func (f *fakeProductRepo) UploadCover(ctx context.Context, id int64, img domain.CoverImage) (domain.Product, error) {
	if f.fail != nil {
		return domain.Product{}, f.fail
	}
	f.uploaded = append(f.uploaded, img)
	path := "products/" + img.Filename
	return domain.Product{ID: id, Title: "with cover", CoverImagePath: &path}, nil
}

func (f *fakeProductRepo) AddImage(ctx context.Context, id int64, path string, position *int) (domain.ProductImage, error) {
	if f.fail != nil {
		return domain.ProductImage{}, f.fail
	}
	return domain.ProductImage{ID: 1, Path: &path, Position: position}, nil
}

type fakeGoldRepo struct {
	latest      domain.GoldQuote
	series      domain.GoldSeries
	fail        error
	historyDays []int
	latestCalls int
}

func (f *fakeGoldRepo) Latest(ctx context.Context) (domain.GoldQuote, error) {
	f.latestCalls++
	return f.latest, f.fail
}

func (f *fakeGoldRepo) History(ctx context.Context, days, karat int) (domain.GoldSeries, error) {
	f.historyDays = append(f.historyDays, days)
	return f.series, f.fail
}

type fakeUserDataRepo struct {
	sizes     []domain.SavedSize
	favorites []domain.Favorite
	upserts   map[domain.SizeKind]domain.SizeInput
	fail      error
	reloads   int
}

func (f *fakeUserDataRepo) Sizes(ctx context.Context) ([]domain.SavedSize, error) {
	f.reloads++
	return append([]domain.SavedSize(nil), f.sizes...), nil
}

func (f *fakeUserDataRepo) UpsertSize(ctx context.Context, kind domain.SizeKind, in domain.SizeInput) (domain.SavedSize, error) {
	if f.fail != nil {
		return domain.SavedSize{}, f.fail
	}
	if f.upserts == nil {
		f.upserts = make(map[domain.SizeKind]domain.SizeInput)
	}
	f.upserts[kind] = in
	saved := domain.SavedSize{ID: int64(len(f.sizes) + 1), Kind: string(kind), DiameterMM: in.DiameterMM, CircumferenceMM: in.CircumferenceMM}
	f.sizes = append(f.sizes, saved)
	return saved, nil
}

func (f *fakeUserDataRepo) DeleteSize(ctx context.Context, id int64) error {
	if f.fail != nil {
		return f.fail
	}
	out := f.sizes[:0]
	for _, s := range f.sizes {
		if s.ID != id {
			out = append(out, s)
		}
	}
	f.sizes = out
	return nil
}

func (f *fakeUserDataRepo) Favorites(ctx context.Context) ([]domain.Favorite, error) {
	return append([]domain.Favorite(nil), f.favorites...), nil
}

func (f *fakeUserDataRepo) AddFavorite(ctx context.Context, productID int64) (domain.Favorite, error) {
	if f.fail != nil {
		return domain.Favorite{}, f.fail
	}
	fav := domain.Favorite{ID: int64(len(f.favorites) + 1), ProductID: productID}
	f.favorites = append(f.favorites, fav)
	return fav, nil
}

func (f *fakeUserDataRepo) RemoveFavorite(ctx context.Context, productID int64) error {
	if f.fail != nil {
		return f.fail
	}
	out := f.favorites[:0]
	for _, fav := range f.favorites {
		if fav.ProductID != productID {
			out = append(out, fav)
		}
	}
	f.favorites = out
	return nil
}

type fakeAuthRepo struct {
	result domain.AuthResult
	fail   error
	got    domain.Registration
}

func (f *fakeAuthRepo) Register(ctx context.Context, reg domain.Registration) (domain.AuthResult, error) {
	f.got = reg
	return f.result, f.fail
}

func (f *fakeAuthRepo) Login(ctx context.Context, email, password string) (domain.AuthResult, error) {
	return f.result, f.fail
}

type memCredentials struct {
	mu    sync.Mutex
	creds map[int64]domain.Credential
}

func newMemCredentials() *memCredentials {
	return &memCredentials{creds: make(map[int64]domain.Credential)}
}

func (m *memCredentials) Save(ctx context.Context, cred domain.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds[cred.UserID] = cred
	return nil
}

func (m *memCredentials) FindByUserID(ctx context.Context, userID int64) (domain.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cred, ok := m.creds[userID]
	if !ok {
		return domain.Credential{}, repository.ErrCredentialNotFound
	}
	return cred, nil
}

func (m *memCredentials) Delete(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.creds, userID)
	return nil
}
