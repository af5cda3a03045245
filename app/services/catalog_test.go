package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/pkg/cache"
	"github.com/shashiranjanraj/bookstore/pkg/event"
	"github.com/shashiranjanraj/bookstore/pkg/storage"
	"github.com/shashiranjanraj/bookstore/pkg/testkit"
)

func newCatalog(t *testing.T, db *gorm.DB, assets services.AssetStore, events *event.Dispatcher) (*services.CatalogService, *services.AccessService) {
	t.Helper()
	access := services.NewAccessService(db, events, nil)
	return services.NewCatalogService(db, assets, access, cache.NewMemory(), 0, events, nil), access
}

func validBook() services.NewBook {
	return services.NewBook{
		Title:  "Dune",
		Author: "Frank Herbert",
		Price:  9.99,
		Image:  &services.Asset{Data: []byte("png-bytes"), ContentType: "image/png"},
		PDF:    &services.Asset{Data: []byte("%PDF-1.4"), ContentType: "application/pdf"},
	}
}

func TestCatalogCreateValidates(t *testing.T) {
	db := testkit.NewDB(t)
	svc, _ := newCatalog(t, db, services.RowAssets{}, nil)

	cases := map[string]func(*services.NewBook){
		"missing title":  func(b *services.NewBook) { b.Title = " " },
		"negative price": func(b *services.NewBook) { b.Price = -1 },
		"missing image":  func(b *services.NewBook) { b.Image = nil },
		"image not image": func(b *services.NewBook) {
			b.Image = &services.Asset{Data: []byte("x"), ContentType: "text/plain"}
		},
		"pdf not pdf": func(b *services.NewBook) {
			b.PDF = &services.Asset{Data: []byte("x"), ContentType: "application/zip"}
		},
	}
	for name, mutate := range cases {
		in := validBook()
		mutate(&in)
		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, services.ErrValidation, name)
	}
	assert.EqualValues(t, 0, count(t, db, &models.Book{}))
}

func TestPDFRequiresPayment(t *testing.T) {
	db := testkit.NewDB(t)
	events := event.NewDispatcher()
	rec := record(events, event.AccessDenied)
	svc, access := newCatalog(t, db, services.RowAssets{}, events)

	ann := seedUser(t, db, "ann", models.RoleUser)
	book, err := svc.Create(ctx, validBook())
	require.NoError(t, err)
	assert.True(t, book.HasPDF)

	_, err = svc.PDF(ctx, ann.UserID, book.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)
	assert.Len(t, rec.get(event.AccessDenied), 1)

	_, err = access.Pay(ctx, ann.UserID, book.ID)
	require.NoError(t, err)

	pdf, err := svc.PDF(ctx, ann.UserID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdf.ContentType)
	assert.Equal(t, []byte("%PDF-1.4"), pdf.Data)
}

func TestPDFLookupOrder(t *testing.T) {
	db := testkit.NewDB(t)
	svc, access := newCatalog(t, db, services.RowAssets{}, nil)
	ann := seedUser(t, db, "ann", models.RoleUser)

	_, err := svc.PDF(ctx, ann.UserID, uuid.New())
	assert.ErrorIs(t, err, services.ErrNotFound)

	in := validBook()
	in.PDF = nil
	book, err := svc.Create(ctx, in)
	require.NoError(t, err)

	_, err = svc.PDF(ctx, ann.UserID, book.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = access.Pay(ctx, ann.UserID, book.ID)
	require.NoError(t, err)
	_, err = svc.PDF(ctx, ann.UserID, book.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestImageIsPublic(t *testing.T) {
	db := testkit.NewDB(t)
	svc, _ := newCatalog(t, db, services.RowAssets{}, nil)

	book, err := svc.Create(ctx, validBook())
	require.NoError(t, err)

	img, err := svc.Image(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, []byte("png-bytes"), img.Data)

	_, err = svc.Image(ctx, uuid.New())
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCatalogUpdateKeepsMissingFields(t *testing.T) {
	db := testkit.NewDB(t)
	clk := newClock()
	access := services.NewAccessService(db, nil, nil)
	svc := services.NewCatalogService(db, services.RowAssets{}, access, nil, 0, nil, clk.Now)

	book, err := svc.Create(ctx, validBook())
	require.NoError(t, err)

	clk.Set(t0.Add(5 * time.Minute))
	price := 4.5
	updated, err := svc.Update(ctx, book.ID, services.BookChanges{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Dune", updated.Title)
	assert.Equal(t, 4.5, updated.Price)
	assert.True(t, updated.UpdatedAt.After(book.UpdatedAt))

	empty := ""
	_, err = svc.Update(ctx, book.ID, services.BookChanges{Title: &empty})
	assert.ErrorIs(t, err, services.ErrValidation)
	_, err = svc.Update(ctx, uuid.New(), services.BookChanges{Price: &price})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCatalogDeleteCleansUp(t *testing.T) {
	db := testkit.NewDB(t)
	svc, access := newCatalog(t, db, services.RowAssets{}, nil)
	ratings := services.NewRatingService(db, nil, nil)
	cart := services.NewCartService(db, nil)
	orders := services.NewOrderService(db, nil, nil)

	ann := seedUser(t, db, "ann", models.RoleUser)
	book, err := svc.Create(ctx, validBook())
	require.NoError(t, err)

	_, err = access.Pay(ctx, ann.UserID, book.ID)
	require.NoError(t, err)
	_, err = ratings.Submit(ctx, ann.UserID, book.ID, 4)
	require.NoError(t, err)
	_, err = cart.Add(ctx, ann.UserID, book.ID, 1)
	require.NoError(t, err)
	order, err := orders.Place(ctx, ann.UserID, []services.LineItem{{BookID: book.ID, Quantity: 1}})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, book.ID))

	assert.EqualValues(t, 0, count(t, db, &models.Book{}))
	assert.EqualValues(t, 0, count(t, db, &models.Payment{}))
	assert.EqualValues(t, 0, count(t, db, &models.Rating{}))
	assert.EqualValues(t, 0, count(t, db, &models.CartItem{}))

	kept, err := orders.Get(ctx, ann, order.ID)
	require.NoError(t, err)
	require.Len(t, kept.Items, 1)
	assert.Equal(t, "Dune", kept.Items[0].Title)

	assert.ErrorIs(t, svc.Delete(ctx, book.ID), services.ErrNotFound)
}

func TestCatalogListIsCached(t *testing.T) {
	db := testkit.NewDB(t)
	store := cache.NewMemory()
	access := services.NewAccessService(db, nil, nil)
	svc := services.NewCatalogService(db, services.RowAssets{}, access, store, 0, nil, nil)

	seedBook(t, db, "Dune", 10)
	books, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Empty(t, books[0].ImageData)

	seedBook(t, db, "Emma", 4)
	books, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1, "served from cache")

	require.NoError(t, store.Del(ctx, services.CatalogCacheKey))
	books, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestDiskAssetsShareAndRelease(t *testing.T) {
	db := testkit.NewDB(t)
	disk := storage.NewLocal(t.TempDir())
	assets, err := services.NewAssetStore("disk", disk)
	require.NoError(t, err)
	svc, _ := newCatalog(t, db, assets, nil)

	first, err := svc.Create(ctx, validBook())
	require.NoError(t, err)
	second, err := svc.Create(ctx, validBook())
	require.NoError(t, err)
	assert.Empty(t, first.ImageData)

	img, err := svc.Image(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), img.Data)

	key := first.ImageKey
	require.NotEmpty(t, key)
	assert.Equal(t, key, second.ImageKey)

	require.NoError(t, svc.Delete(ctx, first.ID))
	ok, err := disk.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok, "blob still referenced by the second book")

	require.NoError(t, svc.Delete(ctx, second.ID))
	ok, err = disk.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewAssetStoreRejectsUnknownDriver(t *testing.T) {
	_, err := services.NewAssetStore("tape", nil)
	assert.Error(t, err)
	_, err = services.NewAssetStore("disk", nil)
	assert.Error(t, err)
}
