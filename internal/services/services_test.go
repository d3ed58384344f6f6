package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"DripmenStore/internal/catalog"
	"DripmenStore/internal/events"
	"DripmenStore/internal/model"
	"DripmenStore/internal/repository"
	"DripmenStore/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store     store.Store
	auth      *repository.AuthRepository
	carts     *repository.CartRepository
	wishlists *repository.WishlistRepository
	addrRepo  *repository.AddressRepository
	orderRepo *repository.OrderRepository
	recorder  *events.Recorder

	cart     *CartService
	wishlist *WishlistService
	orders   *OrderService
	address  *AddressService
	cards    *CardService
	users    *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s, err := store.OpenBolt(filepath.Join(t.TempDir(), "dripmen.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	bus := events.NewBus()
	rec, err := events.NewRecorder(bus)
	require.NoError(t, err)

	cat := catalog.New([]model.Product{
		{ID: "A", Name: "Alpha Tee", Price: 50, Image: "a.png", Rating: 4, Category: "tshirts", Color: "Red", Sizes: []string{"M", "L"}},
		{ID: "B", Name: "Beta Cap", Price: 25, Image: "b.png", Rating: 3, Category: "accessories", Color: "Black"},
		{ID: "C", Name: "Gamma Coat", Price: 199.99, Image: "c.png", Rating: 5, Category: "jackets", Color: "Blue", Sizes: []string{"L"}},
	})

	f := &fixture{
		store:     s,
		auth:      repository.NewAuthRepository(s),
		carts:     repository.NewCartRepository(s),
		wishlists: repository.NewWishlistRepository(s),
		addrRepo:  repository.NewAddressRepository(s),
		orderRepo: repository.NewOrderRepository(s),
		recorder:  rec,
	}
	pricing := model.DefaultPricing()
	f.cart = NewCartService(f.carts, f.wishlists, cat, f.auth, bus, pricing)
	f.wishlist = NewWishlistService(f.wishlists, f.carts, cat, f.auth, bus)
	f.orders = NewOrderService(f.orderRepo, f.carts, f.addrRepo, f.auth, bus, pricing)
	f.orders.Now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }
	f.address = NewAddressService(f.addrRepo, bus)
	f.cards = NewCardService(repository.NewCardRepository(s), bus)
	f.users = NewAuthService(f.auth, FormatValidator{}, bus)
	return f
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	require.NoError(t, f.auth.SetAuthenticated(context.Background(), true))
}

func validCheckout() model.CheckoutInput {
	return model.CheckoutInput{
		AddressInput: model.AddressInput{
			Name:   "Sam Carter",
			Email:  "sam@example.com",
			Mobile: "(012) 345-6789",
			Street: "1 Road",
			City:   "Town",
		},
		PaymentMethod: model.PaymentCOD,
	}
}

func TestComputeSummaryThreshold(t *testing.T) {
	p := model.DefaultPricing()
	line := func(price float64) []model.CartLine {
		return []model.CartLine{{ID: "x", Name: "x", Price: price, Quantity: 1}}
	}

	sum := ComputeSummary(line(199.99), p)
	assert.Equal(t, 20.0, sum.Delivery)
	assert.Equal(t, 219.99, sum.Total)
	assert.False(t, sum.FreeShipping)
	assert.Equal(t, 0.01, sum.RemainingForFree)

	sum = ComputeSummary(line(200), p)
	assert.Equal(t, 0.0, sum.Delivery)
	assert.Equal(t, 200.0, sum.Total)
	assert.True(t, sum.FreeShipping)
	assert.Equal(t, 100.0, sum.FreeShippingProgress)

	sum = ComputeSummary(nil, p)
	assert.Equal(t, 0.0, sum.Delivery)
	assert.Equal(t, 0.0, sum.Total)

	sum = ComputeSummary([]model.CartLine{{Price: 25, Quantity: 2}}, p)
	assert.Equal(t, 25.0, sum.FreeShippingProgress)
	assert.Equal(t, 70.0, sum.Total)
}

func TestMergeLineIdentity(t *testing.T) {
	var lines []model.CartLine
	red := model.CartLine{ID: "A", Name: "Alpha", Price: 10, Size: "M", Color: "Red", Quantity: 1}

	lines = MergeLine(lines, red)
	lines = MergeLine(lines, red)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	large := red
	large.Size = "L"
	lines = MergeLine(lines, large)
	assert.Len(t, lines, 2)

	bare := model.CartLine{ID: "A", Name: "Alpha", Price: 10}
	lines = MergeLine(lines, bare)
	require.Len(t, lines, 3)
	assert.Equal(t, model.DefaultSize, lines[2].Size)
	assert.Equal(t, model.DefaultColor, lines[2].Color)
	assert.Equal(t, 1, lines[2].Quantity)
}

func TestAddProductMergesByIdentity(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()

	_, err := f.cart.AddProduct(ctx, "A", "M", "Red", 1)
	require.NoError(t, err)
	assert.Equal(t, []events.Notification{{Level: events.LevelSuccess, Message: "Alpha Tee added to cart"}}, f.recorder.Drain())

	lines, err := f.cart.AddProduct(ctx, "A", "M", "Red", 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, []events.Notification{{Level: events.LevelSuccess, Message: "Quantity updated in cart"}}, f.recorder.Drain())

	lines, err = f.cart.AddProduct(ctx, "A", "L", "Red", 0)
	require.NoError(t, err)
	assert.Len(t, lines, 2)

	stored, err := f.carts.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, lines, stored)
}

func TestAddProductNeedsSize(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()

	_, err := f.cart.AddProduct(ctx, "A", "", "Red", 1)
	assert.ErrorIs(t, err, ErrSizeRequired)
	_, err = f.cart.AddProduct(ctx, "A", "XXL", "Red", 1)
	assert.ErrorIs(t, err, ErrSizeUnavailable)

	lines, err := f.carts.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Contains(t, f.recorder.Drain(), events.Notification{Level: events.LevelError, Message: "Please select a size"})

	lines, err = f.cart.AddProduct(ctx, "B", "", "", 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, model.DefaultSize, lines[0].Size)
	assert.Equal(t, model.DefaultColor, lines[0].Color)

	_, err = f.cart.AddProduct(ctx, "missing", "", "", 1)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestGuardBlocksMutations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cart.AddProduct(ctx, "B", "", "", 1)
	assert.ErrorIs(t, err, ErrLoginRequired)
	_, err = f.wishlist.MoveAllToCart(ctx)
	assert.ErrorIs(t, err, ErrLoginRequired)
	_, err = f.orders.PlaceOrder(ctx, validCheckout())
	assert.ErrorIs(t, err, ErrLoginRequired)
	assert.ErrorIs(t, f.cart.ApplyCoupon(ctx, CouponCode), ErrLoginRequired)

	lines, err := f.carts.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)

	added, _, err := f.wishlist.Toggle(ctx, "A")
	require.NoError(t, err)
	assert.True(t, added)
}

func TestChangeQuantityRemovesAtZero(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()

	_, err := f.cart.AddProduct(ctx, "A", "M", "Red", 2)
	require.NoError(t, err)
	_, err = f.cart.AddProduct(ctx, "B", "", "", 1)
	require.NoError(t, err)

	lines, err := f.cart.ChangeQuantity(ctx, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, lines[0].Quantity)

	lines, err = f.cart.ChangeQuantity(ctx, 1, -1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "A", lines[0].ID)

	_, err = f.cart.ChangeQuantity(ctx, 4, 1)
	assert.ErrorIs(t, err, repository.ErrOutOfRange)

	lines, err = f.cart.RemoveLine(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartViewAndCounts(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()

	view, err := f.cart.Get(ctx)
	require.NoError(t, err)
	assert.NotNil(t, view.Items)
	assert.Equal(t, 0.0, view.Summary.Total)

	_, err = f.cart.AddProduct(ctx, "A", "M", "Red", 3)
	require.NoError(t, err)
	_, _, err = f.wishlist.Toggle(ctx, "C")
	require.NoError(t, err)

	view, err = f.cart.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 150.0, view.Summary.Subtotal)
	assert.Equal(t, 170.0, view.Summary.Total)

	counts, err := f.cart.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{Cart: 3, Wishlist: 1}, counts)
}

func TestCoupon(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()

	assert.NoError(t, f.cart.ApplyCoupon(ctx, " drip20 "))
	assert.ErrorIs(t, f.cart.ApplyCoupon(ctx, "FREE"), ErrInvalidCoupon)
}

func TestToggleWishlistTwiceRestores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.wishlist.Toggle(ctx, "B")
	require.NoError(t, err)
	before, err := f.wishlist.List(ctx)
	require.NoError(t, err)

	added, _, err := f.wishlist.Toggle(ctx, "A")
	require.NoError(t, err)
	assert.True(t, added)
	added, after, err := f.wishlist.Toggle(ctx, "A")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, before, after)
}

func TestMoveAllToCart(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()

	_, err := f.cart.AddProduct(ctx, "A", model.DefaultSize, model.DefaultColor, 1)
	require.NoError(t, err)
	for _, id := range []string{"A", "B"} {
		_, _, err := f.wishlist.Toggle(ctx, id)
		require.NoError(t, err)
	}

	lines, err := f.wishlist.MoveAllToCart(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "B", lines[1].ID)
	assert.Equal(t, 1, lines[1].Quantity)

	entries, err := f.wishlist.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	f.recorder.Drain()
	lines, err = f.wishlist.MoveAllToCart(ctx)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.Equal(t, []events.Notification{{Level: events.LevelInfo, Message: "Your wishlist is empty"}}, f.recorder.Drain())
}

func TestWishlistEntryToCartKeepsEntry(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()

	_, _, err := f.wishlist.Toggle(ctx, "C")
	require.NoError(t, err)
	lines, err := f.wishlist.AddToCart(ctx, 0)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "C", lines[0].ID)

	entries, err := f.wishlist.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	entries, err = f.wishlist.Remove(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
	_, err = f.wishlist.Remove(ctx, 0)
	assert.ErrorIs(t, err, repository.ErrOutOfRange)
}

func TestPlaceOrder(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()
	f.orders.NewID = func() string { return "#ORDER1" }

	_, err := f.cart.AddProduct(ctx, "C", "L", "Blue", 1)
	require.NoError(t, err)

	in := validCheckout()
	in.SaveInfo = true
	conf, err := f.orders.PlaceOrder(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "#ORDER1", conf.OrderID)
	assert.Equal(t, 219.99, conf.Total)
	assert.Equal(t, "$219.99", conf.TotalLabel)

	lines, err := f.carts.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)

	o, err := f.orders.Get(ctx, "ORDER1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusProcessing, o.Status)
	assert.Equal(t, 199.99, o.Subtotal)
	assert.Equal(t, 20.0, o.Delivery)
	assert.Equal(t, "Cash on Delivery", o.PaymentMethod)
	assert.Equal(t, "Sam Carter", o.Address.Name)
	require.Len(t, o.Items, 1)

	inv, err := f.orders.Invoice(ctx, "#ORDER1")
	require.NoError(t, err)
	assert.Equal(t, 20.0, inv.Delivery)
	assert.Equal(t, 0.0, inv.Tax)

	addrs, err := f.address.List(ctx)
	require.NoError(t, err)
	require.Len(t, addrs, 1)
	assert.True(t, addrs[0].IsDefault)

	_, err = f.cart.AddProduct(ctx, "B", "", "", 1)
	require.NoError(t, err)
	f.orders.NewID = NewOrderID
	_, err = f.orders.PlaceOrder(ctx, in)
	require.NoError(t, err)
	addrs, err = f.address.List(ctx)
	require.NoError(t, err)
	assert.Len(t, addrs, 1)
}

func TestPlaceOrderRejectsInvalidEmail(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()

	_, err := f.cart.AddProduct(ctx, "A", "M", "Red", 1)
	require.NoError(t, err)

	in := validCheckout()
	in.Email = "foo@bar"
	_, err = f.orders.PlaceOrder(ctx, in)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")

	orders, err := f.orders.List(ctx, repository.KeyOrders)
	require.NoError(t, err)
	assert.Empty(t, orders)
	lines, err := f.carts.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	_, err := f.orders.PlaceOrder(context.Background(), validCheckout())
	assert.ErrorIs(t, err, ErrEmptyCart)
	_, err = f.orders.Totals(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderRetriesTakenID(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()
	require.NoError(t, f.store.Update(ctx, func(tx store.Tx) error {
		return f.orderRepo.SaveTx(tx, repository.KeyReturns, []model.Order{{ID: "#TAKEN", Status: model.StatusRefunded}})
	}))

	ids := []string{"#TAKEN", "#FRESH"}
	f.orders.NewID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	_, err := f.cart.AddProduct(ctx, "B", "", "", 1)
	require.NoError(t, err)
	conf, err := f.orders.PlaceOrder(ctx, validCheckout())
	require.NoError(t, err)
	assert.Equal(t, "#FRESH", conf.OrderID)
}

func TestCancelMovesOrder(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()
	require.NoError(t, f.orders.SeedDemo(ctx))

	live, err := f.orders.List(ctx, repository.KeyOrders)
	require.NoError(t, err)
	var processing, delivered string
	for _, o := range live {
		switch o.Status {
		case model.StatusProcessing:
			processing = o.ID
		case model.StatusDelivered:
			delivered = o.ID
		}
	}
	require.NotEmpty(t, processing)
	require.NotEmpty(t, delivered)

	_, err = f.orders.Return(ctx, processing)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = f.orders.Cancel(ctx, delivered)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	o, err := f.orders.Cancel(ctx, processing)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, o.Status)

	live, err = f.orders.List(ctx, repository.KeyOrders)
	require.NoError(t, err)
	for _, o := range live {
		assert.NotEqual(t, processing, o.ID)
	}
	cancelled, err := f.orders.List(ctx, repository.KeyCancellations)
	require.NoError(t, err)
	count := 0
	for _, o := range cancelled {
		if o.ID == processing {
			count++
			assert.Equal(t, model.StatusCancelled, o.Status)
		}
	}
	assert.Equal(t, 1, count)

	_, err = f.orders.Cancel(ctx, processing)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	o, err = f.orders.Return(ctx, delivered)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRefunded, o.Status)
	returns, err := f.orders.List(ctx, repository.KeyReturns)
	require.NoError(t, err)
	require.Len(t, returns, 1)
	assert.Equal(t, delivered, returns[0].ID)
}

func TestNewOrderIDShape(t *testing.T) {
	id := NewOrderID()
	assert.Len(t, id, 13)
	assert.Equal(t, byte('#'), id[0])
	assert.NotEqual(t, id, NewOrderID())
}

func TestAddressBookDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := validCheckout().AddressInput

	addrs, err := f.address.Add(ctx, in)
	require.NoError(t, err)
	require.True(t, addrs[0].IsDefault)

	second := in
	second.Name = "Kim"
	addrs, err = f.address.Add(ctx, second)
	require.NoError(t, err)
	assert.False(t, addrs[1].IsDefault)

	addrs, err = f.address.SetDefault(ctx, 1)
	require.NoError(t, err)
	assert.False(t, addrs[0].IsDefault)
	assert.True(t, addrs[1].IsDefault)

	second.City = "Elsewhere"
	addrs, err = f.address.Update(ctx, 1, second)
	require.NoError(t, err)
	assert.True(t, addrs[1].IsDefault)
	assert.Equal(t, "Elsewhere", addrs[1].City)

	addrs, err = f.address.Remove(ctx, 1)
	require.NoError(t, err)
	require.Len(t, addrs, 1)
	assert.True(t, addrs[0].IsDefault)

	def, ok, err := f.address.Default(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Sam Carter", def.Name)

	prefill, err := f.address.Prefill(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, in.Email, prefill.Email)

	_, err = f.address.Remove(ctx, 5)
	assert.ErrorIs(t, err, repository.ErrOutOfRange)
	_, err = f.address.SetDefault(ctx, -1)
	assert.ErrorIs(t, err, repository.ErrOutOfRange)

	bad := in
	bad.Mobile = "12345"
	_, err = f.address.Add(ctx, bad)
	var verr *model.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cards, err := f.cards.Add(ctx, model.CardInput{Number: "4242 4242 4242 4242", Holder: "Sam", Expiry: "09/28"})
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "4242", cards[0].Last4)
	assert.NotContains(t, cards[0].Number, "4242 4242")

	_, err = f.cards.Add(ctx, model.CardInput{Number: "12", Holder: "", Expiry: "13/99"})
	assert.Error(t, err)

	cards, err = f.cards.Remove(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestRegisterLoginLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Register(ctx, "sam@example", "password1", "password1")
	assert.ErrorIs(t, err, ErrInvalidEmail)
	_, err = f.users.Register(ctx, "sam@example.com", "short", "short")
	assert.Error(t, err)
	_, err = f.users.Register(ctx, "sam@example.com", "password1", "password2")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	view, err := f.users.Register(ctx, "sam@example.com", "password1", "password1")
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", view.Email)
	_, err = f.users.Register(ctx, "sam@example.com", "password1", "password1")
	assert.ErrorIs(t, err, repository.ErrEmailTaken)

	ok, err := f.users.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.users.Login(ctx, "sam@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.users.Login(ctx, "nobody@example.com", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.users.Login(ctx, "sam@example.com", "password1")
	require.NoError(t, err)
	ok, err = f.users.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, f.users.Logout(ctx))
	ok, err = f.users.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGuardFunc(t *testing.T) {
	deny := GuardFunc(func(context.Context) (bool, error) { return false, nil })
	assert.ErrorIs(t, requireLogin(context.Background(), deny), ErrLoginRequired)
	assert.NoError(t, requireLogin(context.Background(), nil))
}

func TestProductService(t *testing.T) {
	cat := catalog.New([]model.Product{
		{ID: "a", Name: "A", Price: 10, Image: "a", Rating: 1, Category: "x", Color: "Red"},
		{ID: "b", Name: "B", Price: 20, Image: "b", Rating: 5, Category: "y", Color: "Red"},
	})
	svc := NewProductService(cat, 1)

	view := svc.Current()
	assert.Equal(t, 2, view.Page.TotalPages)
	assert.Equal(t, "b", view.Page.Items[0].ID)

	view = svc.ChangePage(2)
	assert.Equal(t, "a", view.Page.Items[0].ID)

	view, err := svc.Filter(catalog.FacetCategory, "x")
	require.NoError(t, err)
	assert.Equal(t, 1, view.State.CurrentPage)
	assert.Equal(t, "x", view.State.Category)

	view = svc.Reset()
	assert.Equal(t, catalog.All, view.State.Category)

	p, err := svc.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "B", p.Name)
}
