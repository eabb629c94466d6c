package router

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sefazor/ourquotes-backend/internal/handler"
	"github.com/sefazor/ourquotes-backend/internal/metrics"
	"github.com/sefazor/ourquotes-backend/internal/models"
	"github.com/sefazor/ourquotes-backend/internal/service"
	"github.com/sefazor/ourquotes-backend/internal/session"
	"github.com/sefazor/ourquotes-backend/internal/testutil"
	"github.com/sefazor/ourquotes-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestApp(t *testing.T, opts ...service.AuthServiceOption) (*fiber.App, *testutil.Store) {
	t.Helper()

	store := testutil.NewStore()
	validator := utils.NewValidator()
	m := metrics.New(prometheus.NewRegistry())
	log := zap.NewNop()

	authService := service.NewAuthService(store.Users(), store.Likes(), validator, m, log,
		append([]service.AuthServiceOption{service.WithHashCost(bcrypt.MinCost)}, opts...)...)
	userService := service.NewUserService(store.Users(), validator)
	quoteService := service.NewQuoteService(store.Quotes(), store.Users(), validator, m)
	likeService := service.NewLikeService(store.Likes(), store.Quotes(), m)
	sessions := session.NewManager(session.Config{Expiration: time.Hour})

	app := NewFiberApp(Handlers{
		Auth:  handler.NewAuthHandler(authService, sessions, log),
		Quote: handler.NewQuoteHandler(quoteService, likeService, log),
		User:  handler.NewUserHandler(userService, log),
	}, sessions, m, log)
	return app, store
}

func registration(first, last, email string) url.Values {
	return url.Values{
		"first_name":            {first},
		"last_name":             {last},
		"email":                 {email},
		"password":              {"longpass1"},
		"password_confirmation": {"longpass1"},
	}
}

func register(t *testing.T, client *testutil.Client, first, last, email string) {
	t.Helper()
	resp := client.PostForm("/registration", registration(first, last, email))
	require.Equal(t, fiber.StatusFound, resp.Status)
	require.Equal(t, "/quotes", resp.Location)
}

func addQuote(t *testing.T, client *testutil.Client, author, content string) {
	t.Helper()
	resp := client.PostForm("/add_quote", url.Values{"author": {author}, "content": {content}})
	require.Equal(t, fiber.StatusFound, resp.Status)
	require.Equal(t, "/quotes", resp.Location)
}

func quotesPage(t *testing.T, client *testutil.Client) (models.QuotesPage, []string) {
	t.Helper()
	page := client.Page("/quotes")
	var data models.QuotesPage
	require.NoError(t, json.Unmarshal(page.Data, &data))
	return data, page.Flashes
}

func entryFlashes(t *testing.T, client *testutil.Client) []string {
	t.Helper()
	return client.Page("/").Flashes
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)
	resp := testutil.NewClient(t, app).Get("/health")

	assert.Equal(t, fiber.StatusOK, resp.Status)
	assert.Equal(t, "OK", string(resp.Body))
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	client := testutil.NewClient(t, app)
	register(t, client, "Ada", "Lovelace", "ada@example.com")

	resp := client.Get("/metrics")
	assert.Equal(t, fiber.StatusOK, resp.Status)
	assert.Contains(t, string(resp.Body), "ourquotes_registrations_total 1")
}

func TestProtectedRoutesRedirectAnonymous(t *testing.T) {
	app, _ := newTestApp(t)
	client := testutil.NewClient(t, app)

	for _, path := range []string{"/quotes", "/my_account/1", "/delete/1", "/user/1", "/like/1"} {
		resp := client.Get(path)
		assert.Equal(t, fiber.StatusFound, resp.Status, path)
		assert.Equal(t, "/", resp.Location, path)
	}
	for _, path := range []string{"/add_quote", "/update/1"} {
		resp := client.PostForm(path, url.Values{})
		assert.Equal(t, fiber.StatusFound, resp.Status, path)
		assert.Equal(t, "/", resp.Location, path)
	}
}

func TestRegisterAndViewQuotes(t *testing.T) {
	app, store := newTestApp(t)
	client := testutil.NewClient(t, app)

	register(t, client, "Alice", "Liddell", "a@b.com")
	assert.NotEmpty(t, client.Cookie(session.CookieName))
	assert.Equal(t, 1, store.UserCount())

	page, flashes := quotesPage(t, client)
	assert.Equal(t, "Alice", page.User.FirstName)
	assert.Equal(t, "a@b.com", page.User.Email)
	assert.Empty(t, page.Quotes)
	assert.Empty(t, flashes)
}

func TestRegisterValidationFlashes(t *testing.T) {
	app, store := newTestApp(t)
	client := testutil.NewClient(t, app)

	form := registration("Al", "Li", "a@b.com")
	form.Set("password", "pw")
	form.Set("password_confirmation", "pw")

	resp := client.PostForm("/registration", form)
	assert.Equal(t, fiber.StatusFound, resp.Status)
	assert.Equal(t, "/", resp.Location)
	assert.Equal(t, 0, store.UserCount())

	assert.Equal(t, []string{
		service.MsgFirstNameLength,
		service.MsgLastNameLength,
		service.MsgPasswordLength,
	}, entryFlashes(t, client))

	// consumed by the first view
	assert.Empty(t, entryFlashes(t, client))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, store := newTestApp(t)
	register(t, testutil.NewClient(t, app), "Ada", "Lovelace", "ada@example.com")

	client := testutil.NewClient(t, app)
	resp := client.PostForm("/registration", registration("Bob", "Builder", "ada@example.com"))
	assert.Equal(t, "/", resp.Location)
	assert.Equal(t, []string{service.MsgEmailInUse}, entryFlashes(t, client))
	assert.Equal(t, 1, store.UserCount())
}

func TestLogin(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, testutil.NewClient(t, app), "Ada", "Lovelace", "ada@example.com")

	t.Run("wrong password", func(t *testing.T) {
		client := testutil.NewClient(t, app)
		resp := client.PostForm("/login", url.Values{"email": {"ada@example.com"}, "password": {"nope-nope"}})
		assert.Equal(t, "/", resp.Location)
		assert.Equal(t, []string{service.MsgInvalidCredentials}, entryFlashes(t, client))
	})

	t.Run("unknown email", func(t *testing.T) {
		client := testutil.NewClient(t, app)
		resp := client.PostForm("/login", url.Values{"email": {"nobody@example.com"}, "password": {"longpass1"}})
		assert.Equal(t, "/", resp.Location)
		assert.Equal(t, []string{service.MsgInvalidCredentials}, entryFlashes(t, client))
	})

	t.Run("success regenerates the session id", func(t *testing.T) {
		client := testutil.NewClient(t, app)
		client.PostForm("/login", url.Values{"email": {"nobody@example.com"}, "password": {"x"}})
		before := client.Cookie(session.CookieName)
		require.NotEmpty(t, before)

		resp := client.PostForm("/login", url.Values{"email": {"ada@example.com"}, "password": {"longpass1"}})
		assert.Equal(t, "/quotes", resp.Location)
		assert.NotEqual(t, before, client.Cookie(session.CookieName))

		page, _ := quotesPage(t, client)
		assert.Equal(t, "Ada", page.User.FirstName)
	})
}

func TestLogoutThenGatedRoute(t *testing.T) {
	app, _ := newTestApp(t)
	client := testutil.NewClient(t, app)
	register(t, client, "Ada", "Lovelace", "ada@example.com")

	resp := client.Get("/logout")
	assert.Equal(t, fiber.StatusFound, resp.Status)
	assert.Equal(t, "/", resp.Location)

	resp = client.Get("/quotes")
	assert.Equal(t, fiber.StatusFound, resp.Status)
	assert.Equal(t, "/", resp.Location)
}

func TestAddQuoteValidation(t *testing.T) {
	app, store := newTestApp(t)
	client := testutil.NewClient(t, app)
	register(t, client, "Ada", "Lovelace", "ada@example.com")

	addQuote(t, client, "Me", "short")
	_, flashes := quotesPage(t, client)

	assert.Equal(t, []string{service.MsgAuthorLength, service.MsgQuoteLength}, flashes)
	assert.Equal(t, 0, store.QuoteCount())
}

func TestLikeFlow(t *testing.T) {
	app, store := newTestApp(t)
	client := testutil.NewClient(t, app)
	register(t, client, "Ada", "Lovelace", "ada@example.com")

	addQuote(t, client, "Seneca", "Luck is what happens when preparation meets opportunity")
	addQuote(t, client, "Twain", "The secret of getting ahead is getting started")
	page, _ := quotesPage(t, client)
	require.Len(t, page.Quotes, 2)
	first, second := page.Quotes[0].QuoteID, page.Quotes[1].QuoteID

	resp := client.Get(fmt.Sprintf("/like/%d", first))
	assert.Equal(t, "/quotes", resp.Location)

	// same quote again
	client.Get(fmt.Sprintf("/like/%d", first))
	page, flashes := quotesPage(t, client)
	assert.Equal(t, []string{service.MsgAlreadyLiked}, flashes)
	assert.Equal(t, 1, store.LikeCount())
	assert.Equal(t, int64(1), page.Quotes[0].LikeCount)
	assert.True(t, page.Quotes[0].LikedByMe)

	// a different quote is tracked on its own
	client.Get(fmt.Sprintf("/like/%d", second))
	_, flashes = quotesPage(t, client)
	assert.Empty(t, flashes)
	assert.Equal(t, 2, store.LikeCount())
}

func TestLikedQuotesSurviveRelogin(t *testing.T) {
	app, store := newTestApp(t)
	client := testutil.NewClient(t, app)
	register(t, client, "Ada", "Lovelace", "ada@example.com")
	addQuote(t, client, "Seneca", "Luck is what happens when preparation meets opportunity")
	page, _ := quotesPage(t, client)
	quoteID := page.Quotes[0].QuoteID

	client.Get(fmt.Sprintf("/like/%d", quoteID))
	client.Get("/logout")
	client.PostForm("/login", url.Values{"email": {"ada@example.com"}, "password": {"longpass1"}})

	client.Get(fmt.Sprintf("/like/%d", quoteID))
	_, flashes := quotesPage(t, client)
	assert.Equal(t, []string{service.MsgAlreadyLiked}, flashes)
	assert.Equal(t, 1, store.LikeCount())
}

func TestLikeMissingQuote(t *testing.T) {
	app, _ := newTestApp(t)
	client := testutil.NewClient(t, app)
	register(t, client, "Ada", "Lovelace", "ada@example.com")

	client.Get("/like/404")
	_, flashes := quotesPage(t, client)
	assert.Equal(t, []string{service.MsgQuoteNotFound}, flashes)
}

func TestDeleteQuote(t *testing.T) {
	app, store := newTestApp(t)
	owner := testutil.NewClient(t, app)
	register(t, owner, "Ada", "Lovelace", "ada@example.com")
	addQuote(t, owner, "Seneca", "Luck is what happens when preparation meets opportunity")
	page, _ := quotesPage(t, owner)
	quoteID := page.Quotes[0].QuoteID

	other := testutil.NewClient(t, app)
	register(t, other, "Alan", "Turing", "alan@example.com")

	resp := other.Get(fmt.Sprintf("/delete/%d", quoteID))
	assert.Equal(t, "/quotes", resp.Location)
	_, flashes := quotesPage(t, other)
	assert.Equal(t, []string{service.MsgNotOwner}, flashes)
	assert.Equal(t, 1, store.QuoteCount())

	resp = owner.Get(fmt.Sprintf("/delete/%d", quoteID))
	assert.Equal(t, "/quotes", resp.Location)
	assert.Equal(t, 0, store.QuoteCount())

	// already gone
	resp = owner.Get(fmt.Sprintf("/delete/%d", quoteID))
	assert.Equal(t, "/quotes", resp.Location)
	_, flashes = quotesPage(t, owner)
	assert.Empty(t, flashes)
}

func TestInvalidID(t *testing.T) {
	app, _ := newTestApp(t)
	client := testutil.NewClient(t, app)
	register(t, client, "Ada", "Lovelace", "ada@example.com")

	for _, path := range []string{"/like/abc", "/delete/abc", "/user/abc", "/my_account/abc"} {
		resp := client.Get(path)
		assert.Equal(t, "/quotes", resp.Location, path)
		_, flashes := quotesPage(t, client)
		assert.Equal(t, []string{handler.MsgInvalidID}, flashes, path)
	}
}

func TestUserQuotesPage(t *testing.T) {
	app, _ := newTestApp(t)
	ada := testutil.NewClient(t, app)
	register(t, ada, "Ada", "Lovelace", "ada@example.com")
	addQuote(t, ada, "Seneca", "Luck is what happens when preparation meets opportunity")
	page, _ := quotesPage(t, ada)
	adaID := page.User.ID

	alan := testutil.NewClient(t, app)
	register(t, alan, "Alan", "Turing", "alan@example.com")
	alanPage, _ := quotesPage(t, alan)

	var data models.UserQuotesPage
	require.NoError(t, json.Unmarshal(alan.Page(fmt.Sprintf("/user/%d", adaID)).Data, &data))
	assert.Equal(t, "Ada", data.User.FirstName)
	assert.Len(t, data.Quotes, 1)

	// no quotes yet
	require.NoError(t, json.Unmarshal(ada.Page(fmt.Sprintf("/user/%d", alanPage.User.ID)).Data, &data))
	assert.Equal(t, "Alan", data.User.FirstName)
	assert.Empty(t, data.Quotes)

	resp := ada.Get("/user/999")
	assert.Equal(t, "/quotes", resp.Location)
	_, flashes := quotesPage(t, ada)
	assert.Equal(t, []string{service.MsgUserNotFound}, flashes)
}

func TestMyAccountAndUpdate(t *testing.T) {
	app, _ := newTestApp(t)
	ada := testutil.NewClient(t, app)
	register(t, ada, "Ada", "Lovelace", "ada@example.com")
	page, _ := quotesPage(t, ada)
	adaID := page.User.ID
	account := fmt.Sprintf("/my_account/%d", adaID)
	update := fmt.Sprintf("/update/%d", adaID)

	var profile models.ProfileResponse
	require.NoError(t, json.Unmarshal(ada.Page(account).Data, &profile))
	assert.Equal(t, "ada@example.com", profile.Email)

	alan := testutil.NewClient(t, app)
	register(t, alan, "Alan", "Turing", "alan@example.com")

	t.Run("other users cannot view or update", func(t *testing.T) {
		resp := alan.Get(account)
		assert.Equal(t, "/quotes", resp.Location)
		_, flashes := quotesPage(t, alan)
		assert.Equal(t, []string{service.MsgNotOwner}, flashes)

		resp = alan.PostForm(update, url.Values{"first_name": {"Mallory"}, "last_name": {"Mallory"}, "email": {"m@example.com"}})
		assert.Equal(t, "/quotes", resp.Location)
		_, flashes = quotesPage(t, alan)
		assert.Equal(t, []string{service.MsgNotOwner}, flashes)
	})

	t.Run("validation goes back to the form", func(t *testing.T) {
		resp := ada.PostForm(update, url.Values{"first_name": {"Ada"}, "last_name": {"Lovelace"}, "email": {"alan@example.com"}})
		assert.Equal(t, account, resp.Location)
		assert.Equal(t, []string{service.MsgEmailInUse}, ada.Page(account).Flashes)
	})

	t.Run("referer on another host is ignored", func(t *testing.T) {
		resp := ada.PostForm(update, url.Values{"first_name": {"A"}, "last_name": {"Lovelace"}, "email": {"ada@example.com"}},
			fiber.HeaderReferer, "https://evil.example/phish")
		assert.Equal(t, account, resp.Location)
		ada.Page(account)
	})

	t.Run("success refreshes the session identity", func(t *testing.T) {
		resp := ada.PostForm(update, url.Values{"first_name": {"Augusta"}, "last_name": {"King"}, "email": {"ada@example.com"}})
		assert.Equal(t, "/quotes", resp.Location)

		page, flashes := quotesPage(t, ada)
		assert.Empty(t, flashes)
		assert.Equal(t, "Augusta", page.User.FirstName)
		assert.Equal(t, "King", page.User.LastName)
	})
}

// heldMailer blocks every send until release is closed.
type heldMailer struct {
	release chan struct{}
	sent    chan [2]string
}

func (m *heldMailer) SendWelcomeEmail(email, firstName string) error {
	<-m.release
	m.sent <- [2]string{email, firstName}
	return nil
}

func TestWelcomeEmailUsesRegisteredAddress(t *testing.T) {
	mailer := &heldMailer{release: make(chan struct{}), sent: make(chan [2]string, 1)}
	app, _ := newTestApp(t, service.WithMailer(mailer))

	register(t, testutil.NewClient(t, app), "Ada", "Lovelace", "ada@example.com")

	// later requests reuse the server's buffers
	other := testutil.NewClient(t, app)
	other.PostForm("/login", url.Values{"email": {"mallory@evil.test"}, "password": {"zzzzzzzzzzzz"}})
	rejected := registration("Zed", "Zzzzzzzz", "zzzzzz@zzzz.zz")
	rejected.Set("password_confirmation", "mismatch")
	other.PostForm("/registration", rejected)

	close(mailer.release)
	select {
	case got := <-mailer.sent:
		assert.Equal(t, [2]string{"ada@example.com", "Ada"}, got)
	case <-time.After(2 * time.Second):
		t.Fatal("welcome email was not sent")
	}
}

func TestRegisterOverlongPassword(t *testing.T) {
	app, store := newTestApp(t)
	client := testutil.NewClient(t, app)

	form := registration("Ada", "Lovelace", "ada@example.com")
	form.Set("password", strings.Repeat("p", 80))
	form.Set("password_confirmation", strings.Repeat("p", 80))

	resp := client.PostForm("/registration", form)
	assert.Equal(t, "/", resp.Location)
	assert.Equal(t, []string{service.MsgPasswordTooLong}, entryFlashes(t, client))
	assert.Equal(t, 0, store.UserCount())
}
