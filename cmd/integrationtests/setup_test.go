package integrationtests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	bidding "listing-bidder/internal/biddingService"
	model "listing-bidder/internal/models"
	"listing-bidder/internal/page"
	"listing-bidder/internal/repository"
	"listing-bidder/internal/sender"
	"listing-bidder/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// SetupTestRouterWithListings initializes the router and seeds the repo with listings.
func SetupTestRouterWithListings(listings ...model.Listing) *gin.Engine {
	gin.SetMode(gin.TestMode)
	repo := repository.NewMemoryRepo()

	for _, listing := range listings {
		repo.AddListing(listing)
	}

	service := bidding.NewBiddingService(repo)
	return server.SetupRouter(service, server.NewCSRFStore())
}

// SetupTestServer serves router over a real listener for the client side to talk to.
func SetupTestServer(t *testing.T, router http.Handler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// NewTestSender returns a sender rooted at srv
func NewTestSender(t *testing.T, srv *httptest.Server) *sender.Sender {
	t.Helper()
	s, err := sender.New(srv.URL, sender.WithDoer(srv.Client()))
	require.NoError(t, err)
	return s
}

// ExecuteRequest executes an HTTP request against the router and returns the response recorder.
func ExecuteRequest(router *gin.Engine, method, target string, header http.Header, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// FetchCSRFToken renders the listing page and reads its csrfmiddlewaretoken
func FetchCSRFToken(t *testing.T, router *gin.Engine, listingID string) string {
	t.Helper()
	w := ExecuteRequest(router, http.MethodGet, "/listings/"+listingID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	doc, err := page.ParseString(w.Body.String())
	require.NoError(t, err)
	token, err := doc.CSRFToken()
	require.NoError(t, err)
	return token
}

// PostBid posts a url-encoded price the way the bid form does
func PostBid(router *gin.Engine, listingID, token, price string) *httptest.ResponseRecorder {
	header := http.Header{"Content-Type": {"application/x-www-form-urlencoded; charset=UTF-8"}}
	if token != "" {
		header.Set(server.CSRFHeader, token)
	}
	return ExecuteRequest(router, http.MethodPost, "/listings/"+listingID+"/bid", header, url.Values{"price": {price}}.Encode())
}

// PostClose closes a listing, sending token as the CSRF header when set
func PostClose(router *gin.Engine, listingID, token string) *httptest.ResponseRecorder {
	header := http.Header{}
	if token != "" {
		header.Set(server.CSRFHeader, token)
	}
	return ExecuteRequest(router, http.MethodPost, "/listings/"+listingID+"/close", header, "")
}

// ParseJSON decodes a JSON response body into a generic map
func ParseJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
