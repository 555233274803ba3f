package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/cinema-booking/internal/config"
    "github.com/iliyamo/cinema-booking/internal/utils"
)

func okHandler(c echo.Context) error { return c.String(http.StatusOK, "ok") }

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func TestPayloadRoundTrip(t *testing.T) {
    hdr := http.Header{"Content-Type": {"application/json"}}
    bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"a":1}`))
    require.NoError(t, err)

    status, gotHdr, body, ok := decodePayload(bs)
    require.True(t, ok)
    assert.Equal(t, http.StatusOK, status)
    assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
    assert.Equal(t, `{"a":1}`, string(body))

    _, _, _, ok = decodePayload([]byte{0, 1})
    assert.False(t, ok)
}

func TestCacheKeyStrategies(t *testing.T) {
    cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route"}
    a := cacheKeyFrom(cfg, "GET", "/movies", "x=1")
    b := cacheKeyFrom(cfg, "GET", "/movies", "x=2")
    assert.Equal(t, a, b, "route strategy ignores query")
    assert.Contains(t, a, "cache:")

    cfg.KeyStrategy = "route_query"
    assert.NotEqual(t, cacheKeyFrom(cfg, "GET", "/movies", "x=1"), cacheKeyFrom(cfg, "GET", "/movies", "x=2"))
}

func TestCacheWithoutRedisPassesThrough(t *testing.T) {
    e := echo.New()
    cache := NewRedisCache(config.CacheConfig{Enabled: true}, nil, nil)
    e.Use(cache.Middleware())
    e.GET("/x", okHandler)

    rec := serve(e, httptest.NewRequest(http.MethodGet, "/x", nil))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestTokenBucketWithoutRedisPassesThrough(t *testing.T) {
    e := echo.New()
    e.Use(NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil, nil))
    e.GET("/x", okHandler)
    assert.Equal(t, http.StatusOK, serve(e, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
}

func TestParseBucketResult(t *testing.T) {
    allowed, remaining, retry, ok := parseBucketResult([]any{int64(1), int64(4), int64(0)})
    require.True(t, ok)
    assert.True(t, allowed)
    assert.Equal(t, int64(4), remaining)
    assert.Zero(t, retry)

    _, _, _, ok = parseBucketResult("nope")
    assert.False(t, ok)
    assert.Equal(t, 2, retryAfterSeconds(1500))
    assert.Equal(t, 0, retryAfterSeconds(-10))
}

func TestBuildRateKey(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/movies", nil)
    req.RemoteAddr = "10.0.0.1:1234"
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath("/movies")

    cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}
    assert.Equal(t, "rl:ip:10.0.0.1:route:GET /movies", buildRateKey(cfg, c))

    cfg.KeyStrategy = "user"
    assert.Equal(t, "rl:user:anon", buildRateKey(cfg, c))
    c.Set(ctxSubject, "ops")
    assert.Equal(t, "rl:user:ops", buildRateKey(cfg, c))
}

func TestJWTAuthAndRole(t *testing.T) {
    const secret = "s3cret"
    e := echo.New()
    e.POST("/movies", okHandler, JWTAuth(secret), RequireRole(RoleOwner))

    post := func(token string) int {
        req := httptest.NewRequest(http.MethodPost, "/movies", nil)
        if token != "" {
            req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
        }
        return serve(e, req).Code
    }

    assert.Equal(t, http.StatusUnauthorized, post(""))
    assert.Equal(t, http.StatusUnauthorized, post("garbage"))

    other, err := utils.NewAccessToken("other", "ops", RoleOwner, time.Hour)
    require.NoError(t, err)
    assert.Equal(t, http.StatusUnauthorized, post(other.Token))

    customer, err := utils.NewAccessToken(secret, "dana", "CUSTOMER", time.Hour)
    require.NoError(t, err)
    assert.Equal(t, http.StatusForbidden, post(customer.Token))

    owner, err := utils.NewAccessToken(secret, "ops", RoleOwner, time.Hour)
    require.NoError(t, err)
    assert.Equal(t, http.StatusOK, post(owner.Token))
}

func TestRequestIDIsGenerated(t *testing.T) {
    e := echo.New()
    e.Use(RequestID())
    e.GET("/x", okHandler)
    rec := serve(e, httptest.NewRequest(http.MethodGet, "/x", nil))
    assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)
}

func newRedis(t *testing.T) *redis.Client {
    t.Helper()
    mr := miniredis.RunT(t)
    rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    t.Cleanup(func() { _ = rdb.Close() })
    return rdb
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
    return serve(e, httptest.NewRequest(http.MethodGet, path, nil))
}

func TestCacheKeepsRecordsApart(t *testing.T) {
    e := echo.New()
    cache := NewRedisCache(config.CacheConfig{
        Enabled:     true,
        Methods:     map[string]bool{"GET": true},
        TTL:         time.Minute,
        KeyStrategy: "route_query",
        Prefix:      "cache",
    }, newRedis(t), nil)
    e.Use(cache.Middleware())
    calls := 0
    e.GET("/movies/:id", func(c echo.Context) error {
        calls++
        return c.String(http.StatusOK, "movie "+c.Param("id"))
    })
    e.POST("/movies", func(c echo.Context) error { return c.NoContent(http.StatusCreated) })

    rec := get(e, "/movies/1")
    assert.Equal(t, "movie 1", rec.Body.String())
    assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

    rec = get(e, "/movies/2")
    assert.Equal(t, "movie 2", rec.Body.String())
    assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

    rec = get(e, "/movies/1")
    assert.Equal(t, "movie 1", rec.Body.String())
    assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
    assert.Equal(t, 2, calls)

    // a successful write drops every cached read
    require.Equal(t, http.StatusCreated, serve(e, httptest.NewRequest(http.MethodPost, "/movies", nil)).Code)
    rec = get(e, "/movies/1")
    assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
    assert.Equal(t, 3, calls)
}

func TestTokenBucketKeysOnTokenSubject(t *testing.T) {
    const secret = "s3cret"
    e := echo.New()
    e.Use(Identify(secret))
    e.Use(NewTokenBucket(config.RateLimitConfig{
        Enabled:        true,
        Capacity:       1,
        RefillTokens:   1,
        RefillInterval: time.Hour,
        TTL:            time.Hour,
        KeyStrategy:    "user",
        Prefix:         "rl",
    }, newRedis(t), nil))
    e.GET("/x", okHandler)

    as := func(sub string) int {
        tok, err := customerToken(secret, sub)
        require.NoError(t, err)
        req := httptest.NewRequest(http.MethodGet, "/x", nil)
        req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
        return serve(e, req).Code
    }

    assert.Equal(t, http.StatusOK, as("dana"))
    assert.Equal(t, http.StatusTooManyRequests, as("dana"))
    assert.Equal(t, http.StatusOK, as("fox"), "other users keep their own bucket")
}

func TestIdentifyIgnoresBadTokens(t *testing.T) {
    e := echo.New()
    e.Use(Identify("s3cret"))
    e.GET("/who", func(c echo.Context) error { return c.String(http.StatusOK, subject(c)) })

    req := httptest.NewRequest(http.MethodGet, "/who", nil)
    req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
    rec := serve(e, req)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "anon", rec.Body.String())
}

// customerToken mints a short-lived CUSTOMER token for sub.
func customerToken(secret, sub string) (string, error) {
    tok, err := utils.NewAccessToken(secret, sub, "CUSTOMER", time.Hour)
    return tok.Token, err
}
