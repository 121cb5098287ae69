package echoweb

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/eduverse/core"
	"github.com/trezcool/eduverse/core/checkout"
	"github.com/trezcool/eduverse/core/classroom"
	"github.com/trezcool/eduverse/core/session"
	"github.com/trezcool/eduverse/core/theme"
	"github.com/trezcool/eduverse/core/user"
)

const contextVisitorKey = "visitor"

var errVisitorNotFoundInCtx = errors.New("visitor not found in echo.Context")

// VisitorClaims identify a browser. They carry no authentication: who is signed in
// lives in the visitor's session state.
type VisitorClaims struct {
	jwt.RegisteredClaims
}

// Visitor is the client state of one browser.
type Visitor struct {
	ID        string
	Session   *session.Session
	Theme     *theme.Theme
	Controls  *classroom.ControlBar
	Checkouts *checkout.Registry
}

// User returns the signed in user, if any.
func (v *Visitor) User() (user.User, bool) { return v.Session.User() }

// visitorRegistry keeps recently seen visitors in memory so that a session's pending
// sign-ins and checkout flows survive across requests. A visitor idle for longer than
// the idle TTL, or pushed out by the size bound, is reopened from the kv store.
type visitorRegistry struct {
	kv              core.KeyValueStore
	sessions        *session.Manager
	checkoutLatency time.Duration

	mu       sync.Mutex // serializes insertions; lookups and kv I/O run without it
	visitors *expirable.LRU[string, *Visitor]
}

func newVisitorRegistry(kv core.KeyValueStore, sessions *session.Manager, conf *core.Config) *visitorRegistry {
	return &visitorRegistry{
		kv:              kv,
		sessions:        sessions,
		checkoutLatency: conf.Checkout.Latency,
		visitors:        expirable.NewLRU[string, *Visitor](conf.Visitor.CacheSize, nil, conf.Visitor.IdleTTL),
	}
}

func (r *visitorRegistry) get(ctx context.Context, id string) (*Visitor, error) {
	if v, ok := r.visitors.Get(id); ok {
		r.visitors.Add(id, v) // pushes the idle deadline
		return v, nil
	}

	v, err := r.open(ctx, id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if opened, ok := r.visitors.Get(id); ok {
		return opened, nil
	}
	r.visitors.Add(id, v)
	return v, nil
}

func (r *visitorRegistry) open(ctx context.Context, id string) (*Visitor, error) {
	sess, err := r.sessions.Open(ctx, r.kv, id)
	if err != nil {
		return nil, errors.Wrap(err, "opening session")
	}
	th, err := theme.Open(ctx, r.kv, id)
	if err != nil {
		return nil, errors.Wrap(err, "opening theme")
	}
	controls, err := classroom.OpenControls(ctx, r.kv, id)
	if err != nil {
		return nil, errors.Wrap(err, "opening classroom controls")
	}
	return &Visitor{
		ID:        id,
		Session:   sess,
		Theme:     th,
		Controls:  controls,
		Checkouts: checkout.NewRegistry(r.checkoutLatency),
	}, nil
}

func (s *Server) signingKey() []byte { return []byte(s.Conf.SecretKey) }

// GenerateVisitorToken signs a token for visitorID, valid for the configured visitor TTL.
func (s *Server) GenerateVisitorToken(visitorID string) (string, error) {
	now := time.Now()
	claims := VisitorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Conf.AppName,
			Subject:   visitorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.Conf.Visitor.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(s.signingKey())
	if err != nil {
		return "", errors.Wrap(err, "signing visitor token")
	}
	return ss, nil
}

// parseVisitorToken returns the visitor id of a valid token.
func (s *Server) parseVisitorToken(raw string) (string, error) {
	var claims VisitorClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.signingKey(), nil
	})
	if err != nil {
		return "", err
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", errors.Wrap(err, "visitor id")
	}
	return claims.Subject, nil
}

// visitorMiddleware identifies the browser by its signed cookie, issuing a new identity
// when the cookie is missing, tampered with or expired.
func (s *Server) visitorMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var id string
		if cookie, err := ctx.Cookie(s.Conf.Visitor.CookieName); err == nil {
			id, _ = s.parseVisitorToken(cookie.Value)
		}

		if id == "" {
			id = uuid.NewString()
			token, err := s.GenerateVisitorToken(id)
			if err != nil {
				return err
			}
			ctx.SetCookie(&http.Cookie{
				Name:     s.Conf.Visitor.CookieName,
				Value:    token,
				Path:     "/",
				Expires:  time.Now().Add(s.Conf.Visitor.TTL),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		v, err := s.visitors.get(ctx.Request().Context(), id)
		if err != nil {
			return errors.Wrap(err, "loading visitor")
		}
		ctx.Set(contextVisitorKey, v)
		return next(ctx)
	}
}

func getContextVisitor(ctx echo.Context) (*Visitor, error) {
	if v, ok := ctx.Get(contextVisitorKey).(*Visitor); ok {
		return v, nil
	}
	return nil, errVisitorNotFoundInCtx
}
