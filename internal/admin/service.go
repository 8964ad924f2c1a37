// Package admin is the write path of the storefront back office.
//
// Writes go to the backend when it is reachable. Only connectivity failures
// fall back to the local store; a backend that answers and refuses is
// reported to the caller. Every result names the store that took the write.
package admin

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/meetjaka/voltherm-sub000/internal/datasource"
	"github.com/meetjaka/voltherm-sub000/internal/domain/auth"
	"github.com/meetjaka/voltherm-sub000/internal/localstore"
	"github.com/meetjaka/voltherm-sub000/internal/remote"
)

// ErrNotAuthenticated is returned when no admin session exists or the
// backend refuses to re-authenticate it.
var ErrNotAuthenticated = errors.New("not authenticated")

// Authenticator is the backend session API.
type Authenticator interface {
	Login(ctx context.Context, creds remote.Credentials) (*remote.Profile, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*remote.Profile, error)
}

var _ Authenticator = (*remote.Client)(nil)

// Options holds optional collaborators of the Service.
type Options struct {
	Logger         *zap.Logger
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
	Now            func() time.Time

	// LocalCredentials, when set, allow logging in while the backend is
	// unreachable.
	LocalCredentials *auth.Credentials
}

// Service performs admin mutations.
type Service struct {
	selector datasource.Selector
	remote   datasource.Repositories
	local    datasource.Repositories
	store    *localstore.Store
	authn    Authenticator
	session  *auth.Session

	localCreds *auth.Credentials
	validate   *validator.Validate
	inflight   singleflight.Group
	tel        *datasource.Telemetry
	lg         *zap.Logger
	now        func() time.Time
}

// NewService creates a Service. store must be the store behind local.
func NewService(
	selector datasource.Selector,
	remote, local datasource.Repositories,
	store *localstore.Store,
	authn Authenticator,
	session *auth.Session,
	opts Options,
) (*Service, error) {
	tel, err := datasource.NewTelemetry(opts.MeterProvider, opts.TracerProvider)
	if err != nil {
		return nil, errors.Wrap(err, "telemetry")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		selector:   selector,
		remote:     remote,
		local:      local,
		store:      store,
		authn:      authn,
		session:    session,
		localCreds: opts.LocalCredentials,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		tel:        tel,
		lg:         opts.Logger,
		now:        opts.Now,
	}, nil
}

// Session returns the admin auth context.
func (s *Service) Session() *auth.Session {
	return s.session
}

// requireSession fails unless a login happened in this session.
func (s *Service) requireSession() error {
	if _, err := s.session.Credentials(); err != nil {
		return ErrNotAuthenticated
	}
	return nil
}

// ensureAuth probes the backend session. A 401 triggers one re-login with
// the session credentials. Transport errors are returned as is so callers
// can fall back.
func (s *Service) ensureAuth(ctx context.Context) error {
	_, err := s.authn.Profile(ctx)
	if err == nil || !remote.IsUnauthorized(err) {
		return err
	}
	return s.relogin(ctx)
}

// relogin replaces an expired backend session using the session credentials.
func (s *Service) relogin(ctx context.Context) error {
	creds, cerr := s.session.Credentials()
	if cerr != nil {
		return ErrNotAuthenticated
	}
	s.session.Invalidate()
	s.lg.Info("Backend session expired, logging in again", zap.String("username", creds.Username))

	if _, err := s.authn.Login(ctx, remote.Credentials(creds)); err != nil {
		if remote.IsTransport(err) {
			return err
		}
		return errors.Wrap(ErrNotAuthenticated, err.Error())
	}
	s.session.Begin(creds, s.now())
	return nil
}

type outcome[T any] struct {
	v   T
	src datasource.Source
}

// mutationKey identifies a mutation for in-flight coalescing: op, entity id
// and a hash of the full payload, files included. A payload that cannot be
// encoded gets a unique key and is never merged.
func mutationKey(op, id string, payload any) string {
	d := xxhash.New()
	if err := json.NewEncoder(d).Encode(payload); err != nil {
		return op + ":" + id + ":" + uuid.NewString()
	}
	return op + ":" + id + ":" + strconv.FormatUint(d.Sum64(), 16)
}

// write routes one mutation. Concurrent calls with the same op, entity id
// and payload share one execution; any other call runs on its own.
func write[T any](
	ctx context.Context,
	s *Service,
	op, id string,
	payload any,
	toRemote func(context.Context) (T, error),
	toLocal func(context.Context) (T, error),
) (T, datasource.Source, error) {
	v, err, _ := s.inflight.Do(mutationKey(op, id, payload), func() (any, error) {
		return route(ctx, s, op, toRemote, toLocal)
	})
	if err != nil {
		var zero T
		return zero, "", err
	}
	out := v.(outcome[T])
	return out.v, out.src, nil
}

func route[T any](
	ctx context.Context,
	s *Service,
	op string,
	toRemote func(context.Context) (T, error),
	toLocal func(context.Context) (T, error),
) (outcome[T], error) {
	ctx, span := s.tel.Start(ctx, "admin."+op)
	defer span.End()

	if err := s.requireSession(); err != nil {
		return outcome[T]{}, err
	}

	lg := s.lg.With(zap.String("op", op))
	if s.selector.Available(ctx) {
		err := s.ensureAuth(ctx)
		if err == nil {
			var v T
			v, err = toRemote(ctx)
			if err == nil {
				s.tel.Record(ctx, op, datasource.SourceRemote)
				return outcome[T]{v: v, src: datasource.SourceRemote}, nil
			}
		}
		if !remote.IsTransport(err) {
			return outcome[T]{}, err
		}
		lg.Warn("Backend unreachable, writing to local store only", zap.Error(err))
	} else {
		lg.Warn("Backend unavailable, writing to local store only")
	}

	v, err := toLocal(ctx)
	if err != nil {
		return outcome[T]{}, err
	}
	s.tel.Record(ctx, op, datasource.SourceLocal)
	return outcome[T]{v: v, src: datasource.SourceLocal}, nil
}

// Login starts the admin session. The backend decides when it is reachable;
// otherwise the configured local credentials are checked.
func (s *Service) Login(ctx context.Context, creds auth.Credentials) (datasource.Source, error) {
	if err := s.validate.Struct(creds); err != nil {
		return "", errors.Wrap(ErrNotAuthenticated, err.Error())
	}

	if s.selector.Available(ctx) {
		_, err := s.authn.Login(ctx, remote.Credentials(creds))
		if err == nil {
			s.session.Begin(creds, s.now())
			s.lg.Info("Admin logged in", zap.String("username", creds.Username))
			return datasource.SourceRemote, nil
		}
		if !remote.IsTransport(err) {
			s.session.Clear()
			return "", errors.Wrap(ErrNotAuthenticated, err.Error())
		}
		s.lg.Warn("Backend unreachable during login", zap.Error(err))
	}

	if s.localCreds == nil || *s.localCreds != creds {
		s.session.Clear()
		return "", ErrNotAuthenticated
	}
	s.session.Begin(creds, s.now())
	s.lg.Warn("Admin logged in without backend", zap.String("username", creds.Username))
	return datasource.SourceLocal, nil
}

// Logout ends the session. The backend logout is best effort.
func (s *Service) Logout(ctx context.Context) {
	defer s.session.Clear()

	if !s.session.Authenticated() || !s.selector.Available(ctx) {
		return
	}
	if err := s.authn.Logout(ctx); err != nil {
		s.lg.Warn("Backend logout failed", zap.Error(err))
	}
}

// Profile returns the backend profile of the current session.
func (s *Service) Profile(ctx context.Context) (*auth.Profile, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if err := s.ensureAuth(ctx); err != nil {
		return nil, err
	}
	p, err := s.authn.Profile(ctx)
	if err != nil {
		return nil, err
	}
	return &auth.Profile{Username: p.Username, Role: p.Role}, nil
}
