package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"backoffice/internal/platform"
	"backoffice/internal/schema"
	"backoffice/pkg/logger"
	"backoffice/pkg/requestid"
	"backoffice/pkg/utils/debounce"

	"go.uber.org/zap"
)

type Service struct {
	client   *platform.Client
	delay    time.Duration
	pageSize int
}

func NewService(client *platform.Client, delay time.Duration, pageSize int) *Service {
	return &Service{client: client, delay: delay, pageSize: pageSize}
}

type Result struct {
	Query      string              `json:"query"`
	Users      []schema.User       `json:"users"`
	Pagination platform.Pagination `json:"pagination"`
	Error      string              `json:"error,omitempty"`
}

// Search runs one user query against the platform. An empty query matches
// nobody and is answered locally.
func (s *Service) Search(ctx context.Context, query string, page int) (*Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &Result{Users: []schema.User{}}, nil
	}
	res, err := s.client.ListUsers(ctx, platform.ListParams{Page: page, Limit: s.pageSize, Search: query}.Normalized())
	if err != nil {
		return nil, err
	}
	users := res.Rows
	if users == nil {
		users = []schema.User{}
	}
	return &Result{Query: query, Users: users, Pagination: res.Pagination}, nil
}

// Session is one operator's live search box. Input is debounced; only the
// result of the latest query is delivered.
type Session struct {
	svc      *Service
	ctx      context.Context
	deliver  func(Result)
	debounce *debounce.Debouncer

	mu       sync.Mutex
	seq      uint64
	inflight context.CancelFunc
}

// NewSession delivers results through deliver until ctx ends or Close is called.
// deliver may be called from any goroutine but never concurrently.
func (s *Service) NewSession(ctx context.Context, deliver func(Result)) *Session {
	return &Session{
		svc:      s,
		ctx:      ctx,
		deliver:  deliver,
		debounce: debounce.New(s.delay),
	}
}

// Input records a keystroke. The query runs once input has been quiet for the
// debounce delay, cancelling any query still in flight.
func (se *Session) Input(query string) {
	se.debounce.Trigger(func() { se.run(query) })
}

func (se *Session) Close() {
	se.debounce.Stop()
	se.mu.Lock()
	if se.inflight != nil {
		se.inflight()
	}
	se.mu.Unlock()
}

func (se *Session) run(query string) {
	se.mu.Lock()
	if se.inflight != nil {
		se.inflight()
	}
	se.seq++
	seq := se.seq
	ctx, cancel := context.WithCancel(se.ctx)
	se.inflight = cancel
	se.mu.Unlock()
	defer cancel()

	res, err := se.svc.Search(ctx, query, 1)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		logger.With(requestid.FromContext(ctx)).Warn("user search failed",
			zap.String("query", query),
			zap.Error(err),
		)
		res = &Result{Query: strings.TrimSpace(query), Users: []schema.User{}, Error: platform.Normalize(err, "Failed to search users").Message}
	}

	se.mu.Lock()
	defer se.mu.Unlock()
	if seq != se.seq {
		return
	}
	se.deliver(*res)
}
