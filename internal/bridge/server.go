package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// CancelCommand is handled by the server itself: it cancels the in-flight
// request whose id equals args.id.
const CancelCommand = "cancel"

// maxRequestSize bounds one request line.
const maxRequestSize = 4 * 1024 * 1024

// Request is one line read from the front end.
type Request struct {
	ID   json.RawMessage `json:"id"`
	Cmd  string          `json:"cmd"`
	Args map[string]any  `json:"args"`
}

// Response is one line written back. Data is set when OK is true, Error otherwise.
type Response struct {
	ID    json.RawMessage `json:"id"`
	OK    bool            `json:"ok"`
	Data  any             `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

// ErrRequestCancelled is reported for requests cancelled before they started.
var ErrRequestCancelled = errors.New("request cancelled")

// ErrDuplicateID is reported for a request whose id is already in flight.
var ErrDuplicateID = errors.New("duplicate request id")

// Server dispatches JSON-lines requests to commands. Requests run
// concurrently up to a limit; responses may arrive out of order and are
// matched by id.
type Server struct {
	commands map[string]Command
	slots    *semaphore.Weighted

	writeMu sync.Mutex
	enc     *json.Encoder

	inflightMu sync.Mutex
	inflight   map[string]context.CancelFunc
}

// NewServer creates a Server for commands running at most maxConcurrent at
// once. maxConcurrent <= 0 means one request at a time.
func NewServer(commands []Command, maxConcurrent int) *Server {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	byName := make(map[string]Command, len(commands))
	for _, c := range commands {
		byName[c.Name()] = c
	}
	return &Server{
		commands: byName,
		slots:    semaphore.NewWeighted(int64(maxConcurrent)),
		inflight: make(map[string]context.CancelFunc),
	}
}

// Serve reads requests from r until EOF or ctx is done and writes responses
// to w. It waits for in-flight requests before returning.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	s.enc = json.NewEncoder(w)
	s.enc.SetEscapeHTML(false)

	// Every request gets a goroutine right away so the reader keeps draining
	// input (including cancel requests); the semaphore bounds how many run.
	g, gctx := errgroup.WithContext(ctx)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestSize)

	for scanner.Scan() {
		if gctx.Err() != nil {
			break
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			slog.Warn("bridge_bad_request", slog.String("error", err.Error()))
			if err := s.write(Response{Error: fmt.Sprintf("invalid request: %v", err)}); err != nil {
				return err
			}
			continue
		}

		if req.Cmd == CancelCommand {
			if err := s.write(s.cancel(req)); err != nil {
				return err
			}
			continue
		}

		reqCtx, cancel := context.WithCancel(gctx)
		key := idKey(req.ID)
		if !s.track(key, cancel) {
			cancel()
			resp := Response{ID: req.ID, Error: fmt.Sprintf("%v: %s", ErrDuplicateID, req.ID)}
			if err := s.write(resp); err != nil {
				return err
			}
			continue
		}
		g.Go(func() error {
			defer s.untrack(key)
			defer cancel()
			return s.write(s.handle(reqCtx, req))
		})
	}

	waitErr := g.Wait()
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read requests: %w", err)
	}
	return waitErr
}

func (s *Server) handle(ctx context.Context, req Request) Response {
	cmd, ok := s.commands[req.Cmd]
	if !ok {
		return Response{ID: req.ID, Error: fmt.Sprintf("unknown command: %s", req.Cmd)}
	}

	if err := s.slots.Acquire(ctx, 1); err != nil {
		return Response{ID: req.ID, Error: fmt.Errorf("%w: %w", ErrRequestCancelled, err).Error()}
	}
	defer s.slots.Release(1)

	slog.Debug("bridge_request", slog.String("cmd", req.Cmd), slog.String("id", string(req.ID)))
	data, err := cmd.Execute(ctx, req.Args)
	if err != nil {
		slog.Debug("bridge_request_failed", slog.String("cmd", req.Cmd), slog.String("error", err.Error()))
		return Response{ID: req.ID, Error: err.Error()}
	}
	return Response{ID: req.ID, OK: true, Data: data}
}

func (s *Server) cancel(req Request) Response {
	target, ok := req.Args["id"]
	if !ok {
		return Response{ID: req.ID, Error: "cancel requires args.id"}
	}
	raw, err := json.Marshal(target)
	if err != nil {
		return Response{ID: req.ID, Error: fmt.Sprintf("invalid id: %v", err)}
	}
	key := idKey(raw)

	s.inflightMu.Lock()
	cancel, found := s.inflight[key]
	s.inflightMu.Unlock()

	if found {
		cancel()
	}
	return Response{ID: req.ID, OK: true, Data: map[string]bool{"cancelled": found}}
}

// idKey returns the canonical encoding of a request id, so "\u0061" and "a"
// or 1 and 1.0 name the same request. Missing and null ids yield "".
func idKey(id json.RawMessage) string {
	if len(id) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(id, &v); err != nil || v == nil {
		return ""
	}
	key, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(key)
}

// track registers cancel under key. It reports false when key is already in
// flight. Requests without an id are not tracked.
func (s *Server) track(key string, cancel context.CancelFunc) bool {
	if key == "" {
		return true
	}
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = cancel
	return true
}

func (s *Server) untrack(key string) {
	if key == "" {
		return
	}
	s.inflightMu.Lock()
	delete(s.inflight, key)
	s.inflightMu.Unlock()
}

func (s *Server) write(resp Response) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.enc.Encode(resp); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}
