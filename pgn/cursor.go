package pgn

import (
	"container/list"
	"math"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/lucidchess/corepgn/chess"
)

// ParseError pairs a failing game's index with the error recorded for it.
type ParseError struct {
	Index int
	Err   error
}

// OnErrorFunc is invoked once per non-strict parse failure.
type OnErrorFunc func(err error, gameIndex int)

// Options configures a Cursor. Zero-value fields take the documented
// defaults in NewCursor. See spec §4.8.
type Options struct {
	Start           int
	Length          int // 0 means unbounded
	Prefetch        int
	IncludeMetadata bool
	CacheSize       int
	LazyParse       bool
	Strict          bool
	OnError         OnErrorFunc
	Workers         bool
	WorkerCount     int // 0 uses the default of 4
	WorkerBatchSize int
	Logger          zerolog.Logger
}

// Option configures an Options value. Grounded on the teacher's
// internal/worker.PoolOption pattern (WithWorkers, WithBufferSize).
type Option func(*Options)

// WithWorkers enables async iteration through the worker pool rather than
// synchronous in-process parsing.
func WithWorkers(workers bool) Option {
	return func(o *Options) { o.Workers = workers }
}

// WithWorkerCount sets the number of worker goroutines IterateAsync uses.
func WithWorkerCount(n int) Option {
	return func(o *Options) { o.WorkerCount = n }
}

// WithStrict sets whether parse failures propagate as errors (true) or
// are recorded to Errors()/OnError and skipped (false).
func WithStrict(strict bool) Option {
	return func(o *Options) { o.Strict = strict }
}

// WithCacheSize sets the Cursor's FIFO cache capacity, in games.
func WithCacheSize(n int) Option {
	return func(o *Options) { o.CacheSize = n }
}

// WithOnError sets the callback invoked once per non-strict parse failure.
func WithOnError(fn OnErrorFunc) Option {
	return func(o *Options) { o.OnError = fn }
}

// WithLogger sets the Cursor's diagnostic logger.
func WithLogger(log zerolog.Logger) Option {
	return func(o *Options) { o.Logger = log }
}

// NewOptions builds an Options from a list of Option funcs, then applies
// the same documented defaults NewCursor applies to a zero-value Options.
func NewOptions(opts ...Option) Options {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}
	o.applyDefaults()
	return o
}

func (o *Options) applyDefaults() {
	if o.Length <= 0 {
		o.Length = math.MaxInt32
	}
	if o.Prefetch <= 0 {
		o.Prefetch = 1
	}
	if o.CacheSize <= 0 {
		o.CacheSize = 10
	}
	if o.WorkerBatchSize <= 0 {
		o.WorkerBatchSize = 10
	}
	if o.WorkerCount <= 0 {
		o.WorkerCount = 4
	}
}

type cacheEntry struct {
	index int
	game  *chess.Game
}

// Cursor is the lazy, cacheable, optionally-parallel reader over a
// multi-game PGN archive (C8). It owns its cache, its errors slice, and
// its optional worker pool exclusively; the source text is a read-only
// shared reference (spec §5) and must not be mutated while the Cursor is
// live.
type Cursor struct {
	source  string
	indexes []GameIndex
	opts    Options

	current int

	mu       sync.Mutex
	cacheLst *list.List // FIFO order, front = oldest
	cacheMap map[int]*list.Element

	errors []ParseError

	group singleflight.Group
	pool  *Pool
}

// NewCursor indexes text and returns a Cursor over it, ready at Start.
func NewCursor(source string, opts Options) *Cursor {
	opts.applyDefaults()
	c := &Cursor{
		source:   source,
		indexes:  IndexGames(source),
		opts:     opts,
		current:  opts.Start,
		cacheLst: list.New(),
		cacheMap: map[int]*list.Element{},
	}
	return c
}

// TotalGames returns the number of games the Indexer found in the source
// text, independent of Start/Length windowing.
func (c *Cursor) TotalGames() int { return len(c.indexes) }

func (c *Cursor) end() int {
	if e := c.opts.Start + c.opts.Length; e < len(c.indexes) {
		return e
	}
	return len(c.indexes)
}

// HasNext reports whether a call to Next would return a game.
func (c *Cursor) HasNext() bool {
	return c.current < c.end()
}

// HasBefore reports whether a call to Before would return a game.
func (c *Cursor) HasBefore() bool {
	return c.current > c.opts.Start
}

// Seek moves current to i, returning false (a Cursor out-of-range
// non-error, per spec §7) when i falls outside [0, totalGames). The
// out-of-range condition is still logged against chess.ErrCursorRange so
// diagnostics can distinguish it from an ordinary end-of-archive check.
func (c *Cursor) Seek(i int) bool {
	if i < 0 || i >= len(c.indexes) {
		c.opts.Logger.Debug().Int("index", i).Err(chess.ErrCursorRange).Msg("seek out of range")
		return false
	}
	c.current = i
	return true
}

// Reset returns current to Start and clears the cache.
func (c *Cursor) Reset() {
	c.current = c.opts.Start
	c.mu.Lock()
	c.cacheLst = list.New()
	c.cacheMap = map[int]*list.Element{}
	c.mu.Unlock()
}

// Errors returns the ordered sequence of {index, error} recorded so far
// in non-strict mode.
func (c *Cursor) Errors() []ParseError {
	out := make([]ParseError, len(c.errors))
	copy(out, c.errors)
	return out
}

// Next parses and caches the game at current, advances current, and
// returns it; returns (nil, nil) once exhausted. In strict mode a parse
// failure is returned as an error; in non-strict mode it is recorded to
// Errors(), passed to OnError, and (nil, nil) is returned for that index.
func (c *Cursor) Next() (*chess.Game, error) {
	if !c.HasNext() {
		return nil, nil
	}
	i := c.current
	game, err := c.parseAt(i)
	c.current++
	c.prefetchAhead()
	return game, err
}

// Before decrements current and returns the game now at current.
func (c *Cursor) Before() (*chess.Game, error) {
	if !c.HasBefore() {
		return nil, nil
	}
	c.current--
	return c.parseAt(c.current)
}

// FindNext advances current until a game's pre-scanned headers satisfy
// pred, without parsing any skipped game, then parses and returns the
// match via Next semantics.
func (c *Cursor) FindNext(pred func(headers map[string]string) bool) (*chess.Game, error) {
	for c.current < c.end() {
		if pred(c.indexes[c.current].Headers) {
			return c.Next()
		}
		c.current++
	}
	return nil, nil
}

func (c *Cursor) prefetchAhead() {
	for j := 1; j <= c.opts.Prefetch; j++ {
		idx := c.current + j - 1
		if idx >= c.end() {
			break
		}
		if _, cached := c.cacheGet(idx); cached {
			continue
		}
		_, _ = c.parseAt(idx)
	}
}

// parseAt implements spec §4.8's parse flow: cache hit, slice, full
// parse, fallback on header-quoting failure, cache-and-return, or
// strict-propagate / non-strict-record.
func (c *Cursor) parseAt(i int) (*chess.Game, error) {
	if game, ok := c.cacheGet(i); ok {
		return game, nil
	}

	// singleflight coalesces concurrent requests for the same index
	// (e.g. a prefetch racing an explicit Seek+Next) into one parse.
	result, err, _ := c.group.Do(indexKey(i), func() (interface{}, error) {
		idx := c.indexes[i]
		slice := c.source[idx.StartOffset:idx.EndOffset]
		game, primaryErr, fallbackErr := ParseGameSlice(slice, idx.Headers, c.opts.Strict)

		if primaryErr != nil {
			c.mu.Lock()
			c.errors = append(c.errors, ParseError{Index: i, Err: primaryErr})
			if fallbackErr != nil {
				c.errors = append(c.errors, ParseError{Index: i, Err: fallbackErr})
			}
			c.mu.Unlock()
		}

		if game == nil {
			finalErr := primaryErr
			if fallbackErr != nil {
				finalErr = fallbackErr
			}
			if c.opts.Strict {
				return nil, finalErr
			}
			if c.opts.OnError != nil {
				c.opts.OnError(finalErr, i)
			}
			return (*chess.Game)(nil), nil
		}

		c.cachePut(i, game)
		return game, nil
	})

	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return result.(*chess.Game), nil
}

func indexKey(i int) string {
	// singleflight keys on strings; a decimal index is unambiguous.
	buf := [20]byte{}
	n := len(buf)
	if i == 0 {
		return "0"
	}
	for i > 0 {
		n--
		buf[n] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[n:])
}

func (c *Cursor) cacheGet(i int) (*chess.Game, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.cacheMap[i]
	if !ok {
		return nil, false
	}
	return el.Value.(*cacheEntry).game, true
}

// cachePut inserts at the back (most recently parsed) and evicts from
// the front (oldest inserted) once over CacheSize: FIFO, not LRU, per
// spec §9's documented design note.
func (c *Cursor) cachePut(i int, game *chess.Game) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.cacheMap[i]; exists {
		return
	}
	el := c.cacheLst.PushBack(&cacheEntry{index: i, game: game})
	c.cacheMap[i] = el
	for c.cacheLst.Len() > c.opts.CacheSize {
		front := c.cacheLst.Front()
		c.cacheLst.Remove(front)
		delete(c.cacheMap, front.Value.(*cacheEntry).index)
	}
}

// PGN re-serialises every game the Cursor exposes (its [Start, Start+
// Length) window), preserving current across the call.
func (c *Cursor) PGN(opts chess.PGNOptions) string {
	saved := c.current
	defer func() { c.current = saved }()

	var sb []byte
	for i := c.opts.Start; i < c.end(); i++ {
		game, err := c.parseAt(i)
		if err != nil || game == nil {
			continue
		}
		sb = append(sb, game.PGN(opts)...)
		sb = append(sb, '\n')
	}
	return string(sb)
}

// ensurePool lazily starts the worker pool on first use by IterateAsync, so a
// Cursor that never iterates asynchronously never spawns goroutines.
func (c *Cursor) ensurePool() *Pool {
	if c.pool == nil {
		c.pool = NewPool(c.opts.WorkerCount, c.opts.Logger)
	}
	return c.pool
}

// IterateAsync drains the Cursor's remaining window through the worker
// pool in WorkerBatchSize chunks and streams results on the returned
// channel in strictly increasing game-index order, one batch at a time;
// batch N+1 is not dispatched until batch N's results have been sent.
// Closing done (or letting the caller stop draining the channel) does
// not stop in-flight work; call Terminate to tear down the pool itself.
// current is left at the end of the drained window.
func (c *Cursor) IterateAsync(done <-chan struct{}) <-chan ProcessResult {
	out := make(chan ProcessResult)

	// Workers defaults to false (spec §5): without it, async iteration
	// still yields in WorkerBatchSize-shaped groups for a uniform caller
	// experience, but each batch is parsed synchronously in this
	// goroutine rather than dispatched to the pool.
	var pool *Pool
	if c.opts.Workers {
		pool = c.ensurePool()
	}

	go func() {
		defer close(out)
		for c.current < c.end() {
			batchEnd := c.current + c.opts.WorkerBatchSize
			if batchEnd > c.end() {
				batchEnd = c.end()
			}
			items := make([]WorkItem, 0, batchEnd-c.current)
			for i := c.current; i < batchEnd; i++ {
				idx := c.indexes[i]
				items = append(items, WorkItem{
					Index:   i,
					Slice:   c.source[idx.StartOffset:idx.EndOffset],
					Headers: idx.Headers,
					Strict:  c.opts.Strict,
				})
			}
			c.current = batchEnd

			var results []ProcessResult
			if pool != nil {
				results = pool.SubmitBatch(items)
			} else {
				results = processBatchInProcess(items)
			}
			for _, r := range results {
				if r.Err != nil {
					c.mu.Lock()
					c.errors = append(c.errors, ParseError{Index: r.Index, Err: r.Err})
					c.mu.Unlock()
					if c.opts.OnError != nil {
						c.opts.OnError(r.Err, r.Index)
					}
					if c.opts.Strict {
						return
					}
					continue
				}
				c.cachePut(r.Index, r.Game)
				select {
				case out <- r:
				case <-done:
					return
				}
			}
		}
	}()

	return out
}

// processBatchInProcess parses a batch sequentially without a worker
// pool, used by IterateAsync when Options.Workers is false.
func processBatchInProcess(items []WorkItem) []ProcessResult {
	out := make([]ProcessResult, len(items))
	for i, item := range items {
		game, primaryErr, fallbackErr := ParseGameSlice(item.Slice, item.Headers, item.Strict)
		out[i] = ProcessResult{Index: item.Index, Game: game}
		if game == nil {
			if fallbackErr != nil {
				out[i].Err = fallbackErr
			} else {
				out[i].Err = primaryErr
			}
		}
	}
	return out
}

// Terminate shuts down the worker pool, if one was started. Idempotent
// and safe to call on a Cursor that never used workers.
func (c *Cursor) Terminate() {
	if c.pool != nil {
		c.pool.Terminate()
	}
}
