package game

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"snake-arcade/game/entity"
	"snake-arcade/game/manager"
	"snake-arcade/game/scheduler"
	"snake-arcade/game/types"
)

// Eat thresholds, head centre to fruit centre. Strictly below counts as eaten.
const (
	AppleEatDistance  = 12.0
	OrangeEatDistance = 15.0
)

var (
	ErrSessionRunning = errors.New("session already running")
	ErrTerminated     = errors.New("game terminated")
)

// State of the session state machine
type State int32

const (
	NotStarted State = iota
	Running
	Ended
	Terminated
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Ended:
		return "ended"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

type Outcome int

const (
	Loss Outcome = iota
	Win
)

func (o Outcome) String() string {
	if o == Win {
		return "win"
	}
	return "loss"
}

// EndReason says what ended a session
type EndReason int

const (
	ReasonWall EndReason = iota
	ReasonSelf
	ReasonTargetReached
	ReasonFinished // FinishGame was called from outside
)

func (r EndReason) String() string {
	switch r {
	case ReasonWall:
		return "left the field"
	case ReasonSelf:
		return "ran into itself"
	case ReasonTargetReached:
		return "reached the target length"
	default:
		return "finished"
	}
}

// Presenter receives notifications about objects entering and leaving the field.
// Calls arrive from game goroutines; implementations must not call back into
// Game methods other than ChangeDirection while handling them.
type Presenter interface {
	AddObject(entity.Object)
	RemoveObject(entity.Object)
	Clear()
}

// SessionEnded is emitted once per session. The presentation layer decides whether
// to call InitGame again or Terminate.
type SessionEnded struct {
	SessionID   string
	Outcome     Outcome
	Reason      EndReason
	Stats       manager.Results
	Best        manager.Results
	HadBest     bool
	NewBest     bool
	GamesPlayed int
	Collision   *types.Point // where the head hit its body, for highlighting
}

// Options tunes a Game. Zero durations, lengths and seed fall back to the defaults;
// the spawn threshold is taken as given, so start from DefaultOptions.
type Options struct {
	TickInterval        time.Duration
	BonusSpawnPeriod    time.Duration
	BonusLifetime       time.Duration
	BonusSpawnThreshold float64
	WinLength           int
	Seed                uint64
	Clock               types.Clock
	Logger              *log.Logger
}

func DefaultOptions() Options {
	return Options{
		TickInterval:        types.TickInterval,
		BonusSpawnPeriod:    types.BonusSpawnPeriod,
		BonusLifetime:       types.BonusLifetime,
		BonusSpawnThreshold: types.BonusSpawnThreshold,
		WinLength:           types.WinLength,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TickInterval <= 0 {
		o.TickInterval = d.TickInterval
	}
	if o.BonusSpawnPeriod <= 0 {
		o.BonusSpawnPeriod = d.BonusSpawnPeriod
	}
	if o.BonusLifetime <= 0 {
		o.BonusLifetime = d.BonusLifetime
	}
	if o.WinLength <= 0 {
		o.WinLength = d.WinLength
	}
	if o.Seed == 0 {
		o.Seed = uint64(time.Now().UnixNano())
	}
	if o.Clock == nil {
		o.Clock = types.SystemClock{}
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// Game is the session controller. It owns the tick and bonus-spawn activities and is the
// only writer of the snake and the fruits.
type Game struct {
	opts       Options
	view       Presenter
	snake      *entity.Snake
	food       *manager.FoodManager
	collisions *manager.CollisionManager
	results    *manager.ResultsTracker
	clock      types.Clock
	logger     *log.Logger

	lifecycle sync.Mutex // serializes InitGame and Terminate

	mu        sync.Mutex // guards everything below
	state     State
	sessionID string
	apple     *entity.Fruit
	orange    *entity.Fruit
	record    manager.Record
	hasRecord bool
	tick      *scheduler.PeriodicTask
	spawn     *scheduler.PeriodicTask

	dirMu     sync.Mutex
	direction types.Direction

	running atomic.Bool
	events  chan SessionEnded
}

// NewGame wires a controller around snake. The snake is reset on every InitGame.
func NewGame(snake *entity.Snake, view Presenter, store manager.BestStore, opts Options) *Game {
	opts = opts.withDefaults()
	return &Game{
		opts:       opts,
		view:       view,
		snake:      snake,
		food:       manager.NewFoodManager(rand.New(rand.NewSource(opts.Seed)), opts.BonusSpawnThreshold, opts.BonusLifetime),
		collisions: manager.NewCollisionManager(types.FieldBounds),
		results:    manager.NewResultsTracker(store, opts.Clock, opts.Logger),
		clock:      opts.Clock,
		logger:     opts.Logger,
		state:      NotStarted,
		direction:  types.UP,
		events:     make(chan SessionEnded, 4),
	}
}

// Events delivers one SessionEnded per finished session; it is closed by Terminate
func (g *Game) Events() <-chan SessionEnded {
	return g.events
}

// InitGame starts a session from NotStarted or restarts one from Ended
func (g *Game) InitGame() error {
	g.lifecycle.Lock()
	defer g.lifecycle.Unlock()

	g.mu.Lock()
	switch g.state {
	case Running:
		g.mu.Unlock()
		return ErrSessionRunning
	case Terminated:
		g.mu.Unlock()
		return ErrTerminated
	}
	prevTick, prevSpawn := g.tick, g.spawn
	g.mu.Unlock()

	// The previous session's activities have already seen the cleared flag; make sure they are gone
	stopAndWait(prevTick, prevSpawn)

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == Ended {
		g.view.Clear()
	}
	if err := g.snake.Reset(types.StartPosition()); err != nil {
		return err
	}
	g.setDirection(types.UP)
	g.orange = nil
	g.apple = g.food.CreateApple()
	g.sessionID = uuid.NewString()
	g.record, g.hasRecord = g.results.LoadRecord()

	g.view.AddObject(g.snake.Head())
	g.view.AddObject(g.apple)

	g.results.Begin()
	g.running.Store(true)
	g.state = Running

	g.tick = scheduler.New("tick", g.opts.TickInterval, &g.running, g.Step, g.logger)
	g.spawn = scheduler.New("bonus-spawn", g.opts.BonusSpawnPeriod, &g.running, func() { g.SpawnBonus() }, g.logger)
	g.tick.Start()
	g.spawn.Start()

	g.logger.Printf("Session %s started", g.sessionID)
	return nil
}

// ChangeDirection requests a new direction; the exact reverse of the current one is ignored
func (g *Game) ChangeDirection(d types.Direction) bool {
	if !d.Valid() {
		return false
	}
	g.dirMu.Lock()
	defer g.dirMu.Unlock()
	if d == g.direction.Opposite() {
		return false
	}
	g.direction = d
	return true
}

// Direction returns the currently requested direction
func (g *Game) Direction() types.Direction {
	g.dirMu.Lock()
	defer g.dirMu.Unlock()
	return g.direction
}

func (g *Game) setDirection(d types.Direction) {
	g.dirMu.Lock()
	g.direction = d
	g.dirMu.Unlock()
}

// Step runs one tick. It is what the tick activity calls every period.
func (g *Game) Step() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Running || !g.running.Load() {
		return
	}

	g.snake.UpdatePreviousPositions()
	g.snake.Move(g.Direction())
	g.snake.MoveBody()

	switch collision, idx := g.collisions.CheckCollision(g.snake); collision {
	case manager.WallCollision:
		g.endLocked(Loss, ReasonWall, nil)
		return
	case manager.SelfCollision:
		hit := g.snake.Segments()[idx].Position()
		g.endLocked(Loss, ReasonSelf, &hit)
		return
	}

	g.expireBonusLocked()
	g.eatLocked()

	if g.snake.Len() >= g.opts.WinLength {
		g.endLocked(Win, ReasonTargetReached, nil)
	}
}

func (g *Game) eatLocked() {
	if g.collisions.IsFoodCollision(g.snake, g.apple, AppleEatDistance) {
		g.view.RemoveObject(g.apple)
		g.growLocked(g.apple.Value())
		g.snake.IncrementApplesEaten()
		g.apple = g.food.CreateApple()
		g.view.AddObject(g.apple)
	}
	if g.collisions.IsFoodCollision(g.snake, g.orange, OrangeEatDistance) {
		g.view.RemoveObject(g.orange)
		g.growLocked(g.orange.Value())
		g.snake.IncrementOrangesEaten()
		g.orange = nil
	}
}

func (g *Game) growLocked(n int) {
	for _, seg := range g.snake.Grow(n) {
		g.view.AddObject(seg)
	}
}

// expireBonusLocked removes a bonus fruit that outlived its lifetime
func (g *Game) expireBonusLocked() {
	if g.orange != nil && g.orange.Expired(g.clock.Now()) {
		g.view.RemoveObject(g.orange)
		g.orange = nil
	}
}

// SpawnBonus makes one bonus spawn decision, replacing any bonus on the field when it
// succeeds. It is what the spawn activity calls every period.
func (g *Game) SpawnBonus() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Running || !g.running.Load() {
		return false
	}
	if !g.food.ShouldSpawnBonus() {
		return false
	}
	if g.orange != nil {
		g.view.RemoveObject(g.orange)
	}
	g.orange = g.food.CreateOrange(g.clock.Now())
	g.view.AddObject(g.orange)
	g.logger.Printf("Bonus fruit spawned at %v", g.orange.Position())
	return true
}

// FinishGame ends a running session as a loss, e.g. when the window is closed
func (g *Game) FinishGame() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != Running {
		return
	}
	g.endLocked(Loss, ReasonFinished, nil)
}

// endLocked freezes the session, persists the result and emits SessionEnded.
// Runs on the tick goroutine for in-game endings, so it must never wait for the tasks.
func (g *Game) endLocked(outcome Outcome, reason EndReason, collision *types.Point) {
	g.running.Store(false)
	g.state = Ended
	g.tick.Stop()
	g.spawn.Stop()
	g.results.Freeze()

	stats := g.results.Snapshot(g.sessionID, g.snake)
	verdict, err := g.results.Conclude(stats)
	if err != nil {
		g.logger.Printf("Session %s: %v", g.sessionID, err)
	}
	if verdict.NewBest {
		g.record = manager.Record{Best: verdict.Best, GamesPlayed: verdict.GamesPlayed}
		g.hasRecord = true
		g.logger.Printf("Session %s set a new best: length %d", g.sessionID, stats.Length)
	} else if verdict.HadBest {
		g.record.GamesPlayed = verdict.GamesPlayed
	}

	g.logger.Printf("Session %s ended: %s (%s), length %d, apples %d, oranges %d, %.2f min",
		g.sessionID, outcome, reason, stats.Length, stats.ApplesEaten, stats.OrangesEaten, stats.Elapsed.Minutes())

	ev := SessionEnded{
		SessionID:   g.sessionID,
		Outcome:     outcome,
		Reason:      reason,
		Stats:       stats,
		Best:        verdict.Best,
		HadBest:     verdict.HadBest,
		NewBest:     verdict.NewBest,
		GamesPlayed: verdict.GamesPlayed,
		Collision:   collision,
	}
	select {
	case g.events <- ev:
	default:
		g.logger.Printf("Session %s: end event dropped, nobody is listening", g.sessionID)
	}
}

// Terminate ends any running session and stops the game for good
func (g *Game) Terminate() {
	g.lifecycle.Lock()
	defer g.lifecycle.Unlock()

	g.mu.Lock()
	if g.state == Terminated {
		g.mu.Unlock()
		return
	}
	if g.state == Running {
		g.endLocked(Loss, ReasonFinished, nil)
	}
	g.state = Terminated
	close(g.events)
	tick, spawn := g.tick, g.spawn
	g.mu.Unlock()

	stopAndWait(tick, spawn)
}

func stopAndWait(tasks ...*scheduler.PeriodicTask) {
	for _, t := range tasks {
		if t != nil {
			t.Stop()
		}
	}
	for _, t := range tasks {
		if t != nil {
			t.Wait()
		}
	}
}

// State returns the current session state
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// SessionID identifies the current or last session
func (g *Game) SessionID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sessionID
}

// Stats returns the live statistics of the current session
func (g *Game) Stats() manager.Results {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.results.Snapshot(g.sessionID, g.snake)
}

// ElapsedMinutes is the play time of the current or last session
func (g *Game) ElapsedMinutes() float64 {
	return g.results.ElapsedMinutes()
}

// Best returns the persisted record as of the last load or session end
func (g *Game) Best() (manager.Record, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.record, g.hasRecord
}

// WinLength is the body length that wins a session
func (g *Game) WinLength() int {
	return g.opts.WinLength
}

// Now reads the game clock, for frontends that blink expiring fruit
func (g *Game) Now() time.Time {
	return g.clock.Now()
}
