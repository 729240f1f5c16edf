package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-sortgame/catalog"
	"go-sortgame/dto"
	"go-sortgame/entities"
	"go-sortgame/game"
	"go-sortgame/repository"
	"go-sortgame/utils"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var ErrTokenMismatch = errors.New("token does not belong to this session")

type Options struct {
	Secret            []byte
	TokenTTL          time.Duration
	DefaultDifficulty game.Difficulty
	Seed              uint64 // zero seeds from the clock
}

// GameService runs engine operations against stored sessions. Every mutation
// holds the store lock of its session from load to save.
type GameService struct {
	store   repository.SessionStore
	catalog *catalog.Catalog
	log     *zap.Logger
	opts    Options

	mu  sync.Mutex
	rng *rand.Rand
}

func NewGameService(store repository.SessionStore, cat *catalog.Catalog, log *zap.Logger, opts Options) *GameService {
	if opts.DefaultDifficulty == "" {
		opts.DefaultDifficulty = game.DifficultyNormal
	}
	return &GameService{
		store:   store,
		catalog: cat,
		log:     log,
		opts:    opts,
		rng:     newSeedSource(opts.Seed),
	}
}

func (s *GameService) nextSeed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Uint64()
}

func (s *GameService) randomDifficulty() game.Difficulty {
	s.mu.Lock()
	defer s.mu.Unlock()
	return game.RandomDifficulty(s.rng)
}

func (s *GameService) CreateGame(ctx context.Context, req dto.CreateGameRequest) (dto.CreateGameResponse, error) {
	d := s.opts.DefaultDifficulty
	if req.Difficulty != "" {
		parsed, err := game.ParseDifficulty(req.Difficulty)
		if err != nil {
			return dto.CreateGameResponse{}, err
		}
		d = parsed
	}
	seed := s.nextSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	session, err := game.NewSession(s.catalog, d, seed)
	if err != nil {
		return dto.CreateGameResponse{}, fmt.Errorf("new game: %w", err)
	}
	id := newSessionID()
	if err := s.store.Save(ctx, id, session); err != nil {
		s.log.Error("save session failed", zap.String("session_id", id), zap.Error(err))
		return dto.CreateGameResponse{}, err
	}
	s.logSetup(id, session)

	token, err := utils.GenerateSessionToken(id, s.opts.Secret, s.opts.TokenTTL)
	if err != nil {
		return dto.CreateGameResponse{}, fmt.Errorf("sign token: %w", err)
	}
	return dto.CreateGameResponse{
		SessionID: id,
		Token:     token,
		State:     dto.NewGameView(id, session),
	}, nil
}

func (s *GameService) GetGame(ctx context.Context, id string) (dto.GameView, error) {
	session, err := s.store.Load(ctx, id)
	if err != nil {
		return dto.GameView{}, err
	}
	return dto.NewGameView(id, session), nil
}

func (s *GameService) Draw(ctx context.Context, id string) (dto.ActionResult, error) {
	var (
		outcome game.DrawOutcome
		events  []game.Event
	)
	session, err := s.mutate(ctx, id, func(session *game.Session) (bool, error) {
		var err error
		outcome, events, err = session.Draw()
		return err == nil && outcome != game.DrawEmpty, err
	})
	if err != nil {
		return dto.ActionResult{}, err
	}
	s.logEvents(id, events)
	return dto.ActionResult{Outcome: outcome, Events: nonNil(events), State: dto.NewGameView(id, session)}, nil
}

func (s *GameService) Drop(ctx context.Context, id string, req dto.DropRequest) (dto.ActionResult, error) {
	var (
		moved  bool
		events []game.Event
	)
	session, err := s.mutate(ctx, id, func(session *game.Session) (bool, error) {
		moved, events = session.HandleDrop(req.CardID, entities.ZoneKind(req.Zone), req.Index)
		return moved, nil
	})
	if err != nil {
		return dto.ActionResult{}, err
	}
	if !moved {
		s.log.Debug("drop rejected", zap.String("session_id", id),
			zap.String("card_id", req.CardID), zap.String("zone", req.Zone), zap.Int("index", req.Index))
	}
	s.logEvents(id, events)
	return dto.ActionResult{Moved: &moved, Events: nonNil(events), State: dto.NewGameView(id, session)}, nil
}

func (s *GameService) SetDifficulty(ctx context.Context, id string, difficulty string) (dto.ActionResult, error) {
	d, err := game.ParseDifficulty(difficulty)
	if err != nil {
		return dto.ActionResult{}, err
	}
	return s.rebuild(ctx, id, d)
}

// Restart asks for confirmation first; a confirmed restart deals a fresh board
// at a random difficulty.
func (s *GameService) Restart(ctx context.Context, id string, confirm bool) (dto.ActionResult, error) {
	if !confirm {
		view, err := s.GetGame(ctx, id)
		if err != nil {
			return dto.ActionResult{}, err
		}
		return dto.ActionResult{Events: []game.Event{{Kind: game.EventConfirmRestart}}, State: view}, nil
	}
	return s.rebuild(ctx, id, s.randomDifficulty())
}

func (s *GameService) rebuild(ctx context.Context, id string, d game.Difficulty) (dto.ActionResult, error) {
	seed := s.nextSeed()
	session, err := s.mutate(ctx, id, func(session *game.Session) (bool, error) {
		if err := session.SetDifficulty(s.catalog, d, seed); err != nil {
			return false, fmt.Errorf("rebuild: %w", err)
		}
		return true, nil
	})
	if err != nil {
		return dto.ActionResult{}, err
	}
	s.logSetup(id, session)
	return dto.ActionResult{Events: []game.Event{}, State: dto.NewGameView(id, session)}, nil
}

func (s *GameService) CollectedCount(ctx context.Context, id, categoryID string) (int, error) {
	session, err := s.store.Load(ctx, id)
	if err != nil {
		return 0, err
	}
	return session.CollectedCount(categoryID), nil
}

func (s *GameService) DeleteGame(ctx context.Context, id string) error {
	unlock, err := s.store.Lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("session ended", zap.String("session_id", id))
	return nil
}

// Authorize checks that token was issued for sessionID.
func (s *GameService) Authorize(token, sessionID string) error {
	claims, err := utils.ParseSessionToken(token, s.opts.Secret)
	if err != nil {
		return err
	}
	if claims.SessionID != sessionID {
		return ErrTokenMismatch
	}
	return nil
}

// mutate loads id under its lock, applies fn and saves when fn reports a
// change.
func (s *GameService) mutate(ctx context.Context, id string, fn func(*game.Session) (bool, error)) (*game.Session, error) {
	unlock, err := s.store.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	session, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	changed, err := fn(session)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.store.Save(ctx, id, session); err != nil {
			s.log.Error("save session failed", zap.String("session_id", id), zap.Error(err))
			return nil, err
		}
	}
	return session, nil
}

func (s *GameService) logSetup(id string, session *game.Session) {
	s.log.Info("game setup",
		zap.String("session_id", id),
		zap.String("difficulty", string(session.Difficulty)),
		zap.Int("categories", len(session.Categories)),
		zap.Int("cards", session.TotalCards),
		zap.Int("estimate", session.Estimate.Turns),
		zap.Int("cycles", session.Estimate.Cycles),
		zap.Int("turn_budget", session.TurnBudget),
	)
}

func (s *GameService) logEvents(id string, events []game.Event) {
	for _, e := range events {
		switch e.Kind {
		case game.EventBoardCleared, game.EventTurnsExhausted:
			s.log.Info("game over", zap.String("session_id", id), zap.String("event", string(e.Kind)))
		default:
			s.log.Debug("game event", zap.String("session_id", id), zap.String("event", string(e.Kind)))
		}
	}
}

func nonNil(events []game.Event) []game.Event {
	if events == nil {
		return []game.Event{}
	}
	return events
}
