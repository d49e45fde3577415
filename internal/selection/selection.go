// Package selection tracks which card each UI session has picked.
package selection

import (
	"context"
	"strings"
	"sync"

	"github.com/GregMSThompson/finan-bff/internal/analytics"
	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/pkg/logger"
)

const DefaultSession = "default"

type cardGetter interface {
	GetCard(ctx context.Context, id string) (dto.RawCard, error)
}

type Service struct {
	cards cardGetter

	mu       sync.RWMutex
	sessions map[string]dto.Selection
}

func NewService(cards cardGetter) *Service {
	return &Service{cards: cards, sessions: make(map[string]dto.Selection)}
}

func sessionKey(session string) string {
	if s := strings.TrimSpace(session); s != "" {
		return s
	}
	return DefaultSession
}

// Get returns the session's selection; the zero Selection when nothing is
// selected.
func (s *Service) Get(_ context.Context, session string) dto.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionKey(session)]
}

// Select stores cardID for the session after checking the card exists.
// An empty cardID clears the selection.
func (s *Service) Select(ctx context.Context, session, cardID string) (dto.Selection, error) {
	key := sessionKey(session)
	cardID = strings.TrimSpace(cardID)
	if cardID == "" {
		s.mu.Lock()
		delete(s.sessions, key)
		s.mu.Unlock()
		return dto.Selection{}, nil
	}

	raw, err := s.cards.GetCard(ctx, cardID)
	if err != nil {
		return dto.Selection{}, err
	}
	card := analytics.NormalizeCard(raw)
	theme := ThemeFor(card.CardType)
	sel := dto.Selection{CardID: cardID, Theme: &theme}

	s.mu.Lock()
	s.sessions[key] = sel
	s.mu.Unlock()

	logger.FromContext(ctx).Debug("card selected", "session", key, "cardId", cardID)
	return sel, nil
}

// Forget drops every session's selection of cardID, e.g. after the card
// was deleted.
func (s *Service) Forget(cardID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, sel := range s.sessions {
		if sel.CardID == cardID {
			delete(s.sessions, k)
		}
	}
}
