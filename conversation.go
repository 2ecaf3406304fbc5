package planner

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Jaideepo7/Meal-Planner/internal/genai"
	"github.com/Jaideepo7/Meal-Planner/internal/prompt"
	"github.com/Jaideepo7/Meal-Planner/internal/types"
)

// welcomeContent seeds every fresh conversation.
const welcomeContent = "Hi! I'm your AI meal assistant. Based on your preferences, I can help you find recipes, plan meals, and answer questions about your dietary goals. What would you like to know?"

// Conversation owns the session-scoped chat history: append-only, strictly
// chronological, never persisted remotely. Liked assistant messages are
// promoted (copied, one-way) into the favorites collection.
type Conversation struct {
	mu        sync.Mutex
	history   []types.ChatMessage
	favorites []types.Favorite

	prefs  *PreferenceStore
	pantry *PantryStore
	ai     *genai.Client
	log    zerolog.Logger
}

func newConversation(prefs *PreferenceStore, pantry *PantryStore, ai *genai.Client, log zerolog.Logger) *Conversation {
	c := &Conversation{prefs: prefs, pantry: pantry, ai: ai, log: log}
	c.history = c.seed()
	return c
}

func (c *Conversation) seed() []types.ChatMessage {
	return []types.ChatMessage{{
		ID:       uuid.NewString(),
		Role:     types.RoleAssistant,
		Content:  welcomeContent,
		Feedback: types.FeedbackNone,
	}}
}

// identityChanged clears the conversation on login and logout: history is
// session-scoped and favorites must not leak across identities.
func (c *Conversation) identityChanged(_ context.Context, _ *types.Identity) {
	c.mu.Lock()
	c.history = c.seed()
	c.favorites = nil
	c.mu.Unlock()
}

// Reset clears history back to the welcome seed. Favorites survive a reset;
// only identity teardown drops them.
func (c *Conversation) Reset() {
	c.mu.Lock()
	c.history = c.seed()
	c.mu.Unlock()
}

// History returns a copy of the chat history in chronological order.
func (c *Conversation) History() []types.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.ChatMessage, len(c.history))
	copy(out, c.history)
	return out
}

// Favorites returns a copy of the saved messages.
func (c *Conversation) Favorites() []types.Favorite {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.Favorite, len(c.favorites))
	copy(out, c.favorites)
	return out
}

// Send appends the user message, assembles the bounded payload from history
// plus current store snapshots, calls the completion endpoint, and appends
// the assistant reply. On failure nothing is appended for the assistant and
// the typed error is surfaced; the user message stays in history.
func (c *Conversation) Send(ctx context.Context, text string) (*types.ChatMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, types.ErrEmptyMessage
	}

	userMsg := types.ChatMessage{
		ID:       uuid.NewString(),
		Role:     types.RoleUser,
		Content:  trimmed,
		Feedback: types.FeedbackNone,
	}

	c.mu.Lock()
	// The payload carries history without the new user message; the builder
	// appends it as the final turn itself.
	prior := make([]types.ChatMessage, len(c.history))
	copy(prior, c.history)
	c.history = append(c.history, userMsg)
	c.mu.Unlock()

	req := prompt.Build(trimmed, prior, c.prefs.Snapshot(), c.pantry.Items())

	reply, err := c.ai.Send(ctx, req)
	if err != nil {
		completionFailuresTotal.Inc()
		c.log.Warn().Err(err).Msg("completion call failed")
		return nil, err
	}

	assistantMsg := types.ChatMessage{
		ID:       uuid.NewString(),
		Role:     types.RoleAssistant,
		Content:  reply,
		Feedback: types.FeedbackNone,
	}
	c.mu.Lock()
	c.history = append(c.history, assistantMsg)
	c.mu.Unlock()

	messagesSentTotal.Inc()
	out := assistantMsg
	return &out, nil
}

// SetFeedback records like/dislike on an assistant message; repeating the
// same feedback toggles back to none. Reaching the like state promotes a
// copy into favorites exactly once per message.
func (c *Conversation) SetFeedback(messageID string, fb types.Feedback) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.history {
		msg := &c.history[i]
		if msg.ID != messageID {
			continue
		}
		if msg.Role != types.RoleAssistant {
			return false
		}
		if msg.Feedback == fb {
			msg.Feedback = types.FeedbackNone
		} else {
			msg.Feedback = fb
		}
		if msg.Feedback == types.FeedbackLike && !c.savedLocked(msg.ID) {
			c.favorites = append(c.favorites, types.Favorite{ID: msg.ID, Content: msg.Content})
		}
		return true
	}
	return false
}

func (c *Conversation) savedLocked(id string) bool {
	for _, f := range c.favorites {
		if f.ID == id {
			return true
		}
	}
	return false
}
