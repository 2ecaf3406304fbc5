// Package prompt assembles the payload sent to the completion endpoint.
// Build is pure: identical inputs always yield an identical payload, which
// keeps it testable without network access.
package prompt

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/Jaideepo7/Meal-Planner/internal/genai"
	"github.com/Jaideepo7/Meal-Planner/internal/types"
)

// HistoryWindow is the fixed number of trailing history turns carried per
// request. A hard token-budget guard: older turns are silently dropped,
// never summarized.
const HistoryWindow = 10

// acknowledgment is the fixed grounding turn seeded after the preamble. It
// establishes model grounding without consuming a real model call.
const acknowledgment = "I understand. I'm ready to help you with meal planning based on your preferences."

// Sentinels rendered when a profile field is empty. An omitted line would
// make the model assume no constraint rather than unknown constraint, so
// every line always renders.
const (
	NoCuisines     = "no specific cuisine preferences"
	NoRestrictions = "no dietary restrictions"
	NoGoals        = "no specific health goals"
	NoPantry       = "no items in pantry"
)

//go:embed preamble.tmpl
var preambleText string

var preambleTmpl = template.Must(template.New("preamble").Parse(preambleText))

type preambleData struct {
	Cuisines     string
	Restrictions string
	Goals        string
	Pantry       string
}

// Preamble renders the system/preamble block summarizing preferences and
// pantry as plain text, one line per category.
func Preamble(prefs types.PreferenceSet, pantry []types.PantryItem) string {
	names := make([]string, 0, len(pantry))
	for _, it := range pantry {
		names = append(names, it.Name)
	}
	data := preambleData{
		Cuisines:     joinOr(prefs.Cuisines, NoCuisines),
		Restrictions: joinOr(prefs.DietaryRestrictions, NoRestrictions),
		Goals:        joinOr(prefs.HealthGoals, NoGoals),
		Pantry:       joinOr(names, NoPantry),
	}
	var sb strings.Builder
	// The template is embedded and parsed at init; execution over a plain
	// struct cannot fail.
	_ = preambleTmpl.Execute(&sb, data)
	return strings.TrimRight(sb.String(), "\n")
}

func joinOr(values []string, sentinel string) string {
	if len(values) == 0 {
		return sentinel
	}
	return strings.Join(values, ", ")
}

// Build produces the complete ordered payload for one completion call:
// preamble, fixed acknowledgment, the most recent HistoryWindow turns of
// history in original chronological order, then the user message. No
// reordering, no deduplication.
func Build(userMessage string, history []types.ChatMessage, prefs types.PreferenceSet, pantry []types.PantryItem) genai.Request {
	contents := make([]genai.Content, 0, len(history)+3)
	contents = append(contents,
		genai.Content{Role: genai.WireRoleUser, Parts: []genai.Part{{Text: Preamble(prefs, pantry)}}},
		genai.Content{Role: genai.WireRoleModel, Parts: []genai.Part{{Text: acknowledgment}}},
	)

	recent := history
	if len(recent) > HistoryWindow {
		recent = recent[len(recent)-HistoryWindow:]
	}
	for _, msg := range recent {
		role := genai.WireRoleUser
		if msg.Role == types.RoleAssistant {
			role = genai.WireRoleModel
		}
		contents = append(contents, genai.Content{Role: role, Parts: []genai.Part{{Text: msg.Content}}})
	}

	contents = append(contents, genai.Content{Role: genai.WireRoleUser, Parts: []genai.Part{{Text: userMessage}}})

	return genai.Request{Contents: contents, GenerationConfig: genai.DefaultGenerationConfig()}
}
