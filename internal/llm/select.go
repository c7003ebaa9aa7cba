package llm

import (
	"context"
	"iter"
	"log/slog"
	"slices"
	"strings"

	genai "google.golang.org/genai"
)

const generateAction = "generateContent"

// ModelLister enumerates the models visible to the API key.
type ModelLister interface {
	All(ctx context.Context) iter.Seq2[*genai.Model, error]
}

// SelectModel picks the model used for the life of the process. It never
// fails: a listing error or an empty list yields fallback.
func SelectModel(ctx context.Context, lister ModelLister, preferred []string, fallback string, log *slog.Logger) string {
	names, err := generationModels(ctx, lister)
	if err != nil {
		log.Error("list models failed, using default", "error", err, "model", fallback)
		return fallback
	}
	log.Info("found compatible models", "count", len(names))

	name, matched := ChooseModel(names, preferred)
	switch {
	case matched:
		log.Info("preferred model matched", "model", name)
		return name
	case name != "":
		log.Warn("no preferred model found, using first available", "model", name)
		return name
	}
	log.Warn("no models available, using default", "model", fallback)
	return fallback
}

// ChooseModel walks preferred in priority order and returns the first name
// containing it. Without a match it returns the first name with matched=false,
// or "" when names is empty.
func ChooseModel(names, preferred []string) (name string, matched bool) {
	for _, target := range preferred {
		for _, n := range names {
			if strings.Contains(n, target) {
				return n, true
			}
		}
	}
	if len(names) > 0 {
		return names[0], false
	}
	return "", false
}

func generationModels(ctx context.Context, lister ModelLister) ([]string, error) {
	var names []string
	for m, err := range lister.All(ctx) {
		if err != nil {
			return nil, err
		}
		if m != nil && slices.Contains(m.SupportedActions, generateAction) {
			names = append(names, m.Name)
		}
	}
	return names, nil
}
