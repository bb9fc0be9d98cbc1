// Package genre provides genre-aware summary templates: a YAML-backed
// template store, keyword scoring, and LLM-assisted classification.
package genre

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Template shapes the comprehensive summary for one genre.
type Template struct {
	Intro     string   `yaml:"intro"`
	Structure []string `yaml:"structure"`
	Tone      string   `yaml:"tone"`
	Emoji     string   `yaml:"emoji"`
	Keywords  []string `yaml:"keywords"`
}

// Template file names looked up inside the configured directory.
const (
	mainTemplatesFile   = "summary_templates.yaml"
	hybridTemplatesFile = "hybrid_templates.yaml"
)

// DefaultName is the template key that is always present.
const DefaultName = "default"

// Store holds the loaded template set. Reads take a snapshot so a reload
// mid-pipeline never changes the templates a running summarization sees.
type Store struct {
	mu        sync.RWMutex
	templates map[string]Template
	dir       string
	logger    *slog.Logger
}

// NewStore loads templates from dir merged over the built-in set.
// An empty dir or unreadable files leave the built-ins in place; loading
// never fails.
func NewStore(dir string, logger *slog.Logger) *Store {
	s := &Store{
		dir:    dir,
		logger: logger,
	}
	s.templates = s.load()
	return s
}

// Get returns the named template, falling back to the default.
func (s *Store) Get(name string) Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.templates[name]; ok {
		return t
	}
	return s.templates[DefaultName]
}

// Snapshot returns a copy of the current template set.
func (s *Store) Snapshot() map[string]Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Template, len(s.templates))
	for k, v := range s.templates {
		out[k] = v
	}
	return out
}

// Reload re-reads the template directory and swaps the set atomically.
func (s *Store) Reload() {
	loaded := s.load()

	s.mu.Lock()
	s.templates = loaded
	s.mu.Unlock()

	s.logger.Info("summary templates reloaded", "count", len(loaded))
}

func (s *Store) load() map[string]Template {
	templates := builtinTemplates()

	if s.dir == "" {
		return templates
	}

	for _, file := range []string{mainTemplatesFile, hybridTemplatesFile} {
		if err := mergeTemplateFile(filepath.Join(s.dir, file), templates); err != nil {
			// Missing or malformed files are not fatal, the built-ins cover.
			s.logger.Warn("failed to load template file",
				"file", file,
				"error", err,
			)
		}
	}

	return templates
}

func mergeTemplateFile(path string, into map[string]Template) error {
	data, err := os.ReadFile(path) //#nosec G304 -- Template path comes from config
	if err != nil {
		return err
	}

	var loaded map[string]Template
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	for name, t := range loaded {
		into[name] = t
	}
	return nil
}

// builtinTemplates returns the always-available template set.
// The default entry must never be removed; SelectTemplate relies on it.
func builtinTemplates() map[string]Template {
	return map[string]Template{
		DefaultName: {
			Intro:     "This video covers {title_topic}.",
			Structure: []string{"Main Points:", "Key Insights:"},
			Tone:      "informative",
			Emoji:     "📺",
			Keywords:  []string{"video", "content", "information"},
		},
		"educational": {
			Intro:     "This educational video teaches {title_topic}.",
			Structure: []string{"Learning Objectives:", "Key Concepts:", "Takeaways:"},
			Tone:      "instructive",
			Emoji:     "🎓",
			Keywords:  []string{"learn", "course", "lesson", "education", "teach", "study", "explain"},
		},
		"tutorial": {
			Intro:     "This tutorial walks through {title_topic}.",
			Structure: []string{"Prerequisites:", "Steps:", "Tips:"},
			Tone:      "practical",
			Emoji:     "🛠️",
			Keywords:  []string{"tutorial", "how to", "step by step", "guide", "walkthrough", "setup"},
		},
		"technical": {
			Intro:     "This technical video explores {title_topic}.",
			Structure: []string{"Technical Overview:", "Implementation Details:", "Best Practices:"},
			Tone:      "precise",
			Emoji:     "💻",
			Keywords:  []string{"programming", "coding", "developer", "software", "code", "app", "api", "framework", "build"},
		},
		"podcast": {
			Intro:     "This podcast episode discusses {title_topic}.",
			Structure: []string{"Discussion Topics:", "Notable Quotes:", "Conclusions:"},
			Tone:      "conversational",
			Emoji:     "🎙️",
			Keywords:  []string{"podcast", "episode", "discussion", "conversation", "guest"},
		},
		"interview": {
			Intro:     "This interview features {title_topic}.",
			Structure: []string{"About the Guest:", "Key Questions:", "Insights Shared:"},
			Tone:      "engaging",
			Emoji:     "🗣️",
			Keywords:  []string{"interview", "guest", "asked", "answered", "conversation"},
		},
		"news": {
			Intro:     "This news segment covers {title_topic}.",
			Structure: []string{"Headlines:", "Details:", "Implications:"},
			Tone:      "objective",
			Emoji:     "📰",
			Keywords:  []string{"news", "report", "breaking", "update", "commentary"},
		},
		"documentary": {
			Intro:     "This documentary examines {title_topic}.",
			Structure: []string{"Background:", "Key Findings:", "Significance:"},
			Tone:      "narrative",
			Emoji:     "🎬",
			Keywords:  []string{"documentary", "investigation", "story", "explores", "history of"},
		},
		"review": {
			Intro:     "This review evaluates {title_topic}.",
			Structure: []string{"Overview:", "Pros and Cons:", "Verdict:"},
			Tone:      "analytical",
			Emoji:     "⭐",
			Keywords:  []string{"review", "rating", "comparison", "versus", "worth it", "analysis"},
		},
		"gaming": {
			Intro:     "This gaming video features {title_topic}.",
			Structure: []string{"Game Overview:", "Highlights:", "Player Takeaways:"},
			Tone:      "energetic",
			Emoji:     "🎮",
			Keywords:  []string{"game", "gaming", "gameplay", "player", "level", "boss", "playthrough"},
		},
		"entertainment": {
			Intro:     "This entertainment video presents {title_topic}.",
			Structure: []string{"Highlights:", "Memorable Moments:"},
			Tone:      "lively",
			Emoji:     "🎭",
			Keywords:  []string{"entertainment", "fun", "show", "performance", "hilarious"},
		},
		"comedy": {
			Intro:     "This comedy video features {title_topic}.",
			Structure: []string{"Setup:", "Best Moments:"},
			Tone:      "humorous",
			Emoji:     "😂",
			Keywords:  []string{"comedy", "funny", "humor", "joke", "sketch", "parody"},
		},
		"cooking": {
			Intro:     "This cooking video demonstrates {title_topic}.",
			Structure: []string{"Ingredients:", "Method:", "Serving Suggestions:"},
			Tone:      "inviting",
			Emoji:     "🍳",
			Keywords:  []string{"recipe", "cooking", "ingredients", "bake", "dish", "food", "kitchen"},
		},
		"motivational": {
			Intro:     "This motivational video encourages {title_topic}.",
			Structure: []string{"Core Message:", "Action Steps:", "Inspiration:"},
			Tone:      "uplifting",
			Emoji:     "🔥",
			Keywords:  []string{"motivation", "success", "mindset", "inspiration", "goals", "self improvement"},
		},
		"business": {
			Intro:     "This business video analyzes {title_topic}.",
			Structure: []string{"Market Context:", "Key Strategies:", "Bottom Line:"},
			Tone:      "professional",
			Emoji:     "📈",
			Keywords:  []string{"business", "finance", "investment", "market", "startup", "revenue", "strategy"},
		},
		"science": {
			Intro:     "This science video explains {title_topic}.",
			Structure: []string{"The Question:", "The Evidence:", "What It Means:"},
			Tone:      "curious",
			Emoji:     "🔬",
			Keywords:  []string{"science", "research", "experiment", "theory", "physics", "biology", "explainer"},
		},
		"health": {
			Intro:     "This health video covers {title_topic}.",
			Structure: []string{"Health Focus:", "Recommendations:", "Cautions:"},
			Tone:      "supportive",
			Emoji:     "💪",
			Keywords:  []string{"health", "fitness", "workout", "exercise", "nutrition", "wellness"},
		},
		"history": {
			Intro:     "This history video recounts {title_topic}.",
			Structure: []string{"Historical Context:", "Key Events:", "Legacy:"},
			Tone:      "narrative",
			Emoji:     "🏛️",
			Keywords:  []string{"history", "historical", "ancient", "century", "empire", "war"},
		},
		"music": {
			Intro:     "This music video showcases {title_topic}.",
			Structure: []string{"Performance Notes:", "Standout Moments:"},
			Tone:      "expressive",
			Emoji:     "🎵",
			Keywords:  []string{"music", "song", "performance", "concert", "album", "artist"},
		},
		"sports": {
			Intro:     "This sports video covers {title_topic}.",
			Structure: []string{"Match Overview:", "Key Plays:", "Final Result:"},
			Tone:      "dynamic",
			Emoji:     "🏆",
			Keywords:  []string{"sports", "match", "highlight", "team", "score", "athletic", "championship"},
		},
		"movie_recap": {
			Intro:     "This recap summarizes {title_topic}.",
			Structure: []string{"Plot Summary:", "Key Scenes:", "Ending Explained:"},
			Tone:      "narrative",
			Emoji:     "🍿",
			Keywords:  []string{"movie", "film", "recap", "plot", "ending", "scene", "character"},
		},
		"travel": {
			Intro:     "This travel video explores {title_topic}.",
			Structure: []string{"Destination:", "Highlights:", "Travel Tips:"},
			Tone:      "adventurous",
			Emoji:     "✈️",
			Keywords:  []string{"travel", "destination", "tourism", "trip", "visit", "city"},
		},
		"vlog": {
			Intro:     "This vlog shares {title_topic}.",
			Structure: []string{"Day Overview:", "Highlights:"},
			Tone:      "personal",
			Emoji:     "📹",
			Keywords:  []string{"vlog", "daily", "routine", "day in the life", "personal"},
		},
		// Hybrid templates cover content that spans two genres.
		"educational_technical": {
			Intro:     "This technical lesson teaches {title_topic}.",
			Structure: []string{"Concepts:", "Hands-On Walkthrough:", "Practice Suggestions:"},
			Tone:      "instructive",
			Emoji:     "👨‍💻",
			Keywords:  []string{"learn", "programming", "coding", "course", "code", "project", "build"},
		},
		"gaming_comedy": {
			Intro:     "This comedic gaming video features {title_topic}.",
			Structure: []string{"Game Setup:", "Funniest Moments:"},
			Tone:      "playful",
			Emoji:     "🕹️",
			Keywords:  []string{"game", "funny", "gameplay", "laugh", "fail", "moments"},
		},
	}
}
