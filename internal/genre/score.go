package genre

import (
	"regexp"
	"sort"
	"strings"

	"github.com/vidlearn/vidlearn-server/internal/textutil"
)

// Scoring weights. Multi-word keywords are stronger signals than single
// words, and title matches are stronger than transcript matches.
const (
	multiWordMatch   = 3
	multiWordInTitle = 4
	singleWordMatch  = 1
	singleWordTitle  = 2
	genreNameBonus   = 5
	hybridPartBonus  = 3
	hybridDepthBonus = 2

	// Minimum score for content-based selection to beat the mapping fallback.
	acceptThreshold = 3

	// Sample sizes taken from the front of the transcript.
	scoringSample        = 2000
	recommendationSample = 3000
)

// Scored pairs a template name with its computed score.
type Scored struct {
	Name  string
	Score int
}

// analysisText builds the lowercased scoring input: the title twice (title
// matches weigh double) followed by a transcript sample.
func analysisText(transcript, title string, sampleSize int) string {
	var b strings.Builder
	if title != "" {
		lower := strings.ToLower(title)
		b.WriteString(lower)
		b.WriteString(" ")
		b.WriteString(lower)
		b.WriteString(" ")
	}
	if transcript != "" {
		b.WriteString(strings.ToLower(textutil.Truncate(transcript, sampleSize)))
	}
	return b.String()
}

// Score computes the keyword affinity of one template for the given content.
// Pure function: same inputs always yield the same score.
func Score(name string, tmpl Template, analysis, titleLower, detectedGenre string) int {
	score := 0

	for _, keyword := range tmpl.Keywords {
		if strings.Contains(keyword, " ") {
			if strings.Contains(analysis, keyword) {
				score += multiWordMatch
				if titleLower != "" && strings.Contains(titleLower, keyword) {
					score += multiWordInTitle
				}
			}
		} else if matchWholeWord(analysis, keyword) {
			score += singleWordMatch
			if titleLower != "" && matchWholeWord(titleLower, keyword) {
				score += singleWordTitle
			}
		}
	}

	if detectedGenre != "" && strings.Contains(strings.ToLower(name), strings.ToLower(detectedGenre)) {
		score += genreNameBonus
	}

	// Hybrid templates (underscore-joined genre pairs) get extra credit when
	// they match the detected genre or hit several keywords at once.
	if strings.Contains(name, "_") {
		hits := 0
		for _, keyword := range tmpl.Keywords {
			if strings.Contains(analysis, keyword) {
				hits++
			}
		}
		for _, part := range strings.Split(name, "_") {
			if detectedGenre != "" && strings.Contains(strings.ToLower(detectedGenre), strings.ToLower(part)) {
				score += hybridPartBonus
			}
			if hits >= 3 {
				score += hybridDepthBonus
			}
		}
	}

	return score
}

func matchWholeWord(text, word string) bool {
	re, err := wordPattern(word)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

func wordPattern(word string) (*regexp.Regexp, error) {
	return regexp.Compile(`\b` + regexp.QuoteMeta(word) + `\b`)
}

// Rank scores every template and returns them sorted best-first.
// Ties break by name for deterministic output.
func Rank(templates map[string]Template, transcript, title, detectedGenre string, sampleSize int) []Scored {
	analysis := analysisText(transcript, title, sampleSize)
	titleLower := strings.ToLower(title)

	scored := make([]Scored, 0, len(templates))
	for name, tmpl := range templates {
		if len(tmpl.Keywords) == 0 {
			continue
		}
		scored = append(scored, Scored{
			Name:  name,
			Score: Score(name, tmpl, analysis, titleLower, detectedGenre),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Name < scored[j].Name
	})
	return scored
}

// Recommendations returns the top n templates by content affinity.
// Read-only diagnostics; selection goes through SelectTemplate.
func Recommendations(templates map[string]Template, transcript, title string, n int) []Scored {
	ranked := Rank(templates, transcript, title, "", recommendationSample)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// genreMapping maps template keys to genre keywords used in the fallback
// lookup when content scoring produces no confident match.
var genreMapping = []struct {
	template string
	keywords []string
}{
	{"educational", []string{"educational", "tutorial", "course", "learn"}},
	{"tutorial", []string{"tutorial", "how-to", "how to"}},
	{"podcast", []string{"podcast"}},
	{"interview", []string{"interview", "conversation"}},
	{"entertainment", []string{"entertainment"}},
	{"vlog", []string{"vlog", "daily", "personal"}},
	{"news", []string{"news", "commentary"}},
	{"documentary", []string{"documentary"}},
	{"review", []string{"review", "analysis"}},
	{"gaming", []string{"gaming", "gameplay", "game"}},
	{"sports", []string{"sports", "highlight", "athletic"}},
	{"movie_recap", []string{"movie", "recap", "film", "show"}},
	{"music", []string{"music", "performance", "concert"}},
	{"cooking", []string{"cooking", "recipe", "food"}},
	{"motivational", []string{"motivational", "self-help", "inspiration"}},
	{"technical", []string{"technical", "developer", "programming", "coding"}},
	{"business", []string{"business", "finance", "investment"}},
	{"health", []string{"health", "fitness", "workout"}},
	{"travel", []string{"travel", "destination", "tourism"}},
	{"science", []string{"science", "explainer"}},
	{"comedy", []string{"comedy", "humor", "funny"}},
	{"history", []string{"history", "historical", "ancient"}},
}

// contentTypeMapping maps classified content types to candidate templates,
// tried in order.
var contentTypeMapping = []struct {
	contentType string
	templates   []string
}{
	{"instructional", []string{"tutorial", "educational", "cooking"}},
	{"informational", []string{"educational", "documentary", "news", "science"}},
	{"conversational", []string{"interview", "podcast"}},
	{"narrative", []string{"movie_recap", "documentary", "history"}},
	{"analytical", []string{"review", "technical", "science", "business"}},
	{"demonstrative", []string{"tutorial", "cooking"}},
	{"entertaining", []string{"comedy", "entertainment", "gaming"}},
	{"persuasive", []string{"motivational", "review", "business"}},
	{"inspirational", []string{"motivational", "sports"}},
}

// SelectTemplate chooses the best template for the content.
// Order: content scoring above the accept threshold, then an exact
// genre-name match, then genre keyword mapping, then content-type mapping,
// then the built-in default.
func SelectTemplate(templates map[string]Template, genreName, contentType, transcript, title string) (string, Template) {
	if transcript != "" || title != "" {
		ranked := Rank(templates, transcript, title, genreName, scoringSample)
		if len(ranked) > 0 && ranked[0].Score >= acceptThreshold {
			return ranked[0].Name, templates[ranked[0].Name]
		}
	}

	normGenre := strings.ToLower(genreName)

	if t, ok := templates[normGenre]; ok {
		return normGenre, t
	}

	for _, m := range genreMapping {
		for _, kw := range m.keywords {
			if strings.Contains(normGenre, kw) {
				if t, ok := templates[m.template]; ok {
					return m.template, t
				}
			}
		}
	}

	normContentType := strings.ToLower(contentType)
	for _, m := range contentTypeMapping {
		if strings.Contains(normContentType, m.contentType) {
			for _, key := range m.templates {
				if t, ok := templates[key]; ok {
					return key, t
				}
			}
		}
	}

	return DefaultName, templates[DefaultName]
}
