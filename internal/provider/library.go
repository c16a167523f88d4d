package provider

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"jurix/internal/logging"
)

// ResponseCategory is the closed set of situations the static tier can
// answer. Adding a case here forces the compiler through every switch that
// dispatches on it, unlike the string-keyed tables this replaces.
type ResponseCategory string

const (
	CategoryOpening   ResponseCategory = "opening"
	CategoryEvidence  ResponseCategory = "evidence"
	CategoryClosing   ResponseCategory = "closing"
	CategoryObjection ResponseCategory = "objection"
	CategoryCross     ResponseCategory = "cross"
	CategoryGeneral   ResponseCategory = "general"
)

var allCategories = []ResponseCategory{
	CategoryOpening, CategoryEvidence, CategoryClosing,
	CategoryObjection, CategoryCross, CategoryGeneral,
}

// CategorizeContext maps a caller's context string to a response category
// by keyword. First match wins, in the fixed order below.
func CategorizeContext(context string) ResponseCategory {
	lower := strings.ToLower(context)
	containsAny := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}

	switch {
	case containsAny("opening", "statement", "begin"):
		return CategoryOpening
	case containsAny("evidence", "present", "exhibit"):
		return CategoryEvidence
	case containsAny("closing", "final", "argument"):
		return CategoryClosing
	case containsAny("objection", "rule", "sustain"):
		return CategoryObjection
	case containsAny("cross", "examine", "question"):
		return CategoryCross
	default:
		return CategoryGeneral
	}
}

// roleKey normalizes a role label to a library key. Unknown roles fall back
// to the generic templates.
func roleKey(role string) string {
	lower := strings.ToLower(role)
	switch {
	case strings.Contains(lower, "prosecut"):
		return "prosecutor"
	case strings.Contains(lower, "defense"), strings.Contains(lower, "defence"):
		return "defense"
	case strings.Contains(lower, "judge"):
		return "judge"
	default:
		return ""
	}
}

// Library holds per-role, per-category canned response variants. Built-in
// defaults can be extended by YAML files in a responses directory; the
// watcher reloads those at runtime, so reads take the lock.
type Library struct {
	mu        sync.RWMutex
	defaults  map[string]map[ResponseCategory][]string
	overrides map[string]map[ResponseCategory][]string
}

// DefaultLibrary returns a library with the built-in response tables.
func DefaultLibrary() *Library {
	return &Library{
		defaults:  builtinResponses(),
		overrides: make(map[string]map[ResponseCategory][]string),
	}
}

// Variants returns the response variants for a role and category, or nil if
// neither overrides nor defaults cover the pair. The result is a copy; the
// backing tables may be swapped by LoadDir at any time.
func (l *Library) Variants(role string, cat ResponseCategory) []string {
	key := roleKey(role)
	l.mu.RLock()
	defer l.mu.RUnlock()

	if byCat, ok := l.overrides[key]; ok {
		if vs := byCat[cat]; len(vs) > 0 {
			return append([]string(nil), vs...)
		}
	}
	if byCat, ok := l.defaults[key]; ok {
		if vs := byCat[cat]; len(vs) > 0 {
			return append([]string(nil), vs...)
		}
	}
	return nil
}

// LoadDir rebuilds the override tables from <role>.yaml files in dir. Each
// file maps category names to variant lists. A missing directory clears the
// overrides and is not an error; a malformed file is.
func (l *Library) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			l.mu.Lock()
			l.overrides = make(map[string]map[ResponseCategory][]string)
			l.mu.Unlock()
			return nil
		}
		return fmt.Errorf("failed to read responses dir: %w", err)
	}

	loaded := make(map[string]map[ResponseCategory][]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		role := strings.TrimSuffix(entry.Name(), ext)

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}

		var raw map[string][]string
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}

		byCat := make(map[ResponseCategory][]string)
		for name, variants := range raw {
			cat, ok := parseCategory(name)
			if !ok {
				logging.ProviderWarn("responses: %s: unknown category %q skipped", entry.Name(), name)
				continue
			}
			if len(variants) > 0 {
				byCat[cat] = variants
			}
		}
		if len(byCat) > 0 {
			loaded[strings.ToLower(role)] = byCat
		}
	}

	l.mu.Lock()
	l.overrides = loaded
	l.mu.Unlock()

	logging.Provider("responses: loaded overrides for %d roles from %s", len(loaded), dir)
	return nil
}

func parseCategory(name string) (ResponseCategory, bool) {
	cat := ResponseCategory(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range allCategories {
		if cat == known {
			return cat, true
		}
	}
	return "", false
}

// builtinResponses is the compiled-in response corpus, three variants per
// role and category.
func builtinResponses() map[string]map[ResponseCategory][]string {
	return map[string]map[ResponseCategory][]string{
		"prosecutor": {
			CategoryOpening: {
				"Ladies and gentlemen of the jury, the evidence in this case will prove beyond a reasonable doubt that the defendant is guilty of the charges brought against them.",
				"Members of the jury, today we will present compelling evidence that demonstrates the defendant's culpability in this matter.",
				"Your Honor and members of the jury, the facts of this case paint a clear picture of the defendant's guilt, which we will prove through credible evidence.",
			},
			CategoryEvidence: {
				"This evidence clearly demonstrates the defendant's involvement in the alleged crime and supports the prosecution's case.",
				"The facts presented in this evidence speak for themselves and establish a clear pattern of the defendant's culpable conduct.",
				"This piece of evidence is crucial to understanding the defendant's actions and intent in this matter.",
			},
			CategoryClosing: {
				"Based on the overwhelming evidence presented, the prosecution has proven its case beyond a reasonable doubt. I urge you to find the defendant guilty.",
				"The evidence in this case is clear and convincing. Justice demands that you hold the defendant accountable for their actions.",
				"We have met our burden of proof. The defendant's guilt has been established beyond any reasonable doubt.",
			},
		},
		"defense": {
			CategoryOpening: {
				"Ladies and gentlemen of the jury, my client is innocent of these charges. The prosecution's case is built on speculation, not facts.",
				"Members of the jury, the evidence will show that the prosecution has failed to prove their case beyond a reasonable doubt.",
				"Your Honor and members of the jury, my client sits before you clothed in the presumption of innocence, and the prosecution has not met their burden to remove that cloak.",
			},
			CategoryEvidence: {
				"This evidence is unreliable and does not prove my client's guilt. There are alternative explanations that create reasonable doubt.",
				"The prosecution wants you to believe this evidence proves guilt, but it actually demonstrates the weakness of their case.",
				"This evidence raises more questions than it answers and fails to establish my client's culpability beyond a reasonable doubt.",
			},
			CategoryClosing: {
				"The prosecution has failed to prove their case beyond a reasonable doubt. My client is innocent, and I ask you to find them not guilty.",
				"Reasonable doubt exists throughout this case. The only just verdict is not guilty.",
				"The evidence does not support conviction. I urge you to uphold the presumption of innocence and find my client not guilty.",
			},
			CategoryCross: {
				"This evidence is questionable at best. Can you be certain of its accuracy? Isn't it possible there are other explanations?",
				"The reliability of this evidence is suspect. How can the jury be sure this proves anything about my client's guilt?",
				"This evidence creates more doubt than certainty. Isn't it true that this could be explained in other ways?",
			},
		},
		"judge": {
			CategoryOpening: {
				"Court is now in session. We will proceed with this matter in an orderly fashion, ensuring all parties receive due process under the law.",
				"This court is called to order. We are here today to ensure justice is served fairly and impartially according to the law.",
				"Good morning. Court is in session. We will conduct these proceedings with the dignity and respect that our legal system demands.",
			},
			CategoryEvidence: {
				"The court will consider this evidence carefully in accordance with the rules of evidence and applicable law.",
				"This evidence is admitted. The jury may consider its weight and credibility in their deliberations.",
				"The court finds this evidence relevant and admissible under the applicable rules.",
			},
			CategoryClosing: {
				"After careful consideration of all evidence and applicable law, this court renders its decision based on the legal standards that govern this case.",
				"Having weighed all evidence presented and applied the appropriate legal standards, the court finds as follows.",
				"Based on the evidence presented and the applicable law, this court makes the following findings and renders judgment accordingly.",
			},
		},
	}
}
