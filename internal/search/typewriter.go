package search

import (
	"math/rand"
	"time"
)

// Placeholder cycle timing, matching the familiar type/delete cadence.
const (
	typeSpeed    = 55 * time.Millisecond
	deleteSpeed  = 30 * time.Millisecond
	typedPause   = 1200 * time.Millisecond
	deletedPause = 500 * time.Millisecond
)

// DefaultExampleCourses seeds the idle placeholder animation.
var DefaultExampleCourses = []string{
	"723G70", "725G28", "725G53", "729G17", "732G01", "732G20",
	"TATA24", "TATA32", "TATA41", "TAMS11", "TAMS38", "TAOP24",
	"TAOP52", "TDP004", "TDP015", "TDP030", "TEAE01", "TFYA13",
	"TMHL07", "TMME12",
}

// Typewriter animates the idle-state placeholder with a character-by-character
// type/delete cycle over example course codes. It is purely cosmetic and holds
// no suggestion state; callers pause it whenever the user has typed anything.
type Typewriter struct {
	examples  []string
	exIndex   int
	charIndex int
	deleting  bool
	rng       *rand.Rand
}

// NewTypewriter shuffles a copy of the examples with the given seed.
func NewTypewriter(examples []string, seed int64) *Typewriter {
	if len(examples) == 0 {
		examples = DefaultExampleCourses
	}
	rng := rand.New(rand.NewSource(seed))
	shuffled := make([]string, len(examples))
	copy(shuffled, examples)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return &Typewriter{examples: shuffled, rng: rng}
}

// Current returns the placeholder text for this tick.
func (t *Typewriter) Current() string {
	return t.examples[t.exIndex][:t.charIndex]
}

// Advance steps the animation one tick and returns the delay until the next
// tick should fire.
func (t *Typewriter) Advance() time.Duration {
	current := t.examples[t.exIndex]
	doneTyping := t.charIndex == len(current) && !t.deleting
	doneDeleting := t.charIndex == 0 && t.deleting

	switch {
	case doneTyping:
		t.deleting = true
		return typedPause
	case doneDeleting:
		t.deleting = false
		t.exIndex = t.nextIndex()
		return deletedPause
	case t.deleting:
		t.charIndex--
		return deleteSpeed
	default:
		t.charIndex++
		return typeSpeed
	}
}

// nextIndex picks a random example different from the current one.
func (t *Typewriter) nextIndex() int {
	if len(t.examples) <= 1 {
		return t.exIndex
	}
	next := t.exIndex
	for next == t.exIndex {
		next = t.rng.Intn(len(t.examples))
	}
	return next
}
