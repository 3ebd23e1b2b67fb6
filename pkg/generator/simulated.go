package generator

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/andri/asteria/pkg/world"
)

// Simulated builds a result locally from the request. The same request always
// yields the same result.
type Simulated struct {
	// Latency delays the result to mimic a remote backend.
	Latency time.Duration
}

// Generate builds a playable script outline from the request.
func (s *Simulated) Generate(ctx context.Context, req world.GenerationRequest) (*world.GenerationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if s.Latency > 0 {
		timer := time.NewTimer(s.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	title := Title(req.WorldDescription)
	return &world.GenerationResult{
		Message:        "Game generated successfully!",
		Title:          title,
		Description:    describe(req),
		PythonScript:   script(title, req),
		ExecutableFile: Slug(title) + ".py",
	}, nil
}

const maxTitleWords = 5

// Title derives a short title-cased name from a world description.
func Title(description string) string {
	words := strings.FieldsFunc(description, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	if len(words) == 0 {
		return "Untitled World"
	}
	if len(words) > maxTitleWords {
		words = words[:maxTitleWords]
	}
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Slug turns a title into a file-name-safe identifier.
func Slug(title string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		return "world"
	}
	return slug
}

func describe(req world.GenerationRequest) string {
	s := req.Settings
	var b strings.Builder
	fmt.Fprintf(&b, "A %s adventure set in %s.", strings.ToLower(req.GameMode.Label()), req.Theme())
	fmt.Fprintf(&b, " Horror %d/10, puzzles %d/10, chaos %d/10, tuned for ages %d and up.",
		s.HorrorLevel, s.PuzzleComplexity, s.SpeedChaos, s.AgeGroup)
	if req.UploadedImage != "" && req.ImageCategory != "" {
		fmt.Fprintf(&b, " Your reference image appears as the %s.", strings.ToLower(req.ImageCategory))
	}
	return b.String()
}

func script(title string, req world.GenerationRequest) string {
	s := req.Settings
	players := 1
	if req.GameMode == world.GameModeMultiplayer {
		players = 2
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)
	b.WriteString("import random\n\n")
	fmt.Fprintf(&b, "THEME = %q\n", req.Theme())
	fmt.Fprintf(&b, "PLAYERS = %d\n", players)
	fmt.Fprintf(&b, "HORROR = %d\nPUZZLES = %d\nAGE = %d\nCHAOS = %d\n\n", s.HorrorLevel, s.PuzzleComplexity, s.AgeGroup, s.SpeedChaos)
	b.WriteString(`def room(depth):
    danger = random.randint(0, HORROR + CHAOS)
    riddle = random.randint(0, PUZZLES)
    return {"depth": depth, "danger": danger, "riddle": riddle}


def play():
    print("Welcome to", THEME)
    for player in range(1, PLAYERS + 1):
        score = 0
        for depth in range(1, 4 + PUZZLES // 3):
            r = room(depth)
            if r["danger"] > HORROR + CHAOS // 2:
                print(f"Player {player} flees room {depth}")
                break
            score += r["riddle"] + 1
        print(f"Player {player} scored {score}")


if __name__ == "__main__":
    play()
`)
	return b.String()
}
