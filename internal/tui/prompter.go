package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lepinkainen/watchlog/internal/disambiguate"
	"github.com/lepinkainen/watchlog/internal/media"
	"github.com/lepinkainen/watchlog/internal/rating"
)

// Prompter asks the user everything the rating flow needs. It satisfies
// disambiguate.Prompter and ledger.RatingPrompter.
type Prompter struct {
	now func() time.Time
}

// NewPrompter returns a Prompter that defaults watched dates to today.
func NewPrompter() *Prompter {
	return &Prompter{now: time.Now}
}

// PromptQuery asks for a title to search for.
func (p *Prompter) PromptQuery(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return Input("Search TMDB for a title", "movie or TV show title", "", nil)
}

// ChoosePage shows a page of candidates.
func (p *Prompter) ChoosePage(ctx context.Context, page disambiguate.Page) (disambiguate.Choice, error) {
	if err := ctx.Err(); err != nil {
		return disambiguate.Choice{}, err
	}
	return ChoosePage(page)
}

// PromptRating asks viewer for a score, a favorite flag and the date they
// watched rec. A skipped score skips the remaining questions.
func (p *Prompter) PromptRating(ctx context.Context, viewer string, rec media.ResolvedRecord) (rating.Entry, error) {
	if err := ctx.Err(); err != nil {
		return rating.Entry{}, err
	}

	label := fmt.Sprintf("%s, score for %s (%d-%d, empty or %s to skip)", viewer, rec.Title, rating.MinScore, rating.MaxScore, rating.SkipLabel)
	input, err := Input(label, rating.SkipLabel, "", func(s string) error {
		_, _, err := rating.ParseScore(s)
		return err
	})
	if err != nil {
		return rating.Entry{}, err
	}

	score, skipped, err := rating.ParseScore(input)
	if err != nil {
		return rating.Entry{}, err
	}
	if skipped {
		return rating.Skip(), nil
	}

	favorite, err := Confirm(fmt.Sprintf("%s, is %s a favorite?", viewer, rec.Title), false)
	if err != nil {
		return rating.Entry{}, err
	}

	watched, err := Input(fmt.Sprintf("%s, date watched (DD.MM.YYYY)", viewer), "DD.MM.YYYY", rating.Today(p.now()), rating.ValidateDate)
	if err != nil {
		return rating.Entry{}, err
	}

	return rating.Entry{Score: score, Favorite: favorite, Watched: strings.TrimSpace(watched)}, nil
}
