// Package disambiguate runs the interactive search that turns a free-text
// query into one chosen candidate.
//
// The flow is a small state machine:
//
//	SearchPrompt --query--> ResultPage
//	ResultPage   --no results--> SearchPrompt
//	ResultPage   --candidate--> Selected
//	ResultPage   --next page--> ResultPage (page+1)
//	ResultPage   --start over--> SearchPrompt
//
// A prompter may return a StopProcessingError at any point, which ends the
// flow in the Stopped state.
package disambiguate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	watchlogerrors "github.com/lepinkainen/watchlog/internal/errors"
	"github.com/lepinkainen/watchlog/internal/media"
	"github.com/lepinkainen/watchlog/internal/tmdb"
)

// State is a step of the search flow.
type State int

const (
	StateSearchPrompt State = iota
	StateResultPage
	StateSelected
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateSearchPrompt:
		return "search-prompt"
	case StateResultPage:
		return "result-page"
	case StateSelected:
		return "selected"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Nav is the navigation entry offered below a page of candidates.
type Nav int

const (
	// NavNone marks a choice of a candidate rather than navigation.
	NavNone Nav = iota
	NavNextPage
	NavStartOver
)

// Label is the text of the navigation entry.
func (n Nav) Label() string {
	switch n {
	case NavNextPage:
		return "[next page]"
	case NavStartOver:
		return "[start over]"
	default:
		return ""
	}
}

// Page is what the prompter shows for one result page.
type Page struct {
	Query      string
	Number     int
	TotalPages int
	Candidates []media.Candidate
	Nav        Nav
}

// Choice is the prompter's answer for a page: a candidate index or a Nav.
type Choice struct {
	Index int
	Nav   Nav
}

// Pick chooses the candidate at index i.
func Pick(i int) Choice { return Choice{Index: i, Nav: NavNone} }

// Navigate chooses the page's navigation entry.
func Navigate(n Nav) Choice { return Choice{Index: -1, Nav: n} }

// Searcher runs one page of a multi search.
type Searcher interface {
	SearchMulti(ctx context.Context, query string, page int) (tmdb.SearchPage, error)
}

// Prompter collects input from the user.
type Prompter interface {
	PromptQuery(ctx context.Context) (string, error)
	ChoosePage(ctx context.Context, page Page) (Choice, error)
}

// Disambiguator drives the search flow.
type Disambiguator struct {
	searcher Searcher
	prompter Prompter
}

// New creates a Disambiguator.
func New(searcher Searcher, prompter Prompter) *Disambiguator {
	return &Disambiguator{searcher: searcher, prompter: prompter}
}

// Run loops until the user picks a candidate. Search errors are returned as-is.
func (d *Disambiguator) Run(ctx context.Context) (media.Candidate, error) {
	state := StateSearchPrompt
	var query string
	page := 1

	for {
		if err := ctx.Err(); err != nil {
			return media.Candidate{}, err
		}
		slog.Debug("Search state", "state", state, "query", query, "page", page)

		switch state {
		case StateSearchPrompt:
			q, err := d.prompter.PromptQuery(ctx)
			if err != nil {
				return media.Candidate{}, stopOr(err)
			}
			q = strings.TrimSpace(q)
			if q == "" {
				continue
			}
			query, page = q, 1
			state = StateResultPage

		case StateResultPage:
			result, err := d.searcher.SearchMulti(ctx, query, page)
			if err != nil {
				return media.Candidate{}, err
			}

			view := buildPage(query, page, result)
			if len(view.Candidates) == 0 {
				slog.Info("No results", "query", query, "page", page)
				state = StateSearchPrompt
				continue
			}

			choice, err := d.prompter.ChoosePage(ctx, view)
			if err != nil {
				return media.Candidate{}, stopOr(err)
			}

			switch {
			case choice.Nav == NavNextPage && view.Nav == NavNextPage:
				page++
			case choice.Nav == NavStartOver:
				state = StateSearchPrompt
			case choice.Nav == NavNone && choice.Index >= 0 && choice.Index < len(view.Candidates):
				selected := view.Candidates[choice.Index]
				slog.Debug("Search state", "state", StateSelected, "id", selected.ID, "type", selected.MediaType)
				return selected, nil
			default:
				return media.Candidate{}, fmt.Errorf("invalid choice %+v for page %d", choice, page)
			}

		default:
			return media.Candidate{}, fmt.Errorf("unexpected state %s", state)
		}
	}
}

// buildPage normalizes a result page, dropping people, and picks its Nav entry.
func buildPage(query string, page int, result tmdb.SearchPage) Page {
	candidates := make([]media.Candidate, 0, len(result.Results))
	for _, c := range media.NormalizeAll(result.Results) {
		if c.Selectable() {
			candidates = append(candidates, c)
		}
	}

	nav := NavStartOver
	if page < result.TotalPages {
		nav = NavNextPage
	}

	return Page{
		Query:      query,
		Number:     page,
		TotalPages: result.TotalPages,
		Candidates: candidates,
		Nav:        nav,
	}
}

func stopOr(err error) error {
	if watchlogerrors.IsStopProcessingError(err) {
		slog.Debug("Search state", "state", StateStopped)
	}
	return err
}
