// Package cli implements the interactive menu session. It holds no query
// logic of its own: each menu action prompts for arguments, calls the
// Querier and prints the answer.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/couchcryptid/sightings-explorer/internal/query"
)

// Action is a menu entry.
type Action int

const (
	ActionTopDurations Action = iota + 1
	ActionCountByDuration
	ActionTopShapes
	ActionCountByShape
	ActionTopRegions
	ActionCountByRegion
	ActionExit
)

// Actions lists the menu entries in display order.
var Actions = []Action{
	ActionTopDurations,
	ActionCountByDuration,
	ActionTopShapes,
	ActionCountByShape,
	ActionTopRegions,
	ActionCountByRegion,
	ActionExit,
}

func (a Action) String() string {
	switch a {
	case ActionTopDurations:
		return "View Top N Durations"
	case ActionCountByDuration:
		return "Count Sightings by Duration"
	case ActionTopShapes:
		return "View Top N Shapes"
	case ActionCountByShape:
		return "Count Sightings by Shape"
	case ActionTopRegions:
		return "View Top N Regions"
	case ActionCountByRegion:
		return "Count Sightings by Region"
	case ActionExit:
		return "Exit"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// ParseAction maps a menu choice such as "3" to its Action.
func ParseAction(s string) (Action, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	a := Action(n)
	if _, ok := handlers[a]; !ok {
		return 0, false
	}
	return a, true
}

type handler func(*Session) error

// handlers is the command-dispatch table.
var handlers = map[Action]handler{
	ActionTopDurations:    (*Session).topDurations,
	ActionCountByDuration: (*Session).countByDuration,
	ActionTopShapes:       (*Session).topShapes,
	ActionCountByShape:    (*Session).countByShape,
	ActionTopRegions:      (*Session).topRegions,
	ActionCountByRegion:   (*Session).countByRegion,
	ActionExit:            (*Session).exit,
}

// errExit ends the session after the farewell has been printed.
var errExit = errors.New("exit")

const (
	msgTitle         = "UFO Sightings Analyzer"
	msgInvalidNumber = "Invalid input. Please enter a number."
	msgInvalidChoice = "Invalid choice. Please enter a number from 1 to 7."
	msgInvalidRegion = "Invalid region type. Please enter 'city', 'state', or 'country'."
)

// Session is one interactive run of the menu loop.
type Session struct {
	q        query.Querier
	in       *bufio.Scanner
	out      io.Writer
	renderer Renderer
	logger   *slog.Logger
}

// NewSession creates a Session reading answers from in and printing to out.
func NewSession(q query.Querier, in io.Reader, out io.Writer, renderer Renderer, logger *slog.Logger) *Session {
	return &Session{
		q:        q,
		in:       bufio.NewScanner(in),
		out:      out,
		renderer: renderer,
		logger:   logger,
	}
}

// Run drives the menu until the user exits, input ends, or ctx is cancelled.
// An empty dataset ends the session immediately. None of these are errors.
func (s *Session) Run(ctx context.Context) error {
	if s.q.Total() == 0 {
		s.println("Exiting program.")
		s.farewell()
		return nil
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		s.printMenu()
		choice, err := s.prompt("\nEnter your choice (1-7): ")
		if err != nil {
			return s.finish(err)
		}

		action, ok := ParseAction(choice)
		if !ok {
			s.logger.Debug("invalid menu choice", "choice", choice)
			s.println(msgInvalidChoice)
			continue
		}

		if err := handlers[action](s); err != nil {
			return s.finish(err)
		}
	}
}

// finish maps a handler or prompt error to the session result.
func (s *Session) finish(err error) error {
	switch {
	case errors.Is(err, errExit):
		return nil
	case errors.Is(err, io.EOF):
		s.println()
		s.farewell()
		return nil
	default:
		return err
	}
}

func (s *Session) printMenu() {
	s.printf("\n--- %s ---\n\n", msgTitle)
	for _, a := range Actions {
		s.printf("%d. %s\n", int(a), a)
	}
}

func (s *Session) farewell() {
	s.printf("\nThanks for exploring the unknown with %s.\n", msgTitle)
	s.println("🛸 Stay curious, earthling. Goodbye!")
	s.println()
}

// prompt prints label and returns the next input line. It returns io.EOF
// once input is exhausted.
func (s *Session) prompt(label string) (string, error) {
	s.printf("%s", label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

// promptInt reads an integer. ok is false (and a message printed) when the
// answer is not a number.
func (s *Session) promptInt(label string) (n int, ok bool, err error) {
	answer, err := s.prompt(label)
	if err != nil {
		return 0, false, err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(answer))
	if convErr != nil {
		s.logger.Debug("invalid integer input", "input", answer)
		s.println(msgInvalidNumber)
		return 0, false, nil
	}
	return n, true, nil
}

// promptFloat reads a number. ok is false (and a message printed) when the
// answer is not a number.
func (s *Session) promptFloat(label string) (v float64, ok bool, err error) {
	answer, err := s.prompt(label)
	if err != nil {
		return 0, false, err
	}
	v, convErr := strconv.ParseFloat(strings.TrimSpace(answer), 64)
	if convErr != nil {
		s.logger.Debug("invalid number input", "input", answer)
		s.println(msgInvalidNumber)
		return 0, false, nil
	}
	return v, true, nil
}

// promptYes asks a yes/no question; anything but "yes" is no.
func (s *Session) promptYes(label string) (bool, error) {
	answer, err := s.prompt(label)
	if err != nil {
		return false, err
	}
	return strings.ToLower(strings.TrimSpace(answer)) == "yes", nil
}

// displaySightings prints a labelled result set.
func (s *Session) displaySightings(results any, n int, label string) error {
	if n == 0 {
		s.printf("No sightings found for %s.\n", label)
		return nil
	}
	s.printf("\n--- Sightings %s ---\n", label)
	return s.renderer.Render(s.out, results)
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...) //nolint:errcheck // terminal output
}

func (s *Session) println(args ...any) {
	fmt.Fprintln(s.out, args...) //nolint:errcheck // terminal output
}
