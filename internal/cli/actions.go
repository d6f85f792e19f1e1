package cli

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/couchcryptid/sightings-explorer/internal/domain"
)

func (s *Session) topDurations() error {
	n, ok, err := s.promptInt("\nHow many top durations you want to see: ")
	if err != nil || !ok {
		return err
	}

	s.printf("\nTop %d UFO Durations (seconds):\n", n)
	for _, f := range s.q.TopDurations(n) {
		s.printf("%s: %d sightings\n", formatSeconds(f.Value), f.Count)
	}
	return nil
}

func (s *Session) countByDuration() error {
	minSeconds, ok, err := s.promptFloat("Enter minimum duration in seconds: ")
	if err != nil || !ok {
		return err
	}

	count := s.q.CountAtLeast(minSeconds)
	label := fmt.Sprintf("longer than %s seconds", formatSeconds(minSeconds))
	s.printf("\nFound %d sightings %s.\n", count, label)
	if count == 0 {
		return nil
	}

	show, err := s.promptYes("Do you want to see the results? (yes/no): ")
	if err != nil || !show {
		return err
	}
	results := s.q.SearchAtLeast(minSeconds)
	return s.displaySightings(results, len(results), label)
}

func (s *Session) topShapes() error {
	n, ok, err := s.promptInt("\nHow many top shapes you want to see: ")
	if err != nil || !ok {
		return err
	}

	s.printf("\nTop %d UFO Shapes:\n", n)
	for _, f := range s.q.TopShapes(n) {
		s.printf("%s: %d\n", f.Value, f.Count)
	}
	return nil
}

func (s *Session) countByShape() error {
	s.println("\n--- Search by Shape ---")

	list, err := s.promptYes("Do you want to see the list of unique shapes? (yes/no): ")
	if err != nil {
		return err
	}
	if list {
		s.println()
		if shapes := s.q.DistinctShapes(); len(shapes) > 0 {
			s.println("Available shapes:", strings.Join(shapes, ", "))
		} else {
			s.println("No shapes found in the data.")
		}
		s.println()
	}

	answer, err := s.prompt("Enter shape to search for: ")
	if err != nil {
		return err
	}
	shape := domain.Fold(answer)

	count := s.q.CountShape(shape)
	s.printf("\nFound %d sightings with shape '%s'.\n", count, shape)
	if count == 0 {
		return nil
	}

	show, err := s.promptYes("Do you want to see the results? (yes/no): ")
	if err != nil || !show {
		return err
	}
	results := s.q.SearchShape(shape)
	return s.displaySightings(results, len(results), fmt.Sprintf("shape '%s'", shape))
}

func (s *Session) topRegions() error {
	kind, ok, err := s.promptRegionKind("Enter region type (city/state/country) to view top values: ")
	if err != nil || !ok {
		return err
	}

	n, ok, err := s.promptInt(fmt.Sprintf("\nHow many top %s values you want to see: ", kind))
	if err != nil || !ok {
		return err
	}

	top, err := s.q.TopRegions(kind, n)
	if err != nil {
		return err
	}
	s.printf("\nTop %d Sighted %s:\n", n, cases.Title(language.Und).String(string(kind)))
	for _, f := range top {
		s.printf("%s: %d sightings\n", f.Value, f.Count)
	}
	return nil
}

func (s *Session) countByRegion() error {
	s.println("\n--- Count Sightings by Region ---")

	kind, ok, err := s.promptRegionKind("Enter region type (city/state/country): ")
	if err != nil || !ok {
		return err
	}

	list, err := s.promptYes(fmt.Sprintf("Do you want to see the list of unique %s values before searching? (yes/no): ", kind))
	if err != nil {
		return err
	}
	if list {
		values, err := s.q.DistinctRegionValues(kind)
		if err != nil {
			return err
		}
		if len(values) > 0 {
			s.printf("Available %s values: %s\n", kind, strings.Join(values, ", "))
		} else {
			s.printf("No %s values found in the data.\n", kind)
		}
	}

	answer, err := s.prompt(fmt.Sprintf("\nEnter the %s to search for: ", kind))
	if err != nil {
		return err
	}
	value := domain.Fold(answer)

	count, err := s.q.CountRegion(kind, value)
	if err != nil {
		return err
	}
	label := fmt.Sprintf("in %s '%s'", kind, value)
	s.printf("\nFound %d sightings %s.\n", count, label)
	if count == 0 {
		return nil
	}

	show, err := s.promptYes("Do you want to see the results? (yes/no): ")
	if err != nil || !show {
		return err
	}
	results, err := s.q.SearchRegion(kind, value)
	if err != nil {
		return err
	}
	return s.displaySightings(results, len(results), label)
}

func (s *Session) exit() error {
	s.farewell()
	return errExit
}

// promptRegionKind reads a region kind. ok is false (and a message printed)
// when the answer is not city, state or country.
func (s *Session) promptRegionKind(label string) (kind domain.RegionKind, ok bool, err error) {
	answer, err := s.prompt(label)
	if err != nil {
		return "", false, err
	}
	kind, parseErr := domain.ParseRegionKind(answer)
	if parseErr != nil {
		s.logger.Debug("invalid region kind", "error", parseErr)
		s.println(msgInvalidRegion)
		return "", false, nil
	}
	return kind, true, nil
}
