// Package ledger maintains the evidence and character records of a case:
// discovered evidence, character trust, interview histories, investigation
// notes, and the current location.
package ledger

import (
	"log/slog"
	"strings"
	"time"

	"github.com/myrjola/docket/internal/errors"
	"github.com/myrjola/docket/internal/models"
)

var (
	ErrDuplicateEvidence  = errors.NewSentinel("evidence already recorded")
	ErrDuplicateCharacter = errors.NewSentinel("character already exists")
	ErrEvidenceNotFound   = errors.NewSentinel("evidence not found in the ledger")
	ErrCharacterNotFound  = errors.NewSentinel("character not found in the ledger")
	ErrEmptyName          = errors.NewSentinel("name must not be empty")
	ErrEmptyNote          = errors.NewSentinel("note text must not be empty")
	ErrUnknownLocation    = errors.NewSentinel("location is not available in this case")
)

// AddEvidence records a newly discovered piece of evidence, tagged with the
// gate that was active at discovery. Evidence names are unique per case.
func AddEvidence(inv *models.Investigation, name, description string, now time.Time) (*models.Evidence, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Wrap(ErrEmptyName, "add evidence")
	}
	if existing := inv.FindEvidence(name); existing != nil {
		return nil, errors.Wrap(ErrDuplicateEvidence, "add evidence",
			slog.String("evidence", name),
			slog.String("existing_description", existing.Description),
		)
	}

	inv.Evidence = append(inv.Evidence, models.Evidence{
		Name:         name,
		Description:  description,
		DiscoveredAt: inv.ActiveGate(),
		AddedAt:      now,
	})

	return &inv.Evidence[len(inv.Evidence)-1], nil
}

// EnsureCharacter returns the named character, creating the record with zero
// trust on first reference.
func EnsureCharacter(inv *models.Investigation, name string) (*models.Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Wrap(ErrEmptyName, "ensure character")
	}
	if character := inv.Character(name); character != nil {
		return character, nil
	}

	inv.Characters = append(inv.Characters, models.Character{Name: name})

	return &inv.Characters[len(inv.Characters)-1], nil
}

// AddCharacter records a fully formed character, such as one produced by the
// name generator. The name must be unused.
func AddCharacter(inv *models.Investigation, character models.Character) (*models.Character, error) {
	character.Name = strings.TrimSpace(character.Name)
	if character.Name == "" {
		return nil, errors.Wrap(ErrEmptyName, "add character")
	}
	if inv.Character(character.Name) != nil {
		return nil, errors.Wrap(ErrDuplicateCharacter, "add character",
			slog.String("character", character.Name))
	}

	inv.Characters = append(inv.Characters, character)

	return &inv.Characters[len(inv.Characters)-1], nil
}

// AdjustTrust shifts a character's trust by delta. Trust is unbounded and
// starts at zero for characters created on first reference.
func AdjustTrust(inv *models.Investigation, name string, delta int) (*models.Character, error) {
	character, err := EnsureCharacter(inv, name)
	if err != nil {
		return nil, err
	}

	character.Trust += delta

	return character, nil
}

// RecordInterview appends one entry to a character's interview history. The
// history is never deduplicated: interviewing twice records two entries.
func RecordInterview(inv *models.Investigation, name, topic string, now time.Time) (*models.Character, error) {
	character, err := EnsureCharacter(inv, name)
	if err != nil {
		return nil, err
	}

	character.Interviews = append(character.Interviews, models.Interview{
		Gate:  inv.ActiveGate(),
		Topic: topic,
		At:    now,
	})

	return character, nil
}

// AddNote records a free-text investigation note tagged with the active gate.
func AddNote(inv *models.Investigation, text string, now time.Time) (*models.Note, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.Wrap(ErrEmptyNote, "add note")
	}

	inv.Notes = append(inv.Notes, models.Note{
		Text: text,
		Gate: inv.ActiveGate(),
		At:   now,
	})

	return &inv.Notes[len(inv.Notes)-1], nil
}

// MoveTo sets the current location. When the backbone authors a location
// list, only listed locations are accepted.
func MoveTo(inv *models.Investigation, backbone models.Backbone, location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return errors.Wrap(ErrUnknownLocation, "move", slog.String("detail", "location must not be empty"))
	}

	if len(backbone.Locations) > 0 {
		found := false
		for _, candidate := range backbone.Locations {
			if candidate == location {
				found = true
				break
			}
		}
		if !found {
			return errors.Wrap(ErrUnknownLocation, "move",
				slog.String("location", location),
				slog.String("available", strings.Join(backbone.Locations, ", ")),
			)
		}
	}

	inv.Location = location

	return nil
}
