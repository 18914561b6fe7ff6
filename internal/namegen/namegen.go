// Package namegen produces character profiles for the narrator: a unique
// name, an age plausible for the character's role, an occupation, and a
// personality trait. Names are unique within a case so the narrator never
// reintroduces "Marcus Webb" as two different people.
package namegen

import (
	"log/slog"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/myrjola/docket/internal/errors"
	"github.com/myrjola/docket/internal/models"
)

var ErrNoSurname = errors.NewSentinel("character needs a surname to have family members")

// maxAttempts bounds the uniqueness retry loop. The name pool is large
// enough that hitting it is practically impossible; the fallback appends a
// numeric suffix.
const maxAttempts = 100

var personalityTraits = []string{
	"Adamant", "Bashful", "Bold", "Brave", "Calm", "Careful", "Docile",
	"Gentle", "Hardy", "Hasty", "Impish", "Jolly", "Lax", "Lonely",
	"Mild", "Modest", "Naive", "Naughty", "Quiet", "Quirky", "Rash",
	"Relaxed", "Sassy", "Serious", "Timid",
}

// occupations maps role hints straight to a profession. Hints outside the
// map fall back to a random job title.
var occupations = map[string]string{
	"detective":         "detective",
	"investigator":      "private investigator",
	"police":            "police officer",
	"cop":               "police officer",
	"judge":             "judge",
	"magistrate":        "magistrate",
	"prosecutor":        "prosecutor",
	"district attorney": "district attorney",
	"lawyer":            "lawyer",
	"attorney":          "attorney",
	"counsel":           "defense attorney",
	"doctor":            "doctor",
	"physician":         "physician",
	"medical examiner":  "medical examiner",
	"coroner":           "coroner",
	"security":          "security guard",
	"security guard":    "security guard",
	"guard":             "security officer",
	"journalist":        "journalist",
	"reporter":          "reporter",
	"court clerk":       "court clerk",
	"bailiff":           "bailiff",
	"stenographer":      "court stenographer",
	"student":           "student",
}

type Generator struct {
	faker *gofakeit.Faker
}

// New returns a generator. Seed zero draws a random seed; tests pass a fixed
// seed for reproducible profiles.
func New(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Character generates a complete profile whose name is unused by the case's
// existing characters. The caller records it in the ledger; until then the
// name is not reserved.
func (g *Generator) Character(inv *models.Investigation, roleHint string) models.Character {
	age := g.Age(roleHint)

	return models.Character{
		Name:        g.uniqueName(inv),
		RoleHint:    strings.TrimSpace(roleHint),
		Age:         age,
		Occupation:  g.Occupation(age, roleHint),
		Personality: g.Personality(),
	}
}

// FamilyMember generates a relative of an existing character, sharing their
// surname. The relative's name must have at least two words.
func (g *Generator) FamilyMember(inv *models.Investigation, relative, roleHint string) (models.Character, error) {
	words := strings.Fields(relative)
	if len(words) < 2 {
		return models.Character{}, errors.Wrap(ErrNoSurname, "generate family member",
			slog.String("relative", relative))
	}
	surname := words[len(words)-1]
	age := g.Age(roleHint)

	return models.Character{
		Name:        g.familyName(inv, surname),
		RoleHint:    strings.TrimSpace(roleHint),
		Age:         age,
		Occupation:  g.Occupation(age, roleHint),
		Personality: g.Personality(),
	}, nil
}

// Age draws an age from the range appropriate for the role. Professions
// with long training skew older, physical jobs younger.
func (g *Generator) Age(roleHint string) int {
	switch strings.ToLower(strings.TrimSpace(roleHint)) {
	case "judge", "magistrate":
		return g.faker.Number(40, 70)
	case "detective", "investigator", "police", "cop":
		return g.faker.Number(25, 65)
	case "prosecutor", "district attorney", "da", "lawyer", "attorney":
		return g.faker.Number(28, 65)
	case "doctor", "physician", "medical examiner", "coroner":
		return g.faker.Number(30, 70)
	case "witness", "bystander":
		return g.faker.Number(18, 80)
	case "security", "security guard", "guard":
		return g.faker.Number(21, 55)
	case "student":
		return g.faker.Number(18, 30)
	default:
		return g.faker.Number(18, 75)
	}
}

// Occupation picks a profession for the role hint, or a random job title
// when the hint names no known profession. Young adults sometimes turn out
// to be students regardless of hint misses.
func (g *Generator) Occupation(age int, roleHint string) string {
	if occupation, ok := occupations[strings.ToLower(strings.TrimSpace(roleHint))]; ok {
		return occupation
	}
	if age >= 18 && age <= 22 && g.faker.Number(1, 3) == 1 {
		return "student"
	}

	return g.faker.JobTitle()
}

func (g *Generator) Personality() string {
	return g.faker.RandomString(personalityTraits)
}

// uniqueName generates first+last names until one is unused in the case.
func (g *Generator) uniqueName(inv *models.Investigation) string {
	taken := takenNames(inv)

	for range maxAttempts {
		name := g.faker.FirstName() + " " + g.faker.LastName()
		if _, used := taken[name]; !used {
			return name
		}
	}

	return g.faker.FirstName() + " " + g.faker.LastName() + "-" + g.faker.DigitN(3)
}

// familyName is uniqueName with a fixed surname.
func (g *Generator) familyName(inv *models.Investigation, surname string) string {
	taken := takenNames(inv)

	for range maxAttempts {
		name := g.faker.FirstName() + " " + surname
		if _, used := taken[name]; !used {
			return name
		}
	}

	return g.faker.FirstName() + " " + surname + "-" + g.faker.DigitN(3)
}

func takenNames(inv *models.Investigation) map[string]struct{} {
	taken := make(map[string]struct{}, len(inv.Characters))
	for _, character := range inv.Characters {
		taken[character.Name] = struct{}{}
	}

	return taken
}
