// Package classify derives a character's hidden role as a pure function of
// the character's name, role hint, and the case length tier. Nothing here is
// persisted: any process that knows the inputs reproduces the same answer,
// and narrative output never includes it.
package classify

import (
	"crypto/sha256"
	"encoding/binary"
	"strconv"
	"strings"
)

// probabilityCap bounds the culprit probability so no character is ever a
// guaranteed culprit.
const probabilityCap = 0.95

const two64 float64 = 1 << 64

type roleWeight struct {
	role   string
	weight float64
}

// roleWeights biases culprit probability by narrative role. High-authority
// roles make rare but impactful twists, high-suspicion roles are likelier
// suspects. Order matters: the first partial match wins, so the table is a
// slice rather than a map.
var roleWeights = []roleWeight{
	// High authority: 0.3x.
	{"detective", 0.3}, {"investigator", 0.3}, {"police", 0.3}, {"cop", 0.3},
	{"judge", 0.3}, {"magistrate", 0.3},
	{"client", 0.3}, {"defendant", 0.3},
	{"prosecutor", 0.3}, {"district attorney", 0.3}, {"da", 0.3},
	{"doctor", 0.3}, {"physician", 0.3}, {"medical examiner", 0.3}, {"coroner", 0.3},

	// Normal authority: 1.0x.
	{"witness", 1.0}, {"bystander", 1.0},
	{"lawyer", 1.0}, {"attorney", 1.0}, {"counsel", 1.0},
	{"court clerk", 1.0}, {"bailiff", 1.0}, {"stenographer", 1.0},
	{"journalist", 1.0}, {"reporter", 1.0},
	{"friend", 1.0}, {"neighbor", 1.0}, {"colleague", 1.0},

	// High suspicion: 1.8x.
	{"security", 1.8}, {"security guard", 1.8}, {"guard", 1.8},
	{"business rival", 1.8}, {"competitor", 1.8}, {"rival", 1.8},
	{"ex-spouse", 1.8}, {"ex-wife", 1.8}, {"ex-husband", 1.8}, {"ex-partner", 1.8},
	{"family", 1.8}, {"relative", 1.8}, {"sibling", 1.8}, {"brother", 1.8}, {"sister", 1.8},
	{"son", 1.8}, {"daughter", 1.8}, {"child", 1.8},
	{"debtor", 1.8}, {"borrower", 1.8}, {"tenant", 1.8},
	{"employee", 1.8}, {"worker", 1.8}, {"staff", 1.8},
	{"landlord", 1.8}, {"creditor", 1.8},
}

// Outcome is the derived hidden role of one character.
type Outcome struct {
	Name        string  `json:"name"`
	RoleHint    string  `json:"role_hint,omitempty"`
	Tier        int     `json:"tier"`
	Probability float64 `json:"probability"`
	Fraction    float64 `json:"fraction"`
	Culprit     bool    `json:"culprit"`
}

// Role renders the outcome as a narrative role name.
func (o Outcome) Role() string {
	if o.Culprit {
		return "culprit"
	}
	return "red_herring"
}

// Evaluate derives the hidden role for a character. The same inputs always
// produce the same outcome, in any process, in any order of calls.
func Evaluate(name, roleHint string, tier int) Outcome {
	probability := Probability(roleHint, tier)
	fraction := Fraction(name, roleHint, tier)

	return Outcome{
		Name:        name,
		RoleHint:    roleHint,
		Tier:        tier,
		Probability: probability,
		Fraction:    fraction,
		Culprit:     fraction < probability,
	}
}

// Culprit reports whether the character is the hidden culprit.
func Culprit(name, roleHint string, tier int) bool {
	return Evaluate(name, roleHint, tier).Culprit
}

// BaseProbability is the culprit probability before role weighting: 1/2 for
// tier 1, 1/3 for tier 2, 1/4 for tier 3. Longer cases carry more red
// herrings.
func BaseProbability(tier int) float64 {
	return 1.0 / float64(tier+1)
}

// Probability is the role-weighted culprit probability, capped so that no
// character is a certain culprit.
func Probability(roleHint string, tier int) float64 {
	probability := BaseProbability(tier) * RoleWeight(roleHint)
	if probability > probabilityCap {
		return probabilityCap
	}
	return probability
}

// RoleWeight returns the probability multiplier for a role hint. Exact
// matches win over partial matches; unknown and empty hints are neutral.
func RoleWeight(roleHint string) float64 {
	role := strings.ToLower(strings.TrimSpace(roleHint))
	if role == "" {
		return 1.0
	}

	for _, candidate := range roleWeights {
		if candidate.role == role {
			return candidate.weight
		}
	}
	for _, candidate := range roleWeights {
		if strings.Contains(role, candidate.role) || strings.Contains(candidate.role, role) {
			return candidate.weight
		}
	}

	return 1.0
}

// Fraction hashes the classification inputs into a uniform value in [0, 1).
// The character is the culprit when the fraction falls below the weighted
// probability.
func Fraction(name, roleHint string, tier int) float64 {
	seed := name + ":" + strings.ToLower(strings.TrimSpace(roleHint)) + ":" + strconv.Itoa(tier)
	sum := sha256.Sum256([]byte(seed))
	return float64(binary.BigEndian.Uint64(sum[:8])) / two64
}
