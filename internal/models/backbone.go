package models

// Backbone is the authored case definition. It is read from the case
// directory and never written by the engine after scaffolding: runtime state
// lives in the investigation, trial, and dice documents.
type Backbone struct {
	Title     string            `yaml:"title" json:"title" validate:"required"`
	Tier      int               `yaml:"tier" json:"tier" validate:"required,min=1,max=3"`
	Locations []string          `yaml:"locations,omitempty" json:"locations,omitempty"`
	Gates     []BackboneGate    `yaml:"gates" json:"gates" validate:"required,min=1,dive"`
	Witnesses []BackboneWitness `yaml:"witnesses,omitempty" json:"witnesses,omitempty" validate:"dive"`
}

// BackboneGate declares one gate of the case in authored order.
type BackboneGate struct {
	Name string   `yaml:"name" json:"name" validate:"required"`
	Kind GateKind `yaml:"kind" json:"kind" validate:"required,oneof=investigation trial"`
}

// BackboneWitness declares a witness whose testimony is authored up front.
// A cross-examination of the witness loads these statements unless the
// narrator supplies its own.
type BackboneWitness struct {
	Name       string              `yaml:"name" json:"name" validate:"required"`
	Statements []BackboneStatement `yaml:"statements" json:"statements" validate:"required,min=1,dive"`
}

// BackboneStatement is one authored line of testimony. Contradiction names
// the evidence that exposes the statement; empty means filler.
type BackboneStatement struct {
	Text          string `yaml:"text" json:"text" validate:"required"`
	Contradiction string `yaml:"contradiction,omitempty" json:"contradiction,omitempty"`
}

// Witness returns the authored witness with the given name or nil.
func (b *Backbone) Witness(name string) *BackboneWitness {
	for i := range b.Witnesses {
		if b.Witnesses[i].Name == name {
			return &b.Witnesses[i]
		}
	}
	return nil
}
