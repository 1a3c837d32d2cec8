package models

// ReferenceEntity is a selectable option such as a municipality or a collection.
type ReferenceEntity struct {
	Value string
	Label string
}
