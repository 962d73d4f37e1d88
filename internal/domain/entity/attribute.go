package entity

// AttributeKind tipo declarado de un atributo.
type AttributeKind string

const (
	AttributeKindText         AttributeKind = "text"
	AttributeKindNumber       AttributeKind = "number"
	AttributeKindSingleSelect AttributeKind = "single_select"
	AttributeKindMultiSelect  AttributeKind = "multi_select"
)

// Valid indica si el tipo es uno de los soportados.
func (k AttributeKind) Valid() bool {
	switch k {
	case AttributeKindText, AttributeKindNumber, AttributeKindSingleSelect, AttributeKindMultiSelect:
		return true
	}
	return false
}

// Attribute definición de un atributo de producto.
// Values son los valores permitidos (vacío para text y number).
type Attribute struct {
	ID     string
	Name   string
	Kind   AttributeKind
	Values []string
}

// Allows indica si v está entre los valores permitidos. Sin lista, todo valor se acepta.
func (a Attribute) Allows(v string) bool {
	if len(a.Values) == 0 {
		return true
	}
	for _, allowed := range a.Values {
		if allowed == v {
			return true
		}
	}
	return false
}
