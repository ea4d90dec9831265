package entities

import (
	"fmt"
	"strings"
	"unicode"
)

// ComponentKind is the broad class of a placed component
type ComponentKind int

const (
	UnknownKind ComponentKind = iota
	Resistor
	Capacitor
	Inductor
	IC
)

// String method for ComponentKind enum
func (k ComponentKind) String() string {
	switch k {
	case Resistor:
		return "Resistor"
	case Capacitor:
		return "Capacitor"
	case Inductor:
		return "Inductor"
	case IC:
		return "IC"
	default:
		return "Unknown"
	}
}

// KindFromDesignator classifies a component by its designator prefix
// (R12 -> Resistor, C3 -> Capacitor, U1 -> IC).
func KindFromDesignator(d Designator) ComponentKind {
	prefix := strings.ToUpper(strings.TrimRightFunc(string(d), unicode.IsDigit))
	switch prefix {
	case "R", "RN":
		return Resistor
	case "C":
		return Capacitor
	case "L":
		return Inductor
	case "U", "IC":
		return IC
	default:
		return UnknownKind
	}
}

// Package represents the physical package of a component
type Package int

const (
	Passive0402 Package = iota
	Passive0603
	Passive0805
	Passive1206
	LQFP64
	QFN40
	THT
)

// String method for Package enum
func (p Package) String() string {
	switch p {
	case Passive0402:
		return "0402"
	case Passive0603:
		return "0603"
	case Passive0805:
		return "0805"
	case Passive1206:
		return "1206"
	case LQFP64:
		return "LQFP-64"
	case QFN40:
		return "QFN-40"
	case THT:
		return "THT"
	default:
		return "Unknown"
	}
}

// ParsePackage finds a known package code in a footprint or value string
// such as "R_0805_2012Metric" or "4.7k 0805".
func ParsePackage(s string) (Package, error) {
	upper := strings.ToUpper(s)
	switch {
	case strings.Contains(upper, "0402"):
		return Passive0402, nil
	case strings.Contains(upper, "0603"):
		return Passive0603, nil
	case strings.Contains(upper, "0805"):
		return Passive0805, nil
	case strings.Contains(upper, "1206"):
		return Passive1206, nil
	case strings.Contains(upper, "LQFP-64"), strings.Contains(upper, "LQFP64"):
		return LQFP64, nil
	case strings.Contains(upper, "QFN-40"), strings.Contains(upper, "QFN40"):
		return QFN40, nil
	case strings.Contains(upper, "THT"), strings.Contains(upper, "THROUGH"):
		return THT, nil
	default:
		return THT, fmt.Errorf("unknown package: %s", s)
	}
}
