package services

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/vsinha/bomforge/pkg/domain/entities"
)

// DesignatorComparator orders reference designators with numeric sorting (R2 < R10)
type DesignatorComparator struct {
	designatorPattern *regexp.Regexp
}

// NewDesignatorComparator creates a new designator comparator with the default pattern
func NewDesignatorComparator() *DesignatorComparator {
	// Pattern matches designators like R1, C12, U3, RN4
	pattern := regexp.MustCompile(`^([A-Za-z]+)(\d+)$`)
	return &DesignatorComparator{
		designatorPattern: pattern,
	}
}

// Compare compares two designators with numeric sorting
// Returns: -1 if d1 < d2, 0 if equal, 1 if d1 > d2
func (dc *DesignatorComparator) Compare(d1, d2 entities.Designator) int {
	if d1 == d2 {
		return 0
	}

	prefix1, num1, err1 := dc.parseDesignator(d1)
	prefix2, num2, err2 := dc.parseDesignator(d2)

	// If either parsing fails, fall back to string comparison
	if err1 != nil || err2 != nil {
		return strings.Compare(string(d1), string(d2))
	}

	if prefix1 != prefix2 {
		return strings.Compare(prefix1, prefix2)
	}

	if num1 < num2 {
		return -1
	} else if num1 > num2 {
		return 1
	}
	return 0
}

// Sort returns a sorted copy of the designators
func (dc *DesignatorComparator) Sort(designators []entities.Designator) []entities.Designator {
	sorted := make([]entities.Designator, len(designators))
	copy(sorted, designators)
	sort.SliceStable(sorted, func(i, j int) bool {
		return dc.Compare(sorted[i], sorted[j]) < 0
	})
	return sorted
}

// parseDesignator extracts the upper-cased prefix and numeric portion of a designator
func (dc *DesignatorComparator) parseDesignator(d entities.Designator) (string, int, error) {
	matches := dc.designatorPattern.FindStringSubmatch(string(d))
	if len(matches) != 3 {
		return "", 0, fmt.Errorf("invalid designator format: %s", d)
	}

	num, err := strconv.Atoi(matches[2])
	if err != nil {
		return "", 0, fmt.Errorf("invalid numeric portion in designator %s: %v", d, err)
	}

	return strings.ToUpper(matches[1]), num, nil
}
