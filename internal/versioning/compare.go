package versioning

import (
	"errors"
	"strconv"
	"strings"
)

const (
	segmentSeparatorConstant         = "."
	inputNotStringMessageConstant    = "input params are not strings"
	rangeDescriptionTemplateConstant = "[%s, %s)"
)

// ErrInputNotString indicates CompareValues received a value that is not a string.
var ErrInputNotString = errors.New(inputNotStringMessageConstant)

// Compare orders two dotted version strings, returning -1, 0, or 1.
//
// Segments are compared numerically from left to right. A segment present in
// only one version decides the ordering only when it is greater than zero, so
// "2.1" equals "2.1.0" while "2.1" is lower than "2.1.5". Segments without a
// leading number never decide the ordering.
func Compare(leftVersion string, rightVersion string) int {
	leftSegments := strings.Split(leftVersion, segmentSeparatorConstant)
	rightSegments := strings.Split(rightVersion, segmentSeparatorConstant)

	segmentCount := max(len(leftSegments), len(rightSegments))
	for segmentIndex := 0; segmentIndex < segmentCount; segmentIndex++ {
		leftSegment := segmentAt(leftSegments, segmentIndex)
		rightSegment := segmentAt(rightSegments, segmentIndex)
		leftValue, leftParsed := parseSegment(leftSegment)
		rightValue, rightParsed := parseSegment(rightSegment)

		leftOnly := len(leftSegment) > 0 && len(rightSegment) == 0
		rightOnly := len(rightSegment) > 0 && len(leftSegment) == 0
		bothParsed := leftParsed && rightParsed

		if (leftOnly && leftParsed && leftValue > 0) || (bothParsed && leftValue > rightValue) {
			return 1
		}
		if (rightOnly && rightParsed && rightValue > 0) || (bothParsed && leftValue < rightValue) {
			return -1
		}
	}

	return 0
}

// CompareValues behaves like Compare for untyped inputs and reports
// ErrInputNotString when either value is not a string.
func CompareValues(leftValue any, rightValue any) (int, error) {
	leftVersion, leftIsString := leftValue.(string)
	rightVersion, rightIsString := rightValue.(string)
	if !leftIsString || !rightIsString {
		return 0, ErrInputNotString
	}
	return Compare(leftVersion, rightVersion), nil
}

func segmentAt(segments []string, segmentIndex int) string {
	if segmentIndex >= len(segments) {
		return ""
	}
	return segments[segmentIndex]
}

// parseSegment reads the leading integer of a segment, so "5-beta" yields 5.
func parseSegment(segment string) (int, bool) {
	trimmedSegment := strings.TrimSpace(segment)
	digitsEnd := 0
	if digitsEnd < len(trimmedSegment) && (trimmedSegment[digitsEnd] == '-' || trimmedSegment[digitsEnd] == '+') {
		digitsEnd++
	}
	signLength := digitsEnd
	for digitsEnd < len(trimmedSegment) && trimmedSegment[digitsEnd] >= '0' && trimmedSegment[digitsEnd] <= '9' {
		digitsEnd++
	}
	if digitsEnd == signLength {
		return 0, false
	}

	value, parseError := strconv.Atoi(trimmedSegment[:digitsEnd])
	if parseError != nil {
		return 0, false
	}
	return value, true
}
