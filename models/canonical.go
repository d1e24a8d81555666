/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// KeyPrecision is the number of decimal places parameter values are rounded
// to before canonical keying. Values closer than half a unit in the last
// place collapse to the same definition.
const KeyPrecision = 6

const keyScale = 1e6

// RoundValue rounds v half away from zero at KeyPrecision decimals.
// Negative zero normalizes to zero so it cannot leak into canonical keys.
func RoundValue(v float64) float64 {
	r := math.Round(v*keyScale) / keyScale
	if r == 0 {
		return 0
	}
	return r
}

// CanonicalKey encodes a parameter set into a deterministic cache key:
// names sorted ascending, values rounded to KeyPrecision decimals,
// "name=value" pairs joined with "|". The encoding is independent of map
// iteration order.
func CanonicalKey(values ParameterSet) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+strconv.FormatFloat(RoundValue(values[name]), 'f', KeyPrecision, 64))
	}
	return strings.Join(pairs, "|")
}

// DefinitionName derives the host definition name for a family and parameter
// set, e.g. "DB_DoorPanel_Height=2.100000|Width=0.900000".
func DefinitionName(family string, values ParameterSet) string {
	return "DB_" + family + "_" + CanonicalKey(values)
}
