/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sync"

	"github.com/suparena/dynblocks/models"
)

// RuleRegistry holds per-shape-kind geometric validity rules (e.g. positive
// width/height for rectangles), applied after schema checks.

// RuleFunc validates parameter values against a shape kind's geometric
// constraints. It returns a ParameterMismatchError on violation.
type RuleFunc func(values models.ParameterSet) error

var (
	ruleRegistry = make(map[models.ShapeKind]RuleFunc)
	mu           sync.RWMutex
)

// RegisterRule associates a shape kind with its parameter validity rule.
func RegisterRule(kind models.ShapeKind, fn RuleFunc) {
	mu.Lock()
	defer mu.Unlock()
	ruleRegistry[kind] = fn
}

// GetRule retrieves the rule for a shape kind, if any.
func GetRule(kind models.ShapeKind) (RuleFunc, bool) {
	mu.RLock()
	defer mu.RUnlock()
	fn, ok := ruleRegistry[kind]
	return fn, ok
}
