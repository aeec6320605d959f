package models

import "errors"

// ErrIngredientNotFound is returned by inventory lookups when a name search
// has no match. The ingredient line stays unresolved; callers surface the miss
// and carry on.
var ErrIngredientNotFound = errors.New("ingredient not found in inventory")
