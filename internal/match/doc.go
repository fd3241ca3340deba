// Package match finds known type names close to a misspelled one.
//
// Names are compared case-insensitively by edit distance on their last
// dot-separated segment, so "village.Vilager" and "Vilager" both suggest
// "village.Villager".
package match
