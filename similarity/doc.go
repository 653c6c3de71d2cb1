// Package similarity ranks, for a base word, the words most related to it.
//
// Three policies are supported:
//
//   - PolicyFrequency: first order. Candidates are the base word's row, scored
//     by co-occurrence count, highest first.
//   - PolicyDistance: second order. Candidates are the words within two hops
//     of the base word that own a row, scored by the Euclidean distance
//     between rows, lowest first.
//   - PolicyDotProduct: second order, exhaustive. Candidates are all other
//     vocabulary words, scored by the dot product of rows, highest first.
//     Zero scores are dropped.
//
// A Ranker keeps only the best k candidates in a bounded heap. Equal scores
// are ordered by ascending word, so output is deterministic.
package similarity
