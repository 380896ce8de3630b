// Package record provides the in-memory survey record: a tree of
// entities (containers) and attributes (leaves holding typed fields),
// together with the record's audit data and summary.
//
// Node is a sealed interface; its only implementations are *Entity and
// *Attribute. Code dispatching on nodes uses a type switch over those two
// types.
package record
