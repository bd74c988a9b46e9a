// Package reactionledger implements the gallery vote ledger: a reconciliation
// engine that maps at-least-once reaction add/remove events from the chat
// gateway onto a durable one-vote-per-user-per-item ledger, undoing the
// visible reaction whenever a duplicate vote attempt is detected.
//
// Business rules live in application/domain layers; storage, gateway and HTTP
// concerns are isolated behind ports and adapters.
package reactionledger
