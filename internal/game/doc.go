// Package game implements the blackjack round engine: hand bookkeeping,
// splits, the per-seat turn state machine, the dealer policy, and outcome
// resolution.
//
// The engine is synchronous. It drives one round at a time,
// blocking on a DecisionSource for every hit/stay/split decision and pushing
// every screen to a View as it goes. All round data lives in a RoundState
// built fresh at the top of each round; nothing survives a round except the
// shuffle RNG.
package game
