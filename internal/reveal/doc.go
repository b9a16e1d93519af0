// Package reveal produces the cosmetic step-by-step narration shown before an
// encode or decode result, and plays it back on a fixed cadence.
//
// The narration is decoupled from the engine: steps are plain strings, a
// Sequence can be drained on any schedule, and Reveal calls the real
// operation exactly once after the last step (or immediately when no Player
// is given). Nothing here changes what the engine returns.
package reveal
