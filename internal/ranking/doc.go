// Package ranking defines the boundary between the matching engine and the
// external ranking oracle (an LLM) that picks the most suitable recipients for
// a donation out of a short list of nearby candidates.
//
// The package owns the parts of the exchange that must not depend on a
// particular provider: the deterministic prompt, and the strict parser that
// turns the oracle's raw text into at most MaxRecommendations validated
// recommendations. Provider clients live under internal/platform.
package ranking
