// Package gemini provides an implementation of the ranking.Oracle interface
// backed by Google's Gemini API.
//
// The Ranker renders the ranking prompt, sends it in a single request with a
// low temperature and bounded output, and parses the reply leniently: text
// that is not a JSON array of recommendations becomes an empty list. Calls are
// never retried here; transport failures surface as
// ranking.ErrOracleUnavailable and the caller decides what to do.
package gemini
