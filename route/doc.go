// Package route implements the intent taxonomy and the semantic router that
// classifies free-text requests against it. A Route is a named intent defined
// by a handful of example utterances; the Router embeds an incoming request
// and scores it against every route's utterance vectors, selecting the best
// match or declaring that nothing matches confidently.
//
// Routes are registered once at startup and are immutable afterwards, so the
// registry is safe for unsynchronized concurrent reads during request
// processing. Utterance embeddings are computed once per process, either
// eagerly via Registry.Warm or lazily on first classification.
package route
