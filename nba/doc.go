// Package nba supplies the basketball domain bundled with CourtScout: the
// default route taxonomy with its example utterances, the worker personas
// bound to each route, and the data-fetch capabilities that scrape roster,
// per-game and injury tables from basketball-reference.com.
//
// Everything here is configuration and capability wiring; the routing and
// dispatch mechanics live in the route, worker and dispatch packages and are
// domain agnostic.
package nba
