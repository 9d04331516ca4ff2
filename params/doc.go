// Package params models named, typed parameter bags and the modifier
// fold that merges them into a request descriptor.
//
// Four kinds exist: Plain (ordered query pairs), Header, Body (JSON
// fields applied via sjson paths) and Countable (a monotonically
// advancing cursor such as a page number). The processing loop mutates
// only the countable slot, always through Replace on its underlying
// pair, so a missing key surfaces as ErrKeyNotFound instead of failing
// silently.
//
// Limit constructors (LimitAtCount, LimitWhenEmptyBody and the
// gjson-backed body inspectors) build the stop predicates countable
// loops run against.
package params
