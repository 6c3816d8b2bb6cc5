// Package acquire collects raw ECG samples for offline analysis.
//
// Two sources are supported: a serial-attached sensor streaming one
// numeric sample per line ([SerialSource]), and plain text recordings in
// the same format ([LoadFile]). Both tolerate malformed lines, which are
// logged and skipped rather than failing the whole acquisition.
package acquire
