// Package cli implements the kefir command tree.
package cli
