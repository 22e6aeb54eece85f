// Package envelope defines the self-describing encrypted container formats
// exchanged by the tool, their framing rules and their error taxonomy.
package envelope
