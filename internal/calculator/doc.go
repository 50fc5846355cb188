// Package calculator holds the pure aggregation math over session rows.
// Nothing here touches storage; callers pass in the rows and a reference time.
package calculator
